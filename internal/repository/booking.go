package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/st-united/AICP-API-sub001/internal/models"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) WithTx(tx *gorm.DB) *BookingRepository {
	return &BookingRepository{db: tx}
}

func (r *BookingRepository) CreateRequest(req *models.InterviewRequest) error {
	return r.db.Create(req).Error
}

func (r *BookingRepository) CreateBooking(booking *models.MentorBooking) error {
	return r.db.Create(booking).Error
}

// FindRequestByExam returns nil when the exam has no interview request yet.
func (r *BookingRepository) FindRequestByExam(examID uint) (*models.InterviewRequest, error) {
	var req models.InterviewRequest
	err := r.db.Where("exam_id = ?", examID).First(&req).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *BookingRepository) FindRequestBySpotAndExam(spotID, examID uint) (*models.InterviewRequest, error) {
	var req models.InterviewRequest
	err := r.db.Where("spot_id = ? AND exam_id = ?", spotID, examID).First(&req).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// DeletePair removes the interview request and its companion booking row.
func (r *BookingRepository) DeletePair(spotID, examID uint) error {
	if err := r.db.Where("spot_id = ? AND exam_id = ?", spotID, examID).
		Delete(&models.InterviewRequest{}).Error; err != nil {
		return err
	}
	return r.db.Where("spot_id = ? AND exam_id = ?", spotID, examID).
		Delete(&models.MentorBooking{}).Error
}
