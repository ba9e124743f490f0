package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/st-united/AICP-API-sub001/internal/apperr"
	"github.com/st-united/AICP-API-sub001/internal/models"
)

type SpotRepository struct {
	db *gorm.DB
}

func NewSpotRepository(db *gorm.DB) *SpotRepository {
	return &SpotRepository{db: db}
}

func (r *SpotRepository) WithTx(tx *gorm.DB) *SpotRepository {
	return &SpotRepository{db: tx}
}

func (r *SpotRepository) FindByID(id uint) (*models.MentorTimeSpot, error) {
	var spot models.MentorTimeSpot
	err := r.db.First(&spot, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Newf(apperr.NotFound, "time spot %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &spot, nil
}

func (r *SpotRepository) CreateSchedule(schedule *models.MentorSchedule) error {
	return r.db.Create(schedule).Error
}

func (r *SpotRepository) CreateBatch(spots []models.MentorTimeSpot) error {
	if len(spots) == 0 {
		return nil
	}
	return r.db.Create(&spots).Error
}

// DeleteAvailableInRange clears un-booked spots so a mentor can re-plan a
// date range idempotently. HELD and BOOKED spots are never touched.
func (r *SpotRepository) DeleteAvailableInRange(mentorID uint, from, to time.Time) error {
	return r.db.
		Where("mentor_id = ? AND status = ? AND start_at >= ? AND start_at < ?",
			mentorID, models.SpotAvailable, from, to).
		Delete(&models.MentorTimeSpot{}).Error
}

// Hold is the compare-and-swap at the heart of the booking protocol: the
// AVAILABLE→HELD transition succeeds for exactly one of any number of
// concurrent bookers.
func (r *SpotRepository) Hold(id uint) (bool, error) {
	res := r.db.Model(&models.MentorTimeSpot{}).
		Where("id = ? AND status = ?", id, models.SpotAvailable).
		Update("status", models.SpotHeld)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *SpotRepository) SetStatus(id uint, status models.SpotStatus) error {
	return r.db.Model(&models.MentorTimeSpot{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *SpotRepository) ListForMentor(mentorID uint, from, to time.Time) ([]models.MentorTimeSpot, error) {
	var spots []models.MentorTimeSpot
	err := r.db.
		Where("mentor_id = ? AND start_at >= ? AND start_at < ?", mentorID, from, to).
		Order("start_at").
		Find(&spots).Error
	return spots, err
}
