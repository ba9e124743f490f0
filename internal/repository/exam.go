package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/st-united/AICP-API-sub001/internal/apperr"
	"github.com/st-united/AICP-API-sub001/internal/models"
)

type ExamRepository struct {
	db *gorm.DB
}

func NewExamRepository(db *gorm.DB) *ExamRepository {
	return &ExamRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *ExamRepository) WithTx(tx *gorm.DB) *ExamRepository {
	return &ExamRepository{db: tx}
}

func (r *ExamRepository) Create(exam *models.Exam) error {
	return r.db.Create(exam).Error
}

func (r *ExamRepository) FindByID(id uint) (*models.Exam, error) {
	var exam models.Exam
	err := r.db.First(&exam, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Newf(apperr.NotFound, "exam %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &exam, nil
}

// FindOwned loads an exam only if it belongs to the given user.
func (r *ExamRepository) FindOwned(id, userID uint) (*models.Exam, error) {
	var exam models.Exam
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&exam).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Newf(apperr.NotFound, "exam %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &exam, nil
}

// ClaimForSubmission atomically promotes IN_PROGRESS to SUBMITTED. The
// conditional update is the serialization point between a manual submit and
// the auto-submit scheduler: exactly one caller sees rows affected.
func (r *ExamRepository) ClaimForSubmission(id uint) (bool, error) {
	res := r.db.Model(&models.Exam{}).
		Where("id = ? AND status = ?", id, models.ExamInProgress).
		Update("status", models.ExamSubmitted)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// SaveResult writes the submission outcome onto the exam row.
func (r *ExamRepository) SaveResult(id uint, overallScore float64, level int, levelScaleID *uint) error {
	return r.db.Model(&models.Exam{}).Where("id = ?", id).Updates(map[string]any{
		"overall_score":    overallScore,
		"competence_level": level,
		"level_scale_id":   levelScaleID,
	}).Error
}

// FindExpiredInProgress returns exams whose allotted time ran out before
// the cutoff and that are still waiting to be submitted.
func (r *ExamRepository) FindExpiredInProgress(cutoff time.Time) ([]models.Exam, error) {
	var exams []models.Exam
	err := r.db.
		Where("status = ? AND finished_at <= ?", models.ExamInProgress, cutoff).
		Find(&exams).Error
	return exams, err
}

// TransitionStatus moves the exam between two known states; the from-state
// guard keeps concurrent booking flows from stepping on each other.
func (r *ExamRepository) TransitionStatus(id uint, from, to models.ExamStatus) (bool, error) {
	res := r.db.Model(&models.Exam{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// SetStatus force-sets the exam status; used by the cancellation revert
// which always lands on SUBMITTED regardless of the interview progress.
func (r *ExamRepository) SetStatus(id uint, to models.ExamStatus) error {
	return r.db.Model(&models.Exam{}).Where("id = ?", id).Update("status", to).Error
}
