package repository

import (
	"gorm.io/gorm"

	"github.com/st-united/AICP-API-sub001/internal/models"
)

type AnswerRepository struct {
	db *gorm.DB
}

func NewAnswerRepository(db *gorm.DB) *AnswerRepository {
	return &AnswerRepository{db: db}
}

func (r *AnswerRepository) WithTx(tx *gorm.DB) *AnswerRepository {
	return &AnswerRepository{db: tx}
}

// ReplaceForQuestion implements the delete-and-recreate contract: prior
// rows for the (exam, question) scope are removed together with their
// selection join rows, then the fresh answer is inserted.
func (r *AnswerRepository) ReplaceForQuestion(answer *models.UserAnswer) error {
	var existing []models.UserAnswer
	if err := r.db.Where("exam_id = ? AND question_id = ?", answer.ExamID, answer.QuestionID).
		Find(&existing).Error; err != nil {
		return err
	}
	for _, old := range existing {
		if err := r.db.Where("user_answer_id = ?", old.ID).
			Delete(&models.UserAnswerSelection{}).Error; err != nil {
			return err
		}
	}
	if len(existing) > 0 {
		if err := r.db.Where("exam_id = ? AND question_id = ?", answer.ExamID, answer.QuestionID).
			Delete(&models.UserAnswer{}).Error; err != nil {
			return err
		}
	}
	return r.db.Create(answer).Error
}

// PromoteDrafts flips every DRAFT answer of the exam to SUBMIT.
func (r *AnswerRepository) PromoteDrafts(examID uint) error {
	return r.db.Model(&models.UserAnswer{}).
		Where("exam_id = ? AND status = ?", examID, models.AnswerDraft).
		Update("status", models.AnswerSubmit).Error
}

// FindSubmitted loads the exam's submitted answers with everything the
// scoring engine needs: selections, question options and the skill chain.
func (r *AnswerRepository) FindSubmitted(examID uint) ([]models.UserAnswer, error) {
	var answers []models.UserAnswer
	err := r.db.
		Preload("Selections").
		Preload("Question.Options").
		Preload("Question.Skill").
		Where("exam_id = ? AND status = ?", examID, models.AnswerSubmit).
		Find(&answers).Error
	return answers, err
}

func (r *AnswerRepository) UpdateScore(answerID uint, score float64) error {
	return r.db.Model(&models.UserAnswer{}).
		Where("id = ?", answerID).
		Update("score", score).Error
}
