package services

import (
	"math/rand"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/st-united/AICP-API-sub001/internal/apperr"
	"github.com/st-united/AICP-API-sub001/internal/models"
	"github.com/st-united/AICP-API-sub001/internal/repository"
)

// AnswerService owns the answer-save path and exam creation.
type AnswerService struct {
	db    *gorm.DB
	log   *zap.Logger
	exams *repository.ExamRepository
}

func NewAnswerService(db *gorm.DB, log *zap.Logger) *AnswerService {
	return &AnswerService{
		db:    db,
		log:   log,
		exams: repository.NewExamRepository(db),
	}
}

// StartExam creates an IN_PROGRESS attempt with a shuffled question order
// and a deadline derived from the exam set duration.
func (s *AnswerService) StartExam(userID, examSetID uint) (*models.Exam, error) {
	var examSet models.ExamSet
	if err := s.db.Preload("Questions").First(&examSet, examSetID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperr.Newf(apperr.NotFound, "exam set %d not found", examSetID)
		}
		return nil, err
	}

	shuffled := make([]int64, len(examSet.Questions))
	for i, q := range examSet.Questions {
		shuffled[i] = int64(q.ID)
	}
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	r.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

	now := time.Now().UTC()
	exam := &models.Exam{
		UserID:        userID,
		ExamSetID:     examSet.ID,
		Status:        models.ExamInProgress,
		QuestionOrder: shuffled,
		StartedAt:     now,
		FinishedAt:    now.Add(time.Duration(examSet.Duration) * time.Minute),
	}
	if err := s.exams.Create(exam); err != nil {
		return nil, apperr.Wrap(err, "could not start exam")
	}
	s.log.Info("Exam started",
		zap.Uint("examID", exam.ID),
		zap.Uint("userID", userID),
		zap.Uint("examSetID", examSetID))
	return exam, nil
}

// SaveAnswerInput carries one answer save. For choice questions
// SelectedOptionIDs holds the chosen options; for essays EssayText holds
// the response.
type SaveAnswerInput struct {
	UserID            uint
	ExamID            uint
	QuestionID        uint
	SelectedOptionIDs []uint
	EssayText         string
}

// SaveAnswer replaces the user's answer to one question. Prior rows for
// the question scope are deleted and recreated, never appended to.
func (s *AnswerService) SaveAnswer(in SaveAnswerInput) error {
	if len(in.SelectedOptionIDs) == 0 && in.EssayText == "" {
		return apperr.New(apperr.Validation, "no answers supplied")
	}

	exam, err := s.exams.FindOwned(in.ExamID, in.UserID)
	if err != nil {
		return err
	}
	if exam.Status != models.ExamInProgress {
		return apperr.New(apperr.Conflict, "exam already submitted")
	}

	answer := &models.UserAnswer{
		ExamID:     in.ExamID,
		QuestionID: in.QuestionID,
		Status:     models.AnswerDraft,
		EssayText:  in.EssayText,
	}
	for _, optionID := range in.SelectedOptionIDs {
		answer.Selections = append(answer.Selections, models.UserAnswerSelection{AnswerOptionID: optionID})
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		return repository.NewAnswerRepository(tx).ReplaceForQuestion(answer)
	})
	if err != nil {
		return apperr.Wrap(err, "could not save answer")
	}
	return nil
}
