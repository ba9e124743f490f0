package models

import "time"

type AnswerStatus string

const (
	AnswerDraft  AnswerStatus = "DRAFT"
	AnswerSubmit AnswerStatus = "SUBMIT"
)

// UserAnswer is one user's response to one question within one exam.
// Re-answering a question deletes and recreates its rows, never appends.
type UserAnswer struct {
	ID         uint         `gorm:"primaryKey"`
	ExamID     uint         `gorm:"not null;uniqueIndex:idx_exam_question"`
	QuestionID uint         `gorm:"not null;uniqueIndex:idx_exam_question"`
	Question   Question     `gorm:"foreignKey:QuestionID"`
	Status     AnswerStatus `gorm:"type:varchar(16);not null;default:'DRAFT'"`
	EssayText  string       `gorm:"type:text"`
	Score      float64      `gorm:"type:decimal(5,2)"`
	Selections []UserAnswerSelection
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// UserAnswerSelection is one chosen option of a choice question.
type UserAnswerSelection struct {
	ID             uint `gorm:"primaryKey"`
	UserAnswerID   uint `gorm:"not null;index"`
	AnswerOptionID uint `gorm:"not null"`
	CreatedAt      time.Time
}
