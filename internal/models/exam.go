package models

import (
	"time"

	"github.com/lib/pq"
)

type ExamStatus string

const (
	ExamInProgress         ExamStatus = "IN_PROGRESS"
	ExamSubmitted          ExamStatus = "SUBMITTED"
	ExamWaitingForReview   ExamStatus = "WAITING_FOR_REVIEW"
	ExamGraded             ExamStatus = "GRADED"
	ExamInterviewScheduled ExamStatus = "INTERVIEW_SCHEDULED"
	ExamInterviewCompleted ExamStatus = "INTERVIEW_COMPLETED"
	ExamResultEvaluated    ExamStatus = "RESULT_EVALUATED"
)

// Exam is one attempt by one user against one exam set. OverallScore and
// CompetenceLevel are written exactly once, at submission; status only moves
// forward except for the booking-cancellation revert back to SUBMITTED.
type Exam struct {
	ID              uint       `gorm:"primaryKey"`
	UserID          uint       `gorm:"not null;index"`
	ExamSetID       uint       `gorm:"not null;index"`
	ExamSet         ExamSet    `gorm:"foreignKey:ExamSetID"`
	Status          ExamStatus `gorm:"type:varchar(32);not null;default:'IN_PROGRESS';index"`
	OverallScore    float64    `gorm:"type:decimal(5,2)"`
	CompetenceLevel int
	LevelScaleID    *uint
	QuestionOrder   pq.Int64Array `gorm:"type:integer[]"`
	StartedAt       time.Time
	FinishedAt      time.Time `gorm:"index"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ExamSet groups the questions served to one attempt.
type ExamSet struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"not null"`
	Duration  int    // minutes allotted for one attempt
	Questions []Question
	CreatedAt time.Time
	UpdatedAt time.Time
}
