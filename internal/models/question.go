package models

import "time"

type QuestionType string

const (
	QuestionSingleChoice   QuestionType = "SINGLE_CHOICE"
	QuestionMultipleChoice QuestionType = "MULTIPLE_CHOICE"
	QuestionEssay          QuestionType = "ESSAY"
)

// Question belongs to a Skill, which ties it into the competency framework.
type Question struct {
	ID               uint         `gorm:"primaryKey"`
	ExamSetID        uint         `gorm:"index"`
	SkillID          uint         `gorm:"not null;index"`
	Skill            Skill        `gorm:"foreignKey:SkillID"`
	Type             QuestionType `gorm:"type:varchar(32);not null"`
	Content          string       `gorm:"type:text;not null"`
	MaxPossibleScore float64      `gorm:"type:decimal(5,2);not null"`
	Options          []AnswerOption
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type AnswerOption struct {
	ID         uint   `gorm:"primaryKey"`
	QuestionID uint   `gorm:"not null;index"`
	Content    string `gorm:"type:text;not null"`
	IsCorrect  bool   `gorm:"not null;default:false"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type Skill struct {
	ID        uint             `gorm:"primaryKey"`
	Name      string           `gorm:"not null"`
	AspectID  uint             `gorm:"not null;index"`
	Aspect    CompetencyAspect `gorm:"foreignKey:AspectID"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
