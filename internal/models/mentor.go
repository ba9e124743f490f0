package models

import (
	"time"

	"gorm.io/datatypes"
)

type SpotStatus string

const (
	SpotAvailable SpotStatus = "AVAILABLE"
	SpotHeld      SpotStatus = "HELD"
	SpotBooked    SpotStatus = "BOOKED"
)

// MentorSchedule groups the spots generated from one planning request.
type MentorSchedule struct {
	ID        uint   `gorm:"primaryKey"`
	MentorID  uint   `gorm:"not null;index"`
	Timezone  string `gorm:"type:varchar(64);not null"`
	Duration  int    `gorm:"not null"` // slot length in minutes
	CreatedAt time.Time
	UpdatedAt time.Time
}

// MentorTimeSpot is one bookable interval owned by one mentor. StartAt and
// EndAt are absolute instants; Timezone is a display label only. Status
// transitions are guarded by conditional updates, never read-then-write.
type MentorTimeSpot struct {
	ID         uint       `gorm:"primaryKey"`
	MentorID   uint       `gorm:"not null;index"`
	ScheduleID *uint      `gorm:"index"`
	Status     SpotStatus `gorm:"type:varchar(16);not null;default:'AVAILABLE';index"`
	StartAt    time.Time  `gorm:"not null;index"`
	EndAt      time.Time  `gorm:"not null"`
	Timezone   string     `gorm:"type:varchar(64)"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// InterviewRequest links one exam to one spot. The unique indexes enforce
// the 1:1 booking invariant at the storage layer; the booking service
// enforces it again at the application layer for a readable error.
type InterviewRequest struct {
	ID        uint   `gorm:"primaryKey"`
	Code      string `gorm:"type:varchar(36);not null;uniqueIndex"`
	ExamID    uint   `gorm:"not null;uniqueIndex"`
	SpotID    uint   `gorm:"not null;uniqueIndex"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// MentorBooking is the companion record the mentor-facing surfaces read.
type MentorBooking struct {
	ID        uint           `gorm:"primaryKey"`
	Code      string         `gorm:"type:varchar(36);not null;uniqueIndex"`
	SpotID    uint           `gorm:"not null;index"`
	MentorID  uint           `gorm:"not null;index"`
	UserID    uint           `gorm:"not null;index"`
	ExamID    uint           `gorm:"not null;index"`
	Metadata  datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
