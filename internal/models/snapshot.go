package models

import "time"

// Scored results frozen at submission time. Upserted by the submission
// workflow keyed on (exam, pillar) / (exam, aspect); immutable afterwards
// except for an idempotent overwrite when auto-submit re-runs.

type ExamPillarSnapshot struct {
	ID            uint    `gorm:"primaryKey"`
	ExamID        uint    `gorm:"not null;uniqueIndex:idx_exam_pillar_snap"`
	PillarID      uint    `gorm:"not null;uniqueIndex:idx_exam_pillar_snap"`
	RawScore      float64 `gorm:"type:decimal(6,3)"`
	WeightedScore float64 `gorm:"type:decimal(6,3)"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type ExamAspectSnapshot struct {
	ID            uint    `gorm:"primaryKey"`
	ExamID        uint    `gorm:"not null;uniqueIndex:idx_exam_aspect_snap"`
	AspectID      uint    `gorm:"not null;uniqueIndex:idx_exam_aspect_snap"`
	PillarID      uint    `gorm:"not null;index"`
	RawScore      float64 `gorm:"type:decimal(6,3)"`
	WeightedScore float64 `gorm:"type:decimal(6,3)"`
	RawScoreSum   float64 `gorm:"type:decimal(7,2)"`
	MaxScoreSum   float64 `gorm:"type:decimal(7,2)"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
