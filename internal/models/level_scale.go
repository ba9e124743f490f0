package models

import "time"

// LevelScale is the active configuration row mapping an overall-score upper
// bound onto a competence level. Queried, never mutated, by the scoring
// path; when no active rows exist the engine falls back to its built-in
// ladder.
type LevelScale struct {
	ID         uint    `gorm:"primaryKey"`
	Level      int     `gorm:"not null;index"`
	Name       string  `gorm:"type:varchar(64);not null"`
	UpperBound float64 `gorm:"not null"` // exclusive; the top row uses UpperBound <= 0 as "no bound"
	Active     bool    `gorm:"not null;default:true;index"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
