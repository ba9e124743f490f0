package models

import "time"

// The three pillars (Mindset, Skillset, Toolset) partition the assessed
// dimensions. Aspect-within-pillar and pillar-within-framework weights are
// two independent axes and are kept in separate tables.

type CompetencyPillar struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"not null;uniqueIndex"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type CompetencyAspect struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"not null;uniqueIndex"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AspectPillarWeight maps an aspect into a pillar with a relative multiplier
// on a 0-100 scale. Weights within one pillar are not required to sum to 100;
// consumers treat them as multipliers, never as normalized shares.
type AspectPillarWeight struct {
	ID                    uint    `gorm:"primaryKey"`
	AspectID              uint    `gorm:"not null;uniqueIndex:idx_aspect_pillar"`
	PillarID              uint    `gorm:"not null;uniqueIndex:idx_aspect_pillar"`
	WeightWithinDimension float64 `gorm:"not null"`
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// FrameworkPillarWeight is the pillar's share of the overall score,
// expressed as a 0-1 fraction across the framework.
type FrameworkPillarWeight struct {
	ID        uint    `gorm:"primaryKey"`
	PillarID  uint    `gorm:"not null;uniqueIndex"`
	Weight    float64 `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
