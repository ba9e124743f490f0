package scoring

import "sort"

// LevelThreshold maps an exclusive upper bound onto a competence level.
// An UpperBound <= 0 means "no bound" (the top rung).
type LevelThreshold struct {
	UpperBound float64
	Level      int
}

// DefaultLadder is the built-in 7-tier ladder, used when no active
// level-scale configuration rows exist.
var DefaultLadder = []LevelThreshold{
	{UpperBound: 2, Level: 1},
	{UpperBound: 3, Level: 2},
	{UpperBound: 4, Level: 3},
	{UpperBound: 5, Level: 4},
	{UpperBound: 6, Level: 5},
	{UpperBound: 7, Level: 6},
	{UpperBound: 0, Level: 7},
}

// DeriveLevel walks the ladder bottom-up and returns the first rung whose
// bound the score stays under. An empty or nil ladder falls back to the
// default one.
func DeriveLevel(overallScore float64, ladder []LevelThreshold) int {
	if len(ladder) == 0 {
		ladder = DefaultLadder
	}

	sorted := make([]LevelThreshold, len(ladder))
	copy(sorted, ladder)
	sort.Slice(sorted, func(i, j int) bool {
		// Unbounded rungs sort last.
		if sorted[i].UpperBound <= 0 {
			return false
		}
		if sorted[j].UpperBound <= 0 {
			return true
		}
		return sorted[i].UpperBound < sorted[j].UpperBound
	})

	for _, t := range sorted {
		if t.UpperBound <= 0 || overallScore < t.UpperBound {
			return t.Level
		}
	}
	return sorted[len(sorted)-1].Level
}
