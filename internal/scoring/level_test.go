package scoring

import "testing"

func TestDeriveLevelDefaultLadder(t *testing.T) {
	testCases := []struct {
		score    float64
		expected int
	}{
		{0, 1},
		{1.99, 1},
		{2, 2},
		{2.5, 2},
		{3, 3},
		{4.99, 4},
		{5, 5},
		{6.2, 6},
		{7, 7},
		{9.5, 7},
	}

	for _, tc := range testCases {
		if got := DeriveLevel(tc.score, nil); got != tc.expected {
			t.Errorf("DeriveLevel(%.2f): expected %d, got %d", tc.score, tc.expected, got)
		}
	}
}

func TestDeriveLevelCustomLadder(t *testing.T) {
	ladder := []LevelThreshold{
		{UpperBound: 0, Level: 3},
		{UpperBound: 5, Level: 1},
		{UpperBound: 8, Level: 2},
	}
	if got := DeriveLevel(4.9, ladder); got != 1 {
		t.Errorf("expected level 1, got %d", got)
	}
	if got := DeriveLevel(6, ladder); got != 2 {
		t.Errorf("expected level 2, got %d", got)
	}
	if got := DeriveLevel(8, ladder); got != 3 {
		t.Errorf("expected level 3, got %d", got)
	}
}

// Higher scores can never map to lower levels.
func TestDeriveLevelMonotonic(t *testing.T) {
	prev := 0
	for score := 0.0; score <= 10.0; score += 0.1 {
		level := DeriveLevel(score, nil)
		if level < prev {
			t.Fatalf("ladder not monotonic: score %.1f gave level %d after %d", score, level, prev)
		}
		prev = level
	}
}
