package scoring

import "math"

// RatioScore holds the per-question grading result. Precision, recall and
// F1 are rounded to 3 decimals, the final score to 2, half-up.
type RatioScore struct {
	Precision  float64
	Recall     float64
	F1         float64
	FinalScore float64
}

// Score grades one classified answer. Every division is guarded: an empty
// denominator yields 0, never NaN.
func Score(c Counts, maxPossibleScore float64) RatioScore {
	tp := float64(c.TruePositives)
	fp := float64(c.FalsePositives)
	fn := float64(c.FalseNegatives)

	var precision, recall float64
	if tp+fp > 0 {
		precision = tp / (tp + fp)
	}
	if tp+fn > 0 {
		recall = tp / (tp + fn)
	}

	var f1 float64
	if precision+recall > 0 {
		f1 = 2 * precision * recall / (precision + recall)
	}

	return RatioScore{
		Precision:  roundTo(precision, 3),
		Recall:     roundTo(recall, 3),
		F1:         roundTo(f1, 3),
		FinalScore: roundTo(f1*maxPossibleScore, 2),
	}
}

// roundTo rounds half-up to the given number of decimals.
func roundTo(v float64, decimals int) float64 {
	shift := math.Pow(10, float64(decimals))
	return math.Floor(v*shift+0.5) / shift
}
