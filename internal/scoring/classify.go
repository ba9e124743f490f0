// Package scoring grades submitted answers against the competency
// framework. It is pure computation: no persistence, no errors — malformed
// inputs (missing options, zero max scores, unmapped aspects) degrade to
// zero contributions so one bad question never blocks a submission.
package scoring

// Counts partitions a question's answer options across
// {correct, incorrect} x {selected, unselected}.
type Counts struct {
	TruePositives  int
	FalsePositives int
	FalseNegatives int
	TrueNegatives  int
}

// Option is the slice of an answer option the grader needs.
type Option struct {
	ID        uint
	IsCorrect bool
}

// Classify buckets every registered option of one question. A question with
// no registered options yields empty sets on all sides.
func Classify(options []Option, selectedIDs []uint) Counts {
	selected := make(map[uint]bool, len(selectedIDs))
	for _, id := range selectedIDs {
		selected[id] = true
	}

	var c Counts
	for _, opt := range options {
		switch {
		case opt.IsCorrect && selected[opt.ID]:
			c.TruePositives++
		case opt.IsCorrect && !selected[opt.ID]:
			c.FalseNegatives++
		case !opt.IsCorrect && selected[opt.ID]:
			c.FalsePositives++
		default:
			c.TrueNegatives++
		}
	}
	return c
}
