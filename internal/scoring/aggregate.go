package scoring

import "sort"

// LevelScaleTop is the top of the competence-level numeric scale. Aspect
// raw percentages are mapped into level units by multiplying with it, while
// the level ladder keeps its own 0-10 thresholds; product has not clarified
// the mixed scales, so the arithmetic is preserved as-is.
const LevelScaleTop = 7.0

// AnswerResult is one graded answer with its framework placement.
type AnswerResult struct {
	AnswerID   uint
	QuestionID uint
	AspectID   uint
	Counts     Counts
	Score      RatioScore
	MaxScore   float64
}

// AspectWeight places an aspect inside a pillar with its relative
// multiplier (0-100 scale). Distinct from the pillar's framework weight.
type AspectWeight struct {
	PillarID uint
	Weight   float64
}

type AspectResult struct {
	AspectID    uint
	PillarID    uint
	RawScoreSum float64
	MaxScoreSum float64
	Raw         float64 // (raw/max) * LevelScaleTop, 0 when max is 0
	Weighted    float64 // Raw * aspect weight
}

type PillarResult struct {
	PillarID      uint
	RawScore      float64
	WeightedScore float64
}

// Aggregation is the full scored breakdown of one exam.
type Aggregation struct {
	Aspects      []AspectResult
	Pillars      []PillarResult
	OverallScore float64
	// Excluded counts answers whose aspect has no pillar mapping. They are
	// dropped from the pillar totals; callers log the count.
	Excluded int
}

// Aggregate rolls graded answers up into aspect, pillar and overall scores.
// aspectWeights keys aspects to their pillar and multiplier; pillarWeights
// is the independent framework axis (pillar → 0-1 fraction).
func Aggregate(results []AnswerResult, aspectWeights map[uint]AspectWeight, pillarWeights map[uint]float64) Aggregation {
	type sums struct{ raw, max float64 }
	byAspect := make(map[uint]*sums)

	agg := Aggregation{}
	for _, r := range results {
		if _, mapped := aspectWeights[r.AspectID]; !mapped {
			agg.Excluded++
			continue
		}
		s, ok := byAspect[r.AspectID]
		if !ok {
			s = &sums{}
			byAspect[r.AspectID] = s
		}
		s.raw += r.Score.FinalScore
		s.max += r.MaxScore
	}

	type pillarAcc struct{ weighted, weightSum, raw, max float64 }
	byPillar := make(map[uint]*pillarAcc)

	for aspectID, s := range byAspect {
		w := aspectWeights[aspectID]

		var raw float64
		if s.max > 0 {
			raw = roundTo(s.raw/s.max*LevelScaleTop, 3)
		}
		weighted := roundTo(raw*w.Weight, 3)

		agg.Aspects = append(agg.Aspects, AspectResult{
			AspectID:    aspectID,
			PillarID:    w.PillarID,
			RawScoreSum: s.raw,
			MaxScoreSum: s.max,
			Raw:         raw,
			Weighted:    weighted,
		})

		p, ok := byPillar[w.PillarID]
		if !ok {
			p = &pillarAcc{}
			byPillar[w.PillarID] = p
		}
		p.weighted += weighted
		p.weightSum += w.Weight
		p.raw += s.raw
		p.max += s.max
	}

	for pillarID, p := range byPillar {
		var raw float64
		if p.max > 0 {
			raw = roundTo(p.raw/p.max*LevelScaleTop, 3)
		}
		// Weighted mean over the aspect multipliers; the multipliers are
		// relative, so normalizing by their sum keeps the pillar on the
		// same 0-LevelScaleTop scale as its aspects.
		var weighted float64
		if p.weightSum > 0 {
			weighted = roundTo(p.weighted/p.weightSum, 3)
		}
		agg.Pillars = append(agg.Pillars, PillarResult{
			PillarID:      pillarID,
			RawScore:      raw,
			WeightedScore: weighted,
		})
	}

	sort.Slice(agg.Aspects, func(i, j int) bool { return agg.Aspects[i].AspectID < agg.Aspects[j].AspectID })
	sort.Slice(agg.Pillars, func(i, j int) bool { return agg.Pillars[i].PillarID < agg.Pillars[j].PillarID })

	var overall float64
	for _, p := range agg.Pillars {
		overall += p.WeightedScore * pillarWeights[p.PillarID]
	}
	agg.OverallScore = roundTo(overall, 2)

	return agg
}
