package engine

import (
	"fmt"
	"math"
)

// WeightTolerance is the allowed drift when checking that the focus-area
// weight table sums to 1.
const WeightTolerance = 1e-6

// ValidateWeights checks weight-table closure over the configured focus
// areas. Called once at startup; a bad table is a configuration fault.
func ValidateWeights(areas []FocusArea) error {
	var sum float64
	for _, fa := range areas {
		if fa.Weight < 0 {
			return fmt.Errorf("focus area %d has negative weight %v", fa.Index, fa.Weight)
		}
		sum += fa.Weight
	}
	if math.Abs(sum-1) > WeightTolerance {
		return fmt.Errorf("focus area weights sum to %v, want 1.0", sum)
	}
	return nil
}

// FocusAreaScore computes the mean score over the answered, scorable subset
// of the visible questions, rounded to 2 decimal places. An area with no
// answered scorable questions scores 0.
func FocusAreaScore(visible []Question, answers map[string]Answer) (float64, error) {
	var sum float64
	counted := 0
	for _, q := range visible {
		s, ok, err := Score(q, answers[q.ID])
		if err != nil {
			return 0, err
		}
		if !ok {
			continue
		}
		sum += s
		counted++
	}
	if counted == 0 {
		return 0, nil
	}
	return Round2(sum / float64(counted)), nil
}

// AggregateResult is the assessment-level rollup. Overall is the convex
// combination of area scores under the configured weight table; External and
// Internal re-weight the areas of each scope among themselves.
type AggregateResult struct {
	AreaScores map[int]float64 `json:"areaScores"`
	Overall    float64         `json:"overall"`
	External   float64         `json:"external"`
	Internal   float64         `json:"internal"`
	Grade      string          `json:"grade"`
	Tier       RiskTier        `json:"tier"`
}

// Aggregate rolls completed focus-area scores into the overall assessment
// result. Every configured area must have a score; the caller enforces the
// all-areas-completed invariant before asking for the rollup.
func Aggregate(areas []FocusArea, areaScores map[int]float64) (*AggregateResult, error) {
	if err := ValidateWeights(areas); err != nil {
		return nil, err
	}

	res := &AggregateResult{AreaScores: make(map[int]float64, len(areas))}
	scopeSum := map[Scope]float64{}
	scopeWeight := map[Scope]float64{}

	for _, fa := range areas {
		score, ok := areaScores[fa.Index]
		if !ok {
			return nil, fmt.Errorf("%w: no score for focus area %d", ErrUnknownFocusArea, fa.Index)
		}
		res.AreaScores[fa.Index] = score
		res.Overall += score * fa.Weight
		scopeSum[fa.Scope] += score * fa.Weight
		scopeWeight[fa.Scope] += fa.Weight
	}

	res.Overall = Round2(res.Overall)
	if w := scopeWeight[ScopeExternal]; w > 0 {
		res.External = Round2(scopeSum[ScopeExternal] / w)
	}
	if w := scopeWeight[ScopeInternal]; w > 0 {
		res.Internal = Round2(scopeSum[ScopeInternal] / w)
	}
	res.Grade = GradeFor(res.Overall)
	res.Tier = TierFor(res.Overall)
	return res, nil
}

// GradeFor maps a displayed overall score onto the letter-grade ladder.
// The ladder is monotonic; scores are rounded to the nearest integer first.
func GradeFor(overall float64) string {
	v := math.Round(overall)
	switch {
	case v >= 95:
		return "A+"
	case v >= 90:
		return "A"
	case v >= 85:
		return "A-"
	case v >= 80:
		return "B+"
	case v >= 75:
		return "B"
	case v >= 70:
		return "B-"
	case v >= 65:
		return "C+"
	case v >= 60:
		return "C"
	case v >= 55:
		return "C-"
	case v >= 50:
		return "D"
	case v >= 45:
		return "E"
	default:
		return "F"
	}
}

// RiskTier is the coarser four-bucket classification shown next to the grade.
type RiskTier string

const (
	TierLow      RiskTier = "low"
	TierMedium   RiskTier = "medium"
	TierHigh     RiskTier = "high"
	TierCritical RiskTier = "critical"
)

func TierFor(overall float64) RiskTier {
	v := math.Round(overall)
	switch {
	case v >= 85:
		return TierLow
	case v >= 70:
		return TierMedium
	case v >= 50:
		return TierHigh
	default:
		return TierCritical
	}
}

func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
