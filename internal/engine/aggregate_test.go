package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fourAreas() []FocusArea {
	return []FocusArea{
		{Index: 1, Name: "Purchase", Scope: ScopeExternal, Weight: 0.30},
		{Index: 2, Name: "Visitors", Scope: ScopeExternal, Weight: 0.20},
		{Index: 3, Name: "Hygiene", Scope: ScopeInternal, Weight: 0.25},
		{Index: 4, Name: "Herd health", Scope: ScopeInternal, Weight: 0.25},
	}
}

func TestValidateWeights(t *testing.T) {
	assert.NoError(t, ValidateWeights(fourAreas()))

	bad := fourAreas()
	bad[0].Weight = 0.5
	assert.Error(t, ValidateWeights(bad))

	negative := fourAreas()
	negative[0].Weight = -0.30
	assert.Error(t, ValidateWeights(negative))

	// Drift within the tolerance passes.
	drifted := fourAreas()
	drifted[0].Weight = 0.30 + 1e-9
	assert.NoError(t, ValidateWeights(drifted))
}

func TestFocusAreaScoreMean(t *testing.T) {
	qs := []Question{
		{ID: "a", Type: SingleChoice, Options: []Option{{Value: "y", Score: 100}}},
		{ID: "b", Type: SingleChoice, Options: []Option{{Value: "y", Score: 50}}},
		{ID: "c", Type: SingleChoice, Class: ScoringDemographic, Options: []Option{{Value: "y", Score: 0}}},
	}
	answers := map[string]Answer{
		"a": ScalarAnswer("y"),
		"b": ScalarAnswer("y"),
		"c": ScalarAnswer("y"), // demographic, must not drag the mean down
	}

	score, err := FocusAreaScore(qs, answers)
	require.NoError(t, err)
	assert.Equal(t, 75.0, score)
}

func TestFocusAreaScoreEmpty(t *testing.T) {
	score, err := FocusAreaScore(nil, map[string]Answer{})
	require.NoError(t, err)
	assert.Equal(t, 0.0, score)
}

func TestAggregateWeightedOverall(t *testing.T) {
	scores := map[int]float64{1: 80, 2: 60, 3: 90, 4: 70}
	res, err := Aggregate(fourAreas(), scores)
	require.NoError(t, err)

	// 80*.30 + 60*.20 + 90*.25 + 70*.25 = 76
	assert.Equal(t, 76.0, res.Overall)

	// External: (80*.30 + 60*.20) / .50 = 72
	assert.Equal(t, 72.0, res.External)
	// Internal: (90*.25 + 70*.25) / .50 = 80
	assert.Equal(t, 80.0, res.Internal)

	assert.Equal(t, "B", res.Grade)
	assert.Equal(t, TierMedium, res.Tier)
}

func TestAggregateMissingAreaScore(t *testing.T) {
	_, err := Aggregate(fourAreas(), map[int]float64{1: 80})
	assert.Error(t, err)
}

func TestGradeLadder(t *testing.T) {
	for _, tc := range []struct {
		score float64
		grade string
	}{
		{100, "A+"},
		{95, "A+"},
		{94, "A"},
		{90, "A"},
		{89, "A-"},
		{85, "A-"},
		{80, "B+"},
		{75, "B"},
		{70, "B-"},
		{65, "C+"},
		{60, "C"},
		{55, "C-"},
		{50, "D"},
		{45, "E"},
		{44, "F"},
		{0, "F"},
		{94.6, "A+"}, // rounds up across the boundary
	} {
		assert.Equal(t, tc.grade, GradeFor(tc.score), "score %v", tc.score)
	}
}

func TestTierLadder(t *testing.T) {
	for _, tc := range []struct {
		score float64
		tier  RiskTier
	}{
		{100, TierLow},
		{85, TierLow},
		{84, TierMedium},
		{70, TierMedium},
		{69, TierHigh},
		{50, TierHigh},
		{49, TierCritical},
		{0, TierCritical},
	} {
		assert.Equal(t, tc.tier, TierFor(tc.score), "score %v", tc.score)
	}
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 33.33, Round2(100.0/3))
	assert.Equal(t, 66.67, Round2(200.0/3))
}
