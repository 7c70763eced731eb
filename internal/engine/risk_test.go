package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func riskQuestion(id string, priority Priority, diseases ...string) Question {
	return Question{
		ID:   id,
		Type: SingleChoice,
		Options: []Option{
			{Value: "good", Score: 100},
			{Value: "poor", Score: 20},
			{Value: "bad", Score: 0},
		},
		Risk: &RiskMetadata{
			Description:    "gap on " + id,
			Recommendation: "fix " + id,
			Priority:       priority,
			Diseases:       diseases,
		},
	}
}

func TestDeriveRiskThreshold(t *testing.T) {
	qs := []Question{
		riskQuestion("ok", PriorityHigh, "asf"),
		riskQuestion("gap", PriorityHigh, "asf"),
	}
	answers := map[string]Answer{
		"ok":  ScalarAnswer("good"), // 100, above threshold
		"gap": ScalarAnswer("bad"),  // 0, below the default threshold of 50
	}

	report, err := DeriveRisk(qs, answers, nil)
	require.NoError(t, err)
	require.Len(t, report.High, 1)
	assert.Equal(t, "gap", report.High[0].QuestionID)
	assert.Equal(t, "fix gap", report.High[0].Advice)
	assert.Empty(t, report.Critical)
}

func TestDeriveRiskCustomThreshold(t *testing.T) {
	threshold := 90.0
	q := riskQuestion("strict", PriorityMedium, "prrs")
	q.Risk.TriggerThreshold = &threshold

	report, err := DeriveRisk([]Question{q}, map[string]Answer{"strict": ScalarAnswer("poor")}, nil)
	require.NoError(t, err)
	require.Len(t, report.Medium, 1, "20 is below the custom threshold of 90")
}

func TestDeriveRiskUnansweredExcluded(t *testing.T) {
	qs := []Question{riskQuestion("gap", PriorityCritical, "asf")}
	report, err := DeriveRisk(qs, map[string]Answer{}, nil)
	require.NoError(t, err)
	assert.Empty(t, report.Critical)
	assert.Empty(t, report.DiseaseRisks)
}

func TestDeriveRiskBucketsSortedWorstFirst(t *testing.T) {
	qs := []Question{
		riskQuestion("partial", PriorityHigh),
		riskQuestion("total", PriorityHigh),
	}
	answers := map[string]Answer{
		"partial": ScalarAnswer("poor"), // 20
		"total":   ScalarAnswer("bad"),  // 0
	}

	report, err := DeriveRisk(qs, answers, nil)
	require.NoError(t, err)
	require.Len(t, report.High, 2)
	assert.Equal(t, "total", report.High[0].QuestionID, "lowest score first")
	assert.Equal(t, "partial", report.High[1].QuestionID)
}

func TestDeriveRiskPlaceholderDiseasesSkipped(t *testing.T) {
	qs := []Question{riskQuestion("gap", PriorityHigh, "all", "general", "-", "", "asf")}
	report, err := DeriveRisk(qs, map[string]Answer{"gap": ScalarAnswer("bad")}, nil)
	require.NoError(t, err)

	assert.Equal(t, map[string]float64{"asf": 100}, report.DiseaseRisks)
}

func TestMaxSeverityPolicy(t *testing.T) {
	qs := []Question{
		riskQuestion("minor", PriorityLow, "asf"),
		riskQuestion("major", PriorityCritical, "asf"),
	}
	answers := map[string]Answer{
		"minor": ScalarAnswer("poor"), // severity 80
		"major": ScalarAnswer("bad"),  // severity 100
	}

	report, err := DeriveRisk(qs, answers, MaxSeverityPolicy{})
	require.NoError(t, err)
	assert.Equal(t, 100.0, report.DiseaseRisks["asf"], "the worst gap dominates")
}

func TestCountWeightedPolicy(t *testing.T) {
	qs := []Question{
		riskQuestion("a", PriorityHigh, "asf"),
		riskQuestion("b", PriorityHigh, "asf"),
	}
	answers := map[string]Answer{
		"a": ScalarAnswer("poor"), // severity 80
		"b": ScalarAnswer("bad"),  // severity 100
	}

	report, err := DeriveRisk(qs, answers, CountWeightedPolicy{Bump: 5})
	require.NoError(t, err)
	// mean(80, 100) + 5*1 = 95
	assert.Equal(t, 95.0, report.DiseaseRisks["asf"])
}

func TestCountWeightedPolicyCaps(t *testing.T) {
	p := CountWeightedPolicy{Bump: 50}
	assert.Equal(t, 100.0, p.Combine([]float64{90, 90, 90}))
	assert.Equal(t, 0.0, p.Combine(nil))
}

func TestDeriveRiskDefaultBucketIsMedium(t *testing.T) {
	q := riskQuestion("odd", Priority("unheard-of"), "asf")
	report, err := DeriveRisk([]Question{q}, map[string]Answer{"odd": ScalarAnswer("bad")}, nil)
	require.NoError(t, err)
	require.Len(t, report.Medium, 1)
}
