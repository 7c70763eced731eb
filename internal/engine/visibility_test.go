package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func idsOf(qs []Question) []string {
	out := make([]string, 0, len(qs))
	for _, q := range qs {
		out = append(out, q.ID)
	}
	return out
}

func yesNo(id string, skips ...SkipDirective) Question {
	return Question{
		ID:   id,
		Type: SingleChoice,
		Options: []Option{
			{Value: "yes", Score: 100},
			{Value: "no", Score: 0},
		},
		Skips: skips,
	}
}

func TestResolveNoAnswersShowsEverythingUnconditional(t *testing.T) {
	qs := []Question{yesNo("q1"), yesNo("q2"), yesNo("q3")}
	visible := Resolve(qs, map[string]Answer{}, FarmTypeUnknown)
	assert.Equal(t, []string{"q1", "q2", "q3"}, idsOf(visible))
}

func TestResolveSkipRangeIsExclusive(t *testing.T) {
	qs := []Question{
		yesNo("q1", SkipDirective{Trigger: TriggerAlways, Target: "q5"}),
		yesNo("q2"),
		yesNo("q3"),
		yesNo("q4"),
		yesNo("q5"),
	}

	// Unanswered trigger: nothing is skipped.
	visible := Resolve(qs, map[string]Answer{}, FarmTypeUnknown)
	assert.Len(t, visible, 5)

	// Any answer fires an always-directive; the carrier and the target
	// itself stay visible.
	answers := map[string]Answer{"q1": ScalarAnswer("yes")}
	visible = Resolve(qs, answers, FarmTypeUnknown)
	assert.Equal(t, []string{"q1", "q5"}, idsOf(visible))
}

func TestResolveEqualsTrigger(t *testing.T) {
	qs := []Question{
		yesNo("buys", SkipDirective{Trigger: TriggerEquals, Values: []string{"no"}, Target: "transport"}),
		yesNo("quarantine"),
		yesNo("transport"),
	}

	visible := Resolve(qs, map[string]Answer{"buys": ScalarAnswer("yes")}, FarmTypeUnknown)
	assert.Equal(t, []string{"buys", "quarantine", "transport"}, idsOf(visible))

	visible = Resolve(qs, map[string]Answer{"buys": ScalarAnswer("no")}, FarmTypeUnknown)
	assert.Equal(t, []string{"buys", "transport"}, idsOf(visible))
}

func TestResolveFirstMatchingDirectiveIsAuthoritative(t *testing.T) {
	// Both directives match the answer; only the first may fire even though
	// the second one's range is wider.
	qs := []Question{
		yesNo("q1",
			SkipDirective{Trigger: TriggerEquals, Values: []string{"no"}, Target: "q3"},
			SkipDirective{Trigger: TriggerAlways, Target: "q4"},
		),
		yesNo("q2"),
		yesNo("q3"),
		yesNo("q4"),
	}

	visible := Resolve(qs, map[string]Answer{"q1": ScalarAnswer("no")}, FarmTypeUnknown)
	assert.Equal(t, []string{"q1", "q3", "q4"}, idsOf(visible))
}

func TestResolveFarmTypeTargets(t *testing.T) {
	directive := SkipDirective{
		Trigger:     TriggerEquals,
		Values:      []string{"no"},
		FarmTargets: map[FarmType]string{FarmTypeBreeding: "semen"},
		Default:     "transport",
	}
	qs := []Question{
		yesNo("buys", directive),
		yesNo("quarantine"),
		yesNo("semen"),
		yesNo("transport"),
	}
	answers := map[string]Answer{"buys": ScalarAnswer("no")}

	// Breeding farms keep the semen question.
	visible := Resolve(qs, answers, FarmTypeBreeding)
	assert.Equal(t, []string{"buys", "semen", "transport"}, idsOf(visible))

	// Every other farm type falls through to the default target.
	visible = Resolve(qs, answers, FarmTypeSlaughter)
	assert.Equal(t, []string{"buys", "transport"}, idsOf(visible))

	visible = Resolve(qs, answers, FarmTypeUnknown)
	assert.Equal(t, []string{"buys", "transport"}, idsOf(visible))
}

func TestResolveDependencyOnSkippedQuestionGoesDark(t *testing.T) {
	// q7 depends on q6 == yes. q6 was answered yes earlier, then a skip
	// directive on q5 hides q6: q7 must disappear with it despite the stale
	// answer.
	qs := []Question{
		yesNo("q5", SkipDirective{Trigger: TriggerEquals, Values: []string{"yes"}, Target: "q7"}),
		yesNo("q6"),
		{
			ID:         "q7",
			Type:       SingleChoice,
			Options:    []Option{{Value: "yes", Score: 100}, {Value: "no", Score: 0}},
			Conditions: []DependencyCondition{{Ref: "q6", Op: DepEquals, Value: "yes"}},
		},
	}

	answers := map[string]Answer{"q6": ScalarAnswer("yes")}
	visible := Resolve(qs, answers, FarmTypeUnknown)
	require.Equal(t, []string{"q5", "q6", "q7"}, idsOf(visible))

	answers["q5"] = ScalarAnswer("yes")
	visible = Resolve(qs, answers, FarmTypeUnknown)
	assert.Equal(t, []string{"q5"}, idsOf(visible))
}

func TestResolveUnansweredDependencyVisibleByDefault(t *testing.T) {
	qs := []Question{
		yesNo("parent"),
		{
			ID:         "child",
			Type:       SingleChoice,
			Options:    []Option{{Value: "yes", Score: 100}},
			Conditions: []DependencyCondition{{Ref: "parent", Op: DepEquals, Value: "yes"}},
		},
	}

	visible := Resolve(qs, map[string]Answer{}, FarmTypeUnknown)
	assert.Equal(t, []string{"parent", "child"}, idsOf(visible))

	visible = Resolve(qs, map[string]Answer{"parent": ScalarAnswer("no")}, FarmTypeUnknown)
	assert.Equal(t, []string{"parent"}, idsOf(visible))
}

func TestResolveMultipleConditionsAndTogether(t *testing.T) {
	qs := []Question{
		yesNo("a"),
		yesNo("b"),
		{
			ID:      "c",
			Type:    SingleChoice,
			Options: []Option{{Value: "yes", Score: 100}},
			Conditions: []DependencyCondition{
				{Ref: "a", Op: DepEquals, Value: "yes"},
				{Ref: "b", Op: DepNotEquals, Value: "no"},
			},
		},
	}

	answers := map[string]Answer{"a": ScalarAnswer("yes"), "b": ScalarAnswer("yes")}
	assert.Contains(t, idsOf(Resolve(qs, answers, FarmTypeUnknown)), "c")

	answers["b"] = ScalarAnswer("no")
	assert.NotContains(t, idsOf(Resolve(qs, answers, FarmTypeUnknown)), "c")
}

func TestResolveLegacyConditionExpression(t *testing.T) {
	expr, err := ParseCondition("vehicle != 'own'")
	require.NoError(t, err)

	qs := []Question{
		{
			ID:   "vehicle",
			Type: SingleChoice,
			Options: []Option{
				{Value: "own", Score: 100},
				{Value: "shared", Score: 0},
			},
		},
		{
			ID:        "cleaning",
			Type:      SingleChoice,
			Options:   []Option{{Value: "always", Score: 100}},
			Condition: expr,
		},
	}

	visible := Resolve(qs, map[string]Answer{"vehicle": ScalarAnswer("shared")}, FarmTypeUnknown)
	assert.Equal(t, []string{"vehicle", "cleaning"}, idsOf(visible))

	visible = Resolve(qs, map[string]Answer{"vehicle": ScalarAnswer("own")}, FarmTypeUnknown)
	assert.Equal(t, []string{"vehicle"}, idsOf(visible))
}

func TestResolveIsRecomputableAfterAnswerChange(t *testing.T) {
	qs := []Question{
		yesNo("gate", SkipDirective{Trigger: TriggerEquals, Values: []string{"no"}, Target: "last"}),
		yesNo("mid"),
		yesNo("last"),
	}

	answers := map[string]Answer{"gate": ScalarAnswer("no")}
	assert.Equal(t, []string{"gate", "last"}, idsOf(Resolve(qs, answers, FarmTypeUnknown)))

	// Changing the gating answer back restores the hidden question.
	answers["gate"] = ScalarAnswer("yes")
	assert.Equal(t, []string{"gate", "mid", "last"}, idsOf(Resolve(qs, answers, FarmTypeUnknown)))
}
