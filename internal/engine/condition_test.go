package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConditionSingleComparison(t *testing.T) {
	expr, err := ParseCondition("q12 == 'yes'")
	require.NoError(t, err)
	assert.Equal(t, []string{"q12"}, expr.Refs())

	ctx := &evalContext{
		answers: map[string]Answer{"q12": ScalarAnswer("yes")},
		visible: map[string]bool{"q12": true},
	}
	assert.True(t, expr.eval(ctx))

	ctx.answers["q12"] = ScalarAnswer("no")
	assert.False(t, expr.eval(ctx))
}

func TestParseConditionNotEquals(t *testing.T) {
	expr, err := ParseCondition("vehicle != 'own'")
	require.NoError(t, err)

	ctx := &evalContext{
		answers: map[string]Answer{"vehicle": ScalarAnswer("shared")},
		visible: map[string]bool{"vehicle": true},
	}
	assert.True(t, expr.eval(ctx))

	ctx.answers["vehicle"] = ScalarAnswer("own")
	assert.False(t, expr.eval(ctx))
}

func TestParseConditionPrecedence(t *testing.T) {
	// OR binds looser than AND: (a AND b) OR c
	expr, err := ParseCondition("a == '1' AND b == '1' OR c == '1'")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b", "c"}, expr.Refs())

	visible := map[string]bool{"a": true, "b": true, "c": true}

	ctx := &evalContext{
		answers: map[string]Answer{
			"a": ScalarAnswer("1"),
			"b": ScalarAnswer("0"),
			"c": ScalarAnswer("0"),
		},
		visible: visible,
	}
	assert.False(t, expr.eval(ctx), "a alone must not satisfy the AND clause")

	ctx.answers["b"] = ScalarAnswer("1")
	assert.True(t, expr.eval(ctx))

	ctx.answers = map[string]Answer{
		"a": ScalarAnswer("0"),
		"b": ScalarAnswer("0"),
		"c": ScalarAnswer("1"),
	}
	assert.True(t, expr.eval(ctx), "the OR branch alone must satisfy the expression")
}

func TestParseConditionMalformed(t *testing.T) {
	for _, s := range []string{
		"",
		"q1",
		"q1 > 'x'",
		"q1 == unquoted",
		"== 'x'",
	} {
		_, err := ParseCondition(s)
		assert.Error(t, err, "input %q", s)
	}
}

func TestConditionHiddenReferenceIsFalse(t *testing.T) {
	expr, err := ParseCondition("hidden == 'yes'")
	require.NoError(t, err)

	// The referenced question answered "yes" but is not in the visible set:
	// the comparison must fail regardless of the stored answer.
	ctx := &evalContext{
		answers: map[string]Answer{"hidden": ScalarAnswer("yes")},
		visible: map[string]bool{},
	}
	assert.False(t, expr.eval(ctx))
}

func TestConditionUnansweredReferenceHolds(t *testing.T) {
	expr, err := ParseCondition("later == 'yes'")
	require.NoError(t, err)

	ctx := &evalContext{
		answers: map[string]Answer{},
		visible: map[string]bool{"later": true},
	}
	assert.True(t, expr.eval(ctx))
}

func TestConditionSetMembership(t *testing.T) {
	expr, err := ParseCondition("species == 'pigs'")
	require.NoError(t, err)

	ctx := &evalContext{
		answers: map[string]Answer{"species": SetAnswer("cattle", "pigs")},
		visible: map[string]bool{"species": true},
	}
	assert.True(t, expr.eval(ctx), "membership counts as equality for multi-select answers")
}
