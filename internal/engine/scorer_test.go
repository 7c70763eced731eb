package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreSingleChoice(t *testing.T) {
	q := Question{
		ID:   "q",
		Type: SingleChoice,
		Options: []Option{
			{Value: "a", Score: 20},
			{Value: "b", Score: 80},
		},
	}

	score, counted, err := Score(q, ScalarAnswer("b"))
	require.NoError(t, err)
	assert.True(t, counted)
	assert.Equal(t, 80.0, score)

	// An option the catalog does not know scores 0 but still counts.
	score, counted, err = Score(q, ScalarAnswer("zzz"))
	require.NoError(t, err)
	assert.True(t, counted)
	assert.Equal(t, 0.0, score)
}

func TestScoreMultipleChoiceMean(t *testing.T) {
	q := Question{
		ID:   "q",
		Type: MultiChoice,
		Options: []Option{
			{Value: "x", Score: 0},
			{Value: "y", Score: 100},
		},
	}

	score, counted, err := Score(q, SetAnswer("x", "y"))
	require.NoError(t, err)
	assert.True(t, counted)
	assert.Equal(t, 50.0, score)

	// An empty selection is a deliberate "none of these": counted, scored 0.
	score, counted, err = Score(q, SetAnswer())
	require.NoError(t, err)
	assert.True(t, counted)
	assert.Equal(t, 0.0, score)
}

func TestScoreNumericFirstMatchWins(t *testing.T) {
	q := Question{
		ID:   "q",
		Type: Numeric,
		NumericRules: []NumericRule{
			{Op: NumericGTE, Threshold: 90, Score: 100},
			{Op: NumericLT, Threshold: 50, Score: 0},
		},
	}

	score, counted, err := Score(q, NumberAnswer(95))
	require.NoError(t, err)
	assert.True(t, counted)
	assert.Equal(t, 100.0, score)

	score, _, err = Score(q, NumberAnswer(10))
	require.NoError(t, err)
	assert.Equal(t, 0.0, score)

	// A value no rule covers scores 0 but is counted.
	score, counted, err = Score(q, NumberAnswer(70))
	require.NoError(t, err)
	assert.True(t, counted)
	assert.Equal(t, 0.0, score)
}

func TestScoreNumericBetween(t *testing.T) {
	q := Question{
		ID:   "q",
		Type: Numeric,
		NumericRules: []NumericRule{
			{Op: NumericBetween, Min: 14, Max: 27, Score: 60},
		},
	}

	for _, tc := range []struct {
		value float64
		want  float64
	}{
		{14, 60},
		{27, 60},
		{13.9, 0},
		{27.1, 0},
	} {
		score, _, err := Score(q, NumberAnswer(tc.value))
		require.NoError(t, err)
		assert.Equal(t, tc.want, score, "value %v", tc.value)
	}
}

func TestScoreMatrixMeanOverAnsweredRows(t *testing.T) {
	q := Question{
		ID:   "q",
		Type: Matrix,
		Rows: []MatrixRow{{Key: "pens"}, {Key: "corridors"}, {Key: "equipment"}},
		Columns: []MatrixColumn{
			{Value: "always", Score: 100},
			{Value: "rarely", Score: 0},
		},
	}

	score, counted, err := Score(q, RowMapAnswer(map[string]string{
		"pens":      "always",
		"corridors": "rarely",
	}))
	require.NoError(t, err)
	assert.True(t, counted)
	assert.Equal(t, 50.0, score)

	// No answered rows: excluded from the average, not scored 0.
	_, counted, err = Score(q, RowMapAnswer(map[string]string{}))
	require.NoError(t, err)
	assert.False(t, counted)
}

func TestScoreKindMismatchIsConfigurationError(t *testing.T) {
	q := Question{ID: "q", Type: SingleChoice, Options: []Option{{Value: "a", Score: 100}}}

	_, _, err := Score(q, NumberAnswer(5))
	var confErr *ConfigurationError
	require.ErrorAs(t, err, &confErr)
	assert.Equal(t, "q", confErr.QuestionID)
}

func TestScoreExclusions(t *testing.T) {
	demographic := Question{ID: "d", Type: SingleChoice, Class: ScoringDemographic,
		Options: []Option{{Value: "a", Score: 100}}}
	_, counted, err := Score(demographic, ScalarAnswer("a"))
	require.NoError(t, err)
	assert.False(t, counted)

	freeText := Question{ID: "f", Type: FreeText}
	_, counted, err = Score(freeText, ScalarAnswer("some remark"))
	require.NoError(t, err)
	assert.False(t, counted)

	scored := Question{ID: "s", Type: SingleChoice, Options: []Option{{Value: "a", Score: 100}}}
	_, counted, err = Score(scored, Answer{})
	require.NoError(t, err)
	assert.False(t, counted, "an absent answer is excluded, not zero")
}

func TestScoreClampsToRange(t *testing.T) {
	q := Question{ID: "q", Type: SingleChoice, Options: []Option{
		{Value: "over", Score: 140},
		{Value: "under", Score: -20},
	}}

	score, _, err := Score(q, ScalarAnswer("over"))
	require.NoError(t, err)
	assert.Equal(t, 100.0, score)

	score, _, err = Score(q, ScalarAnswer("under"))
	require.NoError(t, err)
	assert.Equal(t, 0.0, score)
}
