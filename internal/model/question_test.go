package model

import (
	"encoding/json"
	"testing"

	"biocheck_backend/internal/engine"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDefinitionDecodesColumns(t *testing.T) {
	row := QuestionDefinition{
		QID:          "ext_quarantine_days",
		FocusArea:    1,
		Number:       "1.4",
		Type:         "numeric",
		ScoringClass: "normal",
		Text:         "How many days?",
		NumericRules: json.RawMessage(`[{"op":">=","threshold":28,"score":100},{"op":"between","min":14,"max":27,"score":60}]`),
		Conditions:   json.RawMessage(`[{"ref":"ext_purchase_quarantine","op":"==","value":"yes"}]`),
		Skips:        json.RawMessage(`[{"trigger":"equals","values":["no"],"farmTargets":{"breeding":"a"},"default":"b"}]`),
		RiskMeta:     json.RawMessage(`{"description":"too short","recommendation":"extend","priority":"medium","diseases":["PRRS"]}`),
		Condition:    "ext_buys_animals == 'yes'",
	}

	def, err := row.ToDefinition()
	require.NoError(t, err)

	q := def.Question
	assert.Equal(t, "ext_quarantine_days", q.ID)
	assert.Equal(t, engine.Numeric, q.Type)
	require.Len(t, q.NumericRules, 2)
	assert.Equal(t, engine.NumericGTE, q.NumericRules[0].Op)
	assert.Equal(t, 28.0, q.NumericRules[0].Threshold)

	require.Len(t, q.Conditions, 1)
	assert.Equal(t, engine.DepEquals, q.Conditions[0].Op)

	require.Len(t, q.Skips, 1)
	assert.ElementsMatch(t, []string{"a", "b"}, q.Skips[0].Targets())

	require.NotNil(t, q.Risk)
	assert.Equal(t, engine.PriorityMedium, q.Risk.Priority)
	assert.Equal(t, []string{"PRRS"}, q.Risk.Diseases)

	assert.Equal(t, "ext_buys_animals == 'yes'", def.Condition)
}

func TestToDefinitionRejectsBrokenJSON(t *testing.T) {
	row := QuestionDefinition{
		QID:     "broken",
		Type:    "single_choice",
		Options: json.RawMessage(`{not json`),
	}

	_, err := row.ToDefinition()
	var confErr *engine.ConfigurationError
	require.ErrorAs(t, err, &confErr)
	assert.Equal(t, "broken", confErr.QuestionID)
}

func TestToTranslation(t *testing.T) {
	row := QuestionTranslation{
		QID:          "q1",
		Language:     "nl",
		Text:         "Vraag",
		OptionLabels: json.RawMessage(`{"yes":"Ja","no":"Nee"}`),
	}

	tr, err := row.ToTranslation()
	require.NoError(t, err)
	assert.Equal(t, "Vraag", tr.Text)
	assert.Equal(t, "Ja", tr.OptionLabels["yes"])
	assert.Nil(t, tr.RowLabels)
}
