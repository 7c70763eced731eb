package model

import (
	"encoding/json"

	"biocheck_backend/internal/catalog"
	"biocheck_backend/internal/engine"
)

// QuestionDefinition is the persisted catalog row. The logic-bearing columns
// (options, rules, directives, conditions) are JSON blobs decoded into engine
// types when the catalog is built; the legacy composed condition stays a
// string here and is parsed exactly once at that point.
// swagger:model QuestionDefinition
type QuestionDefinition struct {
	BaseModel
	QID          string          `gorm:"size:64;uniqueIndex;not null" json:"qid"`
	FocusArea    int             `gorm:"index;not null" json:"focusArea"`
	Position     int             `gorm:"not null" json:"position"`
	Number       string          `gorm:"size:16" json:"number"`
	Type         string          `gorm:"size:32;not null" json:"type"`
	ScoringClass string          `gorm:"size:16;default:'normal'" json:"scoringClass"`
	Text         string          `gorm:"type:text;not null" json:"text"`
	Options      json.RawMessage `gorm:"type:json" json:"options,omitempty"`
	Rows         json.RawMessage `gorm:"type:json" json:"rows,omitempty"`
	Columns      json.RawMessage `gorm:"type:json" json:"columns,omitempty"`
	NumericRules json.RawMessage `gorm:"type:json" json:"numericRules,omitempty"`
	Skips        json.RawMessage `gorm:"type:json" json:"skips,omitempty"`
	Conditions   json.RawMessage `gorm:"type:json" json:"conditions,omitempty"`
	Condition    string          `gorm:"type:text" json:"condition,omitempty"`
	RiskMeta     json.RawMessage `gorm:"type:json" json:"riskMeta,omitempty"`
	Enabled      bool            `gorm:"default:true" json:"enabled"`
}

func (QuestionDefinition) TableName() string {
	return "question_definitions"
}

// ToDefinition decodes the JSON columns into the catalog's load format.
func (q *QuestionDefinition) ToDefinition() (catalog.Definition, error) {
	def := catalog.Definition{
		Question: engine.Question{
			ID:     q.QID,
			Number: q.Number,
			Text:   q.Text,
			Type:   engine.QuestionType(q.Type),
			Class:  engine.ScoringClass(q.ScoringClass),
		},
		Condition: q.Condition,
	}

	for _, col := range []struct {
		raw json.RawMessage
		dst interface{}
	}{
		{q.Options, &def.Question.Options},
		{q.Rows, &def.Question.Rows},
		{q.Columns, &def.Question.Columns},
		{q.NumericRules, &def.Question.NumericRules},
		{q.Skips, &def.Question.Skips},
		{q.Conditions, &def.Question.Conditions},
	} {
		if len(col.raw) == 0 {
			continue
		}
		if err := json.Unmarshal(col.raw, col.dst); err != nil {
			return catalog.Definition{}, &engine.ConfigurationError{QuestionID: q.QID, Detail: err.Error()}
		}
	}
	if len(q.RiskMeta) > 0 {
		var meta engine.RiskMetadata
		if err := json.Unmarshal(q.RiskMeta, &meta); err != nil {
			return catalog.Definition{}, &engine.ConfigurationError{QuestionID: q.QID, Detail: err.Error()}
		}
		def.Question.Risk = &meta
	}
	return def, nil
}

// QuestionTranslation overlays display text for one question in one
// language. Scores and visibility rules live only on the base definition.
// swagger:model QuestionTranslation
type QuestionTranslation struct {
	BaseModel
	QID          string          `gorm:"size:64;uniqueIndex:idx_translation_qid_lang;not null" json:"qid"`
	Language     string          `gorm:"size:10;uniqueIndex:idx_translation_qid_lang;not null" json:"language"`
	Text         string          `gorm:"type:text" json:"text"`
	OptionLabels json.RawMessage `gorm:"type:json" json:"optionLabels,omitempty"`
	RowLabels    json.RawMessage `gorm:"type:json" json:"rowLabels,omitempty"`
	ColumnLabels json.RawMessage `gorm:"type:json" json:"columnLabels,omitempty"`
}

func (QuestionTranslation) TableName() string {
	return "question_translations"
}

func (t *QuestionTranslation) ToTranslation() (catalog.Translation, error) {
	tr := catalog.Translation{Text: t.Text}
	for _, col := range []struct {
		raw json.RawMessage
		dst *map[string]string
	}{
		{t.OptionLabels, &tr.OptionLabels},
		{t.RowLabels, &tr.RowLabels},
		{t.ColumnLabels, &tr.ColumnLabels},
	} {
		if len(col.raw) == 0 {
			continue
		}
		if err := json.Unmarshal(col.raw, col.dst); err != nil {
			return catalog.Translation{}, err
		}
	}
	return tr, nil
}
