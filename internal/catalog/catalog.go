// Package catalog owns the question definitions consumed by the engine:
// canonical ordering, per-language translation overlays, load-time reference
// validation and the farm-type classification.
package catalog

import (
	"fmt"

	"biocheck_backend/internal/engine"
)

// Definition pairs a question with its not-yet-parsed legacy condition
// string. The string form never survives past New.
type Definition struct {
	Question  engine.Question
	Condition string
}

// Translation is a pure text overlay. It never carries scores, rules or
// visibility logic, so skip indices stay aligned across languages.
type Translation struct {
	Text         string            `json:"text,omitempty"`
	OptionLabels map[string]string `json:"optionLabels,omitempty"`
	RowLabels    map[string]string `json:"rowLabels,omitempty"`
	ColumnLabels map[string]string `json:"columnLabels,omitempty"`
}

// Catalog holds the validated question set. Immutable after New; services
// rebuild it wholesale when the admin edits the catalog.
type Catalog struct {
	areas        []engine.FocusArea
	base         map[int][]engine.Question
	translations map[string]map[string]Translation // language -> question ID
	baseLanguage string
}

// New validates and assembles a catalog. Every skip target and condition
// reference must name a question in the same focus area; a dangling
// reference is a ConfigurationError and must fail the load.
func New(areas []engine.FocusArea, defs map[int][]Definition, translations map[string]map[string]Translation, baseLanguage string) (*Catalog, error) {
	if err := engine.ValidateWeights(areas); err != nil {
		return nil, err
	}
	if baseLanguage == "" {
		baseLanguage = "en"
	}

	c := &Catalog{
		areas:        areas,
		base:         make(map[int][]engine.Question, len(areas)),
		translations: translations,
		baseLanguage: baseLanguage,
	}

	seen := map[string]bool{}
	for _, fa := range areas {
		ids := map[string]bool{}
		for _, d := range defs[fa.Index] {
			q := d.Question
			if q.ID == "" {
				return nil, &engine.ConfigurationError{Detail: fmt.Sprintf("unnamed question in focus area %d", fa.Index)}
			}
			if seen[q.ID] {
				return nil, &engine.ConfigurationError{QuestionID: q.ID, Detail: "duplicate question ID"}
			}
			if !q.Type.Valid() {
				return nil, &engine.ConfigurationError{QuestionID: q.ID, Detail: "unknown question type " + string(q.Type)}
			}
			seen[q.ID] = true
			ids[q.ID] = true
		}

		questions := make([]engine.Question, 0, len(defs[fa.Index]))
		for _, d := range defs[fa.Index] {
			q := d.Question
			if d.Condition != "" {
				expr, err := engine.ParseCondition(d.Condition)
				if err != nil {
					return nil, &engine.ConfigurationError{QuestionID: q.ID, Detail: err.Error()}
				}
				q.Condition = expr
			}
			if err := validateRefs(q, ids); err != nil {
				return nil, err
			}
			questions = append(questions, q)
		}
		c.base[fa.Index] = questions
	}
	return c, nil
}

func validateRefs(q engine.Question, ids map[string]bool) error {
	for _, d := range q.Skips {
		for _, t := range d.Targets() {
			if !ids[t] {
				return &engine.ConfigurationError{QuestionID: q.ID, Ref: t, Detail: "skip target not in catalog"}
			}
		}
	}
	for _, cond := range q.Conditions {
		if !ids[cond.Ref] {
			return &engine.ConfigurationError{QuestionID: q.ID, Ref: cond.Ref, Detail: "condition reference not in catalog"}
		}
	}
	if q.Condition != nil {
		for _, ref := range q.Condition.Refs() {
			if !ids[ref] {
				return &engine.ConfigurationError{QuestionID: q.ID, Ref: ref, Detail: "condition reference not in catalog"}
			}
		}
	}
	return nil
}

func (c *Catalog) Areas() []engine.FocusArea {
	return c.areas
}

// Questions returns the ordered definitions for a focus area in the given
// language. The base language supplies the canonical order; a translation
// only swaps display text, falling back to the base text field-wise.
func (c *Catalog) Questions(focusArea int, language string) ([]engine.Question, error) {
	base, ok := c.base[focusArea]
	if !ok {
		return nil, engine.ErrUnknownFocusArea
	}
	if language == "" || language == c.baseLanguage {
		return base, nil
	}
	overlay, ok := c.translations[language]
	if !ok {
		return base, nil
	}

	out := make([]engine.Question, len(base))
	copy(out, base)
	for i, q := range out {
		tr, ok := overlay[q.ID]
		if !ok {
			continue
		}
		if tr.Text != "" {
			out[i].Text = tr.Text
		}
		if len(tr.OptionLabels) > 0 {
			opts := make([]engine.Option, len(q.Options))
			copy(opts, q.Options)
			for j := range opts {
				if label, ok := tr.OptionLabels[opts[j].Value]; ok {
					opts[j].Label = label
				}
			}
			out[i].Options = opts
		}
		if len(tr.RowLabels) > 0 {
			rows := make([]engine.MatrixRow, len(q.Rows))
			copy(rows, q.Rows)
			for j := range rows {
				if label, ok := tr.RowLabels[rows[j].Key]; ok {
					rows[j].Label = label
				}
			}
			out[i].Rows = rows
		}
		if len(tr.ColumnLabels) > 0 {
			cols := make([]engine.MatrixColumn, len(q.Columns))
			copy(cols, q.Columns)
			for j := range cols {
				if label, ok := tr.ColumnLabels[cols[j].Value]; ok {
					cols[j].Label = label
				}
			}
			out[i].Columns = cols
		}
	}
	return out, nil
}

// Profile answer values feeding the farm-type classification.
const (
	ProfileHerdCompositionID = "pf_herd_composition"

	herdBreedingSows = "breeding_sows"
	herdYoungStock   = "young_stock"
	herdFinishers    = "finishers"
)

// ClassifyFarmType derives the farm type from the fixed profile question.
// Breeding stock dominates young stock, which dominates slaughter stock; a
// farm that answered none of them stays unknown.
func (c *Catalog) ClassifyFarmType(answers map[string]engine.Answer) engine.FarmType {
	a, ok := answers[ProfileHerdCompositionID]
	if !ok || a.IsZero() {
		return engine.FarmTypeUnknown
	}
	switch {
	case a.Matches(herdBreedingSows):
		return engine.FarmTypeBreeding
	case a.Matches(herdYoungStock):
		return engine.FarmTypeYoungStock
	case a.Matches(herdFinishers):
		return engine.FarmTypeSlaughter
	}
	return engine.FarmTypeUnknown
}
