package engine

import "strconv"

// AnswerKind tags the variant held by an Answer. The scorer pattern-matches
// the question's declared type against the kind and rejects mismatches as a
// ConfigurationError instead of silently scoring 0.
type AnswerKind string

const (
	KindScalar AnswerKind = "scalar"
	KindNumber AnswerKind = "number"
	KindSet    AnswerKind = "set"
	KindRowMap AnswerKind = "rows"
)

// Answer is the tagged variant recorded against a question ID. Exactly one
// payload field is meaningful for a given kind.
type Answer struct {
	Kind   AnswerKind        `json:"kind"`
	Scalar string            `json:"scalar,omitempty"`
	Number float64           `json:"number,omitempty"`
	Set    []string          `json:"set,omitempty"`
	Rows   map[string]string `json:"rows,omitempty"`
}

func ScalarAnswer(v string) Answer {
	return Answer{Kind: KindScalar, Scalar: v}
}

func NumberAnswer(v float64) Answer {
	return Answer{Kind: KindNumber, Number: v}
}

func SetAnswer(vs ...string) Answer {
	return Answer{Kind: KindSet, Set: vs}
}

func RowMapAnswer(rows map[string]string) Answer {
	return Answer{Kind: KindRowMap, Rows: rows}
}

func (a Answer) IsZero() bool {
	return a.Kind == ""
}

// Matches implements array-aware equality: a scalar compares directly, a
// multi-select answer matches when the value is a member of the selection.
func (a Answer) Matches(v string) bool {
	switch a.Kind {
	case KindScalar:
		return a.Scalar == v
	case KindNumber:
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			return a.Number == n
		}
		return false
	case KindSet:
		for _, s := range a.Set {
			if s == v {
				return true
			}
		}
	}
	return false
}

func (a Answer) containsAny(vs []string) bool {
	for _, v := range vs {
		if a.Matches(v) {
			return true
		}
	}
	return false
}
