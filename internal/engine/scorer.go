package engine

import "math"

// Score converts one answered question into a normalized 0-100 score.
//
// The second return value reports whether the question participates in
// scoring at all: an absent answer, a demographic question, a free-text
// question, or a matrix with no answered rows is excluded from averages
// rather than counted as zero. An answer whose variant cannot belong to the
// question's declared type is a ConfigurationError.
func Score(q Question, a Answer) (float64, bool, error) {
	if a.IsZero() || !q.Scorable() {
		return 0, false, nil
	}

	switch q.Type {
	case SingleChoice:
		if a.Kind != KindScalar {
			return 0, false, kindMismatch(q, a)
		}
		for _, opt := range q.Options {
			if opt.Value == a.Scalar {
				return clampScore(opt.Score), true, nil
			}
		}
		return 0, true, nil

	case MultiChoice:
		if a.Kind != KindSet {
			return 0, false, kindMismatch(q, a)
		}
		if len(a.Set) == 0 {
			return 0, true, nil
		}
		var sum float64
		for _, sel := range a.Set {
			sum += optionScore(q.Options, sel)
		}
		return clampScore(sum / float64(len(a.Set))), true, nil

	case Numeric:
		if a.Kind != KindNumber {
			return 0, false, kindMismatch(q, a)
		}
		for _, r := range q.NumericRules {
			if r.matches(a.Number) {
				return clampScore(r.Score), true, nil
			}
		}
		return 0, true, nil

	case Matrix:
		if a.Kind != KindRowMap {
			return 0, false, kindMismatch(q, a)
		}
		var sum float64
		answered := 0
		for _, row := range q.Rows {
			sel, ok := a.Rows[row.Key]
			if !ok {
				continue
			}
			answered++
			sum += columnScore(q.Columns, sel)
		}
		if answered == 0 {
			return 0, false, nil
		}
		return clampScore(sum / float64(answered)), true, nil
	}

	return 0, false, &ConfigurationError{QuestionID: q.ID, Detail: "unsupported question type " + string(q.Type)}
}

func kindMismatch(q Question, a Answer) error {
	return &ConfigurationError{
		QuestionID: q.ID,
		Detail:     "answer kind " + string(a.Kind) + " does not match question type " + string(q.Type),
	}
}

func optionScore(opts []Option, value string) float64 {
	for _, o := range opts {
		if o.Value == value {
			return o.Score
		}
	}
	return 0
}

func columnScore(cols []MatrixColumn, value string) float64 {
	for _, c := range cols {
		if c.Value == value {
			return c.Score
		}
	}
	return 0
}

func clampScore(v float64) float64 {
	return math.Min(100, math.Max(0, v))
}
