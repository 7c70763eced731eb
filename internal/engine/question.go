package engine

// QuestionType enumerates the answerable widget kinds the engine understands.
type QuestionType string

const (
	SingleChoice QuestionType = "single_choice"
	MultiChoice  QuestionType = "multiple_choice"
	Numeric      QuestionType = "numeric"
	Matrix       QuestionType = "matrix"
	FreeText     QuestionType = "free_text"
)

func (t QuestionType) Valid() bool {
	switch t {
	case SingleChoice, MultiChoice, Numeric, Matrix, FreeText:
		return true
	}
	return false
}

// ScoringClass separates scored questions from demographic ones, which are
// collected for context but never contribute to scores or risk.
type ScoringClass string

const (
	ScoringNormal      ScoringClass = "normal"
	ScoringDemographic ScoringClass = "demographic"
)

type Option struct {
	Value string  `json:"value"`
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

type MatrixRow struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

type MatrixColumn struct {
	Value string  `json:"value"`
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

type NumericOp string

const (
	NumericGTE     NumericOp = ">="
	NumericLTE     NumericOp = "<="
	NumericLT      NumericOp = "<"
	NumericBetween NumericOp = "between"
)

// NumericRule maps a range predicate to a score. Rules are evaluated in
// declared order and the first match wins.
type NumericRule struct {
	Op        NumericOp `json:"op"`
	Threshold float64   `json:"threshold,omitempty"`
	Min       float64   `json:"min,omitempty"`
	Max       float64   `json:"max,omitempty"`
	Score     float64   `json:"score"`
}

func (r NumericRule) matches(v float64) bool {
	switch r.Op {
	case NumericGTE:
		return v >= r.Threshold
	case NumericLTE:
		return v <= r.Threshold
	case NumericLT:
		return v < r.Threshold
	case NumericBetween:
		return v >= r.Min && v <= r.Max
	}
	return false
}

// FarmType is derived once from the profile answers and used only to pick
// among alternative skip targets.
type FarmType string

const (
	FarmTypeBreeding   FarmType = "breeding"
	FarmTypeYoungStock FarmType = "young_stock"
	FarmTypeSlaughter  FarmType = "slaughter"
	FarmTypeUnknown    FarmType = "unknown"
)

type SkipTrigger string

const (
	TriggerAlways         SkipTrigger = "always"
	TriggerEquals         SkipTrigger = "equals"
	TriggerNotEquals      SkipTrigger = "not_equals"
	TriggerContainsAny    SkipTrigger = "contains_any"
	TriggerNotContainsAny SkipTrigger = "not_contains_any"
)

// SkipDirective hides the contiguous run of questions strictly between its
// carrier and the resolved target once the carrier's answer matches the
// trigger. The target is either a literal question ID or a farm-type map
// with a default.
type SkipDirective struct {
	Trigger     SkipTrigger         `json:"trigger"`
	Values      []string            `json:"values,omitempty"`
	Target      string              `json:"target,omitempty"`
	FarmTargets map[FarmType]string `json:"farmTargets,omitempty"`
	Default     string              `json:"default,omitempty"`
}

// matches reports whether the recorded answer fires this directive. The
// caller only consults directives on questions that already have an answer,
// so TriggerAlways fires on any answer.
func (d SkipDirective) matches(a Answer) bool {
	switch d.Trigger {
	case TriggerAlways:
		return true
	case TriggerEquals:
		for _, v := range d.Values {
			if a.Matches(v) {
				return true
			}
		}
		return false
	case TriggerNotEquals:
		for _, v := range d.Values {
			if a.Matches(v) {
				return false
			}
		}
		return true
	case TriggerContainsAny:
		return a.containsAny(d.Values)
	case TriggerNotContainsAny:
		return !a.containsAny(d.Values)
	}
	return false
}

func (d SkipDirective) resolveTarget(ft FarmType) string {
	if d.Target != "" {
		return d.Target
	}
	if t, ok := d.FarmTargets[ft]; ok {
		return t
	}
	return d.Default
}

// Targets returns every question ID the directive can resolve to. Used by
// the catalog loader to reject dangling references at load time.
func (d SkipDirective) Targets() []string {
	var out []string
	if d.Target != "" {
		out = append(out, d.Target)
	}
	for _, t := range d.FarmTargets {
		out = append(out, t)
	}
	if d.Default != "" {
		out = append(out, d.Default)
	}
	return out
}

type DependencyOp string

const (
	DepEquals    DependencyOp = "=="
	DepNotEquals DependencyOp = "!="
)

// DependencyCondition gates the carrier question's own visibility on a prior
// question's answer. Multiple conditions on one question AND together.
type DependencyCondition struct {
	Ref   string       `json:"ref"`
	Op    DependencyOp `json:"op"`
	Value string       `json:"value"`
}

type Priority string

const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
)

// DefaultTriggerThreshold applies when risk metadata does not carry its own.
const DefaultTriggerThreshold = 50

// RiskMetadata turns a low-scoring answer into a remediation entry and a set
// of disease-risk contributions.
type RiskMetadata struct {
	Description      string   `json:"description"`
	Recommendation   string   `json:"recommendation"`
	Priority         Priority `json:"priority"`
	TriggerThreshold *float64 `json:"triggerThreshold,omitempty"`
	Diseases         []string `json:"diseases,omitempty"`
}

func (m RiskMetadata) threshold() float64 {
	if m.TriggerThreshold != nil {
		return *m.TriggerThreshold
	}
	return DefaultTriggerThreshold
}

// Question is an immutable definition supplied by the catalog. Ordering is
// owned by the catalog and treated as fixed and authoritative.
type Question struct {
	ID           string
	Number       string
	Text         string
	Type         QuestionType
	Class        ScoringClass
	Options      []Option
	Rows         []MatrixRow
	Columns      []MatrixColumn
	NumericRules []NumericRule
	Skips        []SkipDirective
	Conditions   []DependencyCondition
	Condition    Expr // parsed legacy expression, nil when absent
	Risk         *RiskMetadata
}

// Scorable reports whether the question participates in scoring at all.
// Demographic and free-text questions are collected, not scored.
func (q Question) Scorable() bool {
	return q.Class != ScoringDemographic && q.Type != FreeText
}

// Scope splits focus areas into the two halves of a biosecurity review.
type Scope string

const (
	ScopeExternal Scope = "external"
	ScopeInternal Scope = "internal"
)

// FocusArea is a top-level assessment stage. Weights across all areas must
// sum to 1.
type FocusArea struct {
	Index  int     `json:"index"`
	Name   string  `json:"name"`
	Scope  Scope   `json:"scope"`
	Weight float64 `json:"weight"`
}
