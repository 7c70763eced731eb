package engine

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotApplicable is returned when an operation targets a question that
	// is not currently visible. Visibility is dynamic, so this is an ordinary
	// outcome, not a configuration fault.
	ErrNotApplicable = errors.New("question not applicable in current state")

	// ErrFocusAreaCompleted guards the completed-exactly-once transition.
	ErrFocusAreaCompleted = errors.New("focus area already completed")

	ErrAssessmentCompleted = errors.New("assessment already completed")
	ErrUnknownFocusArea    = errors.New("unknown focus area")
)

// ConfigurationError marks a catalog defect: a directive or condition
// referencing a question ID absent from the catalog, or an answer variant
// that cannot belong to the question's declared type. Fatal at load time,
// never silently ignored.
type ConfigurationError struct {
	QuestionID string
	Ref        string
	Detail     string
}

func (e *ConfigurationError) Error() string {
	if e.Ref != "" {
		return fmt.Sprintf("catalog configuration error on %q: reference %q: %s", e.QuestionID, e.Ref, e.Detail)
	}
	return fmt.Sprintf("catalog configuration error on %q: %s", e.QuestionID, e.Detail)
}

// IncompleteError rejects a focus-area completion while a visible question
// still lacks a required answer. The assessment state is left unchanged.
type IncompleteError struct {
	FocusArea int
	Missing   []string
}

func (e *IncompleteError) Error() string {
	return fmt.Sprintf("focus area %d incomplete: unanswered questions %s",
		e.FocusArea, strings.Join(e.Missing, ", "))
}
