package engine

import (
	"time"

	"go.uber.org/zap"
)

// FocusAreaState tracks one assessment stage. Score is only set once
// Completed flips to true, and the answers are then immutable except through
// an explicit reset.
type FocusAreaState struct {
	Completed bool              `json:"completed"`
	Score     *float64          `json:"score,omitempty"`
	Answers   map[string]Answer `json:"answers"`
}

// AssessmentState is the in-memory representation of an assessment in
// progress: pure data, mutated only through a Session.
type AssessmentState struct {
	ID            string                  `json:"id"`
	Language      string                  `json:"language"`
	Areas         map[int]*FocusAreaState `json:"areas"`
	OverallScore  *float64                `json:"overallScore,omitempty"`
	ExternalScore *float64                `json:"externalScore,omitempty"`
	InternalScore *float64                `json:"internalScore,omitempty"`
	Grade         string                  `json:"grade,omitempty"`
	Tier          RiskTier                `json:"tier,omitempty"`
	Report        *RiskReport             `json:"report,omitempty"`
	StartedAt     time.Time               `json:"startedAt"`
	CompletedAt   *time.Time              `json:"completedAt,omitempty"`
}

// NewAssessmentState returns an empty state covering the given focus areas.
func NewAssessmentState(id, language string, areas []FocusArea) *AssessmentState {
	st := &AssessmentState{
		ID:        id,
		Language:  language,
		Areas:     make(map[int]*FocusAreaState, len(areas)),
		StartedAt: time.Now(),
	}
	for _, fa := range areas {
		st.Areas[fa.Index] = &FocusAreaState{Answers: map[string]Answer{}}
	}
	return st
}

func (s *AssessmentState) Complete() bool {
	return s.CompletedAt != nil
}

// allAnswers flattens the per-area answer maps; question IDs are globally
// unique so a plain merge is safe.
func (s *AssessmentState) allAnswers() map[string]Answer {
	out := map[string]Answer{}
	for _, fa := range s.Areas {
		for id, a := range fa.Answers {
			out[id] = a
		}
	}
	return out
}

// Store is the injected persistence strategy. The engine treats it as a
// best-effort cache: a failed write is logged and the in-memory state stays
// authoritative for the rest of the session.
type Store interface {
	LoadAssessment(id string) (*AssessmentState, error)
	SaveAssessment(state *AssessmentState) error
	AppendHistory(state *AssessmentState) error
	DeleteHistoryEntry(id string) error
}

// Catalog supplies ordered question definitions and the derived farm-type
// classification. Ordering must be stable across languages.
type Catalog interface {
	Areas() []FocusArea
	Questions(focusArea int, language string) ([]Question, error)
	ClassifyFarmType(answers map[string]Answer) FarmType
}

// CompletionResult is returned by CompleteAssessment.
type CompletionResult struct {
	Overall  float64     `json:"overall"`
	External float64     `json:"external"`
	Internal float64     `json:"internal"`
	Grade    string      `json:"grade"`
	Tier     RiskTier    `json:"tier"`
	Report   *RiskReport `json:"report"`
}

// Session is the single logical actor driving one assessment. All operations
// are synchronous and run to completion; no locking is needed because one
// user owns one session.
type Session struct {
	state   *AssessmentState
	catalog Catalog
	store   Store
	policy  DiseasePolicy
	log     *zap.Logger
}

// SessionOption tweaks session construction.
type SessionOption func(*Session)

func WithDiseasePolicy(p DiseasePolicy) SessionOption {
	return func(s *Session) { s.policy = p }
}

func WithLogger(l *zap.Logger) SessionOption {
	return func(s *Session) { s.log = l }
}

// NewSession resumes the stored assessment if one exists, otherwise starts an
// empty one. A store read failure degrades to a fresh state.
func NewSession(id, language string, catalog Catalog, store Store, opts ...SessionOption) *Session {
	s := &Session{
		catalog: catalog,
		store:   store,
		policy:  MaxSeverityPolicy{},
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if store != nil {
		if st, err := store.LoadAssessment(id); err != nil {
			s.log.Warn("assessment load failed, starting fresh", zap.String("id", id), zap.Error(err))
		} else if st != nil {
			if st.Language == "" {
				st.Language = language
			}
			s.state = st
		}
	}
	if s.state == nil {
		s.state = NewAssessmentState(id, language, catalog.Areas())
	}
	// Areas added to the catalog after the state was persisted still need
	// their slot.
	for _, fa := range catalog.Areas() {
		if _, ok := s.state.Areas[fa.Index]; !ok {
			s.state.Areas[fa.Index] = &FocusAreaState{Answers: map[string]Answer{}}
		}
	}
	return s
}

func (s *Session) State() *AssessmentState {
	return s.state
}

func (s *Session) farmType() FarmType {
	return s.catalog.ClassifyFarmType(s.state.allAnswers())
}

// ApplicableQuestions resolves the currently visible question list for a
// focus area under the answers recorded so far.
func (s *Session) ApplicableQuestions(focusArea int) ([]Question, error) {
	if _, ok := s.state.Areas[focusArea]; !ok {
		return nil, ErrUnknownFocusArea
	}
	questions, err := s.catalog.Questions(focusArea, s.state.Language)
	if err != nil {
		return nil, err
	}
	return Resolve(questions, s.state.allAnswers(), s.farmType()), nil
}

// RecordAnswer stores or overwrites one answer. Answers against questions
// that are not currently visible are rejected as not applicable; answers
// into a completed focus area are rejected outright.
func (s *Session) RecordAnswer(focusArea int, questionID string, a Answer) error {
	fa, ok := s.state.Areas[focusArea]
	if !ok {
		return ErrUnknownFocusArea
	}
	if fa.Completed {
		return ErrFocusAreaCompleted
	}

	visible, err := s.ApplicableQuestions(focusArea)
	if err != nil {
		return err
	}
	found := false
	for _, q := range visible {
		if q.ID == questionID {
			found = true
			break
		}
	}
	if !found {
		return ErrNotApplicable
	}

	fa.Answers[questionID] = a
	s.persist()
	return nil
}

// CompleteFocusArea freezes a focus area and computes its score from the
// answers at that moment. Rejected with IncompleteError while any visible
// scorable question is unanswered; the state is left untouched in that case.
func (s *Session) CompleteFocusArea(focusArea int) (float64, error) {
	fa, ok := s.state.Areas[focusArea]
	if !ok {
		return 0, ErrUnknownFocusArea
	}
	if fa.Completed {
		return 0, ErrFocusAreaCompleted
	}

	visible, err := s.ApplicableQuestions(focusArea)
	if err != nil {
		return 0, err
	}

	var missing []string
	for _, q := range visible {
		if !q.Scorable() {
			continue
		}
		if a, ok := fa.Answers[q.ID]; !ok || a.IsZero() {
			missing = append(missing, q.ID)
		}
	}
	if len(missing) > 0 {
		return 0, &IncompleteError{FocusArea: focusArea, Missing: missing}
	}

	score, err := FocusAreaScore(visible, fa.Answers)
	if err != nil {
		return 0, err
	}
	fa.Completed = true
	fa.Score = &score
	s.persist()
	return score, nil
}

// CompleteAssessment finishes the whole assessment: every focus area must be
// completed first. It computes the aggregate scores, derives the risk
// report, stamps the state and appends it to the history log.
func (s *Session) CompleteAssessment() (*CompletionResult, error) {
	if s.state.Complete() {
		return nil, ErrAssessmentCompleted
	}

	areaScores := make(map[int]float64, len(s.state.Areas))
	for idx, fa := range s.state.Areas {
		if !fa.Completed || fa.Score == nil {
			return nil, &IncompleteError{FocusArea: idx, Missing: []string{"focus area not completed"}}
		}
		areaScores[idx] = *fa.Score
	}

	agg, err := Aggregate(s.catalog.Areas(), areaScores)
	if err != nil {
		return nil, err
	}

	answers := s.state.allAnswers()
	farmType := s.farmType()
	var atRiskPool []Question
	for _, fa := range s.catalog.Areas() {
		questions, err := s.catalog.Questions(fa.Index, s.state.Language)
		if err != nil {
			return nil, err
		}
		atRiskPool = append(atRiskPool, Resolve(questions, answers, farmType)...)
	}
	report, err := DeriveRisk(atRiskPool, answers, s.policy)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	s.state.OverallScore = &agg.Overall
	s.state.ExternalScore = &agg.External
	s.state.InternalScore = &agg.Internal
	s.state.Grade = agg.Grade
	s.state.Tier = agg.Tier
	s.state.Report = report
	s.state.CompletedAt = &now

	s.persist()
	if s.store != nil {
		if err := s.store.AppendHistory(s.state); err != nil {
			s.log.Warn("history append failed", zap.String("id", s.state.ID), zap.Error(err))
		}
	}

	return &CompletionResult{
		Overall:  agg.Overall,
		External: agg.External,
		Internal: agg.Internal,
		Grade:    agg.Grade,
		Tier:     agg.Tier,
		Report:   report,
	}, nil
}

// Reset discards all answers and scores and starts the assessment over.
func (s *Session) Reset() error {
	s.state = NewAssessmentState(s.state.ID, s.state.Language, s.catalog.Areas())
	s.persist()
	return nil
}

// persist writes the state through the store. Failure is non-fatal: the
// in-memory state remains the source of truth for the session.
func (s *Session) persist() {
	if s.store == nil {
		return
	}
	if err := s.store.SaveAssessment(s.state); err != nil {
		s.log.Warn("assessment save failed", zap.String("id", s.state.ID), zap.Error(err))
	}
}
