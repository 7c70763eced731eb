package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCatalog struct {
	areas     []FocusArea
	questions map[int][]Question
}

func (c *fakeCatalog) Areas() []FocusArea { return c.areas }

func (c *fakeCatalog) Questions(focusArea int, language string) ([]Question, error) {
	qs, ok := c.questions[focusArea]
	if !ok {
		return nil, ErrUnknownFocusArea
	}
	return qs, nil
}

func (c *fakeCatalog) ClassifyFarmType(answers map[string]Answer) FarmType {
	if a, ok := answers["profile"]; ok && a.Matches("breeding") {
		return FarmTypeBreeding
	}
	return FarmTypeUnknown
}

type fakeStore struct {
	saved   *AssessmentState
	history []*AssessmentState
	loadErr error
	saveErr error
}

func (s *fakeStore) LoadAssessment(id string) (*AssessmentState, error) {
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	return s.saved, nil
}

func (s *fakeStore) SaveAssessment(state *AssessmentState) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saved = state
	return nil
}

func (s *fakeStore) AppendHistory(state *AssessmentState) error {
	s.history = append(s.history, state)
	return nil
}

func (s *fakeStore) DeleteHistoryEntry(id string) error { return nil }

func testCatalog() *fakeCatalog {
	return &fakeCatalog{
		areas: []FocusArea{
			{Index: 1, Name: "External", Scope: ScopeExternal, Weight: 0.5},
			{Index: 2, Name: "Internal", Scope: ScopeInternal, Weight: 0.5},
		},
		questions: map[int][]Question{
			1: {
				{ID: "a1", Type: SingleChoice, Options: []Option{
					{Value: "yes", Score: 100}, {Value: "no", Score: 0},
				},
					Skips: []SkipDirective{{Trigger: TriggerEquals, Values: []string{"no"}, Target: "a3"}},
				},
				{ID: "a2", Type: SingleChoice, Options: []Option{
					{Value: "yes", Score: 100}, {Value: "no", Score: 0},
				}},
				{ID: "a3", Type: SingleChoice, Options: []Option{
					{Value: "yes", Score: 100}, {Value: "no", Score: 0},
				}},
			},
			2: {
				{ID: "b1", Type: SingleChoice, Options: []Option{
					{Value: "yes", Score: 100}, {Value: "no", Score: 0},
				}},
			},
		},
	}
}

func TestSessionRecordAnswerAndResolve(t *testing.T) {
	sess := NewSession("s1", "en", testCatalog(), &fakeStore{})

	visible, err := sess.ApplicableQuestions(1)
	require.NoError(t, err)
	assert.Len(t, visible, 3)

	require.NoError(t, sess.RecordAnswer(1, "a1", ScalarAnswer("no")))

	visible, err = sess.ApplicableQuestions(1)
	require.NoError(t, err)
	assert.Equal(t, []string{"a1", "a3"}, idsOf(visible), "a2 is skipped once a1 is answered no")
}

func TestSessionRejectsNotApplicableAnswer(t *testing.T) {
	sess := NewSession("s1", "en", testCatalog(), &fakeStore{})

	require.NoError(t, sess.RecordAnswer(1, "a1", ScalarAnswer("no")))

	err := sess.RecordAnswer(1, "a2", ScalarAnswer("yes"))
	assert.ErrorIs(t, err, ErrNotApplicable)

	err = sess.RecordAnswer(1, "nonexistent", ScalarAnswer("yes"))
	assert.ErrorIs(t, err, ErrNotApplicable)

	err = sess.RecordAnswer(99, "a1", ScalarAnswer("yes"))
	assert.ErrorIs(t, err, ErrUnknownFocusArea)
}

func TestSessionCompleteFocusAreaRequiresAllAnswers(t *testing.T) {
	sess := NewSession("s1", "en", testCatalog(), &fakeStore{})

	require.NoError(t, sess.RecordAnswer(1, "a1", ScalarAnswer("yes")))

	_, err := sess.CompleteFocusArea(1)
	var incomplete *IncompleteError
	require.ErrorAs(t, err, &incomplete)
	assert.Equal(t, 1, incomplete.FocusArea)
	assert.ElementsMatch(t, []string{"a2", "a3"}, incomplete.Missing)

	// The failed completion must not freeze anything.
	assert.False(t, sess.State().Areas[1].Completed)
	require.NoError(t, sess.RecordAnswer(1, "a2", ScalarAnswer("yes")))
}

func TestSessionCompleteFocusAreaScoresSkippedSubset(t *testing.T) {
	sess := NewSession("s1", "en", testCatalog(), &fakeStore{})

	// a1=no skips a2, so only a1 and a3 need answers.
	require.NoError(t, sess.RecordAnswer(1, "a1", ScalarAnswer("no")))
	require.NoError(t, sess.RecordAnswer(1, "a3", ScalarAnswer("yes")))

	score, err := sess.CompleteFocusArea(1)
	require.NoError(t, err)
	assert.Equal(t, 50.0, score, "mean of 0 and 100 over the visible subset")

	assert.True(t, sess.State().Areas[1].Completed)

	_, err = sess.CompleteFocusArea(1)
	assert.ErrorIs(t, err, ErrFocusAreaCompleted)

	err = sess.RecordAnswer(1, "a1", ScalarAnswer("yes"))
	assert.ErrorIs(t, err, ErrFocusAreaCompleted, "answers are frozen after completion")
}

func TestSessionCompleteAssessment(t *testing.T) {
	store := &fakeStore{}
	sess := NewSession("s1", "en", testCatalog(), store)

	require.NoError(t, sess.RecordAnswer(1, "a1", ScalarAnswer("yes")))
	require.NoError(t, sess.RecordAnswer(1, "a2", ScalarAnswer("yes")))
	require.NoError(t, sess.RecordAnswer(1, "a3", ScalarAnswer("yes")))
	_, err := sess.CompleteFocusArea(1)
	require.NoError(t, err)

	// Premature completion fails while area 2 is open.
	_, err = sess.CompleteAssessment()
	var incomplete *IncompleteError
	require.ErrorAs(t, err, &incomplete)

	require.NoError(t, sess.RecordAnswer(2, "b1", ScalarAnswer("no")))
	_, err = sess.CompleteFocusArea(2)
	require.NoError(t, err)

	result, err := sess.CompleteAssessment()
	require.NoError(t, err)
	assert.Equal(t, 50.0, result.Overall)
	assert.Equal(t, 100.0, result.External)
	assert.Equal(t, 0.0, result.Internal)
	assert.Equal(t, "D", result.Grade)
	assert.Equal(t, TierHigh, result.Tier)
	require.NotNil(t, result.Report)

	assert.True(t, sess.State().Complete())
	require.Len(t, store.history, 1)

	_, err = sess.CompleteAssessment()
	assert.ErrorIs(t, err, ErrAssessmentCompleted)
}

func TestSessionReset(t *testing.T) {
	sess := NewSession("s1", "en", testCatalog(), &fakeStore{})

	require.NoError(t, sess.RecordAnswer(1, "a1", ScalarAnswer("yes")))
	require.NoError(t, sess.Reset())

	assert.Empty(t, sess.State().Areas[1].Answers)
	assert.False(t, sess.State().Complete())
}

func TestSessionResumesStoredState(t *testing.T) {
	cat := testCatalog()
	store := &fakeStore{}

	first := NewSession("s1", "en", cat, store)
	require.NoError(t, first.RecordAnswer(1, "a1", ScalarAnswer("yes")))

	second := NewSession("s1", "en", cat, store)
	a, ok := second.State().Areas[1].Answers["a1"]
	require.True(t, ok)
	assert.True(t, a.Matches("yes"))
}

func TestSessionDegradesOnLoadFailure(t *testing.T) {
	store := &fakeStore{loadErr: errors.New("connection refused")}
	sess := NewSession("s1", "en", testCatalog(), store)

	assert.NotNil(t, sess.State())
	assert.Empty(t, sess.State().Areas[1].Answers)
}

func TestSessionSaveFailureIsNonFatal(t *testing.T) {
	store := &fakeStore{saveErr: errors.New("disk full")}
	sess := NewSession("s1", "en", testCatalog(), store)

	require.NoError(t, sess.RecordAnswer(1, "a1", ScalarAnswer("yes")))
	a, ok := sess.State().Areas[1].Answers["a1"]
	require.True(t, ok)
	assert.True(t, a.Matches("yes"), "in-memory state stays authoritative")
}
