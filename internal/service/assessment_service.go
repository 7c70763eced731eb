package service

import (
	"encoding/json"
	"strconv"

	"biocheck_backend/internal/config"
	"biocheck_backend/internal/engine"
	"biocheck_backend/internal/model"
	"biocheck_backend/internal/repository"
	"biocheck_backend/internal/util"
	"biocheck_backend/pkg/logger"
	"biocheck_backend/pkg/monitoring"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// snapshotStore adapts the assessment repository to the engine's persistence
// interface, scoped to one user. The engine never learns about user IDs.
type snapshotStore struct {
	repo   *repository.AssessmentRepository
	userID uint
}

func (st *snapshotStore) LoadAssessment(id string) (*engine.AssessmentState, error) {
	snap, err := st.repo.FindSnapshotByUser(st.userID)
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var state engine.AssessmentState
	if err := json.Unmarshal(snap.State, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

func (st *snapshotStore) SaveAssessment(state *engine.AssessmentState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return st.repo.SaveSnapshot(&model.AssessmentSnapshot{
		UserID:    st.userID,
		SessionID: state.ID,
		State:     raw,
	})
}

func (st *snapshotStore) AppendHistory(state *engine.AssessmentState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return err
	}
	rec := &model.AssessmentRecord{
		UserID:  st.userID,
		Payload: raw,
	}
	if state.OverallScore != nil {
		rec.OverallScore = *state.OverallScore
	}
	if state.ExternalScore != nil {
		rec.ExternalScore = *state.ExternalScore
	}
	if state.InternalScore != nil {
		rec.InternalScore = *state.InternalScore
	}
	rec.Grade = state.Grade
	rec.RiskTier = string(state.Tier)
	if state.CompletedAt != nil {
		rec.CompletedAt = *state.CompletedAt
	}
	return st.repo.CreateRecord(rec)
}

func (st *snapshotStore) DeleteHistoryEntry(id string) error {
	return st.repo.DeleteRecord(st.userID, id)
}

// FocusAreaOverview summarises one area for the progress view.
type FocusAreaOverview struct {
	Index     int      `json:"index"`
	Name      string   `json:"name"`
	Scope     string   `json:"scope"`
	Weight    float64  `json:"weight"`
	Completed bool     `json:"completed"`
	Score     *float64 `json:"score,omitempty"`
	Answered  int      `json:"answered"`
	Visible   int      `json:"visible"`
}

// AssessmentOverview is the response for the current-assessment endpoint.
type AssessmentOverview struct {
	SessionID     string               `json:"sessionId"`
	Language      string               `json:"language"`
	FarmType      engine.FarmType      `json:"farmType"`
	Areas         []FocusAreaOverview  `json:"areas"`
	Completed     bool                 `json:"completed"`
	OverallScore  *float64             `json:"overallScore,omitempty"`
	ExternalScore *float64             `json:"externalScore,omitempty"`
	InternalScore *float64             `json:"internalScore,omitempty"`
	Grade         string               `json:"grade,omitempty"`
	Tier          engine.RiskTier      `json:"tier,omitempty"`
	Report        *engine.RiskReport   `json:"report,omitempty"`
}

// AssessmentService drives assessment sessions on top of the engine. A
// session is rebuilt from the snapshot on every request; request handling is
// serialized per user by the single-snapshot-row design.
type AssessmentService struct {
	AssessRepo *repository.AssessmentRepository
	CatalogSvc *CatalogService
	Cfg        *config.Config
}

func NewAssessmentService(assessRepo *repository.AssessmentRepository, catalogSvc *CatalogService, cfg *config.Config) *AssessmentService {
	return &AssessmentService{
		AssessRepo: assessRepo,
		CatalogSvc: catalogSvc,
		Cfg:        cfg,
	}
}

func (s *AssessmentService) session(userID uint, language string) (*engine.Session, error) {
	cat, err := s.CatalogSvc.Catalog()
	if err != nil {
		logger.Log.Error("catalog unavailable")
		return nil, util.ErrCatalogUnavailable
	}
	store := &snapshotStore{repo: s.AssessRepo, userID: userID}
	sess := engine.NewSession(
		uuid.NewString(),
		language,
		cat,
		store,
		engine.WithDiseasePolicy(s.Cfg.Assessment.Policy()),
		engine.WithLogger(logger.Log),
	)
	return sess, nil
}

// Current returns the progress overview for the user's assessment, starting a
// fresh one if none is stored.
func (s *AssessmentService) Current(userID uint, language string) (*AssessmentOverview, error) {
	sess, err := s.session(userID, language)
	if err != nil {
		return nil, err
	}
	state := sess.State()

	cat, err := s.CatalogSvc.Catalog()
	if err != nil {
		return nil, util.ErrCatalogUnavailable
	}

	overview := &AssessmentOverview{
		SessionID:     state.ID,
		Language:      state.Language,
		FarmType:      cat.ClassifyFarmType(allStateAnswers(state)),
		Completed:     state.Complete(),
		OverallScore:  state.OverallScore,
		ExternalScore: state.ExternalScore,
		InternalScore: state.InternalScore,
		Grade:         state.Grade,
		Tier:          state.Tier,
		Report:        state.Report,
	}

	for _, fa := range cat.Areas() {
		area := FocusAreaOverview{
			Index:  fa.Index,
			Name:   fa.Name,
			Scope:  string(fa.Scope),
			Weight: fa.Weight,
		}
		if st, ok := state.Areas[fa.Index]; ok {
			area.Completed = st.Completed
			area.Score = st.Score
			area.Answered = len(st.Answers)
		}
		if visible, err := sess.ApplicableQuestions(fa.Index); err == nil {
			area.Visible = len(visible)
		}
		overview.Areas = append(overview.Areas, area)
	}
	return overview, nil
}

func allStateAnswers(state *engine.AssessmentState) map[string]engine.Answer {
	out := map[string]engine.Answer{}
	for _, fa := range state.Areas {
		for id, a := range fa.Answers {
			out[id] = a
		}
	}
	return out
}

// Questions returns the currently applicable questions of one focus area,
// with the user's recorded answers attached.
func (s *AssessmentService) Questions(userID uint, focusArea int, language string) ([]engine.Question, map[string]engine.Answer, error) {
	sess, err := s.session(userID, language)
	if err != nil {
		return nil, nil, err
	}
	visible, err := sess.ApplicableQuestions(focusArea)
	if err != nil {
		return nil, nil, err
	}

	answers := map[string]engine.Answer{}
	if st, ok := sess.State().Areas[focusArea]; ok {
		for _, q := range visible {
			if a, ok := st.Answers[q.ID]; ok {
				answers[q.ID] = a
			}
		}
	}
	return visible, answers, nil
}

func (s *AssessmentService) RecordAnswer(userID uint, focusArea int, questionID string, a engine.Answer, language string) error {
	sess, err := s.session(userID, language)
	if err != nil {
		return err
	}
	return sess.RecordAnswer(focusArea, questionID, a)
}

func (s *AssessmentService) CompleteFocusArea(userID uint, focusArea int, language string) (float64, error) {
	sess, err := s.session(userID, language)
	if err != nil {
		return 0, err
	}
	score, err := sess.CompleteFocusArea(focusArea)
	if err != nil {
		return 0, err
	}
	monitoring.FocusAreasCompleted.WithLabelValues(strconv.Itoa(focusArea)).Inc()
	return score, nil
}

func (s *AssessmentService) CompleteAssessment(userID uint, language string) (*engine.CompletionResult, error) {
	sess, err := s.session(userID, language)
	if err != nil {
		return nil, err
	}
	result, err := sess.CompleteAssessment()
	if err != nil {
		return nil, err
	}
	monitoring.AssessmentsCompleted.WithLabelValues(string(result.Tier)).Inc()
	return result, nil
}

func (s *AssessmentService) Reset(userID uint, language string) error {
	sess, err := s.session(userID, language)
	if err != nil {
		return err
	}
	return sess.Reset()
}

func (s *AssessmentService) History(userID uint, page, limit int) ([]model.AssessmentRecord, int64, error) {
	return s.AssessRepo.ListRecordsByUser(userID, page, limit)
}

func (s *AssessmentService) GetRecord(userID uint, id string) (*model.AssessmentRecord, error) {
	rec, err := s.AssessRepo.FindRecord(id)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	if rec.UserID != userID {
		return nil, util.ErrPermissionDenied
	}
	return rec, nil
}

func (s *AssessmentService) DeleteRecord(userID uint, id string) error {
	if _, err := s.GetRecord(userID, id); err != nil {
		return err
	}
	return s.AssessRepo.DeleteRecord(userID, id)
}
