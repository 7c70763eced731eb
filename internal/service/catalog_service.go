package service

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"biocheck_backend/internal/catalog"
	"biocheck_backend/internal/config"
	"biocheck_backend/internal/model"
	"biocheck_backend/internal/repository"
	"biocheck_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	catalogDefsCacheKey  = "biocheck:catalog:definitions"
	catalogTransCacheKey = "biocheck:catalog:translations"
	catalogCacheTTL      = 10 * time.Minute
)

// CatalogService builds and caches the validated question catalog. The
// definition rows are cached in Redis; the assembled catalog is cached in
// memory and rebuilt wholesale after any admin mutation.
type CatalogService struct {
	QuestionRepo *repository.QuestionRepository
	Redis        *redis.Client
	Cfg          *config.Config

	mu      sync.RWMutex
	current *catalog.Catalog
}

func NewCatalogService(questionRepo *repository.QuestionRepository, rdb *redis.Client, cfg *config.Config) *CatalogService {
	return &CatalogService{
		QuestionRepo: questionRepo,
		Redis:        rdb,
		Cfg:          cfg,
	}
}

// Catalog returns the current catalog, building it on first use.
func (s *CatalogService) Catalog() (*catalog.Catalog, error) {
	s.mu.RLock()
	c := s.current
	s.mu.RUnlock()
	if c != nil {
		return c, nil
	}
	return s.Rebuild()
}

// Rebuild drops every cache layer and reassembles the catalog from the
// database. Called at startup and after each admin mutation so stale skip
// targets or condition references never reach the resolver.
func (s *CatalogService) Rebuild() (*catalog.Catalog, error) {
	s.invalidate()

	defs, err := s.loadDefinitions()
	if err != nil {
		return nil, err
	}
	trans, err := s.loadTranslations()
	if err != nil {
		return nil, err
	}

	byArea := make(map[int][]catalog.Definition)
	for i := range defs {
		def, err := defs[i].ToDefinition()
		if err != nil {
			return nil, err
		}
		byArea[defs[i].FocusArea] = append(byArea[defs[i].FocusArea], def)
	}

	overlay := make(map[string]map[string]catalog.Translation)
	for i := range trans {
		tr, err := trans[i].ToTranslation()
		if err != nil {
			return nil, err
		}
		if overlay[trans[i].Language] == nil {
			overlay[trans[i].Language] = make(map[string]catalog.Translation)
		}
		overlay[trans[i].Language][trans[i].QID] = tr
	}

	c, err := catalog.New(s.Cfg.Assessment.EngineAreas(), byArea, overlay, s.Cfg.Assessment.BaseLanguage)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.current = c
	s.mu.Unlock()
	return c, nil
}

func (s *CatalogService) loadDefinitions() ([]model.QuestionDefinition, error) {
	ctx := context.Background()
	if s.Redis != nil {
		if raw, err := s.Redis.Get(ctx, catalogDefsCacheKey).Bytes(); err == nil {
			var defs []model.QuestionDefinition
			if err := json.Unmarshal(raw, &defs); err == nil {
				return defs, nil
			}
		}
	}

	defs, err := s.QuestionRepo.ListEnabled()
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if raw, err := json.Marshal(defs); err == nil {
			if err := s.Redis.Set(ctx, catalogDefsCacheKey, raw, catalogCacheTTL).Err(); err != nil {
				logger.Log.Warn("Failed to cache catalog definitions", zap.Error(err))
			}
		}
	}
	return defs, nil
}

func (s *CatalogService) loadTranslations() ([]model.QuestionTranslation, error) {
	ctx := context.Background()
	if s.Redis != nil {
		if raw, err := s.Redis.Get(ctx, catalogTransCacheKey).Bytes(); err == nil {
			var trans []model.QuestionTranslation
			if err := json.Unmarshal(raw, &trans); err == nil {
				return trans, nil
			}
		}
	}

	trans, err := s.QuestionRepo.ListTranslations()
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if raw, err := json.Marshal(trans); err == nil {
			if err := s.Redis.Set(ctx, catalogTransCacheKey, raw, catalogCacheTTL).Err(); err != nil {
				logger.Log.Warn("Failed to cache catalog translations", zap.Error(err))
			}
		}
	}
	return trans, nil
}

func (s *CatalogService) invalidate() {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
	if s.Redis != nil {
		if err := s.Redis.Del(context.Background(), catalogDefsCacheKey, catalogTransCacheKey).Err(); err != nil {
			logger.Log.Warn("Failed to invalidate catalog cache", zap.Error(err))
		}
	}
}

// Admin mutations. Each one validates by rebuilding; a definition that breaks
// catalog validation is rolled back so the serving catalog never degrades.

func (s *CatalogService) ListQuestions(focusArea, page, limit int) ([]model.QuestionDefinition, int64, error) {
	return s.QuestionRepo.ListByFocusArea(focusArea, page, limit)
}

func (s *CatalogService) GetQuestion(qid string) (*model.QuestionDefinition, error) {
	return s.QuestionRepo.FindByQID(qid)
}

func (s *CatalogService) CreateQuestion(q *model.QuestionDefinition) error {
	if err := s.QuestionRepo.Create(q); err != nil {
		return err
	}
	if _, err := s.Rebuild(); err != nil {
		s.QuestionRepo.Delete(q.QID)
		s.Rebuild()
		return err
	}
	return nil
}

func (s *CatalogService) UpdateQuestion(q *model.QuestionDefinition) error {
	prev, err := s.QuestionRepo.FindByQID(q.QID)
	if err != nil {
		return err
	}
	q.ID = prev.ID
	q.CreatedAt = prev.CreatedAt
	if err := s.QuestionRepo.Update(q); err != nil {
		return err
	}
	if _, err := s.Rebuild(); err != nil {
		s.QuestionRepo.Update(prev)
		s.Rebuild()
		return err
	}
	return nil
}

func (s *CatalogService) DeleteQuestion(qid string) error {
	prev, err := s.QuestionRepo.FindByQID(qid)
	if err != nil {
		return err
	}
	if err := s.QuestionRepo.Delete(qid); err != nil {
		return err
	}
	if _, err := s.Rebuild(); err != nil {
		restored := *prev
		restored.ID = 0
		s.QuestionRepo.Create(&restored)
		s.Rebuild()
		return err
	}
	return nil
}

func (s *CatalogService) UpsertTranslation(t *model.QuestionTranslation) error {
	if _, err := s.QuestionRepo.FindByQID(t.QID); err != nil {
		return err
	}
	if err := s.QuestionRepo.UpsertTranslation(t); err != nil {
		return err
	}
	_, err := s.Rebuild()
	return err
}
