package repository

import (
	"biocheck_backend/internal/model"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

// ListEnabled returns every enabled definition in canonical order. The
// position column is the authoritative ordering inside a focus area; skip
// directive ranges are defined against it.
func (r *QuestionRepository) ListEnabled() ([]model.QuestionDefinition, error) {
	var qs []model.QuestionDefinition
	err := r.DB.Where("enabled = ?", true).
		Order("focus_area asc, position asc, id asc").
		Find(&qs).Error
	return qs, err
}

func (r *QuestionRepository) ListByFocusArea(focusArea int, page, limit int) ([]model.QuestionDefinition, int64, error) {
	var qs []model.QuestionDefinition
	var total int64
	query := r.DB.Model(&model.QuestionDefinition{}).Where("focus_area = ?", focusArea)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Order("position asc, id asc").Offset(offset).Limit(limit).Find(&qs).Error
	return qs, total, err
}

func (r *QuestionRepository) FindByQID(qid string) (*model.QuestionDefinition, error) {
	var q model.QuestionDefinition
	err := r.DB.Where("q_id = ?", qid).First(&q).Error
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *QuestionRepository) Create(q *model.QuestionDefinition) error {
	return r.DB.Create(q).Error
}

func (r *QuestionRepository) Update(q *model.QuestionDefinition) error {
	return r.DB.Save(q).Error
}

// Delete removes the row for good. A soft delete would keep the unique q_id
// index occupied and block re-creating the question later.
func (r *QuestionRepository) Delete(qid string) error {
	return r.DB.Unscoped().Where("q_id = ?", qid).Delete(&model.QuestionDefinition{}).Error
}

func (r *QuestionRepository) ListTranslations() ([]model.QuestionTranslation, error) {
	var ts []model.QuestionTranslation
	err := r.DB.Find(&ts).Error
	return ts, err
}

// UpsertTranslation replaces the overlay for one (question, language) pair.
func (r *QuestionRepository) UpsertTranslation(t *model.QuestionTranslation) error {
	var existing model.QuestionTranslation
	err := r.DB.Where("q_id = ? AND language = ?", t.QID, t.Language).First(&existing).Error
	if err == gorm.ErrRecordNotFound {
		return r.DB.Create(t).Error
	}
	if err != nil {
		return err
	}
	t.ID = existing.ID
	t.CreatedAt = existing.CreatedAt
	return r.DB.Save(t).Error
}
