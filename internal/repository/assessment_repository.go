package repository

import (
	"biocheck_backend/internal/model"

	"gorm.io/gorm"
)

type AssessmentRepository struct {
	DB *gorm.DB
}

func NewAssessmentRepository(db *gorm.DB) *AssessmentRepository {
	return &AssessmentRepository{DB: db}
}

func (r *AssessmentRepository) FindSnapshotByUser(userID uint) (*model.AssessmentSnapshot, error) {
	var s model.AssessmentSnapshot
	err := r.DB.Where("user_id = ?", userID).First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// SaveSnapshot upserts the single in-progress state row per user.
func (r *AssessmentRepository) SaveSnapshot(s *model.AssessmentSnapshot) error {
	var existing model.AssessmentSnapshot
	err := r.DB.Where("user_id = ?", s.UserID).First(&existing).Error
	if err == gorm.ErrRecordNotFound {
		return r.DB.Create(s).Error
	}
	if err != nil {
		return err
	}
	s.ID = existing.ID
	s.CreatedAt = existing.CreatedAt
	return r.DB.Save(s).Error
}

func (r *AssessmentRepository) DeleteSnapshot(userID uint) error {
	return r.DB.Where("user_id = ?", userID).Delete(&model.AssessmentSnapshot{}).Error
}

func (r *AssessmentRepository) CreateRecord(rec *model.AssessmentRecord) error {
	return r.DB.Create(rec).Error
}

func (r *AssessmentRepository) UpdateRecord(rec *model.AssessmentRecord) error {
	return r.DB.Save(rec).Error
}

func (r *AssessmentRepository) FindRecord(id string) (*model.AssessmentRecord, error) {
	var rec model.AssessmentRecord
	err := r.DB.Where("id = ?", id).First(&rec).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *AssessmentRepository) ListRecordsByUser(userID uint, page, limit int) ([]model.AssessmentRecord, int64, error) {
	var recs []model.AssessmentRecord
	var total int64
	query := r.DB.Model(&model.AssessmentRecord{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Order("completed_at desc").Offset(offset).Limit(limit).Find(&recs).Error
	return recs, total, err
}

func (r *AssessmentRepository) DeleteRecord(userID uint, id string) error {
	return r.DB.Where("id = ? AND user_id = ?", id, userID).Delete(&model.AssessmentRecord{}).Error
}
