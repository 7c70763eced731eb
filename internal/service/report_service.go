package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"biocheck_backend/internal/repository"
	"biocheck_backend/pkg/logger"

	"go.uber.org/zap"
)

// ReportExport is the document uploaded to the object store for a completed
// assessment. It carries everything an advisor needs without a database
// lookup.
type ReportExport struct {
	RecordID      string          `json:"recordId"`
	FarmName      string          `json:"farmName,omitempty"`
	UserName      string          `json:"userName,omitempty"`
	OverallScore  float64         `json:"overallScore"`
	ExternalScore float64         `json:"externalScore"`
	InternalScore float64         `json:"internalScore"`
	Grade         string          `json:"grade"`
	RiskTier      string          `json:"riskTier"`
	CompletedAt   time.Time       `json:"completedAt"`
	ExportedAt    time.Time       `json:"exportedAt"`
	Assessment    json.RawMessage `json:"assessment"`
}

// ReportService renders completed assessments into exportable report
// documents and stores them through the storage provider.
type ReportService struct {
	AssessRepo *repository.AssessmentRepository
	UserRepo   *repository.UserRepository
	AssessSvc  *AssessmentService
	Storage    *StorageService
}

func NewReportService(assessRepo *repository.AssessmentRepository, userRepo *repository.UserRepository, assessSvc *AssessmentService, storage *StorageService) *ReportService {
	return &ReportService{
		AssessRepo: assessRepo,
		UserRepo:   userRepo,
		AssessSvc:  assessSvc,
		Storage:    storage,
	}
}

// Export uploads the report document for one history record and returns its
// URL. Re-exporting overwrites the stored object, so the URL is stable.
func (s *ReportService) Export(ctx context.Context, userID uint, recordID string) (string, error) {
	rec, err := s.AssessSvc.GetRecord(userID, recordID)
	if err != nil {
		return "", err
	}

	export := ReportExport{
		RecordID:      rec.ID,
		OverallScore:  rec.OverallScore,
		ExternalScore: rec.ExternalScore,
		InternalScore: rec.InternalScore,
		Grade:         rec.Grade,
		RiskTier:      rec.RiskTier,
		CompletedAt:   rec.CompletedAt,
		ExportedAt:    time.Now(),
		Assessment:    rec.Payload,
	}
	if user, err := s.UserRepo.FindByID(userID); err == nil {
		export.FarmName = user.FarmName
		export.UserName = user.Name
	}

	raw, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return "", err
	}

	objectName := fmt.Sprintf("reports/%s.json", rec.ID)
	url, err := s.Storage.Upload(ctx, objectName, bytes.NewReader(raw), int64(len(raw)), "application/json")
	if err != nil {
		return "", err
	}

	if rec.ExportObject != objectName {
		rec.ExportObject = objectName
		if err := s.AssessRepo.UpdateRecord(rec); err != nil {
			logger.Log.Warn("Failed to persist export object name", zap.String("record", rec.ID), zap.Error(err))
		}
	}
	return url, nil
}

// DeleteWithExport removes a history record together with its exported
// report, if one was ever produced.
func (s *ReportService) DeleteWithExport(ctx context.Context, userID uint, recordID string) error {
	rec, err := s.AssessSvc.GetRecord(userID, recordID)
	if err != nil {
		return err
	}
	if rec.ExportObject != "" {
		if err := s.Storage.Delete(ctx, rec.ExportObject); err != nil {
			logger.Log.Warn("Failed to delete exported report", zap.String("object", rec.ExportObject), zap.Error(err))
		}
	}
	return s.AssessSvc.DeleteRecord(userID, recordID)
}
