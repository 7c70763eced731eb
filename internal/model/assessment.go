package model

import (
	"encoding/json"
	"time"
)

// AssessmentSnapshot persists the in-progress engine state for one user.
// Best-effort cache: the in-memory session state wins for the rest of the
// session if a write fails.
// swagger:model AssessmentSnapshot
type AssessmentSnapshot struct {
	BaseModel
	UserID    uint            `gorm:"uniqueIndex;type:bigint unsigned;not null" json:"userId"`
	SessionID string          `gorm:"size:36;index" json:"sessionId"`
	State     json.RawMessage `gorm:"type:json" json:"state"`
}

func (AssessmentSnapshot) TableName() string {
	return "assessment_snapshots"
}

// AssessmentRecord is one completed assessment in the history log.
// swagger:model AssessmentRecord
type AssessmentRecord struct {
	UUIDBase
	UserID        uint            `gorm:"index;type:bigint unsigned;not null" json:"userId"`
	User          *User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	OverallScore  float64         `json:"overallScore"`
	ExternalScore float64         `json:"externalScore"`
	InternalScore float64         `json:"internalScore"`
	Grade         string          `gorm:"size:4" json:"grade"`
	RiskTier      string          `gorm:"size:16" json:"riskTier"`
	Payload       json.RawMessage `gorm:"type:json" json:"payload"`
	ExportObject  string          `gorm:"size:255" json:"exportObject,omitempty"`
	CompletedAt   time.Time       `json:"completedAt"`
}

func (AssessmentRecord) TableName() string {
	return "assessment_records"
}
