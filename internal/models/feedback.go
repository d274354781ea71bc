package models

import (
	"time"

	"gorm.io/datatypes"
)

// Model-version tags reserved by the grading flow.
const (
	// ModelVersionMock marks feedback produced by the local fallback scorer.
	ModelVersionMock = "mock"
	// ModelVersionRecovery marks placeholder feedback returned when both
	// persistence attempts failed; rows carrying it were never stored.
	ModelVersionRecovery = "error-recovery"
)

// Feedback is the one-per-submission grading result. The clarity and
// confidence columns hold the quantitative and communication scores; the
// column names predate the current rubric wording and are kept for
// compatibility with existing data.
type Feedback struct {
	ID              uint              `gorm:"primaryKey" json:"id"`
	SubmissionID    uint              `gorm:"uniqueIndex;not null" json:"submission_id"`
	OverallScore    float64           `gorm:"not null" json:"overall_score"`
	StructureScore  float64           `json:"structure_score"`
	ClarityScore    float64           `json:"clarity_score"`
	CreativityScore float64           `json:"creativity_score"`
	ConfidenceScore float64           `json:"confidence_score"`
	FeedbackText    string            `gorm:"type:text;not null" json:"feedback_text"`
	ModelVersion    string            `gorm:"size:64" json:"model_version"`
	Raw             datatypes.JSONMap `json:"raw,omitempty"`
	GeneratedAt     time.Time         `json:"generated_at"`
	Submission      Submission        `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}
