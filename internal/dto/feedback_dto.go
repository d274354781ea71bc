package dto

import (
	"time"

	"github.com/mihirnarula/consultigo-api/internal/models"
)

// FeedbackCreateRequest records reviewer-authored feedback on a submission.
type FeedbackCreateRequest struct {
	OverallScore    float64 `json:"overall_score" validate:"required,gte=0,lte=10"`
	StructureScore  float64 `json:"structure_score" validate:"gte=0,lte=10"`
	ClarityScore    float64 `json:"clarity_score" validate:"gte=0,lte=10"`
	CreativityScore float64 `json:"creativity_score" validate:"gte=0,lte=10"`
	ConfidenceScore float64 `json:"confidence_score" validate:"gte=0,lte=10"`
	FeedbackText    string  `json:"feedback_text" validate:"required,min=3"`
}

// FeedbackResponse is returned to API clients when viewing grading results.
type FeedbackResponse struct {
	ID              uint      `json:"id"`
	SubmissionID    uint      `json:"submission_id"`
	OverallScore    float64   `json:"overall_score"`
	StructureScore  float64   `json:"structure_score"`
	ClarityScore    float64   `json:"clarity_score"`
	CreativityScore float64   `json:"creativity_score"`
	ConfidenceScore float64   `json:"confidence_score"`
	FeedbackText    string    `json:"feedback_text"`
	ModelVersion    string    `json:"model_version"`
	GeneratedAt     time.Time `json:"generated_at"`
}

// GradingResponse pairs the stored submission with its feedback after a
// grading run.
type GradingResponse struct {
	Submission SubmissionResponse `json:"submission"`
	Feedback   FeedbackResponse   `json:"feedback"`
}

// NewFeedbackResponse converts a Feedback model into a DTO.
func NewFeedbackResponse(model models.Feedback) FeedbackResponse {
	return FeedbackResponse{
		ID:              model.ID,
		SubmissionID:    model.SubmissionID,
		OverallScore:    model.OverallScore,
		StructureScore:  model.StructureScore,
		ClarityScore:    model.ClarityScore,
		CreativityScore: model.CreativityScore,
		ConfidenceScore: model.ConfidenceScore,
		FeedbackText:    model.FeedbackText,
		ModelVersion:    model.ModelVersion,
		GeneratedAt:     model.GeneratedAt,
	}
}
