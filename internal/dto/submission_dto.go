package dto

import (
	"time"

	"github.com/mihirnarula/consultigo-api/internal/models"
)

// SubmitAnswerRequest is the payload for grading an answer to a problem.
type SubmitAnswerRequest struct {
	AnswerText        string `json:"answer_text" form:"answer_text"`
	AudioRecordingURL string `json:"audio_recording_url" form:"audio_recording_url" validate:"omitempty,url"`
}

// SubmissionCreateRequest records an answer without triggering grading.
type SubmissionCreateRequest struct {
	ProblemID         uint   `json:"problem_id" validate:"required,gt=0"`
	AnswerText        string `json:"answer_text" validate:"required,min=1"`
	AudioRecordingURL string `json:"audio_recording_url" validate:"omitempty,url"`
}

// SubmissionUpdateRequest modifies a submission; absent fields are untouched.
type SubmissionUpdateRequest struct {
	AnswerText        *string `json:"answer_text" validate:"omitempty,min=1"`
	AudioRecordingURL *string `json:"audio_recording_url" validate:"omitempty,url"`
}

// SubmissionFilter describes query string filters for listing submissions.
type SubmissionFilter struct {
	ProblemID *uint `query:"problem_id"`
	Offset    int   `query:"offset" validate:"omitempty,gte=0"`
	Limit     int   `query:"limit" validate:"omitempty,gte=0,lte=200"`
}

// SubmissionResponse is returned to API clients when viewing submissions.
type SubmissionResponse struct {
	ID                uint      `json:"id"`
	UserID            uint      `json:"user_id"`
	ProblemID         uint      `json:"problem_id"`
	AnswerText        string    `json:"answer_text"`
	AudioRecordingURL string    `json:"audio_recording_url"`
	ProcessingStatus  string    `json:"processing_status"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// NewSubmissionResponse converts a Submission model into a DTO.
func NewSubmissionResponse(model models.Submission) SubmissionResponse {
	return SubmissionResponse{
		ID:                model.ID,
		UserID:            model.UserID,
		ProblemID:         model.ProblemID,
		AnswerText:        model.AnswerText,
		AudioRecordingURL: model.AudioRecordingURL,
		ProcessingStatus:  model.ProcessingStatus,
		CreatedAt:         model.CreatedAt,
		UpdatedAt:         model.UpdatedAt,
	}
}

// NewSubmissionResponseSlice converts submission models into DTOs.
func NewSubmissionResponseSlice(models []models.Submission) []SubmissionResponse {
	responses := make([]SubmissionResponse, 0, len(models))
	for _, submission := range models {
		responses = append(responses, NewSubmissionResponse(submission))
	}

	return responses
}
