package dto

import (
	"time"

	"github.com/mihirnarula/consultigo-api/internal/models"
)

// ProblemCreateRequest describes the payload for publishing a problem.
type ProblemCreateRequest struct {
	Title         string `json:"title" validate:"required,min=3,max=255"`
	Description   string `json:"description" validate:"required,min=10"`
	Difficulty    string `json:"difficulty" validate:"required,oneof=easy medium hard expert"`
	Category      string `json:"category" validate:"required,min=2,max=64"`
	EstimatedTime int    `json:"estimated_time" validate:"omitempty,gte=0"`
}

// ProblemUpdateRequest modifies a problem; absent fields are untouched.
type ProblemUpdateRequest struct {
	Title         *string `json:"title" validate:"omitempty,min=3,max=255"`
	Description   *string `json:"description" validate:"omitempty,min=10"`
	Difficulty    *string `json:"difficulty" validate:"omitempty,oneof=easy medium hard expert"`
	Category      *string `json:"category" validate:"omitempty,min=2,max=64"`
	EstimatedTime *int    `json:"estimated_time" validate:"omitempty,gte=0"`
	IsActive      *bool   `json:"is_active"`
}

// ProblemFilter describes query string filters for listing problems.
type ProblemFilter struct {
	Category   *string `query:"category"`
	Difficulty *string `query:"difficulty" validate:"omitempty,oneof=easy medium hard expert"`
	Offset     int     `query:"offset" validate:"omitempty,gte=0"`
	Limit      int     `query:"limit" validate:"omitempty,gte=0,lte=200"`
}

// ProblemResponse is returned to API clients when viewing problems.
type ProblemResponse struct {
	ID            uint      `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Difficulty    string    `json:"difficulty"`
	Category      string    `json:"category"`
	EstimatedTime int       `json:"estimated_time"`
	IsActive      bool      `json:"is_active"`
	AuthorID      uint      `json:"author_id"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ExampleCreateRequest attaches a worked example to a problem.
type ExampleCreateRequest struct {
	ExampleText   string `json:"example_text" validate:"required,min=3"`
	ExampleAnswer string `json:"example_answer" validate:"required,min=3"`
}

// ExampleResponse serializes a problem example.
type ExampleResponse struct {
	ID            uint      `json:"id"`
	ProblemID     uint      `json:"problem_id"`
	ExampleText   string    `json:"example_text"`
	ExampleAnswer string    `json:"example_answer"`
	CreatedAt     time.Time `json:"created_at"`
}

// FrameworkCreateRequest attaches a solution framework to a problem.
type FrameworkCreateRequest struct {
	Title   string `json:"title" validate:"required,min=3,max=255"`
	Content string `json:"content" validate:"required,min=3"`
}

// FrameworkResponse serializes a solution framework.
type FrameworkResponse struct {
	ID        uint      `json:"id"`
	ProblemID uint      `json:"problem_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// NewProblemResponse converts a Problem model into a DTO.
func NewProblemResponse(model models.Problem) ProblemResponse {
	return ProblemResponse{
		ID:            model.ID,
		Title:         model.Title,
		Description:   model.Description,
		Difficulty:    model.Difficulty,
		Category:      model.Category,
		EstimatedTime: model.EstimatedTime,
		IsActive:      model.IsActive,
		AuthorID:      model.AuthorID,
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
	}
}

// NewProblemResponseSlice converts problem models into DTOs.
func NewProblemResponseSlice(models []models.Problem) []ProblemResponse {
	responses := make([]ProblemResponse, 0, len(models))
	for _, problem := range models {
		responses = append(responses, NewProblemResponse(problem))
	}

	return responses
}

// NewExampleResponse converts a ProblemExample model into a DTO.
func NewExampleResponse(model models.ProblemExample) ExampleResponse {
	return ExampleResponse{
		ID:            model.ID,
		ProblemID:     model.ProblemID,
		ExampleText:   model.ExampleText,
		ExampleAnswer: model.ExampleAnswer,
		CreatedAt:     model.CreatedAt,
	}
}

// NewExampleResponseSlice converts example models into DTOs.
func NewExampleResponseSlice(models []models.ProblemExample) []ExampleResponse {
	responses := make([]ExampleResponse, 0, len(models))
	for _, example := range models {
		responses = append(responses, NewExampleResponse(example))
	}

	return responses
}

// NewFrameworkResponse converts a Framework model into a DTO.
func NewFrameworkResponse(model models.Framework) FrameworkResponse {
	return FrameworkResponse{
		ID:        model.ID,
		ProblemID: model.ProblemID,
		Title:     model.Title,
		Content:   model.Content,
		CreatedAt: model.CreatedAt,
	}
}

// NewFrameworkResponseSlice converts framework models into DTOs.
func NewFrameworkResponseSlice(models []models.Framework) []FrameworkResponse {
	responses := make([]FrameworkResponse, 0, len(models))
	for _, framework := range models {
		responses = append(responses, NewFrameworkResponse(framework))
	}

	return responses
}
