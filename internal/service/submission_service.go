package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/mihirnarula/consultigo-api/internal/dto"
	"github.com/mihirnarula/consultigo-api/internal/models"
	"github.com/mihirnarula/consultigo-api/internal/repository"
)

// ErrSubmissionNotFound indicates the submission was not located.
var ErrSubmissionNotFound = errors.New("submission not found")

// ErrFeedbackNotFound indicates no feedback exists for the submission.
var ErrFeedbackNotFound = errors.New("feedback not found")

// ErrFeedbackExists indicates the submission already carries feedback.
var ErrFeedbackExists = errors.New("feedback already exists for submission")

// ErrNotSubmissionOwner indicates the caller does not own the submission.
var ErrNotSubmissionOwner = errors.New("submission belongs to another user")

// SubmissionService manages stored submissions and reviewer-authored
// feedback. Automated grading lives in GradingService.
type SubmissionService interface {
	Create(ctx context.Context, userID uint, payload dto.SubmissionCreateRequest) (dto.SubmissionResponse, error)
	Get(ctx context.Context, userID, id uint) (dto.SubmissionResponse, error)
	ListMine(ctx context.Context, userID uint, filter dto.SubmissionFilter) ([]dto.SubmissionResponse, error)
	Update(ctx context.Context, userID, id uint, payload dto.SubmissionUpdateRequest) (dto.SubmissionResponse, error)
	AttachFeedback(ctx context.Context, id uint, payload dto.FeedbackCreateRequest) (dto.FeedbackResponse, error)
	GetFeedback(ctx context.Context, userID, id uint) (dto.FeedbackResponse, error)
}

type submissionService struct {
	submissions repository.SubmissionRepository
	feedbacks   repository.FeedbackRepository
	problems    repository.ProblemRepository
	validator   *validator.Validate
	logger      zerolog.Logger
	now         func() time.Time
}

// NewSubmissionService constructs the submission service.
func NewSubmissionService(submissions repository.SubmissionRepository, feedbacks repository.FeedbackRepository, problems repository.ProblemRepository, validator *validator.Validate, logger zerolog.Logger) SubmissionService {
	return &submissionService{
		submissions: submissions,
		feedbacks:   feedbacks,
		problems:    problems,
		validator:   validator,
		logger:      logger.With().Str("component", "submission_service").Logger(),
		now:         time.Now,
	}
}

func (s *submissionService) Create(ctx context.Context, userID uint, payload dto.SubmissionCreateRequest) (dto.SubmissionResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.SubmissionResponse{}, err
	}

	if _, err := s.problems.GetByID(ctx, payload.ProblemID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SubmissionResponse{}, ErrProblemNotFound
		}
		return dto.SubmissionResponse{}, err
	}

	submission := models.Submission{
		UserID:            userID,
		ProblemID:         payload.ProblemID,
		AnswerText:        payload.AnswerText,
		AudioRecordingURL: payload.AudioRecordingURL,
		ProcessingStatus:  models.ProcessingStatusPending,
	}

	if err := s.submissions.Create(ctx, &submission); err != nil {
		return dto.SubmissionResponse{}, err
	}

	return dto.NewSubmissionResponse(submission), nil
}

func (s *submissionService) Get(ctx context.Context, userID, id uint) (dto.SubmissionResponse, error) {
	submission, err := s.ownedSubmission(ctx, userID, id)
	if err != nil {
		return dto.SubmissionResponse{}, err
	}

	return dto.NewSubmissionResponse(submission), nil
}

func (s *submissionService) ListMine(ctx context.Context, userID uint, filter dto.SubmissionFilter) ([]dto.SubmissionResponse, error) {
	if err := s.validator.Struct(filter); err != nil {
		return nil, err
	}

	submissions, err := s.submissions.ListByUser(ctx, userID, filter.Offset, filter.Limit)
	if err != nil {
		return nil, err
	}

	if filter.ProblemID != nil {
		filtered := submissions[:0]
		for _, submission := range submissions {
			if submission.ProblemID == *filter.ProblemID {
				filtered = append(filtered, submission)
			}
		}
		submissions = filtered
	}

	return dto.NewSubmissionResponseSlice(submissions), nil
}

func (s *submissionService) Update(ctx context.Context, userID, id uint, payload dto.SubmissionUpdateRequest) (dto.SubmissionResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.SubmissionResponse{}, err
	}

	submission, err := s.ownedSubmission(ctx, userID, id)
	if err != nil {
		return dto.SubmissionResponse{}, err
	}

	if payload.AnswerText != nil {
		submission.AnswerText = *payload.AnswerText
	}
	if payload.AudioRecordingURL != nil {
		submission.AudioRecordingURL = *payload.AudioRecordingURL
	}

	if err := s.submissions.Update(ctx, &submission); err != nil {
		return dto.SubmissionResponse{}, err
	}

	return dto.NewSubmissionResponse(submission), nil
}

func (s *submissionService) AttachFeedback(ctx context.Context, id uint, payload dto.FeedbackCreateRequest) (dto.FeedbackResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.FeedbackResponse{}, err
	}

	submission, err := s.submissions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.FeedbackResponse{}, ErrSubmissionNotFound
		}
		return dto.FeedbackResponse{}, err
	}

	if _, err := s.feedbacks.GetBySubmissionID(ctx, submission.ID); err == nil {
		return dto.FeedbackResponse{}, ErrFeedbackExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.FeedbackResponse{}, err
	}

	feedback := models.Feedback{
		SubmissionID:    submission.ID,
		OverallScore:    payload.OverallScore,
		StructureScore:  payload.StructureScore,
		ClarityScore:    payload.ClarityScore,
		CreativityScore: payload.CreativityScore,
		ConfidenceScore: payload.ConfidenceScore,
		FeedbackText:    payload.FeedbackText,
		ModelVersion:    "manual",
		GeneratedAt:     s.now(),
	}

	if err := s.feedbacks.Create(ctx, &feedback); err != nil {
		return dto.FeedbackResponse{}, err
	}

	s.logger.Info().Uint("submission_id", submission.ID).Msg("manual feedback recorded")

	return dto.NewFeedbackResponse(feedback), nil
}

func (s *submissionService) GetFeedback(ctx context.Context, userID, id uint) (dto.FeedbackResponse, error) {
	submission, err := s.ownedSubmission(ctx, userID, id)
	if err != nil {
		return dto.FeedbackResponse{}, err
	}

	feedback, err := s.feedbacks.GetBySubmissionID(ctx, submission.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.FeedbackResponse{}, ErrFeedbackNotFound
		}
		return dto.FeedbackResponse{}, err
	}

	return dto.NewFeedbackResponse(feedback), nil
}

func (s *submissionService) ownedSubmission(ctx context.Context, userID, id uint) (models.Submission, error) {
	submission, err := s.submissions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Submission{}, ErrSubmissionNotFound
		}
		return models.Submission{}, err
	}

	if submission.UserID != userID {
		return models.Submission{}, ErrNotSubmissionOwner
	}

	return submission, nil
}
