package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mihirnarula/consultigo-api/internal/dto"
	"github.com/mihirnarula/consultigo-api/internal/models"
	"github.com/mihirnarula/consultigo-api/internal/repository"
	"github.com/mihirnarula/consultigo-api/pkg/llm"
)

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

type fakeProblemRepo struct {
	problems map[uint]models.Problem
}

func newFakeProblemRepo(problems ...models.Problem) *fakeProblemRepo {
	repo := &fakeProblemRepo{problems: make(map[uint]models.Problem)}
	for _, problem := range problems {
		repo.problems[problem.ID] = problem
	}
	return repo
}

func (f *fakeProblemRepo) List(_ context.Context, filter repository.ProblemFilter) ([]models.Problem, error) {
	var out []models.Problem
	for _, problem := range f.problems {
		out = append(out, problem)
	}
	return out, nil
}

func (f *fakeProblemRepo) GetByID(_ context.Context, id uint) (models.Problem, error) {
	problem, ok := f.problems[id]
	if !ok {
		return models.Problem{}, gorm.ErrRecordNotFound
	}
	return problem, nil
}

func (f *fakeProblemRepo) Create(_ context.Context, problem *models.Problem) error {
	problem.ID = uint(len(f.problems) + 1)
	f.problems[problem.ID] = *problem
	return nil
}

func (f *fakeProblemRepo) Update(_ context.Context, problem *models.Problem) error {
	f.problems[problem.ID] = *problem
	return nil
}

func (f *fakeProblemRepo) Delete(_ context.Context, id uint) error {
	delete(f.problems, id)
	return nil
}

func (f *fakeProblemRepo) CreateExample(_ context.Context, example *models.ProblemExample) error {
	return nil
}

func (f *fakeProblemRepo) ListExamples(_ context.Context, problemID uint) ([]models.ProblemExample, error) {
	return nil, nil
}

func (f *fakeProblemRepo) CreateFramework(_ context.Context, framework *models.Framework) error {
	return nil
}

func (f *fakeProblemRepo) ListFrameworks(_ context.Context, problemID uint) ([]models.Framework, error) {
	return nil, nil
}

func (f *fakeProblemRepo) GetFramework(_ context.Context, id uint) (models.Framework, error) {
	return models.Framework{}, gorm.ErrRecordNotFound
}

type fakeSubmissionRepo struct {
	nextID      uint
	submissions map[uint]models.Submission
	createErr   error
}

func newFakeSubmissionRepo() *fakeSubmissionRepo {
	return &fakeSubmissionRepo{nextID: 1, submissions: make(map[uint]models.Submission)}
}

func (f *fakeSubmissionRepo) Create(_ context.Context, submission *models.Submission) error {
	if f.createErr != nil {
		return f.createErr
	}
	submission.ID = f.nextID
	f.nextID++
	f.submissions[submission.ID] = *submission
	return nil
}

func (f *fakeSubmissionRepo) Update(_ context.Context, submission *models.Submission) error {
	if _, ok := f.submissions[submission.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	f.submissions[submission.ID] = *submission
	return nil
}

func (f *fakeSubmissionRepo) GetByID(_ context.Context, id uint) (models.Submission, error) {
	submission, ok := f.submissions[id]
	if !ok {
		return models.Submission{}, gorm.ErrRecordNotFound
	}
	return submission, nil
}

func (f *fakeSubmissionRepo) ListByUser(_ context.Context, userID uint, offset, limit int) ([]models.Submission, error) {
	var out []models.Submission
	for _, submission := range f.submissions {
		if submission.UserID == userID {
			out = append(out, submission)
		}
	}
	return out, nil
}

func (f *fakeSubmissionRepo) ListByProblem(_ context.Context, problemID uint, offset, limit int) ([]models.Submission, error) {
	var out []models.Submission
	for _, submission := range f.submissions {
		if submission.ProblemID == problemID {
			out = append(out, submission)
		}
	}
	return out, nil
}

type fakeFeedbackRepo struct {
	nextID    uint
	feedbacks map[uint]models.Feedback
	createErr error
}

func newFakeFeedbackRepo() *fakeFeedbackRepo {
	return &fakeFeedbackRepo{nextID: 1, feedbacks: make(map[uint]models.Feedback)}
}

func (f *fakeFeedbackRepo) Create(_ context.Context, feedback *models.Feedback) error {
	if f.createErr != nil {
		return f.createErr
	}
	feedback.ID = f.nextID
	f.nextID++
	f.feedbacks[feedback.ID] = *feedback
	return nil
}

func (f *fakeFeedbackRepo) GetBySubmissionID(_ context.Context, submissionID uint) (models.Feedback, error) {
	for _, feedback := range f.feedbacks {
		if feedback.SubmissionID == submissionID {
			return feedback, nil
		}
	}
	return models.Feedback{}, gorm.ErrRecordNotFound
}

func (f *fakeFeedbackRepo) ListByUser(_ context.Context, userID uint, offset, limit int) ([]models.Feedback, error) {
	return nil, nil
}

type stubGenerator struct {
	text  string
	err   error
	model string
}

func (g stubGenerator) Generate(_ context.Context, _ string) (string, error) {
	if g.err != nil {
		return "", g.err
	}
	return g.text, nil
}

func (g stubGenerator) ModelVersion() string {
	if g.model == "" {
		return "gemini-pro"
	}
	return g.model
}

func caseStudyProblem() models.Problem {
	return models.Problem{
		ID:          1,
		Title:       "Market Entry Strategy",
		Description: "Case Study: a luxury fashion brand is considering entering the Asian market.",
		Difficulty:  models.DifficultyHard,
		Category:    "Case Study",
	}
}

func newGradingFixture(generator llm.Generator) (GradingService, *fakeSubmissionRepo, *fakeFeedbackRepo, *fakeFeedbackRepo) {
	problems := newFakeProblemRepo(caseStudyProblem())
	submissions := newFakeSubmissionRepo()
	feedbacks := newFakeFeedbackRepo()
	retry := newFakeFeedbackRepo()
	svc := NewGradingService(problems, submissions, feedbacks, retry, generator, testLogger())
	return svc, submissions, feedbacks, retry
}

func TestGradingSubmitEmptyAnswerCreatesNothing(t *testing.T) {
	svc, submissions, feedbacks, _ := newGradingFixture(stubGenerator{text: "fine"})

	_, err := svc.Submit(context.Background(), 1, 1, dto.SubmitAnswerRequest{AnswerText: "   \n\t "})
	require.ErrorIs(t, err, ErrEmptySolution)
	require.Empty(t, submissions.submissions)
	require.Empty(t, feedbacks.feedbacks)
}

func TestGradingSubmitUnknownProblem(t *testing.T) {
	svc, _, _, _ := newGradingFixture(stubGenerator{text: "fine"})

	_, err := svc.Submit(context.Background(), 1, 99, dto.SubmitAnswerRequest{AnswerText: "an answer"})
	require.ErrorIs(t, err, ErrProblemNotFound)
}

func TestGradingSubmitFallbackScoresTinyAnswer(t *testing.T) {
	svc, submissions, feedbacks, _ := newGradingFixture(stubGenerator{err: llm.ErrUnavailable})

	result, err := svc.Submit(context.Background(), 1, 1, dto.SubmitAnswerRequest{AnswerText: "Yes."})
	require.NoError(t, err)

	require.Equal(t, models.ModelVersionMock, result.Feedback.ModelVersion)
	require.InDelta(t, 1.5, result.Feedback.OverallScore, 1e-9)
	require.Equal(t, models.ProcessingStatusCompleted, result.Submission.ProcessingStatus)
	require.Len(t, submissions.submissions, 1)
	require.Len(t, feedbacks.feedbacks, 1)
}

func TestGradingSubmitFallbackCompletesOnUpstreamError(t *testing.T) {
	svc, submissions, _, _ := newGradingFixture(stubGenerator{err: fmt.Errorf("generation failed: %w", llm.ErrUnavailable)})

	answer := "Our market analysis segments the customer base by region and estimates revenue growth. " +
		"The business strategy targets premium customers with a differentiated product and service mix, " +
		"and we calculate the market size from adoption numbers across each segment."

	result, err := svc.Submit(context.Background(), 1, 1, dto.SubmitAnswerRequest{AnswerText: answer})
	require.NoError(t, err)

	require.Equal(t, models.ModelVersionMock, result.Feedback.ModelVersion)
	stored := submissions.submissions[result.Submission.ID]
	require.Equal(t, models.ProcessingStatusCompleted, stored.ProcessingStatus)
}

func TestGradingSubmitMissingAPIKeyFailsSubmission(t *testing.T) {
	svc, submissions, feedbacks, _ := newGradingFixture(stubGenerator{err: llm.ErrMissingAPIKey})

	_, err := svc.Submit(context.Background(), 1, 1, dto.SubmitAnswerRequest{AnswerText: "a serious answer"})
	require.ErrorIs(t, err, ErrGradingNotConfigured)

	require.Len(t, submissions.submissions, 1)
	for _, submission := range submissions.submissions {
		require.Equal(t, models.ProcessingStatusFailed, submission.ProcessingStatus)
	}
	require.Empty(t, feedbacks.feedbacks)
}

func TestGradingSubmitDiscardsOutOfRangeStructuredScore(t *testing.T) {
	svc, _, _, _ := newGradingFixture(stubGenerator{text: "Great work.\n\nstructure_score = 11\n"})

	result, err := svc.Submit(context.Background(), 1, 1, dto.SubmitAnswerRequest{AnswerText: "a serious answer"})
	require.NoError(t, err)

	require.InDelta(t, 4.0, result.Feedback.StructureScore, 1e-9)
	require.Equal(t, "gemini-pro", result.Feedback.ModelVersion)
}

func TestGradingSubmitHeuristicStructureLabel(t *testing.T) {
	svc, _, _, _ := newGradingFixture(stubGenerator{text: "Structure & Framework: 8/10\n\nSolid framing throughout."})

	result, err := svc.Submit(context.Background(), 1, 1, dto.SubmitAnswerRequest{AnswerText: "a serious answer"})
	require.NoError(t, err)

	require.InDelta(t, 8.0, result.Feedback.StructureScore, 1e-9)
}

func TestGradingSubmitMapsScoreColumns(t *testing.T) {
	text := "overall_score = 9\nstructure_score = 8\nquantitative_score = 7\ncreativity_score = 6\ncommunication_score = 5\n"
	svc, _, feedbacks, _ := newGradingFixture(stubGenerator{text: text})

	result, err := svc.Submit(context.Background(), 1, 1, dto.SubmitAnswerRequest{AnswerText: "a serious answer"})
	require.NoError(t, err)

	require.InDelta(t, 9.0, result.Feedback.OverallScore, 1e-9)
	require.InDelta(t, 8.0, result.Feedback.StructureScore, 1e-9)
	require.InDelta(t, 7.0, result.Feedback.ClarityScore, 1e-9)
	require.InDelta(t, 6.0, result.Feedback.CreativityScore, 1e-9)
	require.InDelta(t, 5.0, result.Feedback.ConfidenceScore, 1e-9)
	require.Len(t, feedbacks.feedbacks, 1)
}

func TestGradingSubmitSynthesizesHeaderForProse(t *testing.T) {
	svc, _, _, _ := newGradingFixture(stubGenerator{text: "A thoughtful but unscored narrative about the answer."})

	result, err := svc.Submit(context.Background(), 1, 1, dto.SubmitAnswerRequest{AnswerText: "a serious answer"})
	require.NoError(t, err)

	require.Contains(t, result.Feedback.FeedbackText, "Overall Score: 7.5/10")
	require.Contains(t, result.Feedback.FeedbackText, "A thoughtful but unscored narrative")
	require.InDelta(t, 7.5, result.Feedback.OverallScore, 1e-9)
}

func TestGradingSubmitNotIdempotent(t *testing.T) {
	svc, submissions, feedbacks, _ := newGradingFixture(stubGenerator{text: "overall_score = 8\n"})

	payload := dto.SubmitAnswerRequest{AnswerText: "the same serious answer"}

	first, err := svc.Submit(context.Background(), 1, 1, payload)
	require.NoError(t, err)
	second, err := svc.Submit(context.Background(), 1, 1, payload)
	require.NoError(t, err)

	require.NotEqual(t, first.Submission.ID, second.Submission.ID)
	require.Len(t, submissions.submissions, 2)
	require.Len(t, feedbacks.feedbacks, 2)
}

func TestGradingSubmitRetriesFeedbackPersistence(t *testing.T) {
	generator := stubGenerator{text: "overall_score = 8\n"}
	problems := newFakeProblemRepo(caseStudyProblem())
	submissions := newFakeSubmissionRepo()
	feedbacks := newFakeFeedbackRepo()
	feedbacks.createErr = errors.New("insert failed")
	retry := newFakeFeedbackRepo()
	svc := NewGradingService(problems, submissions, feedbacks, retry, generator, testLogger())

	result, err := svc.Submit(context.Background(), 1, 1, dto.SubmitAnswerRequest{AnswerText: "a serious answer"})
	require.NoError(t, err)

	require.Len(t, retry.feedbacks, 1)
	require.Equal(t, "gemini-pro", result.Feedback.ModelVersion)
	require.Equal(t, models.ProcessingStatusCompleted, result.Submission.ProcessingStatus)
}

func TestGradingSubmitPlaceholderWhenPersistenceFailsTwice(t *testing.T) {
	generator := stubGenerator{text: "overall_score = 8\n"}
	problems := newFakeProblemRepo(caseStudyProblem())
	submissions := newFakeSubmissionRepo()
	feedbacks := newFakeFeedbackRepo()
	feedbacks.createErr = errors.New("insert failed")
	retry := newFakeFeedbackRepo()
	retry.createErr = errors.New("insert failed again")
	svc := NewGradingService(problems, submissions, feedbacks, retry, generator, testLogger())

	result, err := svc.Submit(context.Background(), 1, 1, dto.SubmitAnswerRequest{AnswerText: "a serious answer"})
	require.NoError(t, err)

	require.Equal(t, models.ModelVersionRecovery, result.Feedback.ModelVersion)
	require.InDelta(t, 7.0, result.Feedback.OverallScore, 1e-9)
	require.InDelta(t, 7.0, result.Feedback.StructureScore, 1e-9)
	require.Equal(t, models.ProcessingStatusCompleted, result.Submission.ProcessingStatus)
	require.Empty(t, feedbacks.feedbacks)
	require.Empty(t, retry.feedbacks)
}
