package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"

	"github.com/mihirnarula/consultigo-api/internal/dto"
	"github.com/mihirnarula/consultigo-api/internal/models"
)

func newSubmissionFixture() (SubmissionService, *fakeSubmissionRepo, *fakeFeedbackRepo) {
	problems := newFakeProblemRepo(caseStudyProblem())
	submissions := newFakeSubmissionRepo()
	feedbacks := newFakeFeedbackRepo()
	validate := validator.New(validator.WithRequiredStructEnabled())
	svc := NewSubmissionService(submissions, feedbacks, problems, validate, testLogger())
	return svc, submissions, feedbacks
}

func TestSubmissionCreateAndGet(t *testing.T) {
	svc, _, _ := newSubmissionFixture()

	created, err := svc.Create(context.Background(), 1, dto.SubmissionCreateRequest{
		ProblemID:  1,
		AnswerText: "my answer",
	})
	require.NoError(t, err)
	require.Equal(t, models.ProcessingStatusPending, created.ProcessingStatus)

	fetched, err := svc.Get(context.Background(), 1, created.ID)
	require.NoError(t, err)
	require.Equal(t, created.ID, fetched.ID)
}

func TestSubmissionCreateUnknownProblem(t *testing.T) {
	svc, _, _ := newSubmissionFixture()

	_, err := svc.Create(context.Background(), 1, dto.SubmissionCreateRequest{
		ProblemID:  99,
		AnswerText: "my answer",
	})
	require.ErrorIs(t, err, ErrProblemNotFound)
}

func TestSubmissionGetEnforcesOwnership(t *testing.T) {
	svc, _, _ := newSubmissionFixture()

	created, err := svc.Create(context.Background(), 1, dto.SubmissionCreateRequest{
		ProblemID:  1,
		AnswerText: "my answer",
	})
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), 2, created.ID)
	require.ErrorIs(t, err, ErrNotSubmissionOwner)
}

func TestSubmissionAttachFeedbackOnce(t *testing.T) {
	svc, _, feedbacks := newSubmissionFixture()

	created, err := svc.Create(context.Background(), 1, dto.SubmissionCreateRequest{
		ProblemID:  1,
		AnswerText: "my answer",
	})
	require.NoError(t, err)

	payload := dto.FeedbackCreateRequest{
		OverallScore: 8.0,
		FeedbackText: "Strong effort.",
	}

	first, err := svc.AttachFeedback(context.Background(), created.ID, payload)
	require.NoError(t, err)
	require.Equal(t, "manual", first.ModelVersion)
	require.Len(t, feedbacks.feedbacks, 1)

	_, err = svc.AttachFeedback(context.Background(), created.ID, payload)
	require.ErrorIs(t, err, ErrFeedbackExists)
}

func TestSubmissionGetFeedbackMissing(t *testing.T) {
	svc, _, _ := newSubmissionFixture()

	created, err := svc.Create(context.Background(), 1, dto.SubmissionCreateRequest{
		ProblemID:  1,
		AnswerText: "my answer",
	})
	require.NoError(t, err)

	_, err = svc.GetFeedback(context.Background(), 1, created.ID)
	require.ErrorIs(t, err, ErrFeedbackNotFound)
}

func TestSubmissionListMineFiltersByProblem(t *testing.T) {
	problems := newFakeProblemRepo(caseStudyProblem(), models.Problem{ID: 2, Title: "Other", Description: "d", Category: "Guesstimate"})
	submissions := newFakeSubmissionRepo()
	feedbacks := newFakeFeedbackRepo()
	validate := validator.New(validator.WithRequiredStructEnabled())
	svc := NewSubmissionService(submissions, feedbacks, problems, validate, testLogger())

	_, err := svc.Create(context.Background(), 1, dto.SubmissionCreateRequest{ProblemID: 1, AnswerText: "a"})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), 1, dto.SubmissionCreateRequest{ProblemID: 2, AnswerText: "b"})
	require.NoError(t, err)

	problemID := uint(2)
	listed, err := svc.ListMine(context.Background(), 1, dto.SubmissionFilter{ProblemID: &problemID})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	require.Equal(t, problemID, listed[0].ProblemID)
}
