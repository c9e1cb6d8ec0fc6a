package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/ta-apply-api/internal/dto"
	"github.com/noah-isme/ta-apply-api/internal/models"
	"github.com/noah-isme/ta-apply-api/internal/repository"
)

const csc108Professor = "Dr. Elena Vasquez"

func newTestReviewService(t *testing.T) (ReviewService, ApplicationService, repository.SessionRepository) {
	t.Helper()
	sessions := repository.NewMemorySessionRepository(zerolog.Nop())
	postings := repository.NewPostingRepository(repository.SeedPostings())
	validate := validator.New(validator.WithRequiredStructEnabled())
	applications := NewApplicationService(sessions, postings, validate, zerolog.Nop())
	review := NewReviewService(sessions, postings, zerolog.Nop())
	return review, applications, sessions
}

func TestSelectedPostingFallsBackToFirstSeed(t *testing.T) {
	review, _, _ := newTestReviewService(t)

	posting, err := review.SelectedPosting(context.Background(), testSession)
	require.NoError(t, err)
	require.Equal(t, repository.SeedPostings()[0].ID, posting.ID)
}

func TestSelectPostingPersistsSelection(t *testing.T) {
	review, _, _ := newTestReviewService(t)
	ctx := context.Background()

	_, err := review.SelectPosting(ctx, testSession, postingResumeOptional)
	require.NoError(t, err)

	posting, err := review.SelectedPosting(ctx, testSession)
	require.NoError(t, err)
	require.Equal(t, postingResumeOptional, posting.ID)
}

func TestSelectPostingUnknownID(t *testing.T) {
	review, _, _ := newTestReviewService(t)

	_, err := review.SelectPosting(context.Background(), testSession, "pst-unknown")
	require.ErrorIs(t, err, repository.ErrPostingNotFound)
}

func TestAdvanceStatusSetsNextStep(t *testing.T) {
	review, applications, _ := newTestReviewService(t)
	ctx := context.Background()

	created, err := applications.SubmitOrUpdate(ctx, testSession, dto.SubmitRequest{
		PostingID: postingResumeRequired,
		Resume:    pdfPayload("r1.pdf"),
	}, Decision{})
	require.NoError(t, err)

	advanced, err := review.AdvanceStatus(ctx, testSession, csc108Professor, created.ID, models.StatusInterview)
	require.NoError(t, err)
	require.Equal(t, models.StatusInterview, advanced.Status)
	require.Equal(t, models.NextStepFor(models.StatusInterview), advanced.NextStep)
}

func TestAdvanceStatusAllowsAnyDecisionOrder(t *testing.T) {
	review, applications, _ := newTestReviewService(t)
	ctx := context.Background()

	created, err := applications.SubmitOrUpdate(ctx, testSession, dto.SubmitRequest{
		PostingID: postingResumeRequired,
		Resume:    pdfPayload("r1.pdf"),
	}, Decision{})
	require.NoError(t, err)

	// The workflow is deliberately permissive: decisions may jump straight to
	// accepted or move backward.
	accepted, err := review.AdvanceStatus(ctx, testSession, csc108Professor, created.ID, models.StatusAccepted)
	require.NoError(t, err)
	require.Equal(t, models.StatusAccepted, accepted.Status)

	back, err := review.AdvanceStatus(ctx, testSession, csc108Professor, created.ID, models.StatusReviewed)
	require.NoError(t, err)
	require.Equal(t, models.StatusReviewed, back.Status)
}

func TestAdvanceStatusRejectsWrongProfessor(t *testing.T) {
	review, applications, _ := newTestReviewService(t)
	ctx := context.Background()

	created, err := applications.SubmitOrUpdate(ctx, testSession, dto.SubmitRequest{
		PostingID: postingResumeRequired,
		Resume:    pdfPayload("r1.pdf"),
	}, Decision{})
	require.NoError(t, err)

	_, err = review.AdvanceStatus(ctx, testSession, "Dr. Someone Else", created.ID, models.StatusReviewed)
	require.ErrorIs(t, err, ErrNotPostingOwner)
}

func TestAdvanceStatusRejectsInvalidTargets(t *testing.T) {
	review, _, _ := newTestReviewService(t)
	ctx := context.Background()

	for _, status := range []string{models.StatusSubmitted, models.StatusWithdrawn, "archived"} {
		_, err := review.AdvanceStatus(ctx, testSession, csc108Professor, "any", status)
		require.ErrorIs(t, err, ErrInvalidDecisionStatus)
	}
}

func TestQueueListsOnlySelectedPosting(t *testing.T) {
	review, applications, _ := newTestReviewService(t)
	ctx := context.Background()

	_, err := applications.SubmitOrUpdate(ctx, testSession, dto.SubmitRequest{
		PostingID: postingResumeRequired,
		Resume:    pdfPayload("r1.pdf"),
	}, Decision{})
	require.NoError(t, err)
	_, err = applications.SubmitOrUpdate(ctx, testSession, dto.SubmitRequest{
		PostingID: postingResumeOptional,
	}, Decision{})
	require.NoError(t, err)

	_, err = review.SelectPosting(ctx, testSession, postingResumeOptional)
	require.NoError(t, err)

	queue, err := review.Queue(ctx, testSession)
	require.NoError(t, err)
	require.Equal(t, postingResumeOptional, queue.PostingID)
	require.Len(t, queue.Applications, 1)
	require.Equal(t, postingResumeOptional, queue.Applications[0].PostingID)
}

func TestSetPostingClosedOwnership(t *testing.T) {
	review, _, _ := newTestReviewService(t)

	_, err := review.SetPostingClosed("Dr. Someone Else", postingResumeRequired, true)
	require.ErrorIs(t, err, ErrNotPostingOwner)

	closed, err := review.SetPostingClosed(csc108Professor, postingResumeRequired, true)
	require.NoError(t, err)
	require.True(t, closed.Closed)
}

// Full lifecycle: submit, interview, withdraw, resubmit.
func TestApplicationLifecycleScenario(t *testing.T) {
	review, applications, sessions := newTestReviewService(t)
	ctx := context.Background()

	first, err := applications.SubmitOrUpdate(ctx, testSession, dto.SubmitRequest{
		PostingID: postingResumeRequired,
		Resume:    pdfPayload("r1.pdf"),
	}, Decision{})
	require.NoError(t, err)
	require.Equal(t, models.StatusSubmitted, first.Status)

	interviewed, err := review.AdvanceStatus(ctx, testSession, csc108Professor, first.ID, models.StatusInterview)
	require.NoError(t, err)
	require.Equal(t, models.StatusInterview, interviewed.Status)
	require.Equal(t, models.NextStepFor(models.StatusInterview), interviewed.NextStep)

	withdrawn, err := applications.Withdraw(ctx, testSession, first.ID)
	require.NoError(t, err)
	require.Equal(t, models.StatusWithdrawn, withdrawn.Status)

	second, err := applications.SubmitOrUpdate(ctx, testSession, dto.SubmitRequest{
		PostingID: postingResumeRequired,
		Resume:    pdfPayload("r2.pdf"),
	}, Decision{})
	require.NoError(t, err)
	require.NotEqual(t, first.ID, second.ID)

	apps, err := sessions.Applications(ctx, testSession)
	require.NoError(t, err)
	require.Len(t, apps, 2)

	for _, app := range apps {
		if app.ID == first.ID {
			require.Equal(t, models.StatusWithdrawn, app.Status)
		}
	}
}
