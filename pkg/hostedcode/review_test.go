package hostedcode

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nookplot/gateway/dao/model"
)

func commitForReview(t *testing.T, engine *Engine) string {
	t.Helper()
	result, err := engine.CommitFiles(context.Background(), &CommitRequest{
		ProjectID:     "p1",
		Files:         []CommitFile{{Path: "reviewed.txt", Content: strPtr("content\n")}},
		Message:       "under review",
		AuthorID:      "author-1",
		AuthorAddress: "addr-author",
	})
	require.NoError(t, err)
	return result.CommitID
}

func commitStatus(t *testing.T, engine *Engine, commitID string) model.FileCommit {
	t.Helper()
	var commit model.FileCommit
	require.NoError(t, engine.db.Where("id = ?", commitID).First(&commit).Error)
	return commit
}

func TestReviewApproval(t *testing.T) {
	ctx := context.Background()
	engine, _ := newTestEngine(t)
	commitID := commitForReview(t, engine)

	review, err := engine.SubmitReview(ctx, &ReviewRequest{
		ProjectID:       "p1",
		CommitID:        commitID,
		ReviewerID:      "reviewer-1",
		ReviewerAddress: "addr-r1",
		Verdict:         model.VerdictApprove,
	})
	require.NoError(t, err)
	assert.Equal(t, model.VerdictApprove, review.Verdict)

	commit := commitStatus(t, engine, commitID)
	assert.Equal(t, model.ReviewApproved, commit.ReviewStatus)
	assert.Equal(t, 1, commit.Approvals)
	assert.Equal(t, 0, commit.Rejections)
}

func TestReviewRejectionWinsEitherOrder(t *testing.T) {
	ctx := context.Background()

	orders := [][]model.Verdict{
		{model.VerdictApprove, model.VerdictRequestChanges},
		{model.VerdictRequestChanges, model.VerdictApprove},
	}
	for _, verdicts := range orders {
		engine, _ := newTestEngine(t)
		commitID := commitForReview(t, engine)

		for i, verdict := range verdicts {
			reviewer := []string{"reviewer-1", "reviewer-2"}[i]
			_, err := engine.SubmitReview(ctx, &ReviewRequest{
				ProjectID:       "p1",
				CommitID:        commitID,
				ReviewerID:      reviewer,
				ReviewerAddress: "addr-" + reviewer,
				Verdict:         verdict,
			})
			require.NoError(t, err)
		}

		commit := commitStatus(t, engine, commitID)
		assert.Equal(t, model.ReviewChangesRequested, commit.ReviewStatus)
		assert.Equal(t, 1, commit.Approvals)
		assert.Equal(t, 1, commit.Rejections)
	}
}

func TestReviewerReplacesOwnVerdict(t *testing.T) {
	ctx := context.Background()
	engine, _ := newTestEngine(t)
	commitID := commitForReview(t, engine)

	_, err := engine.SubmitReview(ctx, &ReviewRequest{
		ProjectID:       "p1",
		CommitID:        commitID,
		ReviewerID:      "reviewer-1",
		ReviewerAddress: "addr-r1",
		Verdict:         model.VerdictApprove,
	})
	require.NoError(t, err)

	_, err = engine.SubmitReview(ctx, &ReviewRequest{
		ProjectID:       "p1",
		CommitID:        commitID,
		ReviewerID:      "reviewer-1",
		ReviewerAddress: "addr-r1",
		Verdict:         model.VerdictRequestChanges,
		Body:            strPtr("second thoughts"),
	})
	require.NoError(t, err)

	// One row per reviewer, counted once under the latest verdict.
	reviews, err := engine.ListReviews(ctx, "p1", commitID)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, model.VerdictRequestChanges, reviews[0].Verdict)

	commit := commitStatus(t, engine, commitID)
	assert.Equal(t, model.ReviewChangesRequested, commit.ReviewStatus)
	assert.Equal(t, 0, commit.Approvals)
	assert.Equal(t, 1, commit.Rejections)
}

func TestReviewCommentIsNeutral(t *testing.T) {
	ctx := context.Background()
	engine, _ := newTestEngine(t)
	commitID := commitForReview(t, engine)

	_, err := engine.SubmitReview(ctx, &ReviewRequest{
		ProjectID:       "p1",
		CommitID:        commitID,
		ReviewerID:      "reviewer-1",
		ReviewerAddress: "addr-r1",
		Verdict:         model.VerdictComment,
		Body:            strPtr("looks plausible"),
	})
	require.NoError(t, err)

	commit := commitStatus(t, engine, commitID)
	assert.Equal(t, model.ReviewPending, commit.ReviewStatus)
	assert.Equal(t, 0, commit.Approvals)
	assert.Equal(t, 0, commit.Rejections)
}

func TestReviewRejectsSelfAndBadInput(t *testing.T) {
	ctx := context.Background()
	engine, _ := newTestEngine(t)
	commitID := commitForReview(t, engine)

	_, err := engine.SubmitReview(ctx, &ReviewRequest{
		ProjectID:       "p1",
		CommitID:        commitID,
		ReviewerID:      "author-1",
		ReviewerAddress: "addr-author",
		Verdict:         model.VerdictApprove,
	})
	assert.ErrorIs(t, err, ErrSelfReview)

	_, err = engine.SubmitReview(ctx, &ReviewRequest{
		ProjectID:       "p1",
		CommitID:        commitID,
		ReviewerID:      "reviewer-1",
		ReviewerAddress: "addr-r1",
		Verdict:         "ship_it",
	})
	assert.ErrorIs(t, err, ErrInvalidVerdict)

	_, err = engine.SubmitReview(ctx, &ReviewRequest{
		ProjectID:       "p1",
		CommitID:        "missing",
		ReviewerID:      "reviewer-1",
		ReviewerAddress: "addr-r1",
		Verdict:         model.VerdictApprove,
	})
	assert.ErrorIs(t, err, ErrCommitNotFound)
}

func TestReviewResolvesCommitsWithinOneProject(t *testing.T) {
	ctx := context.Background()
	engine, _ := newTestEngine(t)
	seedProject(t, engine.db, "p2", "owner-2")
	commitID := commitForReview(t, engine)

	// A valid commit id routed through another project must not resolve,
	// let alone mutate review state.
	_, err := engine.SubmitReview(ctx, &ReviewRequest{
		ProjectID:       "p2",
		CommitID:        commitID,
		ReviewerID:      "reviewer-1",
		ReviewerAddress: "addr-r1",
		Verdict:         model.VerdictApprove,
	})
	assert.ErrorIs(t, err, ErrCommitNotFound)

	_, err = engine.ListReviews(ctx, "p2", commitID)
	assert.ErrorIs(t, err, ErrCommitNotFound)

	commit := commitStatus(t, engine, commitID)
	assert.Equal(t, model.ReviewPending, commit.ReviewStatus)
	assert.Equal(t, 0, commit.Approvals)
	assert.Equal(t, 0, commit.Rejections)
}
