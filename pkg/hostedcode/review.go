package hostedcode

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"k8s.io/klog/v2"

	"github.com/nookplot/gateway/dao/model"
)

type ReviewRequest struct {
	ProjectID       string
	CommitID        string
	ReviewerID      string
	ReviewerAddress string
	Verdict         model.Verdict
	Body            *string
}

// SubmitReview upserts the reviewer's current verdict and recomputes the
// commit's review state by full recount. The upsert, recount and commit
// update run in one transaction so two near-simultaneous reviewers cannot
// write counts derived from stale reads. Status is always a pure function
// of the stored review set; rejections take precedence.
func (e *Engine) SubmitReview(ctx context.Context, req *ReviewRequest) (*model.CommitReview, error) {
	switch req.Verdict {
	case model.VerdictApprove, model.VerdictRequestChanges, model.VerdictComment:
	default:
		return nil, ErrInvalidVerdict
	}

	// Scoped by project so a commit id can never be reviewed through a
	// different project's path.
	var commit model.FileCommit
	err := e.db.WithContext(ctx).
		Where("id = ? AND project_id = ?", req.CommitID, req.ProjectID).
		First(&commit).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommitNotFound
		}
		return nil, err
	}
	if commit.AuthorID == req.ReviewerID {
		return nil, ErrSelfReview
	}

	var review model.CommitReview
	err = e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()

		// A reviewer's later call replaces their earlier verdict.
		findErr := tx.Where("commit_id = ? AND reviewer_id = ?", req.CommitID, req.ReviewerID).
			First(&review).Error
		switch {
		case findErr == nil:
			review.Verdict = req.Verdict
			review.Body = req.Body
			review.UpdatedAt = now
			if err := tx.Save(&review).Error; err != nil {
				return err
			}
		case errors.Is(findErr, gorm.ErrRecordNotFound):
			review = model.CommitReview{
				ID:              uuid.NewString(),
				CommitID:        req.CommitID,
				ReviewerID:      req.ReviewerID,
				ReviewerAddress: req.ReviewerAddress,
				Verdict:         req.Verdict,
				Body:            req.Body,
				CreatedAt:       now,
				UpdatedAt:       now,
			}
			if err := tx.Create(&review).Error; err != nil {
				return err
			}
		default:
			return findErr
		}

		// Full recount over all reviews; comment verdicts count in
		// neither tally.
		var approvals, rejections int64
		if err := tx.Model(&model.CommitReview{}).
			Where("commit_id = ? AND verdict = ?", req.CommitID, model.VerdictApprove).
			Count(&approvals).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.CommitReview{}).
			Where("commit_id = ? AND verdict = ?", req.CommitID, model.VerdictRequestChanges).
			Count(&rejections).Error; err != nil {
			return err
		}

		status := model.ReviewPending
		switch {
		case rejections > 0:
			status = model.ReviewChangesRequested
		case approvals >= ApprovalThreshold:
			status = model.ReviewApproved
		}

		if err := tx.Model(&model.FileCommit{}).Where("id = ?", req.CommitID).
			Updates(map[string]any{
				"approvals":     approvals,
				"rejections":    rejections,
				"review_status": status,
			}).Error; err != nil {
			return err
		}

		activity := model.ProjectActivity{
			ID:           uuid.NewString(),
			ProjectID:    commit.ProjectID,
			EventType:    model.EventCommitReviewed,
			ActorID:      req.ReviewerID,
			ActorAddress: req.ReviewerAddress,
			Metadata: datatypes.JSONMap{
				"commit_id":     req.CommitID,
				"verdict":       string(req.Verdict),
				"review_status": string(status),
			},
			CreatedAt: now,
		}
		return tx.Create(&activity).Error
	})
	if err != nil {
		return nil, err
	}

	if e.notifier != nil {
		go e.notifyReview(commit.ProjectID, req.CommitID, req.Verdict)
	}

	return &review, nil
}

// ListReviews returns all reviews for a commit ordered by submission time.
// The commit must belong to the given project.
func (e *Engine) ListReviews(ctx context.Context, projectID, commitID string) ([]model.CommitReview, error) {
	var count int64
	err := e.db.WithContext(ctx).Model(&model.FileCommit{}).
		Where("id = ? AND project_id = ?", commitID, projectID).
		Count(&count).Error
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrCommitNotFound
	}

	var reviews []model.CommitReview
	err = e.db.WithContext(ctx).
		Where("commit_id = ?", commitID).
		Order("created_at").
		Find(&reviews).Error
	return reviews, err
}

// notifyReview is best-effort: failures are logged and dropped.
func (e *Engine) notifyReview(projectID, commitID string, verdict model.Verdict) {
	var project model.Project
	err := e.db.Where("id = ?", projectID).First(&project).Error
	if err != nil || project.NotifyEmail == nil {
		return
	}
	if err := e.notifier.ReviewSubmitted(*project.NotifyEmail, project.Name, commitID, string(verdict)); err != nil {
		klog.Errorf("review notification for commit %s failed: %v", commitID, err)
	}
}
