package hostedcode

import (
	"context"

	"gorm.io/gorm"

	"github.com/nookplot/gateway/dao/model"
)

const maxActivityLimit = 100

// Feed is the read model over the append-only activity log. All writes
// come from the commit engine, review workflow and export bridge.
type Feed struct {
	db *gorm.DB
}

func NewFeed(db *gorm.DB) *Feed {
	return &Feed{db: db}
}

func clampActivityLimit(limit int) int {
	if limit <= 0 {
		return 20
	}
	if limit > maxActivityLimit {
		return maxActivityLimit
	}
	return limit
}

// ProjectActivity returns a project's events, newest first.
func (f *Feed) ProjectActivity(ctx context.Context, projectID string, limit int) ([]model.ProjectActivity, error) {
	var events []model.ProjectActivity
	err := f.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Limit(clampActivityLimit(limit)).
		Find(&events).Error
	return events, err
}

// GlobalActivity returns events across all projects, newest first.
func (f *Feed) GlobalActivity(ctx context.Context, limit int) ([]model.ProjectActivity, error) {
	var events []model.ProjectActivity
	err := f.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(clampActivityLimit(limit)).
		Find(&events).Error
	return events, err
}
