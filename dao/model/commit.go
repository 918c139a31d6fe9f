package model

import (
	"time"

	"gorm.io/datatypes"
)

// FileCommit is the immutable record of one atomic batch of file changes.
// Only the review sub-state (ReviewStatus, Approvals, Rejections) is ever
// updated after creation, and only by the review workflow.
type FileCommit struct {
	ID            string                      `gorm:"primaryKey;type:varchar(64)" json:"id"`
	ProjectID     string                      `gorm:"type:varchar(64);index" json:"projectId"`
	AuthorID      string                      `gorm:"type:varchar(64);index" json:"authorId"`
	AuthorAddress string                      `gorm:"type:varchar(64)" json:"authorAddress"`
	Message       string                      `gorm:"type:text" json:"message"`
	FilesChanged  int                         `gorm:"not null" json:"filesChanged"`
	LinesAdded    int                         `gorm:"not null" json:"linesAdded"`
	LinesRemoved  int                         `gorm:"not null" json:"linesRemoved"`
	Languages     datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"languages"`
	ReviewStatus  ReviewStatus                `gorm:"type:varchar(32);default:pending_review" json:"reviewStatus"`
	Approvals     int                         `gorm:"not null;default:0" json:"approvals"`
	Rejections    int                         `gorm:"not null;default:0" json:"rejections"`
	Source        string                      `gorm:"type:varchar(32);default:gateway" json:"source"`
	CreatedAt     time.Time                   `gorm:"index" json:"createdAt"`
}

// FileCommitChange is one file touched by a commit. Immutable once written;
// prior content is preserved even after the live file row is deleted.
type FileCommitChange struct {
	ID           string     `gorm:"primaryKey;type:varchar(64)" json:"id"`
	CommitID     string     `gorm:"type:varchar(64);index" json:"commitId"`
	FilePath     string     `gorm:"type:varchar(512)" json:"filePath"`
	ChangeType   ChangeType `gorm:"type:varchar(16)" json:"changeType"`
	OldContent   *string    `gorm:"type:text" json:"oldContent"`
	NewContent   *string    `gorm:"type:text" json:"newContent"`
	LinesAdded   int        `gorm:"not null" json:"linesAdded"`
	LinesRemoved int        `gorm:"not null" json:"linesRemoved"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// CommitReview is a reviewer's current verdict on a commit. Unique on
// (commit, reviewer): a later submission replaces the earlier one.
type CommitReview struct {
	ID              string    `gorm:"primaryKey;type:varchar(64)" json:"id"`
	CommitID        string    `gorm:"type:varchar(64);uniqueIndex:idx_review_commit_reviewer" json:"commitId"`
	ReviewerID      string    `gorm:"type:varchar(64);uniqueIndex:idx_review_commit_reviewer" json:"reviewerId"`
	ReviewerAddress string    `gorm:"type:varchar(64)" json:"reviewerAddress"`
	Verdict         Verdict   `gorm:"type:varchar(32)" json:"verdict"`
	Body            *string   `gorm:"type:text" json:"body"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// CommitLog is the contribution-log row consumed by the downstream scorer.
type CommitLog struct {
	ID           uint                        `gorm:"primaryKey" json:"id"`
	AgentID      string                      `gorm:"type:varchar(64);index" json:"agentId"`
	ProjectID    string                      `gorm:"type:varchar(64);index" json:"projectId"`
	FilesChanged int                         `gorm:"not null" json:"filesChanged"`
	LinesAdded   int                         `gorm:"not null" json:"linesAdded"`
	LinesRemoved int                         `gorm:"not null" json:"linesRemoved"`
	Languages    datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"languages"`
	Success      bool                        `gorm:"not null" json:"success"`
	CreatedAt    time.Time                   `json:"createdAt"`
}
