package model

import "time"

type Project struct {
	ID          string  `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Name        string  `gorm:"type:varchar(128);index" json:"name"`
	Description *string `gorm:"type:varchar(512)" json:"description"`
	OwnerID     string  `gorm:"type:varchar(64);index" json:"ownerId"`
	OwnerAddr   string  `gorm:"type:varchar(64)" json:"ownerAddr"`
	// Linked external repository, required for export.
	RepoURL       *string `gorm:"type:varchar(256)" json:"repoUrl"`
	DefaultBranch *string `gorm:"type:varchar(64)" json:"defaultBranch"`
	// Optional address for best-effort review notification mail.
	NotifyEmail *string   `gorm:"type:varchar(128)" json:"notifyEmail"`
	Status      string    `gorm:"type:varchar(32);default:active" json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	Collaborators []ProjectCollaborator `json:"collaborators,omitempty"`
}

// ProjectCollaborator records a non-owner actor's role rank on a project.
// Ownership is on the Project row itself and never duplicated here.
type ProjectCollaborator struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	ProjectID    string      `gorm:"type:varchar(64);uniqueIndex:idx_collab_project_actor" json:"projectId"`
	ActorID      string      `gorm:"type:varchar(64);uniqueIndex:idx_collab_project_actor" json:"actorId"`
	ActorAddress string      `gorm:"type:varchar(64)" json:"actorAddress"`
	Role         AccessLevel `gorm:"type:smallint" json:"role"` // 0 viewer, 1 editor, 2 admin
	CreatedAt    time.Time   `json:"createdAt"`
}
