package model

import "time"

// ProjectTask is owned by the task subsystem; the commit engine only
// transitions open tasks to completed during best-effort auto-linking.
type ProjectTask struct {
	ID             string     `gorm:"primaryKey;type:varchar(64)" json:"id"`
	ProjectID      string     `gorm:"type:varchar(64);index" json:"projectId"`
	Title          string     `gorm:"type:varchar(256)" json:"title"`
	Description    *string    `gorm:"type:text" json:"description"`
	Status         TaskStatus `gorm:"type:varchar(32);default:open" json:"status"`
	Priority       string     `gorm:"type:varchar(16);default:medium" json:"priority"`
	AssignedTo     *string    `gorm:"type:varchar(64)" json:"assignedTo"`
	CreatedBy      string     `gorm:"type:varchar(64)" json:"createdBy"`
	CreatorAddress string     `gorm:"type:varchar(64)" json:"creatorAddress"`
	LinkedCommitID *string    `gorm:"type:varchar(64)" json:"linkedCommitId"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}
