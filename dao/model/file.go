package model

import "time"

// ProjectFile is the current content of one path in a project.
// Exactly one live row per (project, path); removed by hard delete when a
// commit writes null content for the path, so no soft-delete column here.
type ProjectFile struct {
	ID        uint    `gorm:"primaryKey"`
	ProjectID string  `gorm:"type:varchar(64);uniqueIndex:idx_file_project_path"`
	FilePath  string  `gorm:"type:varchar(512);uniqueIndex:idx_file_project_path"`
	Content   string  `gorm:"type:text"`
	SizeBytes int64   `gorm:"not null"`
	Language  *string `gorm:"type:varchar(32)"`
	SHA256    string  `gorm:"type:varchar(64)"`
	UpdatedBy string  `gorm:"type:varchar(64)"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
