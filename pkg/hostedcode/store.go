package hostedcode

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/nookplot/gateway/dao/model"
)

// Store is the read view over a project's current file set.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// FileEntry is a lightweight listing row; no content body.
type FileEntry struct {
	Path      string    `json:"path"`
	Size      int64     `json:"size"`
	Language  *string   `json:"language"`
	SHA256    string    `json:"sha256"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FileContent is a full read of one path.
type FileContent struct {
	Path      string    `json:"path"`
	Content   string    `json:"content"`
	Size      int64     `json:"size"`
	Language  *string   `json:"language"`
	SHA256    string    `json:"sha256"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ListFiles returns all live files for a project ordered by path.
func (s *Store) ListFiles(ctx context.Context, projectID string) ([]FileEntry, error) {
	var rows []model.ProjectFile
	err := s.db.WithContext(ctx).
		Select("file_path", "size_bytes", "language", "sha256", "updated_at").
		Where("project_id = ?", projectID).
		Order("file_path").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	entries := make([]FileEntry, len(rows))
	for i := range rows {
		entries[i] = FileEntry{
			Path:      rows[i].FilePath,
			Size:      rows[i].SizeBytes,
			Language:  rows[i].Language,
			SHA256:    rows[i].SHA256,
			UpdatedAt: rows[i].UpdatedAt,
		}
	}
	return entries, nil
}

// ReadFile returns the full content of one path, or ErrFileNotFound.
// Absence is an expected case for callers probing paths, so it is a typed
// error rather than a storage failure.
func (s *Store) ReadFile(ctx context.Context, projectID, filePath string) (*FileContent, error) {
	var row model.ProjectFile
	err := s.db.WithContext(ctx).
		Where("project_id = ? AND file_path = ?", projectID, filePath).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFileNotFound
		}
		return nil, err
	}
	return &FileContent{
		Path:      row.FilePath,
		Content:   row.Content,
		Size:      row.SizeBytes,
		Language:  row.Language,
		SHA256:    row.SHA256,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}, nil
}

// projectSize sums the live file bytes for a project.
func projectSize(ctx context.Context, db *gorm.DB, projectID string) (int64, error) {
	var total int64
	err := db.WithContext(ctx).Model(&model.ProjectFile{}).
		Where("project_id = ?", projectID).
		Select("COALESCE(SUM(size_bytes), 0)").
		Scan(&total).Error
	return total, err
}
