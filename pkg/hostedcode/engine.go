package hostedcode

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"k8s.io/klog/v2"

	"github.com/nookplot/gateway/dao/model"
)

// Engine validates and atomically applies batches of file changes, and
// runs the review workflow over the resulting commits.
type Engine struct {
	db       *gorm.DB
	vcs      VCSClient
	notifier ReviewNotifier

	// linked buffers auto-linked task ids per commit until consumed.
	linkedMu sync.Mutex
	linked   map[string][]string
}

// NewEngine wires the engine over a database handle and the delegated VCS
// capability. notifier may be nil.
func NewEngine(db *gorm.DB, vcs VCSClient, notifier ReviewNotifier) *Engine {
	return &Engine{
		db:       db,
		vcs:      vcs,
		notifier: notifier,
		linked:   make(map[string][]string),
	}
}

// CommitFile is one entry in a commit batch. Nil content deletes the path.
type CommitFile struct {
	Path    string  `json:"path" binding:"required"`
	Content *string `json:"content"`
}

type CommitRequest struct {
	ProjectID     string
	Files         []CommitFile
	Message       string
	AuthorID      string
	AuthorAddress string
}

type CommitResult struct {
	CommitID     string             `json:"commitId"`
	Message      string             `json:"message"`
	FilesChanged int                `json:"filesChanged"`
	LinesAdded   int                `json:"linesAdded"`
	LinesRemoved int                `json:"linesRemoved"`
	Languages    []string           `json:"languages"`
	ReviewStatus model.ReviewStatus `json:"reviewStatus"`
	CreatedAt    time.Time          `json:"createdAt"`
}

// CommitFiles applies one batch atomically. The whole batch is validated
// before the transaction opens; any failure leaves zero trace in storage.
// A delete entry for a path with no live row is tolerated: it records a
// delete change with zero removed lines rather than failing the batch.
// After a successful transaction the task auto-link step runs detached and
// best-effort.
func (e *Engine) CommitFiles(ctx context.Context, req *CommitRequest) (*CommitResult, error) {
	if len(req.Files) == 0 {
		return nil, ErrEmptyCommit
	}
	if len(req.Files) > MaxCommitFiles {
		return nil, fmt.Errorf("%w: %d files (limit %d)", ErrTooManyFiles, len(req.Files), MaxCommitFiles)
	}
	if req.Message == "" {
		return nil, ErrMessageRequired
	}
	if len(req.Message) > MaxMessageLen {
		return nil, ErrMessageTooLong
	}

	// Delegated checks and size caps for the entire batch, before any
	// database write is attempted.
	var newBytes int64
	for i := range req.Files {
		f := &req.Files[i]
		if err := e.vcs.ValidatePath(f.Path); err != nil {
			return nil, err
		}
		if f.Content == nil {
			continue
		}
		if matches := e.vcs.ScanForSecrets(*f.Content); len(matches) > 0 {
			return nil, &SecretError{Path: f.Path, Pattern: matches[0].Pattern}
		}
		size := int64(len(*f.Content))
		if size > MaxFileBytes {
			return nil, fmt.Errorf("%w: %s is %d bytes", ErrFileTooLarge, f.Path, size)
		}
		newBytes += size
	}

	var project model.Project
	if err := e.db.WithContext(ctx).Where("id = ?", req.ProjectID).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}

	// Conservative: current total plus all new content, without
	// subtracting bytes being overwritten or deleted.
	currentBytes, err := projectSize(ctx, e.db, req.ProjectID)
	if err != nil {
		return nil, err
	}
	if currentBytes+newBytes > MaxProjectBytes {
		return nil, fmt.Errorf("%w: %d bytes after commit", ErrProjectTooLarge, currentBytes+newBytes)
	}

	commitID := uuid.NewString()
	now := time.Now()
	var totalAdded, totalRemoved int
	var languages []string

	err = e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		changes := make([]model.FileCommitChange, 0, len(req.Files))

		for i := range req.Files {
			f := &req.Files[i]

			var prior model.ProjectFile
			priorErr := tx.Where("project_id = ? AND file_path = ?", req.ProjectID, f.Path).
				First(&prior).Error
			hasPrior := priorErr == nil
			if priorErr != nil && !errors.Is(priorErr, gorm.ErrRecordNotFound) {
				return priorErr
			}

			change := model.FileCommitChange{
				ID:        uuid.NewString(),
				CommitID:  commitID,
				FilePath:  f.Path,
				CreatedAt: now,
			}

			switch {
			case f.Content == nil:
				change.ChangeType = model.ChangeDelete
				if hasPrior {
					oldContent := prior.Content
					change.OldContent = &oldContent
					change.LinesRemoved = countLines(oldContent)
					if err := tx.Delete(&model.ProjectFile{}, prior.ID).Error; err != nil {
						return err
					}
				}

			case !hasPrior:
				change.ChangeType = model.ChangeAdd
				change.NewContent = f.Content
				change.LinesAdded = countLines(*f.Content)
				row := model.ProjectFile{
					ProjectID: req.ProjectID,
					FilePath:  f.Path,
					Content:   *f.Content,
					SizeBytes: int64(len(*f.Content)),
					Language:  detectLanguage(f.Path),
					SHA256:    contentHash(*f.Content),
					UpdatedBy: req.AuthorID,
				}
				if err := tx.Create(&row).Error; err != nil {
					return err
				}
				if row.Language != nil {
					languages = append(languages, *row.Language)
				}

			default:
				change.ChangeType = model.ChangeModify
				oldContent := prior.Content
				change.OldContent = &oldContent
				change.NewContent = f.Content
				added, removed := lineDelta(countLines(oldContent), countLines(*f.Content))
				if added == 0 && removed == 0 {
					// Same line count, different content: never record a
					// modify as a zero-line change.
					added = countLines(*f.Content)
				}
				change.LinesAdded = added
				change.LinesRemoved = removed
				lang := detectLanguage(f.Path)
				updates := map[string]any{
					"content":    *f.Content,
					"size_bytes": int64(len(*f.Content)),
					"language":   lang,
					"sha256":     contentHash(*f.Content),
					"updated_by": req.AuthorID,
				}
				if err := tx.Model(&model.ProjectFile{}).Where("id = ?", prior.ID).
					Updates(updates).Error; err != nil {
					return err
				}
				if lang != nil {
					languages = append(languages, *lang)
				}
			}

			totalAdded += change.LinesAdded
			totalRemoved += change.LinesRemoved
			changes = append(changes, change)
		}

		languages = lo.Uniq(languages)

		commit := model.FileCommit{
			ID:            commitID,
			ProjectID:     req.ProjectID,
			AuthorID:      req.AuthorID,
			AuthorAddress: req.AuthorAddress,
			Message:       req.Message,
			FilesChanged:  len(req.Files),
			LinesAdded:    totalAdded,
			LinesRemoved:  totalRemoved,
			Languages:     datatypes.NewJSONSlice(languages),
			ReviewStatus:  model.ReviewPending,
			Source:        model.CommitSourceGateway,
			CreatedAt:     now,
		}
		if err := tx.Create(&commit).Error; err != nil {
			return err
		}
		if err := tx.Create(&changes).Error; err != nil {
			return err
		}

		logRow := model.CommitLog{
			AgentID:      req.AuthorID,
			ProjectID:    req.ProjectID,
			FilesChanged: len(req.Files),
			LinesAdded:   totalAdded,
			LinesRemoved: totalRemoved,
			Languages:    datatypes.NewJSONSlice(languages),
			Success:      true,
			CreatedAt:    now,
		}
		if err := tx.Create(&logRow).Error; err != nil {
			return err
		}

		activity := model.ProjectActivity{
			ID:           uuid.NewString(),
			ProjectID:    req.ProjectID,
			EventType:    model.EventFileCommitted,
			ActorID:      req.AuthorID,
			ActorAddress: req.AuthorAddress,
			Metadata: datatypes.JSONMap{
				"commit_id":     commitID,
				"message":       req.Message,
				"files_changed": len(req.Files),
				"lines_added":   totalAdded,
				"lines_removed": totalRemoved,
			},
			CreatedAt: now,
		}
		return tx.Create(&activity).Error
	})
	if err != nil {
		return nil, err
	}

	go e.autoLinkTasks(commitID, req.ProjectID, req.Message)

	return &CommitResult{
		CommitID:     commitID,
		Message:      req.Message,
		FilesChanged: len(req.Files),
		LinesAdded:   totalAdded,
		LinesRemoved: totalRemoved,
		Languages:    languages,
		ReviewStatus: model.ReviewPending,
		CreatedAt:    now,
	}, nil
}

// DeleteFile is sugar for a single-entry nil-content commit.
func (e *Engine) DeleteFile(ctx context.Context, projectID, filePath, authorID, authorAddress string) (*CommitResult, error) {
	return e.CommitFiles(ctx, &CommitRequest{
		ProjectID:     projectID,
		Files:         []CommitFile{{Path: filePath, Content: nil}},
		Message:       fmt.Sprintf("Delete %s", filePath),
		AuthorID:      authorID,
		AuthorAddress: authorAddress,
	})
}

var taskRefRE = regexp.MustCompile(`(?i)\b(?:closes|fixes)\s+#([a-zA-Z0-9-]+)`)

// autoLinkTasks scans the commit message for closes/fixes references and
// completes matching open tasks. Detached and best-effort: errors are
// logged and dropped, and must never affect the commit's outcome.
func (e *Engine) autoLinkTasks(commitID, projectID, message string) {
	ctx := context.Background()
	var linkedIDs []string

	for _, m := range taskRefRE.FindAllStringSubmatch(message, -1) {
		prefix := m[1]
		var task model.ProjectTask
		err := e.db.WithContext(ctx).
			Where("project_id = ? AND status = ? AND id LIKE ?",
				projectID, model.TaskOpen, prefix+"%").
			First(&task).Error
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				klog.Errorf("task auto-link lookup failed for commit %s: %v", commitID, err)
			}
			continue
		}
		err = e.db.WithContext(ctx).Model(&model.ProjectTask{}).
			Where("id = ?", task.ID).
			Updates(map[string]any{
				"status":           model.TaskCompleted,
				"linked_commit_id": commitID,
			}).Error
		if err != nil {
			klog.Errorf("task auto-link update failed for task %s: %v", task.ID, err)
			continue
		}
		linkedIDs = append(linkedIDs, task.ID)
	}

	if len(linkedIDs) > 0 {
		e.linkedMu.Lock()
		e.linked[commitID] = linkedIDs
		e.linkedMu.Unlock()
	}
}

// ConsumeLinkedTasks drains the auto-link buffer for one commit. Single
// consumer: a second call returns nil.
func (e *Engine) ConsumeLinkedTasks(commitID string) []string {
	e.linkedMu.Lock()
	defer e.linkedMu.Unlock()
	ids := e.linked[commitID]
	delete(e.linked, commitID)
	return ids
}

// ListCommits returns commit history for a project, newest first.
func (e *Engine) ListCommits(ctx context.Context, projectID string, limit, offset int) ([]model.FileCommit, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	var commits []model.FileCommit
	err := e.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&commits).Error
	return commits, err
}

// CommitDetail is a commit with its change rows and reviews.
type CommitDetail struct {
	Commit  model.FileCommit         `json:"commit"`
	Changes []model.FileCommitChange `json:"changes"`
	Reviews []model.CommitReview     `json:"reviews"`
}

// GetCommitDetail loads a commit with its change rows and reviews. The
// commit must belong to the given project; ids are not resolvable across
// project boundaries.
func (e *Engine) GetCommitDetail(ctx context.Context, projectID, commitID string) (*CommitDetail, error) {
	var detail CommitDetail
	err := e.db.WithContext(ctx).
		Where("id = ? AND project_id = ?", commitID, projectID).
		First(&detail.Commit).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommitNotFound
		}
		return nil, err
	}
	err = e.db.WithContext(ctx).
		Where("commit_id = ?", commitID).
		Order("file_path").
		Find(&detail.Changes).Error
	if err != nil {
		return nil, err
	}
	err = e.db.WithContext(ctx).
		Where("commit_id = ?", commitID).
		Order("created_at").
		Find(&detail.Reviews).Error
	if err != nil {
		return nil, err
	}
	return &detail, nil
}

func contentHash(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}
