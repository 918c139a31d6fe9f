package hostedcode

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nookplot/gateway/dao/model"
)

// Tasks is the minimal task surface the commit engine links against.
type Tasks struct {
	db *gorm.DB
}

func NewTasks(db *gorm.DB) *Tasks {
	return &Tasks{db: db}
}

type TaskRequest struct {
	ProjectID      string
	Title          string
	Description    *string
	Priority       string
	AssignedTo     *string
	CreatedBy      string
	CreatorAddress string
}

func (t *Tasks) Create(ctx context.Context, req *TaskRequest) (*model.ProjectTask, error) {
	priority := req.Priority
	if priority == "" {
		priority = "medium"
	}
	now := time.Now()
	task := model.ProjectTask{
		ID:             uuid.NewString(),
		ProjectID:      req.ProjectID,
		Title:          req.Title,
		Description:    req.Description,
		Status:         model.TaskOpen,
		Priority:       priority,
		AssignedTo:     req.AssignedTo,
		CreatedBy:      req.CreatedBy,
		CreatorAddress: req.CreatorAddress,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := t.db.WithContext(ctx).Create(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (t *Tasks) List(ctx context.Context, projectID string, status *model.TaskStatus) ([]model.ProjectTask, error) {
	q := t.db.WithContext(ctx).Where("project_id = ?", projectID)
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	var tasks []model.ProjectTask
	err := q.Order("created_at DESC").Find(&tasks).Error
	return tasks, err
}

// Get resolves a task within one project only; a valid id routed through
// another project's path is not found.
func (t *Tasks) Get(ctx context.Context, projectID, taskID string) (*model.ProjectTask, error) {
	var task model.ProjectTask
	err := t.db.WithContext(ctx).
		Where("id = ? AND project_id = ?", taskID, projectID).
		First(&task).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return &task, nil
}

func (t *Tasks) UpdateStatus(ctx context.Context, projectID, taskID string, status model.TaskStatus) (*model.ProjectTask, error) {
	task, err := t.Get(ctx, projectID, taskID)
	if err != nil {
		return nil, err
	}
	err = t.db.WithContext(ctx).Model(&model.ProjectTask{}).
		Where("id = ?", taskID).
		Update("status", status).Error
	if err != nil {
		return nil, err
	}
	task.Status = status
	return task, nil
}
