package handler

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nookplot/gateway/dao/model"
	"github.com/nookplot/gateway/internal/resputil"
	"github.com/nookplot/gateway/pkg/hostedcode"
)

//nolint:gochecknoinits // This is the standard way to register a gin handler.
func init() {
	Registers = append(Registers, NewTaskMgr)
}

type TaskMgr struct {
	name  string
	db    *gorm.DB
	tasks *hostedcode.Tasks
}

type (
	CreateTaskReq struct {
		Title       string  `json:"title" binding:"required"`
		Description *string `json:"description"`
		Priority    string  `json:"priority"`
		AssignedTo  *string `json:"assignedTo"`
	}
	UpdateTaskReq struct {
		Status model.TaskStatus `json:"status" binding:"required"`
	}
	ListTasksQuery struct {
		Status *model.TaskStatus `form:"status"`
	}
	TaskURI struct {
		Task string `uri:"task" binding:"required"`
	}
)

func NewTaskMgr(conf *RegisterConfig) Manager {
	return &TaskMgr{
		name:  "tasks",
		db:    conf.DB,
		tasks: conf.Tasks,
	}
}

func (mgr *TaskMgr) GetName() string { return mgr.name }

func (mgr *TaskMgr) RegisterPublic(_ *gin.RouterGroup) {}

func (mgr *TaskMgr) RegisterProtected(g *gin.RouterGroup) {
	g.POST("/projects/:project/tasks", mgr.CreateTask)
	g.GET("/projects/:project/tasks", mgr.ListTasks)
	g.GET("/projects/:project/tasks/:task", mgr.GetTask)
	g.PUT("/projects/:project/tasks/:task", mgr.UpdateTask)
}

func (mgr *TaskMgr) RegisterAdmin(_ *gin.RouterGroup) {}

// CreateTask godoc
// @Summary create a task
// @Description opens a task; commit messages referencing it with closes/fixes will complete it
// @Tags task
// @Accept json
// @Produce json
// @Security Bearer
// @Param project path string true "project id"
// @Param data body CreateTaskReq true "task fields"
// @Success 200 {object} resputil.Response[model.ProjectTask]
// @Failure 400 {object} resputil.Response[any] "invalid request"
// @Failure 500 {object} resputil.Response[any] "other errors"
// @Router /v1/projects/{project}/tasks [post]
func (mgr *TaskMgr) CreateTask(c *gin.Context) {
	projectID := c.Param("project")
	token, ok := requireAccess(c, mgr.db, projectID, model.AccessEditor)
	if !ok {
		return
	}

	var req CreateTaskReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}

	task, err := mgr.tasks.Create(c, &hostedcode.TaskRequest{
		ProjectID:      projectID,
		Title:          req.Title,
		Description:    req.Description,
		Priority:       req.Priority,
		AssignedTo:     req.AssignedTo,
		CreatedBy:      token.ActorID,
		CreatorAddress: token.ActorAddress,
	})
	if err != nil {
		serviceError(c, err)
		return
	}
	resputil.Success(c, task)
}

// ListTasks godoc
// @Summary list a project's tasks
// @Description newest first, optionally filtered by status
// @Tags task
// @Accept json
// @Produce json
// @Security Bearer
// @Param project path string true "project id"
// @Param status query string false "task status filter"
// @Success 200 {object} resputil.Response[[]model.ProjectTask]
// @Failure 500 {object} resputil.Response[any] "other errors"
// @Router /v1/projects/{project}/tasks [get]
func (mgr *TaskMgr) ListTasks(c *gin.Context) {
	projectID := c.Param("project")
	if _, ok := requireAccess(c, mgr.db, projectID, model.AccessViewer); !ok {
		return
	}

	var req ListTasksQuery
	if err := c.ShouldBindQuery(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}

	tasks, err := mgr.tasks.List(c, projectID, req.Status)
	if err != nil {
		serviceError(c, err)
		return
	}
	resputil.Success(c, tasks)
}

// GetTask godoc
// @Summary get one task
// @Tags task
// @Accept json
// @Produce json
// @Security Bearer
// @Param project path string true "project id"
// @Param task path string true "task id"
// @Success 200 {object} resputil.Response[model.ProjectTask]
// @Failure 404 {object} resputil.Response[any] "task not found"
// @Failure 500 {object} resputil.Response[any] "other errors"
// @Router /v1/projects/{project}/tasks/{task} [get]
func (mgr *TaskMgr) GetTask(c *gin.Context) {
	projectID := c.Param("project")
	if _, ok := requireAccess(c, mgr.db, projectID, model.AccessViewer); !ok {
		return
	}

	var uri TaskURI
	if err := c.ShouldBindUri(&uri); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}

	task, err := mgr.tasks.Get(c, projectID, uri.Task)
	if err != nil {
		serviceError(c, err)
		return
	}
	resputil.Success(c, task)
}

// UpdateTask godoc
// @Summary update a task's status
// @Tags task
// @Accept json
// @Produce json
// @Security Bearer
// @Param project path string true "project id"
// @Param task path string true "task id"
// @Param data body UpdateTaskReq true "new status"
// @Success 200 {object} resputil.Response[model.ProjectTask]
// @Failure 404 {object} resputil.Response[any] "task not found"
// @Failure 500 {object} resputil.Response[any] "other errors"
// @Router /v1/projects/{project}/tasks/{task} [put]
func (mgr *TaskMgr) UpdateTask(c *gin.Context) {
	projectID := c.Param("project")
	if _, ok := requireAccess(c, mgr.db, projectID, model.AccessEditor); !ok {
		return
	}

	var uri TaskURI
	if err := c.ShouldBindUri(&uri); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}
	var req UpdateTaskReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}
	switch req.Status {
	case model.TaskOpen, model.TaskInProgress, model.TaskCompleted, model.TaskCancelled:
	default:
		resputil.BadRequestError(c, "unknown task status")
		return
	}

	task, err := mgr.tasks.UpdateStatus(c, projectID, uri.Task, req.Status)
	if err != nil {
		serviceError(c, err)
		return
	}
	resputil.Success(c, task)
}
