package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nookplot/gateway/dao/model"
	"github.com/nookplot/gateway/internal/resputil"
	"github.com/nookplot/gateway/internal/util"
)

//nolint:gochecknoinits // This is the standard way to register a gin handler.
func init() {
	Registers = append(Registers, NewProjectMgr)
}

type ProjectMgr struct {
	name string
	db   *gorm.DB
}

type (
	CreateProjectReq struct {
		Name          string  `json:"name" binding:"required"`
		Description   *string `json:"description"`
		RepoURL       *string `json:"repoUrl"`
		DefaultBranch *string `json:"defaultBranch"`
		NotifyEmail   *string `json:"notifyEmail"`
	}
	UpdateProjectReq struct {
		Description   *string `json:"description"`
		RepoURL       *string `json:"repoUrl"`
		DefaultBranch *string `json:"defaultBranch"`
		NotifyEmail   *string `json:"notifyEmail"`
	}
)

func NewProjectMgr(conf *RegisterConfig) Manager {
	return &ProjectMgr{
		name: "projects",
		db:   conf.DB,
	}
}

func (mgr *ProjectMgr) GetName() string { return mgr.name }

func (mgr *ProjectMgr) RegisterPublic(_ *gin.RouterGroup) {}

func (mgr *ProjectMgr) RegisterProtected(g *gin.RouterGroup) {
	g.POST("/projects", mgr.CreateProject)
	g.GET("/projects", mgr.ListProjects)
	g.GET("/projects/:project", mgr.GetProject)
	g.PUT("/projects/:project", mgr.UpdateProject)
}

func (mgr *ProjectMgr) RegisterAdmin(g *gin.RouterGroup) {
	g.GET("/projects", mgr.ListAllProjects)
}

// CreateProject godoc
// @Summary create a project
// @Description the caller becomes the owner
// @Tags project
// @Accept json
// @Produce json
// @Security Bearer
// @Param data body CreateProjectReq true "project fields"
// @Success 200 {object} resputil.Response[model.Project]
// @Failure 400 {object} resputil.Response[any] "invalid request"
// @Failure 500 {object} resputil.Response[any] "other errors"
// @Router /v1/projects [post]
func (mgr *ProjectMgr) CreateProject(c *gin.Context) {
	token := util.GetToken(c)

	var req CreateProjectReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}

	project := model.Project{
		ID:            uuid.NewString(),
		Name:          req.Name,
		Description:   req.Description,
		OwnerID:       token.ActorID,
		OwnerAddr:     token.ActorAddress,
		RepoURL:       req.RepoURL,
		DefaultBranch: req.DefaultBranch,
		NotifyEmail:   req.NotifyEmail,
		Status:        "active",
	}
	if err := mgr.db.WithContext(c).Create(&project).Error; err != nil {
		resputil.Error(c, fmt.Sprintf("failed to create project: %v", err), resputil.NotSpecified)
		return
	}
	resputil.Success(c, project)
}

// ListProjects godoc
// @Summary list the caller's projects
// @Description projects the caller owns or collaborates on
// @Tags project
// @Accept json
// @Produce json
// @Security Bearer
// @Success 200 {object} resputil.Response[[]model.Project]
// @Failure 500 {object} resputil.Response[any] "other errors"
// @Router /v1/projects [get]
func (mgr *ProjectMgr) ListProjects(c *gin.Context) {
	token := util.GetToken(c)

	var projects []model.Project
	err := mgr.db.WithContext(c).
		Where("owner_id = ?", token.ActorID).
		Or("id IN (?)", mgr.db.Model(&model.ProjectCollaborator{}).
			Select("project_id").
			Where("actor_id = ?", token.ActorID)).
		Order("created_at DESC").
		Find(&projects).Error
	if err != nil {
		resputil.Error(c, fmt.Sprintf("failed to list projects: %v", err), resputil.NotSpecified)
		return
	}
	resputil.Success(c, projects)
}

// GetProject godoc
// @Summary get one project
// @Tags project
// @Accept json
// @Produce json
// @Security Bearer
// @Param project path string true "project id"
// @Success 200 {object} resputil.Response[model.Project]
// @Failure 404 {object} resputil.Response[any] "project not found"
// @Failure 500 {object} resputil.Response[any] "other errors"
// @Router /v1/projects/{project} [get]
func (mgr *ProjectMgr) GetProject(c *gin.Context) {
	projectID := c.Param("project")
	if _, ok := requireAccess(c, mgr.db, projectID, model.AccessViewer); !ok {
		return
	}

	var project model.Project
	err := mgr.db.WithContext(c).Preload("Collaborators").
		Where("id = ?", projectID).First(&project).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			resputil.HTTPError(c, http.StatusNotFound, "project not found", resputil.NotFound)
			return
		}
		resputil.Error(c, fmt.Sprintf("failed to get project: %v", err), resputil.NotSpecified)
		return
	}
	resputil.Success(c, project)
}

// UpdateProject godoc
// @Summary update project settings
// @Description repository link, default branch, notification address; admin or owner only
// @Tags project
// @Accept json
// @Produce json
// @Security Bearer
// @Param project path string true "project id"
// @Param data body UpdateProjectReq true "settings"
// @Success 200 {object} resputil.Response[any]
// @Failure 403 {object} resputil.Response[any] "insufficient access"
// @Failure 500 {object} resputil.Response[any] "other errors"
// @Router /v1/projects/{project} [put]
func (mgr *ProjectMgr) UpdateProject(c *gin.Context) {
	projectID := c.Param("project")
	if _, ok := requireAccess(c, mgr.db, projectID, model.AccessAdmin); !ok {
		return
	}

	var req UpdateProjectReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}

	updates := map[string]any{}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.RepoURL != nil {
		updates["repo_url"] = *req.RepoURL
	}
	if req.DefaultBranch != nil {
		updates["default_branch"] = *req.DefaultBranch
	}
	if req.NotifyEmail != nil {
		updates["notify_email"] = *req.NotifyEmail
	}
	if len(updates) == 0 {
		resputil.Success(c, nil)
		return
	}

	err := mgr.db.WithContext(c).Model(&model.Project{}).
		Where("id = ?", projectID).Updates(updates).Error
	if err != nil {
		resputil.Error(c, fmt.Sprintf("failed to update project: %v", err), resputil.NotSpecified)
		return
	}
	resputil.Success(c, nil)
}

// ListAllProjects godoc
// @Summary list all projects
// @Tags project
// @Accept json
// @Produce json
// @Security Bearer
// @Success 200 {object} resputil.Response[[]model.Project]
// @Failure 500 {object} resputil.Response[any] "other errors"
// @Router /v1/admin/projects [get]
func (mgr *ProjectMgr) ListAllProjects(c *gin.Context) {
	var projects []model.Project
	err := mgr.db.WithContext(c).Order("created_at DESC").Find(&projects).Error
	if err != nil {
		resputil.Error(c, fmt.Sprintf("failed to list projects: %v", err), resputil.NotSpecified)
		return
	}
	resputil.Success(c, projects)
}
