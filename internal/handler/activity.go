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
	Registers = append(Registers, NewActivityMgr)
}

type ActivityMgr struct {
	name string
	db   *gorm.DB
	feed *hostedcode.Feed
}

type ActivityQuery struct {
	Limit int `form:"limit"`
}

func NewActivityMgr(conf *RegisterConfig) Manager {
	return &ActivityMgr{
		name: "activity",
		db:   conf.DB,
		feed: conf.Feed,
	}
}

func (mgr *ActivityMgr) GetName() string { return mgr.name }

func (mgr *ActivityMgr) RegisterPublic(_ *gin.RouterGroup) {}

func (mgr *ActivityMgr) RegisterProtected(g *gin.RouterGroup) {
	g.GET("/projects/:project/activity", mgr.ProjectActivity)
}

func (mgr *ActivityMgr) RegisterAdmin(g *gin.RouterGroup) {
	g.GET("/activity", mgr.GlobalActivity)
}

// ProjectActivity godoc
// @Summary list a project's activity
// @Description commit, review and export events, newest first
// @Tags activity
// @Accept json
// @Produce json
// @Security Bearer
// @Param project path string true "project id"
// @Param limit query int false "page size, default 20, max 100"
// @Success 200 {object} resputil.Response[[]model.ProjectActivity]
// @Failure 500 {object} resputil.Response[any] "other errors"
// @Router /v1/projects/{project}/activity [get]
func (mgr *ActivityMgr) ProjectActivity(c *gin.Context) {
	projectID := c.Param("project")
	if _, ok := requireAccess(c, mgr.db, projectID, model.AccessViewer); !ok {
		return
	}

	var req ActivityQuery
	if err := c.ShouldBindQuery(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}

	events, err := mgr.feed.ProjectActivity(c, projectID, req.Limit)
	if err != nil {
		serviceError(c, err)
		return
	}
	resputil.Success(c, events)
}

// GlobalActivity godoc
// @Summary list activity across all projects
// @Description platform-wide event feed, newest first
// @Tags activity
// @Accept json
// @Produce json
// @Security Bearer
// @Param limit query int false "page size, default 20, max 100"
// @Success 200 {object} resputil.Response[[]model.ProjectActivity]
// @Failure 500 {object} resputil.Response[any] "other errors"
// @Router /v1/admin/activity [get]
func (mgr *ActivityMgr) GlobalActivity(c *gin.Context) {
	var req ActivityQuery
	if err := c.ShouldBindQuery(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}

	events, err := mgr.feed.GlobalActivity(c, req.Limit)
	if err != nil {
		serviceError(c, err)
		return
	}
	resputil.Success(c, events)
}
