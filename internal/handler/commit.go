package handler

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nookplot/gateway/dao/model"
	"github.com/nookplot/gateway/internal/payload"
	"github.com/nookplot/gateway/internal/resputil"
	"github.com/nookplot/gateway/pkg/hostedcode"
	"github.com/nookplot/gateway/pkg/metrics"
)

//nolint:gochecknoinits // This is the standard way to register a gin handler.
func init() {
	Registers = append(Registers, NewCommitMgr)
}

type CommitMgr struct {
	name   string
	db     *gorm.DB
	engine *hostedcode.Engine
}

type (
	CommitReq struct {
		Files   []hostedcode.CommitFile `json:"files" binding:"required"`
		Message string                  `json:"message" binding:"required"`
	}
	CommitURI struct {
		Commit string `uri:"commit" binding:"required"`
	}
)

func NewCommitMgr(conf *RegisterConfig) Manager {
	return &CommitMgr{
		name:   "gateway-commit",
		db:     conf.DB,
		engine: conf.Engine,
	}
}

func (mgr *CommitMgr) GetName() string { return mgr.name }

func (mgr *CommitMgr) RegisterPublic(_ *gin.RouterGroup) {}

func (mgr *CommitMgr) RegisterProtected(g *gin.RouterGroup) {
	g.POST("/projects/:project/gateway-commit", mgr.Commit)
	g.GET("/projects/:project/commits", mgr.ListCommits)
	g.GET("/projects/:project/commits/:commit", mgr.GetCommit)
}

func (mgr *CommitMgr) RegisterAdmin(_ *gin.RouterGroup) {}

// Commit godoc
// @Summary commit a batch of file changes
// @Description applies adds, modifies and deletes atomically; nil content deletes the path
// @Tags commit
// @Accept json
// @Produce json
// @Security Bearer
// @Param project path string true "project id"
// @Param data body CommitReq true "files and message"
// @Success 200 {object} resputil.Response[hostedcode.CommitResult]
// @Failure 400 {object} resputil.Response[any] "validation failure"
// @Failure 500 {object} resputil.Response[any] "other errors"
// @Router /v1/projects/{project}/gateway-commit [post]
func (mgr *CommitMgr) Commit(c *gin.Context) {
	projectID := c.Param("project")
	token, ok := requireAccess(c, mgr.db, projectID, model.AccessEditor)
	if !ok {
		return
	}

	var req CommitReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}

	result, err := mgr.engine.CommitFiles(c, &hostedcode.CommitRequest{
		ProjectID:     projectID,
		Files:         req.Files,
		Message:       req.Message,
		AuthorID:      token.ActorID,
		AuthorAddress: token.ActorAddress,
	})
	if err != nil {
		metrics.CommitsTotal.WithLabelValues("rejected").Inc()
		serviceError(c, err)
		return
	}
	metrics.CommitsTotal.WithLabelValues("accepted").Inc()
	metrics.CommitBytes.Observe(commitBytes(req.Files))
	resputil.Success(c, result)
}

func commitBytes(files []hostedcode.CommitFile) float64 {
	var total int
	for i := range files {
		if files[i].Content != nil {
			total += len(*files[i].Content)
		}
	}
	return float64(total)
}

// ListCommits godoc
// @Summary list a project's commits
// @Description commit history, newest first
// @Tags commit
// @Accept json
// @Produce json
// @Security Bearer
// @Param project path string true "project id"
// @Param limit query int false "page size, default 20, max 100"
// @Param offset query int false "page offset"
// @Success 200 {object} resputil.Response[[]model.FileCommit]
// @Failure 500 {object} resputil.Response[any] "other errors"
// @Router /v1/projects/{project}/commits [get]
func (mgr *CommitMgr) ListCommits(c *gin.Context) {
	projectID := c.Param("project")
	if _, ok := requireAccess(c, mgr.db, projectID, model.AccessViewer); !ok {
		return
	}

	var req payload.ListQuery
	if err := c.ShouldBindQuery(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}

	commits, err := mgr.engine.ListCommits(c, projectID, req.Limit, req.Offset)
	if err != nil {
		serviceError(c, err)
		return
	}
	resputil.Success(c, commits)
}

// GetCommit godoc
// @Summary get one commit with changes and reviews
// @Description the commit row plus its per-file change records and review trail
// @Tags commit
// @Accept json
// @Produce json
// @Security Bearer
// @Param project path string true "project id"
// @Param commit path string true "commit id"
// @Success 200 {object} resputil.Response[hostedcode.CommitDetail]
// @Failure 404 {object} resputil.Response[any] "commit not found"
// @Failure 500 {object} resputil.Response[any] "other errors"
// @Router /v1/projects/{project}/commits/{commit} [get]
func (mgr *CommitMgr) GetCommit(c *gin.Context) {
	projectID := c.Param("project")
	if _, ok := requireAccess(c, mgr.db, projectID, model.AccessViewer); !ok {
		return
	}

	var uri CommitURI
	if err := c.ShouldBindUri(&uri); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}

	detail, err := mgr.engine.GetCommitDetail(c, projectID, uri.Commit)
	if err != nil {
		serviceError(c, err)
		return
	}
	resputil.Success(c, detail)
}
