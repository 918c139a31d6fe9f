package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/nookplot/gateway/internal/resputil"
	"github.com/nookplot/gateway/internal/util"
	"github.com/nookplot/gateway/pkg/hostedcode"
	"github.com/nookplot/gateway/pkg/metrics"
)

//nolint:gochecknoinits // This is the standard way to register a gin handler.
func init() {
	Registers = append(Registers, NewExportMgr)
}

type ExportMgr struct {
	name   string
	bridge *hostedcode.Bridge
}

func NewExportMgr(conf *RegisterConfig) Manager {
	return &ExportMgr{
		name:   "export-github",
		bridge: conf.Bridge,
	}
}

func (mgr *ExportMgr) GetName() string { return mgr.name }

func (mgr *ExportMgr) RegisterPublic(_ *gin.RouterGroup) {}

func (mgr *ExportMgr) RegisterProtected(g *gin.RouterGroup) {
	g.POST("/projects/:project/export-github", mgr.ExportGithub)
}

func (mgr *ExportMgr) RegisterAdmin(_ *gin.RouterGroup) {}

// ExportGithub godoc
// @Summary export the project to its linked repository
// @Description snapshots the current file set and pushes it as one commit; admin or owner only
// @Tags export
// @Accept json
// @Produce json
// @Security Bearer
// @Param project path string true "project id"
// @Success 200 {object} resputil.Response[hostedcode.ExportResult]
// @Failure 400 {object} resputil.Response[any] "no repository or credentials"
// @Failure 403 {object} resputil.Response[any] "insufficient access"
// @Failure 500 {object} resputil.Response[any] "other errors"
// @Router /v1/projects/{project}/export-github [post]
func (mgr *ExportMgr) ExportGithub(c *gin.Context) {
	token := util.GetToken(c)

	result, err := mgr.bridge.ExportToGitHub(c, c.Param("project"), token.ActorID, token.ActorAddress)
	if err != nil {
		metrics.ExportsTotal.WithLabelValues("failed").Inc()
		serviceError(c, err)
		return
	}
	metrics.ExportsTotal.WithLabelValues("succeeded").Inc()
	resputil.Success(c, result)
}
