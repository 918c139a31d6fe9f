package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nookplot/gateway/dao/model"
	"github.com/nookplot/gateway/internal/resputil"
	"github.com/nookplot/gateway/pkg/hostedcode"
)

//nolint:gochecknoinits // This is the standard way to register a gin handler.
func init() {
	Registers = append(Registers, NewFileMgr)
}

type FileMgr struct {
	name   string
	db     *gorm.DB
	store  *hostedcode.Store
	engine *hostedcode.Engine
}

func NewFileMgr(conf *RegisterConfig) Manager {
	return &FileMgr{
		name:   "gateway-files",
		db:     conf.DB,
		store:  conf.Store,
		engine: conf.Engine,
	}
}

func (mgr *FileMgr) GetName() string { return mgr.name }

func (mgr *FileMgr) RegisterPublic(_ *gin.RouterGroup) {}

func (mgr *FileMgr) RegisterProtected(g *gin.RouterGroup) {
	// The catch-all serves both the listing (empty remainder) and single
	// file reads, because gin cannot mix an exact route with a catch-all
	// on the same segment.
	g.GET("/projects/:project/gateway-files/*path", mgr.GetFile)
	g.DELETE("/projects/:project/gateway-files/*path", mgr.DeleteFile)
}

func (mgr *FileMgr) RegisterAdmin(_ *gin.RouterGroup) {}

type FileListResp struct {
	Files []hostedcode.FileEntry `json:"files"`
}

// GetFile godoc
// @Summary read a hosted file, or list all files
// @Description with an empty path remainder, lists the project's files; otherwise returns one file with content
// @Tags file
// @Accept json
// @Produce json
// @Security Bearer
// @Param project path string true "project id"
// @Param path path string false "file path"
// @Success 200 {object} resputil.Response[hostedcode.FileContent]
// @Failure 404 {object} resputil.Response[any] "file not found"
// @Failure 500 {object} resputil.Response[any] "other errors"
// @Router /v1/projects/{project}/gateway-files/{path} [get]
func (mgr *FileMgr) GetFile(c *gin.Context) {
	projectID := c.Param("project")
	if _, ok := requireAccess(c, mgr.db, projectID, model.AccessViewer); !ok {
		return
	}

	filePath := strings.TrimPrefix(c.Param("path"), "/")
	if filePath == "" {
		files, err := mgr.store.ListFiles(c, projectID)
		if err != nil {
			serviceError(c, err)
			return
		}
		resputil.Success(c, FileListResp{Files: files})
		return
	}

	content, err := mgr.store.ReadFile(c, projectID, filePath)
	if err != nil {
		serviceError(c, err)
		return
	}
	resputil.Success(c, content)
}

// DeleteFile godoc
// @Summary delete a hosted file
// @Description records a single-file delete commit for the path
// @Tags file
// @Accept json
// @Produce json
// @Security Bearer
// @Param project path string true "project id"
// @Param path path string true "file path"
// @Success 200 {object} resputil.Response[hostedcode.CommitResult]
// @Failure 400 {object} resputil.Response[any] "invalid path"
// @Failure 500 {object} resputil.Response[any] "other errors"
// @Router /v1/projects/{project}/gateway-files/{path} [delete]
func (mgr *FileMgr) DeleteFile(c *gin.Context) {
	projectID := c.Param("project")
	token, ok := requireAccess(c, mgr.db, projectID, model.AccessEditor)
	if !ok {
		return
	}

	filePath := strings.TrimPrefix(c.Param("path"), "/")
	if filePath == "" {
		resputil.BadRequestError(c, "file path is required")
		return
	}

	result, err := mgr.engine.DeleteFile(c, projectID, filePath, token.ActorID, token.ActorAddress)
	if err != nil {
		serviceError(c, err)
		return
	}
	resputil.Success(c, result)
}
