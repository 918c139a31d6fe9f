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
	Registers = append(Registers, NewCollaboratorMgr)
}

type CollaboratorMgr struct {
	name string
	db   *gorm.DB
}

type (
	AddCollaboratorReq struct {
		ActorID      string            `json:"actorId" binding:"required"`
		ActorAddress string            `json:"actorAddress" binding:"required"`
		Role         model.AccessLevel `json:"role"`
	}
	CollaboratorURI struct {
		Address string `uri:"address" binding:"required"`
	}
)

func NewCollaboratorMgr(conf *RegisterConfig) Manager {
	return &CollaboratorMgr{
		name: "collaborators",
		db:   conf.DB,
	}
}

func (mgr *CollaboratorMgr) GetName() string { return mgr.name }

func (mgr *CollaboratorMgr) RegisterPublic(_ *gin.RouterGroup) {}

func (mgr *CollaboratorMgr) RegisterProtected(g *gin.RouterGroup) {
	g.POST("/projects/:project/collaborators", mgr.AddCollaborator)
	g.DELETE("/projects/:project/collaborators/:address", mgr.RemoveCollaborator)
}

func (mgr *CollaboratorMgr) RegisterAdmin(_ *gin.RouterGroup) {}

// AddCollaborator godoc
// @Summary add or update a collaborator
// @Description records an actor's role rank on the project; owner only
// @Tags collaborator
// @Accept json
// @Produce json
// @Security Bearer
// @Param project path string true "project id"
// @Param data body AddCollaboratorReq true "actor and role"
// @Success 200 {object} resputil.Response[any]
// @Failure 403 {object} resputil.Response[any] "not the owner"
// @Failure 500 {object} resputil.Response[any] "other errors"
// @Router /v1/projects/{project}/collaborators [post]
func (mgr *CollaboratorMgr) AddCollaborator(c *gin.Context) {
	projectID := c.Param("project")
	if _, ok := requireAccess(c, mgr.db, projectID, model.AccessOwner); !ok {
		return
	}

	var req AddCollaboratorReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}

	err := hostedcode.AddCollaborator(c, mgr.db, projectID, req.ActorID, req.ActorAddress, req.Role)
	if err != nil {
		serviceError(c, err)
		return
	}
	resputil.Success(c, nil)
}

// RemoveCollaborator godoc
// @Summary remove a collaborator
// @Description deletes the collaborator row by address; owner only
// @Tags collaborator
// @Accept json
// @Produce json
// @Security Bearer
// @Param project path string true "project id"
// @Param address path string true "collaborator address"
// @Success 200 {object} resputil.Response[any]
// @Failure 403 {object} resputil.Response[any] "not the owner"
// @Failure 500 {object} resputil.Response[any] "other errors"
// @Router /v1/projects/{project}/collaborators/{address} [delete]
func (mgr *CollaboratorMgr) RemoveCollaborator(c *gin.Context) {
	projectID := c.Param("project")
	if _, ok := requireAccess(c, mgr.db, projectID, model.AccessOwner); !ok {
		return
	}

	var uri CollaboratorURI
	if err := c.ShouldBindUri(&uri); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}

	if err := hostedcode.RemoveCollaborator(c, mgr.db, projectID, uri.Address); err != nil {
		serviceError(c, err)
		return
	}
	resputil.Success(c, nil)
}
