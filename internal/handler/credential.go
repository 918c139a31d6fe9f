package handler

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/nookplot/gateway/internal/resputil"
	"github.com/nookplot/gateway/internal/util"
	"github.com/nookplot/gateway/pkg/credstore"
)

//nolint:gochecknoinits // This is the standard way to register a gin handler.
func init() {
	Registers = append(Registers, NewCredentialMgr)
}

type CredentialMgr struct {
	name  string
	creds *credstore.Store
}

type SaveCredentialReq struct {
	Username string `json:"username" binding:"required"`
	Token    string `json:"token" binding:"required"`
}

func NewCredentialMgr(conf *RegisterConfig) Manager {
	return &CredentialMgr{
		name:  "github-credentials",
		creds: conf.Creds,
	}
}

func (mgr *CredentialMgr) GetName() string { return mgr.name }

func (mgr *CredentialMgr) RegisterPublic(_ *gin.RouterGroup) {}

func (mgr *CredentialMgr) RegisterProtected(g *gin.RouterGroup) {
	g.PUT("/github-credentials", mgr.SaveCredential)
	g.DELETE("/github-credentials", mgr.DeleteCredential)
}

func (mgr *CredentialMgr) RegisterAdmin(_ *gin.RouterGroup) {}

// SaveCredential godoc
// @Summary connect a GitHub account
// @Description seals and stores the caller's personal access token for export
// @Tags credential
// @Accept json
// @Produce json
// @Security Bearer
// @Param data body SaveCredentialReq true "username and token"
// @Success 200 {object} resputil.Response[any]
// @Failure 400 {object} resputil.Response[any] "invalid request"
// @Failure 500 {object} resputil.Response[any] "other errors"
// @Router /v1/github-credentials [put]
func (mgr *CredentialMgr) SaveCredential(c *gin.Context) {
	token := util.GetToken(c)

	var req SaveCredentialReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}

	if err := mgr.creds.SaveToken(c, token.ActorID, req.Username, req.Token); err != nil {
		resputil.Error(c, fmt.Sprintf("failed to save credentials: %v", err), resputil.NotSpecified)
		return
	}
	resputil.Success(c, nil)
}

// DeleteCredential godoc
// @Summary disconnect the caller's GitHub account
// @Tags credential
// @Accept json
// @Produce json
// @Security Bearer
// @Success 200 {object} resputil.Response[any]
// @Failure 500 {object} resputil.Response[any] "other errors"
// @Router /v1/github-credentials [delete]
func (mgr *CredentialMgr) DeleteCredential(c *gin.Context) {
	token := util.GetToken(c)

	if err := mgr.creds.Delete(c, token.ActorID); err != nil {
		resputil.Error(c, fmt.Sprintf("failed to delete credentials: %v", err), resputil.NotSpecified)
		return
	}
	resputil.Success(c, nil)
}
