package handler

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nookplot/gateway/dao/model"
	"github.com/nookplot/gateway/internal/resputil"
	"github.com/nookplot/gateway/pkg/hostedcode"
	"github.com/nookplot/gateway/pkg/metrics"
)

//nolint:gochecknoinits // This is the standard way to register a gin handler.
func init() {
	Registers = append(Registers, NewReviewMgr)
}

type ReviewMgr struct {
	name   string
	db     *gorm.DB
	engine *hostedcode.Engine
}

type ReviewReq struct {
	Verdict model.Verdict `json:"verdict" binding:"required"`
	Body    *string       `json:"body"`
}

func NewReviewMgr(conf *RegisterConfig) Manager {
	return &ReviewMgr{
		name:   "reviews",
		db:     conf.DB,
		engine: conf.Engine,
	}
}

func (mgr *ReviewMgr) GetName() string { return mgr.name }

func (mgr *ReviewMgr) RegisterPublic(_ *gin.RouterGroup) {}

func (mgr *ReviewMgr) RegisterProtected(g *gin.RouterGroup) {
	g.POST("/projects/:project/commits/:commit/review", mgr.SubmitReview)
	g.GET("/projects/:project/commits/:commit/reviews", mgr.ListReviews)
}

func (mgr *ReviewMgr) RegisterAdmin(_ *gin.RouterGroup) {}

// SubmitReview godoc
// @Summary submit or replace a review verdict
// @Description a reviewer's later verdict replaces their earlier one; commit state is recomputed from the full review set
// @Tags review
// @Accept json
// @Produce json
// @Security Bearer
// @Param project path string true "project id"
// @Param commit path string true "commit id"
// @Param data body ReviewReq true "verdict and optional body"
// @Success 200 {object} resputil.Response[model.CommitReview]
// @Failure 400 {object} resputil.Response[any] "invalid verdict"
// @Failure 403 {object} resputil.Response[any] "self review"
// @Failure 500 {object} resputil.Response[any] "other errors"
// @Router /v1/projects/{project}/commits/{commit}/review [post]
func (mgr *ReviewMgr) SubmitReview(c *gin.Context) {
	projectID := c.Param("project")
	token, ok := requireAccess(c, mgr.db, projectID, model.AccessEditor)
	if !ok {
		return
	}

	var req ReviewReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resputil.BadRequestError(c, err.Error())
		return
	}

	review, err := mgr.engine.SubmitReview(c, &hostedcode.ReviewRequest{
		ProjectID:       projectID,
		CommitID:        c.Param("commit"),
		ReviewerID:      token.ActorID,
		ReviewerAddress: token.ActorAddress,
		Verdict:         req.Verdict,
		Body:            req.Body,
	})
	if err != nil {
		serviceError(c, err)
		return
	}
	metrics.ReviewsTotal.WithLabelValues(string(req.Verdict)).Inc()
	resputil.Success(c, review)
}

// ListReviews godoc
// @Summary list a commit's reviews
// @Description all reviews ordered by submission time
// @Tags review
// @Accept json
// @Produce json
// @Security Bearer
// @Param project path string true "project id"
// @Param commit path string true "commit id"
// @Success 200 {object} resputil.Response[[]model.CommitReview]
// @Failure 500 {object} resputil.Response[any] "other errors"
// @Router /v1/projects/{project}/commits/{commit}/reviews [get]
func (mgr *ReviewMgr) ListReviews(c *gin.Context) {
	projectID := c.Param("project")
	if _, ok := requireAccess(c, mgr.db, projectID, model.AccessViewer); !ok {
		return
	}

	reviews, err := mgr.engine.ListReviews(c, projectID, c.Param("commit"))
	if err != nil {
		serviceError(c, err)
		return
	}
	resputil.Success(c, reviews)
}
