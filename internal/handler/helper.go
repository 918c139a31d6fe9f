package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nookplot/gateway/dao/model"
	"github.com/nookplot/gateway/internal/resputil"
	"github.com/nookplot/gateway/internal/util"
	"github.com/nookplot/gateway/pkg/hostedcode"
)

// requireAccess resolves the caller's role rank on a project and aborts
// with 403 below the minimum. A missing project also resolves to 403 so
// probing cannot distinguish absent projects from forbidden ones.
func requireAccess(c *gin.Context, db *gorm.DB, projectID string, minimum model.AccessLevel) (util.JWTMessage, bool) {
	token := util.GetToken(c)
	level, err := hostedcode.AccessLevel(c, db, projectID, token.ActorID)
	if err != nil {
		resputil.Error(c, fmt.Sprintf("failed to resolve access level: %v", err), resputil.NotSpecified)
		return token, false
	}
	if level < minimum {
		resputil.HTTPError(c, http.StatusForbidden, "insufficient access level", resputil.UserNotAllowed)
		return token, false
	}
	return token, true
}

// serviceError translates hostedcode sentinels into the response envelope.
// Secret matches are reported by path only; pattern names stay server-side.
func serviceError(c *gin.Context, err error) {
	var secretErr *hostedcode.SecretError
	switch {
	case errors.Is(err, hostedcode.ErrProjectNotFound),
		errors.Is(err, hostedcode.ErrCommitNotFound),
		errors.Is(err, hostedcode.ErrFileNotFound),
		errors.Is(err, hostedcode.ErrTaskNotFound):
		resputil.HTTPError(c, http.StatusNotFound, err.Error(), resputil.NotFound)
	case errors.Is(err, hostedcode.ErrPermissionDenied),
		errors.Is(err, hostedcode.ErrSelfReview):
		resputil.HTTPError(c, http.StatusForbidden, err.Error(), resputil.UserNotAllowed)
	case errors.As(err, &secretErr):
		resputil.BadRequestError(c, fmt.Sprintf("secret detected in %q", secretErr.Path))
	case errors.Is(err, hostedcode.ErrEmptyCommit),
		errors.Is(err, hostedcode.ErrTooManyFiles),
		errors.Is(err, hostedcode.ErrMessageRequired),
		errors.Is(err, hostedcode.ErrMessageTooLong),
		errors.Is(err, hostedcode.ErrInvalidPath),
		errors.Is(err, hostedcode.ErrSecretDetected),
		errors.Is(err, hostedcode.ErrFileTooLarge),
		errors.Is(err, hostedcode.ErrProjectTooLarge),
		errors.Is(err, hostedcode.ErrInvalidVerdict),
		errors.Is(err, hostedcode.ErrNoFiles),
		errors.Is(err, hostedcode.ErrNoRepoURL),
		errors.Is(err, hostedcode.ErrBadRepoURL),
		errors.Is(err, hostedcode.ErrNoCredentials):
		resputil.BadRequestError(c, err.Error())
	default:
		resputil.Error(c, err.Error(), resputil.NotSpecified)
	}
}
