package middleware

import (
	"net/http"
	"strings"

	"github.com/nookplot/gateway/dao/model"
	"github.com/nookplot/gateway/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/nookplot/gateway/internal/resputil"
)

func AuthProtected() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.Request.Header.Get("Authorization")
		t := strings.Split(authHeader, " ")
		if len(t) < 2 || t[0] != "Bearer" {
			resputil.HTTPError(c, http.StatusUnauthorized, "Invalid token", resputil.TokenExpired)
			c.Abort()
			return
		}

		authToken := t[1]
		token, err := util.GetTokenMgr().CheckToken(authToken)
		if err != nil {
			resputil.HTTPError(c, http.StatusUnauthorized, err.Error(), resputil.TokenExpired)
			c.Abort()
			return
		}
		if token.ActorID == "" {
			resputil.HTTPError(c, http.StatusUnauthorized, "Token carries no actor", resputil.TokenInvalid)
			c.Abort()
			return
		}

		util.SetJWTContext(c, token)
		c.Next()
	}
}

func AuthAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := util.GetToken(c)
		if token.RolePlatform != model.RoleAdmin {
			resputil.HTTPError(c, http.StatusUnauthorized, "Not Admin", resputil.TokenExpired)
			c.Abort()
			return
		}
		c.Next()
	}
}
