package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/RaevaDesai/CommunityFund/internal/core"
	"github.com/RaevaDesai/CommunityFund/internal/middleware"
)

// RequireSessionIdentity rejects requests whose verified token UID does not
// match the active session. This process serves exactly one signed-in user;
// a valid token for anyone else means the caller is talking to the wrong
// instance.
func RequireSessionIdentity(session core.Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		current := session.Current()
		tokenUID := c.GetString(middleware.UserIDKey)
		if current == nil || tokenUID == "" || current.UID != tokenUID {
			c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{Error: "Token identity does not match the active session"})
			return
		}
		c.Next()
	}
}
