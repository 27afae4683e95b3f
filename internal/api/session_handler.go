package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/RaevaDesai/CommunityFund/internal/core"
	"github.com/RaevaDesai/CommunityFund/internal/models"
)

// SessionHandler exposes sign-in and sign-out over HTTP.
type SessionHandler struct {
	session core.Session
	logger  *zap.Logger
}

func NewSessionHandler(session core.Session, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{session: session, logger: logger}
}

// SignIn verifies the provider-issued ID token and establishes the session.
func (h *SessionHandler) SignIn(c *gin.Context) {
	var req models.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	identity, err := h.session.SignIn(c.Request.Context(), req.IDToken)
	if err != nil {
		mapServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, identity)
}

// SignOut clears the current session.
func (h *SessionHandler) SignOut(c *gin.Context) {
	if err := h.session.SignOut(); err != nil {
		mapServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Signed out"})
}

// Current reports the signed-in identity, or 401 when signed out.
func (h *SessionHandler) Current(c *gin.Context) {
	identity := h.session.Current()
	if identity == nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Not signed in"})
		return
	}
	c.JSON(http.StatusOK, identity)
}
