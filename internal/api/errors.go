package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/RaevaDesai/CommunityFund/internal/core"
	"github.com/RaevaDesai/CommunityFund/internal/db"
)

// mapServiceError maps core service errors to HTTP status codes. Auth errors
// carry a user-facing message that is surfaced verbatim; everything
// unclassified becomes an opaque 500 with details kept server-side.
func mapServiceError(c *gin.Context, logger *zap.Logger, err error) {
	var authErr *core.AuthError
	switch {
	case errors.Is(err, core.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Not signed in"})
	case errors.Is(err, core.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Forbidden"})
	case errors.Is(err, core.ErrNotFound), errors.Is(err, db.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Not found"})
	case errors.Is(err, core.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request", Details: err.Error()})
	case errors.As(err, &authErr):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: authErr.Message})
	default:
		logger.Error("unhandled service error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "An unexpected internal server error occurred."})
	}
}
