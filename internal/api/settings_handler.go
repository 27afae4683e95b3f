package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/RaevaDesai/CommunityFund/internal/models"
	"github.com/RaevaDesai/CommunityFund/internal/settings"
)

// SettingsHandler exposes the local "marked as donated" flag. The flag is a
// device-local hint; the profile's donated set remains the source of truth.
type SettingsHandler struct {
	store  *settings.Store
	logger *zap.Logger
}

func NewSettingsHandler(store *settings.Store, logger *zap.Logger) *SettingsHandler {
	return &SettingsHandler{store: store, logger: logger}
}

// GetMarked reports whether a fundraiser is marked as donated locally.
func (h *SettingsHandler) GetMarked(c *gin.Context) {
	fundraiserID := c.Param("id")
	marked, err := h.store.IsMarked(c.Request.Context(), fundraiserID)
	if err != nil {
		h.logger.Error("failed to read marked flag", zap.String("fundraiserID", fundraiserID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to read settings"})
		return
	}
	c.JSON(http.StatusOK, MarkedResponse{FundraiserID: fundraiserID, Marked: marked})
}

// SetMarked toggles the local marked-as-donated flag.
func (h *SettingsHandler) SetMarked(c *gin.Context) {
	var req models.SetMarkedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	fundraiserID := c.Param("id")
	if err := h.store.SetMarked(c.Request.Context(), fundraiserID, req.Marked); err != nil {
		h.logger.Error("failed to write marked flag", zap.String("fundraiserID", fundraiserID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to write settings"})
		return
	}

	c.JSON(http.StatusOK, MarkedResponse{FundraiserID: fundraiserID, Marked: req.Marked})
}
