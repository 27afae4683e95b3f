package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/RaevaDesai/CommunityFund/internal/core"
	"github.com/RaevaDesai/CommunityFund/internal/models"
)

// FundraiserHandler exposes fundraiser CRUD, live feeds and donation marking.
type FundraiserHandler struct {
	fundraisers core.FundraiserService
	donations   core.DonationService
	aggregator  *core.ProfileAggregator
	logger      *zap.Logger
}

func NewFundraiserHandler(fundraisers core.FundraiserService, donations core.DonationService, aggregator *core.ProfileAggregator, logger *zap.Logger) *FundraiserHandler {
	return &FundraiserHandler{
		fundraisers: fundraisers,
		donations:   donations,
		aggregator:  aggregator,
		logger:      logger,
	}
}

// Create publishes a new fundraiser owned by the signed-in user.
func (h *FundraiserHandler) Create(c *gin.Context) {
	var req models.CreateFundraiserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	fundraiser, err := h.fundraisers.Create(c.Request.Context(), req)
	if err != nil {
		mapServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, fundraiser)
}

// Get returns a single fundraiser by ID.
func (h *FundraiserHandler) Get(c *gin.Context) {
	fundraiser, err := h.fundraisers.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		mapServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, fundraiser)
}

// List returns a one-shot snapshot of every fundraiser.
func (h *FundraiserHandler) List(c *gin.Context) {
	fundraisers, err := h.fundraisers.ListAll(c.Request.Context())
	if err != nil {
		mapServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, fundraisers)
}

// StreamAll streams the full fundraiser list as server-sent events for the
// lifetime of the request. The backing listener is torn down when the client
// disconnects.
func (h *FundraiserHandler) StreamAll(c *gin.Context) {
	v := h.fundraisers.WatchAll(c.Request.Context())
	streamValue(c, v, "fundraisers")
}

// StreamMine streams the signed-in user's created fundraisers.
func (h *FundraiserHandler) StreamMine(c *gin.Context) {
	streamValue(c, h.aggregator.Created(), "fundraisers")
}

// StreamDonations streams the fundraisers the signed-in user has donated to.
// The list follows the profile's donated set: marking or unmarking a donation
// shows up here without any explicit refresh.
func (h *FundraiserHandler) StreamDonations(c *gin.Context) {
	streamValue(c, h.aggregator.Donated(), "fundraisers")
}

// Donate records the fundraiser in the signed-in user's donated set.
func (h *FundraiserHandler) Donate(c *gin.Context) {
	if err := h.donations.Donate(c.Request.Context(), c.Param("id")); err != nil {
		mapServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Donation recorded"})
}

// Undonate removes the fundraiser from the signed-in user's donated set.
func (h *FundraiserHandler) Undonate(c *gin.Context) {
	if err := h.donations.Undonate(c.Request.Context(), c.Param("id")); err != nil {
		mapServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Donation removed"})
}
