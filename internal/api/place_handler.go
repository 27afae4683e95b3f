package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/RaevaDesai/CommunityFund/internal/geo"
	"github.com/RaevaDesai/CommunityFund/internal/models"
)

// PlaceHandler exposes place search, candidate resolution and reverse
// geocoding for the location picker.
type PlaceHandler struct {
	search   *geo.SearchService
	geocoder *geo.Geocoder
	logger   *zap.Logger
}

func NewPlaceHandler(search *geo.SearchService, geocoder *geo.Geocoder, logger *zap.Logger) *PlaceHandler {
	return &PlaceHandler{search: search, geocoder: geocoder, logger: logger}
}

// Search returns autocomplete candidates for the given query. Candidates
// missing a title or subtitle are filtered out.
func (h *PlaceHandler) Search(c *gin.Context) {
	query := c.Query("q")
	candidates, err := h.search.Search(c.Request.Context(), query)
	if err != nil {
		h.logger.Error("place search failed", zap.String("query", query), zap.Error(err))
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: "Place search unavailable"})
		return
	}
	c.JSON(http.StatusOK, candidates)
}

// Resolve looks up the coordinate and display name for a selected candidate.
func (h *PlaceHandler) Resolve(c *gin.Context) {
	var req models.ResolvePlaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	place, err := h.search.Resolve(c.Request.Context(), models.PlaceCandidate{
		PlaceID: req.PlaceID,
		Title:   req.Title,
	})
	if err != nil {
		if errors.Is(err, geo.ErrPlaceNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Place not found"})
			return
		}
		mapServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, place)
}

// Reverse resolves a coordinate to a human-readable address.
func (h *PlaceHandler) Reverse(c *gin.Context) {
	lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
	lng, errLng := strconv.ParseFloat(c.Query("lng"), 64)
	if errLat != nil || errLng != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid coordinates", Details: "lat and lng must be decimal numbers"})
		return
	}

	address, err := h.geocoder.ReverseGeocode(c.Request.Context(), lat, lng)
	if err != nil {
		if errors.Is(err, geo.ErrNoAddress) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "No address found for coordinate"})
			return
		}
		h.logger.Error("reverse geocode failed", zap.Float64("lat", lat), zap.Float64("lng", lng), zap.Error(err))
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: "Reverse geocoding unavailable"})
		return
	}

	c.JSON(http.StatusOK, AddressResponse{Address: address})
}
