package geo

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"googlemaps.github.io/maps"
)

// ErrNoAddress is returned when a coordinate has no reverse geocoding result.
var ErrNoAddress = errors.New("address not available")

// componentOrder is the display order for reverse geocoded address parts:
// street number, street, city, state, postal code, country.
var componentOrder = []string{
	"street_number",
	"route",
	"locality",
	"administrative_area_level_1",
	"postal_code",
	"country",
}

// Geocoder is the reverse geocode adapter: coordinate to a human-readable
// address string.
type Geocoder struct {
	api    mapsAPI
	logger *zap.Logger
}

// NewGeocoder creates a reverse geocode adapter.
func NewGeocoder(api mapsAPI, logger *zap.Logger) *Geocoder {
	return &Geocoder{api: api, logger: logger}
}

// ReverseGeocode resolves a coordinate to an address string assembled from
// the first result's components, falling back to its formatted address.
func (g *Geocoder) ReverseGeocode(ctx context.Context, lat, lng float64) (string, error) {
	results, err := g.api.ReverseGeocode(ctx, &maps.GeocodingRequest{
		LatLng: &maps.LatLng{Lat: lat, Lng: lng},
	})
	if err != nil {
		g.logger.Warn("reverse geocode failed",
			zap.Float64("lat", lat), zap.Float64("lng", lng), zap.Error(err))
		return "", ErrNoAddress
	}
	if len(results) == 0 {
		return "", ErrNoAddress
	}

	first := results[0]
	byType := make(map[string]string)
	for _, comp := range first.AddressComponents {
		for _, t := range comp.Types {
			if _, ok := byType[t]; !ok {
				byType[t] = comp.LongName
			}
		}
	}

	parts := make([]string, 0, len(componentOrder))
	for _, t := range componentOrder {
		if v := byType[t]; v != "" {
			parts = append(parts, v)
		}
	}
	if len(parts) == 0 {
		if first.FormattedAddress == "" {
			return "", ErrNoAddress
		}
		return first.FormattedAddress, nil
	}
	return strings.Join(parts, ", "), nil
}
