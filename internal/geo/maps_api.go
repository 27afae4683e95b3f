// Package geo wraps the platform mapping service: prefix search over
// addresses and points of interest, candidate-to-coordinate resolution, and
// reverse geocoding. Everything here is transient; nothing is persisted.
package geo

import (
	"context"

	"googlemaps.github.io/maps"
)

// mapsAPI is the slice of the Google Maps client the adapters need.
// *maps.Client satisfies it; tests substitute fakes.
type mapsAPI interface {
	PlaceAutocomplete(ctx context.Context, r *maps.PlaceAutocompleteRequest) (maps.AutocompleteResponse, error)
	PlaceDetails(ctx context.Context, r *maps.PlaceDetailsRequest) (maps.PlaceDetailsResult, error)
	ReverseGeocode(ctx context.Context, r *maps.GeocodingRequest) ([]maps.GeocodingResult, error)
}

// NewMapsClient builds the shared Google Maps client from an API key.
func NewMapsClient(apiKey string) (*maps.Client, error) {
	return maps.NewClient(maps.WithAPIKey(apiKey))
}
