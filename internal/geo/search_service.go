package geo

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"googlemaps.github.io/maps"

	"github.com/RaevaDesai/CommunityFund/internal/models"
	"github.com/RaevaDesai/CommunityFund/internal/watch"
)

// ErrPlaceNotFound is returned when a candidate cannot be resolved to a
// coordinate.
var ErrPlaceNotFound = errors.New("place not found")

// defaultDebounce is the quiet period between keystrokes before a search is
// issued.
const defaultDebounce = 300 * time.Millisecond

// SearchService is the place search adapter. SetQuery updates a debounced
// search fragment; Results publishes the candidate list for the most recent
// query. A search superseded by a newer query, or by a selection, never
// overwrites later state: every in-flight search carries a generation that is
// retired when anything newer starts.
type SearchService struct {
	api      mapsAPI
	logger   *zap.Logger
	debounce time.Duration

	results *watch.Value[[]models.PlaceCandidate]

	mu    sync.Mutex
	gen   uint64
	timer *time.Timer
}

// NewSearchService creates a place search adapter with the default debounce
// interval.
func NewSearchService(api mapsAPI, logger *zap.Logger) *SearchService {
	return NewSearchServiceWithDebounce(api, logger, defaultDebounce)
}

// NewSearchServiceWithDebounce creates a place search adapter with an
// explicit debounce interval (tests use a short one).
func NewSearchServiceWithDebounce(api mapsAPI, logger *zap.Logger, debounce time.Duration) *SearchService {
	return &SearchService{
		api:      api,
		logger:   logger,
		debounce: debounce,
		results:  watch.NewValueOf([]models.PlaceCandidate{}),
	}
}

// Results is the published live candidate list, filtered to candidates that
// carry both a title and a subtitle.
func (s *SearchService) Results() *watch.Value[[]models.PlaceCandidate] { return s.results }

// SetQuery updates the search fragment. The search runs after the debounce
// quiet period unless a newer query or a selection supersedes it first. An
// empty query clears the results immediately.
func (s *SearchService) SetQuery(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.gen++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}

	query = strings.TrimSpace(query)
	if query == "" {
		s.results.Set([]models.PlaceCandidate{})
		return
	}

	g := s.gen
	s.timer = time.AfterFunc(s.debounce, func() {
		s.runSearch(g, query)
	})
}

// runSearch issues the autocomplete request for a debounced query and
// publishes the filtered candidates, unless the generation was retired while
// the request was in flight.
func (s *SearchService) runSearch(g uint64, query string) {
	s.mu.Lock()
	stale := s.gen != g
	s.mu.Unlock()
	if stale {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	resp, err := s.api.PlaceAutocomplete(ctx, &maps.PlaceAutocompleteRequest{Input: query})
	if err != nil {
		// Search failures degrade to the previous candidate list.
		s.logger.Warn("place autocomplete failed", zap.String("query", query), zap.Error(err))
		return
	}

	candidates := filterCandidates(resp.Predictions)

	// Generation re-check under the lock: the publish and the staleness
	// decision must be atomic or a superseded search could land last.
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != g {
		return
	}
	s.results.Set(candidates)
}

// filterCandidates keeps only predictions with both a title and a subtitle.
func filterCandidates(predictions []maps.AutocompletePrediction) []models.PlaceCandidate {
	candidates := make([]models.PlaceCandidate, 0, len(predictions))
	for _, p := range predictions {
		title := p.StructuredFormatting.MainText
		subtitle := p.StructuredFormatting.SecondaryText
		if title == "" || subtitle == "" {
			continue
		}
		candidates = append(candidates, models.PlaceCandidate{
			Title:    title,
			Subtitle: subtitle,
			PlaceID:  p.PlaceID,
		})
	}
	return candidates
}

// Search issues an immediate, non-debounced autocomplete request and returns
// the filtered candidates without touching the published Results. Used by
// one-shot callers; interactive input goes through SetQuery.
func (s *SearchService) Search(ctx context.Context, query string) ([]models.PlaceCandidate, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []models.PlaceCandidate{}, nil
	}
	resp, err := s.api.PlaceAutocomplete(ctx, &maps.PlaceAutocompleteRequest{Input: query})
	if err != nil {
		return nil, err
	}
	return filterCandidates(resp.Predictions), nil
}

// Resolve looks up the selected candidate's coordinate and display name. It
// also retires any in-flight search so a stale result cannot overwrite the
// state that followed the selection.
func (s *SearchService) Resolve(ctx context.Context, candidate models.PlaceCandidate) (*models.ResolvedPlace, error) {
	s.mu.Lock()
	s.gen++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.mu.Unlock()

	result, err := s.api.PlaceDetails(ctx, &maps.PlaceDetailsRequest{PlaceID: candidate.PlaceID})
	if err != nil {
		s.logger.Warn("place details lookup failed", zap.String("placeID", candidate.PlaceID), zap.Error(err))
		return nil, ErrPlaceNotFound
	}

	name := result.Name
	if name == "" {
		name = candidate.Title
	}
	display := name
	if result.FormattedAddress != "" {
		display = name + "\n" + result.FormattedAddress
	}

	return &models.ResolvedPlace{
		Latitude:    result.Geometry.Location.Lat,
		Longitude:   result.Geometry.Location.Lng,
		DisplayName: display,
	}, nil
}
