package search

import (
	"context"
	"fmt"
	"strconv"

	"github.com/kailas-cloud/nearbite/internal/domain"
	"github.com/kailas-cloud/nearbite/internal/domain/cuisine"
	"github.com/kailas-cloud/nearbite/internal/domain/geo"
	"github.com/kailas-cloud/nearbite/internal/domain/options"
	"github.com/kailas-cloud/nearbite/internal/domain/restaurant"
	"github.com/kailas-cloud/nearbite/internal/metrics"
)

// Service is the search pipeline: fetch, parse, optional cuisine filter.
type Service struct {
	source Source
}

// New creates a search service over a single source.
func New(source Source) *Service {
	return &Service{source: source}
}

// Search runs one fetch against the source and applies the tag filter when
// match-only mode is on. The result is fully materialized and keeps source order.
// It does not retry.
func (s *Service) Search(
	ctx context.Context, center geo.Coordinates, radiusMiles float64, opts options.Options,
) ([]restaurant.Restaurant, error) {
	if !center.Valid() {
		return nil, fmt.Errorf("%w: lat=%v lon=%v", domain.ErrInvalidCoordinates, center.Lat, center.Lon)
	}
	if radiusMiles < 0 {
		return nil, fmt.Errorf("%w: radius must be non-negative, got %v", domain.ErrInvalidOptions, radiusMiles)
	}

	records, err := s.source.Search(ctx, center, radiusMiles)
	if err != nil {
		return nil, fmt.Errorf("fetch restaurants: %w", err)
	}

	filtered := opts.OnlyShowTagMatches()
	if filtered {
		records = cuisine.Filter(records, opts.SearchTags())
	}
	if records == nil {
		records = []restaurant.Restaurant{}
	}

	metrics.SearchResults.WithLabelValues(strconv.FormatBool(filtered)).Observe(float64(len(records)))

	return records, nil
}
