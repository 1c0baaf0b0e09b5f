package finder

import (
	"context"

	"github.com/kailas-cloud/nearbite/internal/domain/geo"
	"github.com/kailas-cloud/nearbite/internal/domain/options"
	"github.com/kailas-cloud/nearbite/internal/domain/restaurant"
)

// Searcher runs the search pipeline against one source.
type Searcher interface {
	Search(
		ctx context.Context, center geo.Coordinates, radiusMiles float64, opts options.Options,
	) ([]restaurant.Restaurant, error)
}
