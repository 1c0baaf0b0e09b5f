package search

import (
	"context"

	"github.com/kailas-cloud/nearbite/internal/domain/geo"
	"github.com/kailas-cloud/nearbite/internal/domain/restaurant"
)

// Source fetches and parses restaurants around center within radiusMiles.
// Implementations return *domain.NetworkError (wrapped) when the request or
// response as a whole fails.
type Source interface {
	Search(ctx context.Context, center geo.Coordinates, radiusMiles float64) ([]restaurant.Restaurant, error)
}
