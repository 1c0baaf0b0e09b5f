package nearbite

import (
	"context"

	"github.com/kailas-cloud/nearbite/internal/domain/geo"
	"github.com/kailas-cloud/nearbite/internal/domain/options"
	"github.com/kailas-cloud/nearbite/internal/domain/restaurant"
	healthuc "github.com/kailas-cloud/nearbite/internal/usecase/health"
)

// --- searchUseCase mock ---

type mockSearchUC struct {
	searchFn func(ctx context.Context, center geo.Coordinates, radius float64, opts options.Options) ([]restaurant.Restaurant, error)
}

func (m *mockSearchUC) Search(
	ctx context.Context, center geo.Coordinates, radius float64, opts options.Options,
) ([]restaurant.Restaurant, error) {
	return m.searchFn(ctx, center, radius, opts)
}

// --- healthUseCase mock ---

type mockHealthUC struct {
	report healthuc.Report
}

func (m *mockHealthUC) Check(_ context.Context) healthuc.Report {
	return m.report
}
