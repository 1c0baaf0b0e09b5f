package fixture

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/nearbite/fixtures"
	"github.com/kailas-cloud/nearbite/internal/domain"
	"github.com/kailas-cloud/nearbite/internal/domain/geo"
	"github.com/kailas-cloud/nearbite/internal/domain/restaurant"
	"github.com/kailas-cloud/nearbite/internal/metrics"
	"github.com/kailas-cloud/nearbite/internal/transport/documenu"
)

const (
	sourceLabel = "local"
	readMethod  = "READ"
)

// Source serves a stored search response. It ignores center and radius and
// always returns the whole file, which is what offline demos want.
type Source struct {
	fsys   fs.FS
	name   string
	logger *zap.Logger
}

// New creates a source reading name from fsys.
func New(fsys fs.FS, name string, logger *zap.Logger) *Source {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Source{fsys: fsys, name: name, logger: logger}
}

// NewFromPath reads the response from a file on disk. An empty path selects
// the bundled sample.
func NewFromPath(path string, logger *zap.Logger) *Source {
	if path == "" {
		return New(fixtures.FS, fixtures.DefaultFile, logger)
	}
	return New(os.DirFS(filepath.Dir(path)), filepath.Base(path), logger)
}

// Search decodes the stored response.
func (s *Source) Search(ctx context.Context, _ geo.Coordinates, _ float64) ([]restaurant.Restaurant, error) {
	start := time.Now()

	if err := ctx.Err(); err != nil {
		return nil, s.fail("canceled", err)
	}

	f, err := s.fsys.Open(s.name)
	if err != nil {
		return nil, s.fail("open", err)
	}
	defer func() { _ = f.Close() }()

	batch, err := documenu.Decode(f)
	if err != nil {
		return nil, s.fail("decode", err)
	}

	metrics.SearchRequestsTotal.WithLabelValues(sourceLabel, "success").Inc()
	metrics.SearchRequestDuration.WithLabelValues(sourceLabel).Observe(time.Since(start).Seconds())

	if batch.Skipped > 0 {
		metrics.SearchSkippedEntriesTotal.WithLabelValues(sourceLabel).Add(float64(batch.Skipped))
		s.logger.Warn("Skipped malformed restaurant entries",
			zap.String("file", s.name),
			zap.Int("skipped", batch.Skipped),
			zap.Int("kept", len(batch.Restaurants)),
		)
	}

	return batch.Restaurants, nil
}

func (s *Source) fail(kind string, err error) error {
	metrics.SearchRequestsTotal.WithLabelValues(sourceLabel, "error").Inc()
	metrics.SearchErrorsTotal.WithLabelValues(sourceLabel, kind).Inc()
	return domain.NewNetworkError(readMethod, s.location(), 0, fmt.Errorf("local fixture: %w", err))
}

func (s *Source) location() string {
	return "file://" + s.name
}
