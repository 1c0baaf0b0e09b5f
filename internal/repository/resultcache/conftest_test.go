package resultcache

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/nearbite/internal/db"
	"github.com/kailas-cloud/nearbite/internal/domain/geo"
	"github.com/kailas-cloud/nearbite/internal/domain/restaurant"
)

type mockSource struct {
	records []restaurant.Restaurant
	err     error
	calls   int
}

func (m *mockSource) Search(_ context.Context, _ geo.Coordinates, _ float64) ([]restaurant.Restaurant, error) {
	m.calls++
	return m.records, m.err
}

// mockKVStore implements the consumer interface for tests.
type mockKVStore struct {
	getFn func(ctx context.Context, key string) ([]byte, error)
	setFn func(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

func (m *mockKVStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockKVStore) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.setFn != nil {
		return m.setFn(ctx, key, value, ttl)
	}
	return nil
}

func newTestCachedSource(t *testing.T, inner *mockSource) (*CachedSource, *mockKVStore) {
	t.Helper()
	ms := &mockKVStore{}
	cs := New(inner, ms, Options{Name: "documenu", TTL: time.Minute}, zap.NewNop())
	return cs, ms
}
