package resultcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/nearbite/internal/db"
	"github.com/kailas-cloud/nearbite/internal/domain/geo"
	"github.com/kailas-cloud/nearbite/internal/domain/restaurant"
)

// DefaultKeyPrefix namespaces cached search results.
const DefaultKeyPrefix = "nearbite:search:"

// store is the consumer interface for the result cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// source is the decorated restaurant source.
type source interface {
	Search(ctx context.Context, center geo.Coordinates, radiusMiles float64) ([]restaurant.Restaurant, error)
}

// Options configures the caching decorator.
type Options struct {
	// Name distinguishes sources sharing one store.
	Name      string
	KeyPrefix string
	TTL       time.Duration
	// CacheTotal is a counter vec with label "result" ("hit"/"miss").
	CacheTotal *prometheus.CounterVec
}

// CachedSource caches parsed search results in a key-value store. Only
// successful fetches are cached; failures always go upstream next time.
type CachedSource struct {
	inner      source
	store      store
	name       string
	prefix     string
	ttl        time.Duration
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a caching decorator around inner.
func New(inner source, s store, opts Options, logger *zap.Logger) *CachedSource {
	prefix := opts.KeyPrefix
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedSource{
		inner:      inner,
		store:      s,
		name:       opts.Name,
		prefix:     prefix,
		ttl:        opts.TTL,
		cacheTotal: opts.CacheTotal,
		logger:     logger,
	}
}

// Search returns cached records for the rounded center and radius, or calls
// the inner source. Store failures are logged and never fail the search.
func (c *CachedSource) Search(
	ctx context.Context, center geo.Coordinates, radiusMiles float64,
) ([]restaurant.Restaurant, error) {
	key := c.cacheKey(center, radiusMiles)

	if records, ok := c.getFromCache(ctx, key); ok {
		c.incCache("hit")
		return records, nil
	}

	c.incCache("miss")

	records, err := c.inner.Search(ctx, center, radiusMiles)
	if err != nil {
		return nil, err
	}

	c.putToCache(ctx, key, records)
	return records, nil
}

func (c *CachedSource) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

// cacheKey rounds the center to 4 decimal places (about 11 m).
func (c *CachedSource) cacheKey(center geo.Coordinates, radiusMiles float64) string {
	return fmt.Sprintf("%s%s:%.4f:%.4f:%s",
		c.prefix, c.name, center.Lat, center.Lon,
		strconv.FormatFloat(radiusMiles, 'f', -1, 64))
}

func (c *CachedSource) getFromCache(ctx context.Context, key string) ([]restaurant.Restaurant, bool) {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("Failed to get cached search result", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	if len(data) == 0 {
		return nil, false
	}

	records, err := unmarshalRecords(data)
	if err != nil {
		c.logger.Warn("Failed to parse cached search result", zap.String("key", key), zap.Error(err))
		return nil, false
	}

	return records, true
}

func (c *CachedSource) putToCache(ctx context.Context, key string, records []restaurant.Restaurant) {
	data, err := marshalRecords(records)
	if err != nil {
		c.logger.Warn("Failed to encode search result", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.store.SetWithTTL(ctx, key, data, c.ttl); err != nil {
		c.logger.Warn("Failed to cache search result", zap.String("key", key), zap.Error(err))
	}
}

type recordDTO struct {
	Name     string   `json:"name"`
	Street   string   `json:"street"`
	Phone    string   `json:"phone"`
	Website  string   `json:"website"`
	Cuisines []string `json:"cuisines"`
	Lat      float64  `json:"lat"`
	Lon      float64  `json:"lon"`
}

func marshalRecords(records []restaurant.Restaurant) ([]byte, error) {
	dtos := make([]recordDTO, len(records))
	for i, r := range records {
		loc := r.Location()
		dtos[i] = recordDTO{
			Name:     r.Name(),
			Street:   r.Street(),
			Phone:    r.Phone(),
			Website:  r.Website(),
			Cuisines: r.Cuisines(),
			Lat:      loc.Lat,
			Lon:      loc.Lon,
		}
	}
	return json.Marshal(dtos)
}

func unmarshalRecords(data []byte) ([]restaurant.Restaurant, error) {
	var dtos []recordDTO
	if err := json.Unmarshal(data, &dtos); err != nil {
		return nil, fmt.Errorf("unmarshal cached records: %w", err)
	}
	records := make([]restaurant.Restaurant, len(dtos))
	for i, d := range dtos {
		cuisines := d.Cuisines
		if cuisines == nil {
			cuisines = []string{}
		}
		records[i] = restaurant.New(d.Name, d.Street, d.Phone, d.Website, cuisines,
			geo.Coordinates{Lat: d.Lat, Lon: d.Lon})
	}
	return records, nil
}
