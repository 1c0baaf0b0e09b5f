package nearbite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/nearbite/fixtures"
	"github.com/kailas-cloud/nearbite/internal/db"
	dbRedis "github.com/kailas-cloud/nearbite/internal/db/redis"
	"github.com/kailas-cloud/nearbite/internal/domain/card"
	"github.com/kailas-cloud/nearbite/internal/domain/geo"
	"github.com/kailas-cloud/nearbite/internal/domain/options"
	"github.com/kailas-cloud/nearbite/internal/domain/restaurant"
	"github.com/kailas-cloud/nearbite/internal/repository/resultcache"
	"github.com/kailas-cloud/nearbite/internal/transport/documenu"
	"github.com/kailas-cloud/nearbite/internal/transport/fixture"
	healthuc "github.com/kailas-cloud/nearbite/internal/usecase/health"
	searchuc "github.com/kailas-cloud/nearbite/internal/usecase/search"
)

const (
	defaultReadinessTimeout = 10 * time.Second
	defaultTimeout          = 10 * time.Second
	defaultCacheTTL         = 5 * time.Minute
)

// Internal interfaces, swapped out in tests.
type searchUseCase interface {
	Search(ctx context.Context, center geo.Coordinates, radiusMiles float64, opts options.Options) ([]restaurant.Restaurant, error)
}

type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}

// Client is the nearbite library entry point. It is safe for concurrent use.
type Client struct {
	store     db.Store
	searchSvc searchUseCase
	healthSvc healthUseCase
	obs       *observer
}

// New creates a Client. Without WithDocumenu or an offline option it
// returns an error. The provided context is used for the cache readiness
// check when a cache is configured.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		timeout:  defaultTimeout,
		cacheTTL: defaultCacheTTL,
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	if !cfg.offline && cfg.apiKey == "" {
		return nil, errors.New("nearbite: api key required (use WithDocumenu, WithFixture or WithOfflineSample)")
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	var store db.Store
	if len(cfg.addrs) > 0 && !cfg.offline {
		s, err := createStore(cfg)
		if err != nil {
			return nil, err
		}
		if err := s.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
			s.Close()
			return nil, fmt.Errorf("nearbite: cache not ready: %w", err)
		}
		store = s
	}

	return wireClient(store, cfg, obs), nil
}

func createStore(cfg *clientConfig) (*dbRedis.Store, error) {
	switch cfg.driver {
	case "valkey", "redis":
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:      cfg.addrs,
			Password:   cfg.password,
			Standalone: cfg.standalone,
		})
		if err != nil {
			return nil, fmt.Errorf("nearbite: create %s store: %w", cfg.driver, err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("nearbite: unknown driver %q", cfg.driver)
	}
}

func wireClient(store db.Store, cfg *clientConfig, obs *observer) *Client {
	logger := zap.NewNop()

	var (
		src      searchuc.Source
		provider healthuc.ProviderChecker
	)
	if cfg.offline {
		fsys, name := cfg.fixtureFS, cfg.fixtureName
		if fsys == nil {
			fsys, name = fixtures.FS, fixtures.DefaultFile
		}
		src = fixture.New(fsys, name, logger)
	} else {
		remote := documenu.NewClient(&documenu.Config{
			BaseURL:    cfg.baseURL,
			APIKey:     cfg.apiKey,
			Timeout:    cfg.timeout,
			HTTPClient: cfg.httpClient,
			Logger:     logger,
		})
		src, provider = remote, remote
		if store != nil {
			src = resultcache.New(remote, store, resultcache.Options{
				Name: "documenu",
				TTL:  cfg.cacheTTL,
			}, logger)
		}
	}

	// Pass a nil interface, not a typed nil pointer, when there is no cache.
	var cachePinger healthuc.CachePinger
	if store != nil {
		cachePinger = store
	}

	return &Client{
		store:     store,
		searchSvc: searchuc.New(src),
		healthSvc: healthuc.New(cachePinger, provider),
		obs:       obs,
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Search finds restaurants within opts.Distance miles of (lat, lon). When
// opts.OnlyTagMatches is set, restaurants sharing no cuisine with opts.Tags
// are dropped. Order follows the provider.
func (c *Client) Search(ctx context.Context, lat, lon float64, opts SearchOptions) (_ Result, err error) {
	start := time.Now()
	defer func() { c.obs.observe("search", start, err, "lat", lat, "lon", lon) }()

	distance := opts.Distance
	if distance == 0 {
		distance = options.DefaultSearchDistance
	}
	o, err := options.New(distance, opts.Tags, opts.OnlyTagMatches)
	if err != nil {
		return Result{}, fmt.Errorf("search: %w", err)
	}

	center := geo.Coordinates{Lat: lat, Lon: lon}
	records, err := c.searchSvc.Search(ctx, center, o.SearchDistance(), o)
	if err != nil {
		return Result{}, fmt.Errorf("search: %w", err)
	}

	bounds := geo.BoundsAround(center, o.SearchDistance())
	return Result{
		Center:    Point{Lat: lat, Lon: lon},
		SouthWest: pointFromCoords(bounds.SouthWest),
		NorthEast: pointFromCoords(bounds.NorthEast),
		Zoom:      card.SearchZoom,
		Cards:     cardsFromDomain(card.FromRestaurants(records, center)),
	}, nil
}

func pointFromCoords(c geo.Coordinates) Point {
	return Point{Lat: c.Lat, Lon: c.Lon}
}

func cardsFromDomain(cs []card.Card) []Card {
	out := make([]Card, len(cs))
	for i, c := range cs {
		cuisines := c.Cuisines
		if cuisines == nil {
			cuisines = []string{}
		}
		out[i] = Card{
			Name:           c.Name,
			Street:         c.Street,
			Phone:          c.Phone,
			Website:        c.Website,
			Cuisines:       cuisines,
			Marker:         Point{Lat: c.Marker.Lat, Lon: c.Marker.Lon},
			DistanceMeters: c.DistanceMeters,
		}
	}
	return out
}
