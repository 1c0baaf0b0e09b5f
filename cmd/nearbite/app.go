package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/nearbite/internal/config"
	"github.com/kailas-cloud/nearbite/internal/db"
	dbRedis "github.com/kailas-cloud/nearbite/internal/db/redis"
	"github.com/kailas-cloud/nearbite/internal/domain/options"
	"github.com/kailas-cloud/nearbite/internal/metrics"
	"github.com/kailas-cloud/nearbite/internal/repository/resultcache"
	"github.com/kailas-cloud/nearbite/internal/transport/documenu"
	"github.com/kailas-cloud/nearbite/internal/transport/fixture"
	finderuc "github.com/kailas-cloud/nearbite/internal/usecase/finder"
	healthuc "github.com/kailas-cloud/nearbite/internal/usecase/health"
	searchuc "github.com/kailas-cloud/nearbite/internal/usecase/search"
)

// loadConfig resolves --env/ENV and --config. A missing config file is not
// an error for the CLI; defaults apply.
func loadConfig(cmd *cobra.Command) (string, config.Config, error) {
	env, _ := cmd.Flags().GetString(envFlag)
	if env == "" {
		env = config.GetEnv()
	}

	path, _ := cmd.Flags().GetString(configFlag)
	switch {
	case path != "":
		cfg, err := config.LoadFile(path)
		return env, cfg, err
	case config.Exists(env):
		cfg, err := config.Load(env)
		return env, cfg, err
	default:
		return env, config.Default(), nil
	}
}

// app is the assembled object graph shared by serve and search.
type app struct {
	finder *finderuc.Controller
	health *healthuc.Service
	store  db.Store
}

func (a *app) Close() {
	if a.store != nil {
		a.store.Close()
	}
}

// buildApp is the composition root. The key file is loaded here; a failure is
// logged and the app keeps running with empty keys.
func buildApp(ctx context.Context, cfg *config.Config, initial options.Options, logger *zap.Logger) (*app, error) {
	if err := cfg.ResolveKeys(); err != nil {
		logger.Error("Failed to load key file, continuing with empty keys",
			zap.String("path", cfg.Provider.KeyFile),
			zap.Error(err),
		)
	}

	metrics.RegisterSearchMetrics()

	var store db.Store
	if cfg.Cache.Enabled {
		s, err := newStore(ctx, cfg.Cache, logger)
		if err != nil {
			return nil, err
		}
		store = s
	}

	remote := documenu.NewClient(&documenu.Config{
		BaseURL:   cfg.Provider.BaseURL,
		APIKey:    cfg.Provider.APIKey,
		KeyHeader: cfg.Provider.KeyHeader,
		Timeout:   cfg.Provider.Timeout(),
		Logger:    logger,
	})
	local := fixture.NewFromPath(cfg.Provider.FixturePath, logger)

	searchers := map[finderuc.Source]finderuc.Searcher{
		finderuc.SourceRemote: searchuc.New(cached(remote, "documenu", store, cfg.Cache, logger)),
		finderuc.SourceLocal:  searchuc.New(local),
	}

	// Pass a nil interface, not a typed nil pointer, when there is no cache.
	var cachePinger healthuc.CachePinger
	if store != nil {
		cachePinger = store
	}

	return &app{
		finder: finderuc.New(searchers, initial, cfg.Map.Zoom, logger),
		health: healthuc.New(cachePinger, remote),
		store:  store,
	}, nil
}

func newStore(ctx context.Context, cfg config.CacheConfig, logger *zap.Logger) (db.Store, error) {
	// Valkey and Redis speak the same protocol for the commands the cache uses.
	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:      cfg.Addrs,
		Username:   cfg.Username,
		Password:   cfg.Password,
		Standalone: cfg.Standalone,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s store: %w", cfg.Driver, err)
	}

	if err := store.WaitForReady(ctx, time.Duration(cfg.ReadinessTimeout)*time.Second); err != nil {
		store.Close()
		return nil, fmt.Errorf("%s not ready: %w", cfg.Driver, err)
	}
	logger.Info("Connected to search cache",
		zap.String("driver", cfg.Driver),
		zap.Strings("addrs", cfg.Addrs),
	)
	return store, nil
}

func cached(src searchuc.Source, name string, store db.Store, cfg config.CacheConfig, logger *zap.Logger) searchuc.Source {
	if store == nil {
		return src
	}
	return resultcache.New(src, store, resultcache.Options{
		Name:       name,
		KeyPrefix:  cfg.KeyPrefix,
		TTL:        cfg.TTL(),
		CacheTotal: metrics.SearchCacheTotal,
	}, logger)
}

// initialOptions builds the starting options from config.
func initialOptions(cfg config.SearchConfig) (options.Options, error) {
	opts, err := options.New(cfg.DefaultDistance, cfg.DefaultTags, cfg.OnlyShowTagMatches)
	if err != nil {
		return options.Options{}, fmt.Errorf("search defaults: %w", err)
	}
	return opts, nil
}
