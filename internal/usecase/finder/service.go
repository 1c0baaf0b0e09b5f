package finder

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kailas-cloud/nearbite/internal/domain"
	"github.com/kailas-cloud/nearbite/internal/domain/card"
	"github.com/kailas-cloud/nearbite/internal/domain/cuisine"
	"github.com/kailas-cloud/nearbite/internal/domain/geo"
	"github.com/kailas-cloud/nearbite/internal/domain/options"
	logpkg "github.com/kailas-cloud/nearbite/internal/logger"
)

// Source selects where restaurants come from.
type Source string

const (
	// SourceRemote is the restaurant API.
	SourceRemote Source = "remote"
	// SourceLocal is the stored fixture response.
	SourceLocal Source = "local"
)

// Outcome is one completed search, ready for presentation.
type Outcome struct {
	ID      uuid.UUID
	Source  Source
	Center  geo.Coordinates
	Bounds  geo.Bounds
	Zoom    float64
	Options options.Options
	Cards   []card.Card
}

type inflight struct {
	id     uuid.UUID
	cancel context.CancelCauseFunc
}

// Controller owns the search options and runs searches per session.
// A new search for a session cancels the one still running for it.
type Controller struct {
	searchers map[Source]Searcher
	zoom      float64
	logger    *zap.Logger

	mu   sync.RWMutex
	opts options.Options

	inflightMu sync.Mutex
	inflight   map[string]inflight
}

// New creates a Controller. zoom <= 0 selects card.SearchZoom.
func New(searchers map[Source]Searcher, initial options.Options, zoom float64, logger *zap.Logger) *Controller {
	if zoom <= 0 {
		zoom = card.SearchZoom
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		searchers: searchers,
		zoom:      zoom,
		logger:    logger,
		opts:      initial,
		inflight:  make(map[string]inflight),
	}
}

// Options returns a snapshot of the current options.
func (c *Controller) Options() options.Options {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.opts
}

// SetOnlyShowTagMatches replaces the match-only flag.
func (c *Controller) SetOnlyShowTagMatches(v bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.opts.SetOnlyShowTagMatches(v)
}

// SetSearchTags replaces the tag set.
func (c *Controller) SetSearchTags(tags []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.opts.SetSearchTags(cuisine.NewTagSet(tags...))
}

// SetSearchDistance replaces the search radius in miles.
func (c *Controller) SetSearchDistance(miles float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.opts.SetSearchDistance(miles)
}

// Update applies a partial update atomically and returns the result.
func (c *Controller) Update(p options.Patch) (options.Options, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	next, err := c.opts.Apply(p)
	if err != nil {
		return c.opts, err
	}
	c.opts = next
	return next, nil
}

// HasSource reports whether src is configured.
func (c *Controller) HasSource(src Source) bool {
	_, ok := c.searchers[src]
	return ok
}

// Search runs one search around center with the current options. session
// scopes cancellation; an empty session is never superseded.
// Results of a superseded search are discarded and ErrSearchSuperseded is
// returned together with the cancellation error.
func (c *Controller) Search(
	ctx context.Context, session string, src Source, center geo.Coordinates,
) (Outcome, error) {
	searcher, ok := c.searchers[src]
	if !ok {
		return Outcome{}, fmt.Errorf("%w: unknown source %q", domain.ErrInvalidOptions, src)
	}

	opts := c.Options()
	id := uuid.New()
	log := logpkg.FromContextOr(ctx, c.logger).With(
		zap.String("search_id", id.String()),
		zap.String("source", string(src)),
	)

	ctx, release := c.begin(ctx, session, id)
	defer release()

	records, err := searcher.Search(ctx, center, opts.SearchDistance(), opts)
	if superseded(ctx) {
		log.Debug("Search superseded", zap.String("session", session))
		if err == nil {
			err = ctx.Err()
		}
		return Outcome{}, fmt.Errorf("search %s: %w: %w", id, domain.ErrSearchSuperseded, err)
	}
	if err != nil {
		c.logFailure(log, err)
		return Outcome{}, fmt.Errorf("search %s: %w", id, err)
	}

	log.Debug("Search completed", zap.Int("results", len(records)))

	return Outcome{
		ID:      id,
		Source:  src,
		Center:  center,
		Bounds:  geo.BoundsAround(center, opts.SearchDistance()),
		Zoom:    c.zoom,
		Options: opts,
		Cards:   card.FromRestaurants(records, center),
	}, nil
}

// begin registers the search for session, cancelling the previous one.
func (c *Controller) begin(ctx context.Context, session string, id uuid.UUID) (context.Context, func()) {
	ctx, cancel := context.WithCancelCause(ctx)
	if session == "" {
		return ctx, func() { cancel(nil) }
	}

	c.inflightMu.Lock()
	if prev, ok := c.inflight[session]; ok {
		prev.cancel(domain.ErrSearchSuperseded)
	}
	c.inflight[session] = inflight{id: id, cancel: cancel}
	c.inflightMu.Unlock()

	return ctx, func() {
		c.inflightMu.Lock()
		if cur, ok := c.inflight[session]; ok && cur.id == id {
			delete(c.inflight, session)
		}
		c.inflightMu.Unlock()
		cancel(nil)
	}
}

// Inflight returns the number of sessions with a running search.
func (c *Controller) Inflight() int {
	c.inflightMu.Lock()
	defer c.inflightMu.Unlock()
	return len(c.inflight)
}

func superseded(ctx context.Context) bool {
	return errors.Is(context.Cause(ctx), domain.ErrSearchSuperseded)
}

func (c *Controller) logFailure(log *zap.Logger, err error) {
	var ne *domain.NetworkError
	switch {
	case errors.Is(err, context.Canceled):
		log.Info("Search cancelled", zap.Error(err))
	case errors.As(err, &ne):
		log.Error("Restaurant search failed",
			zap.String("method", ne.Method),
			zap.String("url", ne.URL),
			zap.Int("status", ne.StatusCode),
			zap.Error(err),
		)
	case errors.Is(err, domain.ErrInvalidCoordinates), errors.Is(err, domain.ErrInvalidOptions):
		log.Debug("Search rejected", zap.Error(err))
	default:
		log.Error("Search failed", zap.Error(err))
	}
}
