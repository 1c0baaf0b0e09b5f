package documenu

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/nearbite/internal/domain"
	"github.com/kailas-cloud/nearbite/internal/domain/geo"
	"github.com/kailas-cloud/nearbite/internal/domain/restaurant"
	"github.com/kailas-cloud/nearbite/internal/metrics"
)

const (
	// DefaultBaseURL is the public Documenu API host.
	DefaultBaseURL = "https://api.documenu.com"
	// DefaultKeyHeader carries the API key.
	DefaultKeyHeader = "X-API-KEY"

	geoSearchPath  = "/v2/restaurants/search/geo"
	sourceLabel    = "documenu"
	maxErrBodySize = 4 << 10
)

var errMissingKey = errors.New("api key not loaded")

// Client is a restaurant source backed by the Documenu geo search API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	keyHeader  string
	logger     *zap.Logger
}

// Config holds the Documenu client settings.
type Config struct {
	BaseURL    string
	APIKey     string
	KeyHeader  string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// NewClient creates a Documenu client.
func NewClient(cfg *Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	keyHeader := cfg.KeyHeader
	if keyHeader == "" {
		keyHeader = DefaultKeyHeader
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     cfg.APIKey,
		keyHeader:  keyHeader,
		logger:     logger,
	}
}

// Search issues one geo search request. Any transport, status or envelope
// failure is returned as a *domain.NetworkError.
func (c *Client) Search(
	ctx context.Context, center geo.Coordinates, radiusMiles float64,
) ([]restaurant.Restaurant, error) {
	reqURL := c.searchURL(center, radiusMiles)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, domain.NewNetworkError(http.MethodGet, reqURL, 0, err)
	}
	req.Header.Set(c.keyHeader, c.apiKey)
	req.Header.Set("Accept", "application/json")

	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.recordError("transport")
		return nil, domain.NewNetworkError(http.MethodGet, reqURL, 0, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.recordError("status")
		return nil, domain.NewNetworkError(http.MethodGet, reqURL, resp.StatusCode, readErrorDetail(resp.Body))
	}

	batch, err := Decode(resp.Body)
	if err != nil {
		c.recordError("decode")
		return nil, domain.NewNetworkError(http.MethodGet, reqURL, resp.StatusCode, err)
	}

	metrics.SearchRequestsTotal.WithLabelValues(sourceLabel, "success").Inc()
	metrics.SearchRequestDuration.WithLabelValues(sourceLabel).Observe(time.Since(start).Seconds())

	if batch.Skipped > 0 {
		metrics.SearchSkippedEntriesTotal.WithLabelValues(sourceLabel).Add(float64(batch.Skipped))
		c.logger.Warn("Skipped malformed restaurant entries",
			zap.Int("skipped", batch.Skipped),
			zap.Int("kept", len(batch.Restaurants)),
		)
	}

	return batch.Restaurants, nil
}

// HealthCheck reports whether a key is loaded. The API has no free endpoint to probe.
func (c *Client) HealthCheck(_ context.Context) error {
	if c.apiKey == "" {
		return errMissingKey
	}
	return nil
}

func (c *Client) searchURL(center geo.Coordinates, radiusMiles float64) string {
	q := url.Values{}
	q.Set("lat", formatFloat(center.Lat))
	q.Set("lon", formatFloat(center.Lon))
	q.Set("distance", formatFloat(radiusMiles))
	return c.baseURL + geoSearchPath + "?" + q.Encode()
}

func (c *Client) recordError(kind string) {
	metrics.SearchRequestsTotal.WithLabelValues(sourceLabel, "error").Inc()
	metrics.SearchErrorsTotal.WithLabelValues(sourceLabel, kind).Inc()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// readErrorDetail extracts "message" from a JSON error body, else the raw (truncated) body.
func readErrorDetail(body io.Reader) error {
	data, _ := io.ReadAll(io.LimitReader(body, maxErrBodySize))
	var parsed struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(data, &parsed) == nil && parsed.Message != "" {
		return errors.New(parsed.Message)
	}
	if s := strings.TrimSpace(string(data)); s != "" {
		return fmt.Errorf("body: %s", s)
	}
	return nil
}
