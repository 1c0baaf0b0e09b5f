package documenu

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/nearbite/internal/domain"
	"github.com/kailas-cloud/nearbite/internal/domain/geo"
)

var center = geo.Coordinates{Lat: 39, Lon: -94}

func newTestClient(baseURL, key string) *Client {
	return NewClient(&Config{
		BaseURL: baseURL,
		APIKey:  key,
		Timeout: 5 * time.Second,
		Logger:  zap.NewNop(),
	})
}

func TestClient_Search(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("unexpected method: %s", r.Method)
		}
		if r.URL.Path != "/v2/restaurants/search/geo" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("lat") != "39" || q.Get("lon") != "-94" || q.Get("distance") != "5" {
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
		}
		if r.Header.Get("X-API-KEY") != "test-key" {
			t.Errorf("unexpected key header: %q", r.Header.Get("X-API-KEY"))
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(twoRestaurants))
	}))
	defer server.Close()

	records, err := newTestClient(server.URL, "test-key").Search(context.Background(), center, 5)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(records) != 2 || records[0].Name() != "A" || records[1].Name() != "B" {
		t.Fatalf("unexpected records: %+v", records)
	}
}

func TestClient_Search_FractionalQuery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("lat") != "39.0997" || q.Get("lon") != "-94.5786" || q.Get("distance") != "2.5" {
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(`{"data": []}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL+"/", "k")
	if _, err := c.Search(context.Background(), geo.Coordinates{Lat: 39.0997, Lon: -94.5786}, 2.5); err != nil {
		t.Fatalf("Search failed: %v", err)
	}
}

func TestClient_Search_Unauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message": "Invalid API key"}`))
	}))
	defer server.Close()

	records, err := newTestClient(server.URL, "").Search(context.Background(), center, 5)
	if records != nil {
		t.Errorf("expected no records, got %d", len(records))
	}

	var ne *domain.NetworkError
	if !errors.As(err, &ne) {
		t.Fatalf("expected *domain.NetworkError, got %v", err)
	}
	if ne.StatusCode != http.StatusUnauthorized {
		t.Errorf("StatusCode = %d, want 401", ne.StatusCode)
	}
	if !strings.Contains(err.Error(), "Invalid API key") {
		t.Errorf("error should carry upstream message: %v", err)
	}
	if !strings.Contains(ne.URL, "/v2/restaurants/search/geo?") {
		t.Errorf("error should describe the request, got URL %q", ne.URL)
	}
}

func TestClient_Search_KeyNotInErrorURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL, "super-secret").Search(context.Background(), center, 5)
	if err == nil {
		t.Fatal("expected error")
	}
	if strings.Contains(err.Error(), "super-secret") {
		t.Fatalf("api key leaked into error: %v", err)
	}
}

func TestClient_Search_UnparsableBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL, "k").Search(context.Background(), center, 5)
	if !errors.Is(err, domain.ErrNetwork) {
		t.Fatalf("expected ErrNetwork, got %v", err)
	}
}

func TestClient_Search_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := newTestClient(url, "k").Search(context.Background(), center, 5)
	if !errors.Is(err, domain.ErrNetwork) {
		t.Fatalf("expected ErrNetwork, got %v", err)
	}
}

func TestClient_Search_Cancelled(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	_, err := newTestClient(server.URL, "k").Search(ctx, center, 5)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if !errors.Is(err, domain.ErrNetwork) {
		t.Fatalf("expected ErrNetwork, got %v", err)
	}
}

func TestClient_HealthCheck(t *testing.T) {
	if err := newTestClient("http://unused", "").HealthCheck(context.Background()); err == nil {
		t.Error("expected error when key is empty")
	}
	if err := newTestClient("http://unused", "k").HealthCheck(context.Background()); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient(&Config{})
	if c.baseURL != DefaultBaseURL {
		t.Errorf("baseURL = %q", c.baseURL)
	}
	if c.keyHeader != DefaultKeyHeader {
		t.Errorf("keyHeader = %q", c.keyHeader)
	}
}
