package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/kailas-cloud/nearbite/internal/domain"
)

func TestValidate_InvalidPort(t *testing.T) {
	cfg := Default()
	cfg.HTTP.Port = 0

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_NegativeDistance(t *testing.T) {
	cfg := Default()
	cfg.Search.DefaultDistance = -1

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for negative distance")
	}
}

func TestValidate_Cache(t *testing.T) {
	tests := []struct {
		name    string
		cache   CacheConfig
		wantErr bool
	}{
		{"disabled without addrs", CacheConfig{Driver: "valkey"}, false},
		{"enabled valkey", CacheConfig{Enabled: true, Driver: "valkey", Addrs: []string{"localhost:6379"}}, false},
		{"enabled redis", CacheConfig{Enabled: true, Driver: "redis", Addrs: []string{"localhost:6379"}}, false},
		{"enabled without addrs", CacheConfig{Enabled: true, Driver: "valkey"}, true},
		{"unknown driver", CacheConfig{Enabled: true, Driver: "memcached", Addrs: []string{"x"}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Cache = tt.cache

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("expected ShutdownSec=10, got %d", cfg.HTTP.ShutdownSec)
	}
	if cfg.Provider.BaseURL != "https://api.documenu.com" {
		t.Errorf("unexpected BaseURL %q", cfg.Provider.BaseURL)
	}
	if cfg.Provider.KeyHeader != "X-API-KEY" {
		t.Errorf("unexpected KeyHeader %q", cfg.Provider.KeyHeader)
	}
	if cfg.Provider.Timeout() != 10*time.Second {
		t.Errorf("expected 10s timeout, got %v", cfg.Provider.Timeout())
	}
	if cfg.Map.Zoom != 15.9 {
		t.Errorf("expected Zoom=15.9, got %v", cfg.Map.Zoom)
	}
	if cfg.Search.DefaultDistance != 5 {
		t.Errorf("expected DefaultDistance=5, got %v", cfg.Search.DefaultDistance)
	}
	if cfg.Cache.Driver != "valkey" {
		t.Errorf("expected Driver=valkey, got %q", cfg.Cache.Driver)
	}
	if cfg.Cache.TTL() != 5*time.Minute {
		t.Errorf("expected TTL=5m, got %v", cfg.Cache.TTL())
	}
	if cfg.Cache.KeyPrefix != "nearbite:search:" {
		t.Errorf("unexpected KeyPrefix %q", cfg.Cache.KeyPrefix)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP:     HTTPConfig{ReadTimeoutSec: 30, WriteTimeoutSec: 60, ShutdownSec: 5},
		Provider: ProviderConfig{BaseURL: "http://localhost:9999", TimeoutSec: 3},
		Search:   SearchConfig{DefaultDistance: 1.5},
		Cache:    CacheConfig{KeyPrefix: "custom:", TTLSec: 30},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.WriteTimeoutSec != 60 {
		t.Errorf("expected WriteTimeoutSec=60, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.Provider.BaseURL != "http://localhost:9999" {
		t.Errorf("unexpected BaseURL %q", cfg.Provider.BaseURL)
	}
	if cfg.Provider.Timeout() != 3*time.Second {
		t.Errorf("expected 3s, got %v", cfg.Provider.Timeout())
	}
	if cfg.Search.DefaultDistance != 1.5 {
		t.Errorf("expected 1.5, got %v", cfg.Search.DefaultDistance)
	}
	if cfg.Cache.KeyPrefix != "custom:" {
		t.Errorf("expected KeyPrefix='custom:', got %q", cfg.Cache.KeyPrefix)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("NEARBITE_TEST_SET", "value")

	tests := []struct {
		in   string
		want string
	}{
		{"${NEARBITE_TEST_SET}", "value"},
		{"${NEARBITE_TEST_SET:-fallback}", "value"},
		{"${NEARBITE_TEST_UNSET:-fallback}", "fallback"},
		{"${NEARBITE_TEST_UNSET}", ""},
		{"plain", "plain"},
	}
	for _, tt := range tests {
		if got := string(expandEnvVars([]byte(tt.in))); got != tt.want {
			t.Errorf("expandEnvVars(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLoadFile(t *testing.T) {
	t.Setenv("NEARBITE_TEST_PORT", "9090")

	path := filepath.Join(t.TempDir(), "test.yaml")
	body := `
http:
  port: ${NEARBITE_TEST_PORT}
provider:
  api_key: abc
search:
  default_distance: 2
  default_tags: [Burgers, Sushi]
  only_show_tag_matches: true
`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if cfg.HTTP.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.HTTP.Port)
	}
	if cfg.Provider.APIKey != "abc" {
		t.Errorf("unexpected api key %q", cfg.Provider.APIKey)
	}
	if len(cfg.Search.DefaultTags) != 2 || !cfg.Search.OnlyShowTagMatches {
		t.Errorf("unexpected search config: %+v", cfg.Search)
	}
	if cfg.Map.Zoom != 15.9 {
		t.Errorf("defaults not applied: zoom=%v", cfg.Map.Zoom)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys.json")
	if err := os.WriteFile(path, []byte(`{"mapboxkey": "pk.map", "documenukey": "doc"}`), 0o600); err != nil {
		t.Fatal(err)
	}

	keys, err := LoadKeys(path)
	if err != nil {
		t.Fatalf("LoadKeys failed: %v", err)
	}
	if keys.MapboxKey != "pk.map" || keys.DocumenuKey != "doc" {
		t.Errorf("unexpected keys: %+v", keys)
	}
}

func TestLoadKeys_Errors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`{"mapboxkey": `), 0o600); err != nil {
		t.Fatal(err)
	}

	for _, path := range []string{filepath.Join(dir, "missing.json"), bad} {
		_, err := LoadKeys(path)
		if !errors.Is(err, domain.ErrConfigLoad) {
			t.Fatalf("expected ErrConfigLoad for %s, got %v", path, err)
		}
		var cle *domain.ConfigLoadError
		if !errors.As(err, &cle) || cle.Path != path {
			t.Fatalf("expected ConfigLoadError with path %s, got %v", path, err)
		}
	}
}

func TestResolveKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys.json")
	if err := os.WriteFile(path, []byte(`{"mapboxkey": "file-map", "documenukey": "file-doc"}`), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg := Default()
	cfg.Provider.KeyFile = path
	cfg.Provider.APIKey = "yaml-doc"

	if err := cfg.ResolveKeys(); err != nil {
		t.Fatalf("ResolveKeys failed: %v", err)
	}
	if cfg.Provider.APIKey != "yaml-doc" {
		t.Errorf("yaml key should win, got %q", cfg.Provider.APIKey)
	}
	if cfg.Map.Token != "file-map" {
		t.Errorf("map token should come from file, got %q", cfg.Map.Token)
	}
}

func TestResolveKeys_MissingFileKeepsEmptyKeys(t *testing.T) {
	cfg := Default()
	cfg.Provider.KeyFile = filepath.Join(t.TempDir(), "missing.json")

	err := cfg.ResolveKeys()
	if !errors.Is(err, domain.ErrConfigLoad) {
		t.Fatalf("expected ErrConfigLoad, got %v", err)
	}
	if cfg.Provider.APIKey != "" || cfg.Map.Token != "" {
		t.Errorf("keys should stay empty: %+v", cfg.Provider)
	}
}

func TestResolveKeys_NoFile(t *testing.T) {
	cfg := Default()
	if err := cfg.ResolveKeys(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
