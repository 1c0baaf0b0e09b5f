package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kailas-cloud/nearbite/internal/domain"
)

// Keys is the JSON key file loaded once at startup.
type Keys struct {
	MapboxKey   string `json:"mapboxkey"`
	DocumenuKey string `json:"documenukey"`
}

// LoadKeys reads the key file. Any failure is a *domain.ConfigLoadError; the
// caller logs it and keeps running with empty keys.
func LoadKeys(path string) (Keys, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Keys{}, domain.NewConfigLoadError(path, err)
	}

	var keys Keys
	if err := json.Unmarshal(data, &keys); err != nil {
		return Keys{}, domain.NewConfigLoadError(path, fmt.Errorf("parse key file: %w", err))
	}
	return keys, nil
}

// ResolveKeys fills the provider key and map token from the key file when
// they are not set in YAML. It returns the load error, if any, with cfg
// unchanged for the fields the file would have supplied.
func (c *Config) ResolveKeys() error {
	if c.Provider.KeyFile == "" {
		return nil
	}
	if c.Provider.APIKey != "" && c.Map.Token != "" {
		return nil
	}

	keys, err := LoadKeys(c.Provider.KeyFile)
	if err != nil {
		return err
	}
	if c.Provider.APIKey == "" {
		c.Provider.APIKey = keys.DocumenuKey
	}
	if c.Map.Token == "" {
		c.Map.Token = keys.MapboxKey
	}
	return nil
}
