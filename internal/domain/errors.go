package domain

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	// ErrNetwork signals a failed upstream search request or an unreadable response.
	ErrNetwork = errors.New("network error")
	// ErrConfigLoad signals that the key file could not be loaded at startup.
	ErrConfigLoad = errors.New("config load error")
	// ErrInvalidOptions signals a rejected search options update.
	ErrInvalidOptions = errors.New("invalid search options")
	// ErrInvalidCoordinates signals a search center outside lat/lon bounds.
	ErrInvalidCoordinates = errors.New("invalid coordinates")
	// ErrSearchSuperseded signals that a newer search for the same session cancelled this one.
	ErrSearchSuperseded = errors.New("search superseded")
)

// NetworkError describes the request that failed. The URL never contains the API key.
type NetworkError struct {
	Method     string
	URL        string
	StatusCode int
	Err        error
}

func (e *NetworkError) Error() string {
	msg := ErrNetwork.Error() + ": " + e.Method + " " + e.URL
	if e.StatusCode != 0 {
		msg += ": status " + strconv.Itoa(e.StatusCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both the sentinel and the underlying cause to errors.Is/As.
func (e *NetworkError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrNetwork}
	}
	return []error{ErrNetwork, e.Err}
}

// NewNetworkError creates a NetworkError for the given request.
func NewNetworkError(method, url string, status int, cause error) error {
	return &NetworkError{Method: method, URL: url, StatusCode: status, Err: cause}
}

// ConfigLoadError wraps ErrConfigLoad with the path that failed to load.
type ConfigLoadError struct {
	Path string
	Err  error
}

func (e *ConfigLoadError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrConfigLoad.Error(), e.Path, e.Err)
}

func (e *ConfigLoadError) Unwrap() []error { return []error{ErrConfigLoad, e.Err} }

// NewConfigLoadError creates a ConfigLoadError.
func NewConfigLoadError(path string, cause error) error {
	return &ConfigLoadError{Path: path, Err: cause}
}
