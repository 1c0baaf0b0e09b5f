package nearbite

import "github.com/kailas-cloud/nearbite/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrNetwork            = domain.ErrNetwork
	ErrInvalidOptions     = domain.ErrInvalidOptions
	ErrInvalidCoordinates = domain.ErrInvalidCoordinates
)

// NetworkError describes a failed provider request. Use errors.As to read
// the status code.
type NetworkError = domain.NetworkError
