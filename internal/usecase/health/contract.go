package health

import "context"

// CachePinger checks search cache availability.
type CachePinger interface {
	Ping(ctx context.Context) error
}

// ProviderChecker checks that the restaurant provider is usable.
type ProviderChecker interface {
	HealthCheck(ctx context.Context) error
}
