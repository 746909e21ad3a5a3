package usecase

import (
	"context"
	"time"
)

// SearchCache is the cache port for public job-search results.
// Implementations must degrade to no-ops when the backing store is down.
type SearchCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	SetIfNotExists(ctx context.Context, key string, value string, ttl time.Duration) (bool, error)
	InvalidateJobSearches(ctx context.Context) error
}
