package repository

import (
	"context"
	"time"
)

// CacheRepository is a best-effort key/value cache. Failures are never
// fatal to the workflows that use it.
type CacheRepository interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
}
