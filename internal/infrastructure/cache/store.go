package cache

import (
	"context"
	"time"
)

// Store is the answer-cache surface. Redis backs it in deployments; the
// in-memory store covers single-node runs with REDIS_ENABLED=false and tests.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
