// Package cache provides the shared counter/KV store backing the rate
// limiter. A redis implementation serves deployments; the in-memory
// implementation serves tests and redis-less development.
package cache

import (
	"context"
	"errors"
	"time"
)

var ErrInvalidTTL = errors.New("cache: ttl must be > 0")

type Cacher interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, val string, ttl time.Duration) error
	// Incr increments the counter at key and returns the new value. The
	// first increment in a window starts the ttl; later ones leave it
	// untouched, giving fixed-window semantics.
	Incr(ctx context.Context, key string, ttl time.Duration) (int64, error)
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
	Close() error
}
