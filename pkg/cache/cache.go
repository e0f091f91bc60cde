// Package cache provides a small string cache used to shield slow upstream
// reads, currently backed by Redis.
package cache

import (
	"context"
	"time"
)

// Cache is a get/set string cache with per-key expiration.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, expiration time.Duration) error
}
