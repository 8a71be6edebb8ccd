// Package cache provides a small TTL key-value store used for
// entitlement lookups. A nil Cache degrades to always-miss.
package cache

import (
	"context"
	"time"
)

type Cache interface {
	// Get returns the value and whether the key was present and unexpired.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set stores value for ttl. A ttl of zero means no expiration.
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
