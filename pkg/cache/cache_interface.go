package cache

import (
	"context"
	"time"
)

// Cache is the key/value contract used by services. Implementations must
// treat a missing key as a miss, not an error.
type Cache interface {
	// Get unmarshals the cached value into dest and reports whether the key existed
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores value with a TTL
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes keys; missing keys are ignored
	Delete(ctx context.Context, keys ...string) error

	// Incr atomically increments an integer counter, starting from 0
	Incr(ctx context.Context, key string) (int64, error)

	Ping(ctx context.Context) error
}
