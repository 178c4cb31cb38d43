package cache

import "context"

// Cache is a generic key-value cache.
type Cache interface {
	// Get populates dest (a pointer) with the value stored under key.
	// Returns (true, nil) on a hit, (false, nil) on a miss.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set serializes and stores val with a TTL in seconds.
	Set(ctx context.Context, key string, val interface{}, ttlSecs int) error

	// Delete removes key from the cache.
	Delete(ctx context.Context, key string) error
}
