// Package cache stores extraction results between runs.
//
// Extraction is keyed by a hash of the file content, so a cache entry stays
// valid for as long as the file is unchanged, regardless of where it lives.
// The CLI uses [FileCache] under the XDG cache directory; [NullCache]
// disables caching.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key-value store with optional expiry.
type Cache interface {
	// Get returns the stored value and true, or nil and false on a miss.
	// Expired entries are misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}
