// Package cache provides byte-level caching of rendered PNG artifacts.
//
// Keys are derived from the SVG content hash plus the rendering options, so
// identical inputs hit the cache and produce byte-identical output. Three
// backends are provided: a file cache for CLI use, a Redis cache for serve
// mode, and a null cache for disabling caching entirely.
package cache

import (
	"context"
	"time"
)

// Cache stores rendered artifacts.
type Cache interface {
	// Get retrieves a value. The bool reports whether the key was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of 0 means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
