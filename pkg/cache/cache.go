// Package cache stores computed layouts keyed by a hash of their inputs.
//
// Three backends implement [Cache]: [FileCache] for the CLI, [RedisCache] for
// the HTTP service when several instances share results, and [NullCache] when
// caching is disabled. A [Keyer] derives the keys so that every backend names
// entries the same way.
package cache

import (
	"context"
	"time"
)

// TTLLayout is how long a computed layout stays cached.
const TTLLayout = 7 * 24 * time.Hour

// Cache is a byte store with per-entry expiration.
// Implementations are safe for concurrent use.
type Cache interface {
	// Get returns the stored bytes and true on a hit. A miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero or less never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
