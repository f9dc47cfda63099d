// Package cache stores rendered and converted outputs keyed by the content
// of the inputs that produced them.
//
// [FileCache] keeps entries as JSON files under a directory (the CLI uses
// $XDG_CACHE_HOME/gfak). [RedisCache] keeps them in a Redis server shared
// between machines. [NullCache] stores nothing and is used when caching is
// disabled. Keys come from a [Keyer] so that the same inputs and options
// always map to the same entry.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the value for key. A miss is reported with hit == false
	// and a nil error.
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)
	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases resources held by the cache.
	Close() error
}

// Default TTLs. Outputs are a pure function of input bytes and options, so
// they only expire to bound the cache size.
const (
	ArtifactTTL = 7 * 24 * time.Hour
	ConvertTTL  = 24 * time.Hour
)
