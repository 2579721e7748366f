// Package kvcache provides a small bytes key-value cache with TTL used to
// memoize slow external lookups, most notably PubMed citation metadata
// fetched during enrichment.
//
// Three backends are provided: a file cache for CLI usage, a Redis cache
// for long-running services, and a null cache that disables caching
// entirely. All backends share the [Cache] interface and treat corrupt or
// expired entries as misses.
package kvcache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"
)

// ErrCacheMiss is returned by Get when a key is absent or expired.
var ErrCacheMiss = errors.New("cache miss")

// Cache stores opaque byte values under string keys with an optional TTL.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was found; errors are reserved for backend failures.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of zero means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Null is a Cache that stores nothing. Every Get is a miss.
type Null struct{}

// Get always reports a miss.
func (Null) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

// Set discards the value.
func (Null) Set(context.Context, string, []byte, time.Duration) error { return nil }

// Delete does nothing.
func (Null) Delete(context.Context, string) error { return nil }

// Close does nothing.
func (Null) Close() error { return nil }

// Ensure Null implements Cache.
var _ Cache = Null{}

// Key builds a collision-resistant cache key from a namespace prefix and
// an identifier: "prefix:sha256(id)".
func Key(prefix, id string) string {
	sum := sha256.Sum256([]byte(id))
	return prefix + ":" + hex.EncodeToString(sum[:])
}
