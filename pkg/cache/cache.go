// Package cache stores rendered artifacts keyed by a hash of their inputs.
//
// # Overview
//
// Rendering a scene file is deterministic: the same document, target and
// minidraw version always produce the same bytes. The CLI therefore keys
// rendered output by [ArtifactKey] and skips the work on a hit:
//
//	c, err := cache.NewFileCache(afero.NewOsFs(), dir)
//	key := cache.ArtifactKey("svg", src, buildinfo.Version)
//	out, hit, err := cache.Fetch(ctx, c, key, cache.DefaultTTL, render)
//
// # Implementations
//
//   - [FileCache] keeps one JSON entry per key on an [afero.Fs]
//   - [NullCache] never stores anything, for --no-cache and tests
//
// [Fetch] reports hits, misses and writes to the cache hooks of
// [observability].
package cache

import (
	"context"
	"strings"
	"time"

	"github.com/matzehuels/minidraw/pkg/observability"
)

// DefaultTTL is how long rendered artifacts stay valid.
const DefaultTTL = 7 * 24 * time.Hour

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the value for key. A missing or expired entry is a miss,
	// not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// Fetch returns the cached value for key, or calls compute on a miss and
// stores its result. The second result reports a hit. Failing to store a
// computed value is not an error; the value is returned regardless.
func Fetch(ctx context.Context, c Cache, key string, ttl time.Duration, compute func() ([]byte, error)) ([]byte, bool, error) {
	hooks := observability.Cache()
	kind := keyType(key)

	if data, ok, err := c.Get(ctx, key); err == nil && ok {
		hooks.OnCacheHit(ctx, kind)
		return data, true, nil
	}
	hooks.OnCacheMiss(ctx, kind)

	data, err := compute()
	if err != nil {
		return nil, false, err
	}
	if err := c.Set(ctx, key, data, ttl); err == nil {
		hooks.OnCacheSet(ctx, kind, len(data))
	}
	return data, false, nil
}

// keyType returns the prefix of a key built by hashKey.
func keyType(key string) string {
	if i := strings.IndexByte(key, ':'); i > 0 {
		return key[:i]
	}
	return "unknown"
}

// NullCache is a no-op cache that never stores anything.
type NullCache struct{}

// NewNullCache creates a null cache.
func NewNullCache() *NullCache { return &NullCache{} }

// Get always returns a miss.
func (*NullCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

// Set does nothing.
func (*NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }

// Delete does nothing.
func (*NullCache) Delete(context.Context, string) error { return nil }

// Close does nothing.
func (*NullCache) Close() error { return nil }

var _ Cache = (*NullCache)(nil)
