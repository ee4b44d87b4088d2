// Package cache provides a byte cache for rendered network artifacts.
//
// # Overview
//
// Rendering a large network through Graphviz is the slowest thing the CLI
// and server do. Artifacts are therefore cached under keys derived from a
// hash of the network content and the render options: an unchanged network
// rendered with unchanged options is served from the cache.
//
// # Backends
//
//   - [FileCache]: entries as JSON files under a directory, for the CLI
//   - [MemoryCache]: a bounded LRU in process memory, for a single server
//   - [RedisCache]: a shared Redis instance, for server deployments
//   - [NullCache]: never stores anything, for --no-cache and tests
//
// # Keys
//
// A [Keyer] builds keys. [DefaultKeyer] produces "render:<sha256>" and
// "report:<sha256>" keys; [ScopedKeyer] adds a prefix so several networks
// or tenants can share one Redis database.
//
//	keyer := cache.NewDefaultKeyer()
//	key := keyer.RenderKey(cache.Hash(networkJSON), cache.RenderKeyOpts{Format: "svg"})
//	if data, ok, _ := c.Get(ctx, key); ok {
//	    return data, nil
//	}
package cache

import (
	"context"
	"time"
)

// Default TTLs for cached entries.
const (
	RenderTTL = 7 * 24 * time.Hour
	ReportTTL = 24 * time.Hour
)

// Cache stores opaque byte slices under string keys.
//
// Get reports a miss as (nil, false, nil); errors are reserved for backend
// failures. A zero ttl stores the entry without expiration.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// NullCache stores nothing: every Get misses and every write succeeds.
// It backs --no-cache and stands in when no backend could be opened.
type NullCache struct{}

// NewNullCache returns a cache that never holds entries.
func NewNullCache() Cache { return &NullCache{} }

func (*NullCache) Get(context.Context, string) ([]byte, bool, error)         { return nil, false, nil }
func (*NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (*NullCache) Delete(context.Context, string) error                     { return nil }
func (*NullCache) Close() error                                             { return nil }

var _ Cache = (*NullCache)(nil)
