package cache

import (
	"context"
	"strings"
	"time"

	"github.com/matzehuels/socialgraph/pkg/observability"
)

// MeteredCache reports hits, misses and writes of an inner cache to the
// registered [observability.CacheHooks]. The key type passed to the hooks
// is the key segment before the last hash, e.g. "render" for
// "campus:render:<sha256>".
type MeteredCache struct {
	inner Cache
}

// NewMeteredCache wraps c.
func NewMeteredCache(c Cache) *MeteredCache {
	return &MeteredCache{inner: c}
}

// Get delegates to the inner cache and records a hit or a miss.
// Backend errors are recorded as misses.
func (c *MeteredCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, ok, err := c.inner.Get(ctx, key)
	if ok {
		observability.Cache().OnCacheHit(ctx, keyType(key))
	} else {
		observability.Cache().OnCacheMiss(ctx, keyType(key))
	}
	return data, ok, err
}

// Set delegates to the inner cache and records successful writes.
func (c *MeteredCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if err := c.inner.Set(ctx, key, data, ttl); err != nil {
		return err
	}
	observability.Cache().OnCacheSet(ctx, keyType(key), len(data))
	return nil
}

func (c *MeteredCache) Delete(ctx context.Context, key string) error {
	return c.inner.Delete(ctx, key)
}

func (c *MeteredCache) Close() error {
	return c.inner.Close()
}

func keyType(key string) string {
	i := strings.LastIndexByte(key, ':')
	if i < 0 {
		return "unknown"
	}
	key = key[:i]
	if j := strings.LastIndexByte(key, ':'); j >= 0 {
		key = key[j+1:]
	}
	if key == "" {
		return "unknown"
	}
	return key
}

var _ Cache = (*MeteredCache)(nil)
