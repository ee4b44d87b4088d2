package cache

import (
	"bytes"
	"context"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultMemoryEntries bounds a [MemoryCache] created with a non-positive size.
const DefaultMemoryEntries = 256

// MemoryCache keeps the most recently used entries in process memory. It
// suits a long-running server, where a file cache would only add disk I/O.
type MemoryCache struct {
	entries *lru.Cache[string, memoryEntry]
	now     func() time.Time
}

type memoryEntry struct {
	data    []byte
	expires time.Time // zero: never
}

// NewMemoryCache returns a cache holding at most size entries. The least
// recently used entry is evicted first.
func NewMemoryCache(size int) *MemoryCache {
	if size <= 0 {
		size = DefaultMemoryEntries
	}
	entries, _ := lru.New[string, memoryEntry](size) // fails only for size <= 0
	return &MemoryCache{entries: entries, now: time.Now}
}

func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	e, ok := c.entries.Get(key)
	if !ok {
		return nil, false, nil
	}
	if !e.expires.IsZero() && c.now().After(e.expires) {
		c.entries.Remove(key)
		return nil, false, nil
	}
	return e.data, true, nil
}

func (c *MemoryCache) Set(_ context.Context, key string, data []byte, ttl time.Duration) error {
	e := memoryEntry{data: bytes.Clone(data)}
	if ttl > 0 {
		e.expires = c.now().Add(ttl)
	}
	c.entries.Add(key, e)
	return nil
}

func (c *MemoryCache) Delete(_ context.Context, key string) error {
	c.entries.Remove(key)
	return nil
}

// Len returns the number of entries held, including expired ones not yet
// looked up.
func (c *MemoryCache) Len() int { return c.entries.Len() }

// Close drops every entry.
func (c *MemoryCache) Close() error {
	c.entries.Purge()
	return nil
}

var _ Cache = (*MemoryCache)(nil)
