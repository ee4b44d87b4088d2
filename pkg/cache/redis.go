package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisConfig configures a Redis-backed cache.
type RedisConfig struct {
	Addr     string // host:port
	Password string
	DB       int
	Prefix   string // prepended to every key, e.g. "socialgraph:cache:"
	Attempts int    // tries per Get or Set on connection errors; 0 means 3
}

// RedisCache stores entries in Redis. TTLs map directly onto Redis key
// expiration.
type RedisCache struct {
	client   redis.UniversalClient
	prefix   string
	attempts int
}

// NewRedisCache connects to Redis and verifies the connection with PING.
func NewRedisCache(ctx context.Context, cfg RedisConfig) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%w: redis %s: %v", ErrUnavailable, cfg.Addr, err)
	}
	c := NewRedisCacheFromClient(client, cfg.Prefix)
	if cfg.Attempts > 0 {
		c.attempts = cfg.Attempts
	}
	return c, nil
}

// NewRedisCacheFromClient wraps an existing client. The cache takes
// ownership: Close closes the client.
func NewRedisCacheFromClient(client redis.UniversalClient, prefix string) *RedisCache {
	return &RedisCache{client: client, prefix: prefix, attempts: 3}
}

// Get retrieves a value from Redis. Transient failures are retried.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var data []byte
	hit := false
	err := withRetry(ctx, c.attempts, func() error {
		v, err := c.client.Get(ctx, c.prefix+key).Bytes()
		switch {
		case errors.Is(err, redis.Nil):
			return nil
		case err != nil:
			return classify(err)
		}
		data, hit = v, true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return data, hit, nil
}

// Set stores a value in Redis. A zero ttl stores without expiration.
func (c *RedisCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return withRetry(ctx, c.attempts, func() error {
		return classify(c.client.Set(ctx, c.prefix+key, data, ttl).Err())
	})
}

// Delete removes a value from Redis. Deleting a missing key is not an error.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return classify(c.client.Del(ctx, c.prefix+key).Err())
}

// Close closes the underlying client.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// classify marks connection-level failures as transient. Context errors
// stay permanent so a cancelled request is not retried.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return transient(fmt.Errorf("%w: %v", ErrUnavailable, err))
}

// Ensure RedisCache implements Cache.
var _ Cache = (*RedisCache)(nil)
