package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/matzehuels/socialgraph/pkg/errors"
	"github.com/matzehuels/socialgraph/pkg/network"
)

// Redis key layout.
const (
	redisKeyPrefix = "socialgraph:snapshot:"
	redisIndexKey  = "socialgraph:snapshots"
)

// RedisConfig configures a Redis snapshot store.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// RedisStore keeps each snapshot as a JSON string under
// "socialgraph:snapshot:<name>" and tracks names in the
// "socialgraph:snapshots" set.
type RedisStore struct {
	client redis.UniversalClient
}

// NewRedisStore connects to Redis and verifies the connection with PING.
func NewRedisStore(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, storageError(BackendRedis, "connect "+cfg.Addr, err)
	}
	return NewRedisStoreFromClient(client), nil
}

// NewRedisStoreFromClient wraps an existing client. Close closes it.
func NewRedisStoreFromClient(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client}
}

func redisKey(name string) string { return redisKeyPrefix + name }

// Save writes the snapshot and its index entry in one transaction.
func (s *RedisStore) Save(ctx context.Context, name string, n *network.Network) (Snapshot, error) {
	rec, err := newRecord(name, n)
	if err != nil {
		return Snapshot{}, err
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return Snapshot{}, fmt.Errorf("marshal snapshot: %w", err)
	}
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, redisKey(name), data, 0)
		pipe.SAdd(ctx, redisIndexKey, name)
		return nil
	})
	if err != nil {
		return Snapshot{}, storageError(BackendRedis, "save "+name, err)
	}
	return rec.Snapshot, nil
}

// Load fetches and rebuilds a snapshot.
func (s *RedisStore) Load(ctx context.Context, name string) (*network.Network, error) {
	if err := apperrors.ValidateSnapshotName(name); err != nil {
		return nil, err
	}
	data, err := s.client.Get(ctx, redisKey(name)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, notFound(name)
	}
	if err != nil {
		return nil, storageError(BackendRedis, "load "+name, err)
	}
	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, storageError(BackendRedis, "parse "+name, err)
	}
	return rec.network()
}

// List returns all indexed snapshots ordered by name. Index entries whose
// key has vanished are skipped.
func (s *RedisStore) List(ctx context.Context) ([]Snapshot, error) {
	names, err := s.client.SMembers(ctx, redisIndexKey).Result()
	if err != nil {
		return nil, storageError(BackendRedis, "list", err)
	}
	out := []Snapshot{}
	if len(names) == 0 {
		return out, nil
	}

	keys := make([]string, len(names))
	for i, name := range names {
		keys[i] = redisKey(name)
	}
	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, storageError(BackendRedis, "list", err)
	}
	for _, v := range values {
		str, ok := v.(string)
		if !ok {
			continue
		}
		var rec record
		if err := json.Unmarshal([]byte(str), &rec); err != nil {
			continue
		}
		out = append(out, rec.Snapshot)
	}
	sortSnapshots(out)
	return out, nil
}

// Delete removes a snapshot and its index entry.
func (s *RedisStore) Delete(ctx context.Context, name string) error {
	if err := apperrors.ValidateSnapshotName(name); err != nil {
		return err
	}
	var del *redis.IntCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		del = pipe.Del(ctx, redisKey(name))
		pipe.SRem(ctx, redisIndexKey, name)
		return nil
	})
	if err != nil {
		return storageError(BackendRedis, "delete "+name, err)
	}
	if del.Val() == 0 {
		return notFound(name)
	}
	return nil
}

// Close closes the underlying client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

var _ Store = (*RedisStore)(nil)
