// internal/numcache/store.go
package numcache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis"

	"abtools-core/numbering"
)

// Store is a cache shared between processes.
type Store interface {
	Get(ctx context.Context, key string) ([]numbering.Domain, bool, error)
	Set(ctx context.Context, key string, ds []numbering.Domain, ttl time.Duration) error
}

// KeyPrefix namespaces abtools entries in a shared store.
const KeyPrefix = "abtools:num:"

// RedisStore keeps JSON-encoded domains in Redis.
type RedisStore struct {
	client *redis.Client
}

var _ Store = (*RedisStore)(nil)

// NewRedisStore connects to addr (host:port) and checks it with PING.
func NewRedisStore(addr string) (*RedisStore, error) {
	c := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   0,
	})
	if err := c.Ping().Err(); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("redis %s: %w", addr, err)
	}
	logger.Debugf("shared cache at %s", addr)
	return &RedisStore{client: c}, nil
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]numbering.Domain, bool, error) {
	val, err := s.client.WithContext(ctx).Get(KeyPrefix + key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var ds []numbering.Domain
	if err := json.Unmarshal(val, &ds); err != nil {
		return nil, false, fmt.Errorf("decode %s: %w", key, err)
	}
	return ds, true, nil
}

// Set stores ds for ttl; 0 keeps the entry until evicted.
func (s *RedisStore) Set(ctx context.Context, key string, ds []numbering.Domain, ttl time.Duration) error {
	b, err := json.Marshal(ds)
	if err != nil {
		return err
	}
	return s.client.WithContext(ctx).Set(KeyPrefix+key, b, ttl).Err()
}

// Close releases the connection pool.
func (s *RedisStore) Close() error { return s.client.Close() }
