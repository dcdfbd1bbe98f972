package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache stores JSON-encoded values under a key prefix. Redis errors and
// undecodable payloads are treated as misses so callers fall back to the store.
type RedisCache[T any] struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

var _ Cache[string] = (*RedisCache[string])(nil)

func NewRedisCache[T any](client *redis.Client, prefix string, ttl time.Duration) *RedisCache[T] {
	if ttl < 0 {
		ttl = 0
	}
	return &RedisCache[T]{client: client, prefix: prefix, ttl: ttl}
}

// NewRedisClient parses a redis:// URL and verifies the server answers.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

func (c *RedisCache[T]) key(k string) string {
	return c.prefix + k
}

func (c *RedisCache[T]) Get(ctx context.Context, key string) (T, bool) {
	var zero T
	if c.client == nil {
		return zero, false
	}
	data, err := c.client.Get(ctx, c.key(key)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.WarnContext(ctx, "Redis cache read failed", "key", c.key(key), "error", err)
			_ = c.client.Del(ctx, c.key(key)).Err()
		}
		return zero, false
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		_ = c.client.Del(ctx, c.key(key)).Err()
		return zero, false
	}
	return v, true
}

func (c *RedisCache[T]) Set(ctx context.Context, key string, data T) {
	if c.client == nil || c.ttl == 0 {
		return
	}
	payload, err := json.Marshal(data)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, c.key(key), payload, c.ttl).Err(); err != nil {
		slog.WarnContext(ctx, "Redis cache write failed", "key", c.key(key), "error", err)
	}
}

func (c *RedisCache[T]) Delete(ctx context.Context, key string) {
	if c.client == nil {
		return
	}
	_ = c.client.Del(ctx, c.key(key)).Err()
}

// Size counts keys under the prefix. Returns -1 when Redis is unreachable.
func (c *RedisCache[T]) Size(ctx context.Context) int {
	if c.client == nil {
		return -1
	}
	n := 0
	iter := c.client.Scan(ctx, 0, c.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		n++
	}
	if iter.Err() != nil {
		return -1
	}
	return n
}
