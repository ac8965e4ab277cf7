package redisx

import (
	"context"
	"encoding/json"
	"time"

	redis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Cache is a read-through JSON response cache. Get and Set swallow Redis
// errors: a broken cache must degrade to direct queries, never break a
// dashboard request.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

func NewCache(addr string, ttl time.Duration, log *zap.Logger) *Cache {
	c := redis.NewClient(&redis.Options{Addr: addr})
	return &Cache{client: c, ttl: ttl, log: log}
}

// Get unmarshals the cached payload into v and reports whether it was found.
func (c *Cache) Get(ctx context.Context, key string, v any) bool {
	b, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		c.log.Warn("cache get failed", zap.String("key", key), zap.Error(err))
		return false
	}
	if err := json.Unmarshal(b, v); err != nil {
		c.log.Warn("cache payload corrupt", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

// Set stores v as JSON under key with the configured TTL.
func (c *Cache) Set(ctx context.Context, key string, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		c.log.Warn("cache marshal failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, key, b, c.ttl).Err(); err != nil {
		c.log.Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}
}

// InvalidatePrefix deletes every key under the prefix. SCAN keeps the
// traversal incremental so a large keyspace never blocks Redis.
func (c *Cache) InvalidatePrefix(ctx context.Context, prefix string) error {
	iter := c.client.Scan(ctx, 0, prefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
		if len(keys) >= 100 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return err
			}
			keys = keys[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) > 0 {
		return c.client.Del(ctx, keys...).Err()
	}
	return nil
}

func (c *Cache) Close() { _ = c.client.Close() }

// GetClient returns the underlying Redis client for rate limiting.
func (c *Cache) GetClient() *redis.Client {
	return c.client
}
