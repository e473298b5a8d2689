package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisCache is a Cache backed by Redis, with an in-memory copy of every
// write. Any Redis error is logged at warn level and never surfaced to the
// caller: a failed read is answered from the in-memory copy, and a miss
// there leaves the report to be recomputed from scratch.
type RedisCache struct {
	rdb      *redis.Client
	logger   *zap.Logger
	fallback *MemoryCache
}

// NewRedisCache connects to addr. The connection is verified with a short
// ping; callers should fall back to NewMemoryCache() if this returns an
// error rather than treat it as fatal.
func NewRedisCache(addr string, logger *zap.Logger) (*RedisCache, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisCache{rdb: rdb, logger: logger, fallback: NewMemoryCache()}, nil
}

// Get retrieves value from Redis, falling back to the in-memory cache on
// any error (including a miss, which is not an error but still falls
// through to the fallback check for consistency with Set's behavior).
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := c.rdb.Get(ctx, key).Bytes()
	if err == nil {
		return val, true
	}
	if err != redis.Nil {
		c.logger.Warn("redis cache get failed, falling back to memory", zap.Error(err), zap.String("key", key))
	}
	return c.fallback.Get(ctx, key)
}

// Set writes value to Redis and to the in-memory fallback. A Redis error
// is logged but never returned — the in-memory write still succeeds.
func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if err := c.rdb.Set(ctx, key, value, ttl).Err(); err != nil {
		c.logger.Warn("redis cache set failed", zap.Error(err), zap.String("key", key))
	}
	c.fallback.Set(ctx, key, value, ttl)
}

// Close releases the underlying Redis connection.
func (c *RedisCache) Close() error {
	return c.rdb.Close()
}
