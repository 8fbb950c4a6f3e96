package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	redis "github.com/redis/go-redis/v9"

	"waypoint-route-service/internal/domain"
)

const redisKeyPrefix = "directions:"

// RedisDirectionsCache stores directions results as JSON values with a TTL.
// A zero TTL keeps entries until evicted.
type RedisDirectionsCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisDirectionsCache(rdb *redis.Client, ttl time.Duration) *RedisDirectionsCache {
	return &RedisDirectionsCache{rdb: rdb, ttl: ttl}
}

// NewRedisDirectionsCacheFromURL parses a redis:// URL and verifies the connection.
func NewRedisDirectionsCacheFromURL(ctx context.Context, url string, ttl time.Duration) (*RedisDirectionsCache, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis directions cache: parse url: %w", err)
	}

	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis directions cache: ping: %w", err)
	}

	return NewRedisDirectionsCache(rdb, ttl), nil
}

func (c *RedisDirectionsCache) Get(ctx context.Context, key string) (domain.Directions, bool, error) {
	if strings.TrimSpace(key) == "" {
		return domain.Directions{}, false, errors.New("get directions cache: key must not be empty")
	}

	raw, err := c.rdb.Get(ctx, redisKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Directions{}, false, nil
	}
	if err != nil {
		return domain.Directions{}, false, fmt.Errorf("get directions cache: redis get: %w", err)
	}

	var d domain.Directions
	if err := json.Unmarshal(raw, &d); err != nil {
		return domain.Directions{}, false, fmt.Errorf("get directions cache: decode: %w", err)
	}

	return d, true, nil
}

func (c *RedisDirectionsCache) Put(ctx context.Context, key string, d domain.Directions) error {
	if strings.TrimSpace(key) == "" {
		return errors.New("insert directions cache: key must not be empty")
	}

	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("insert directions cache: encode: %w", err)
	}

	if err := c.rdb.Set(ctx, redisKeyPrefix+key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("insert directions cache key=%q: %w", key, err)
	}

	return nil
}

func (c *RedisDirectionsCache) Close() error { return c.rdb.Close() }
