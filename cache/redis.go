package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"business-heatmap/utils"
)

// ErrMiss is returned by Get when the key is not cached.
var ErrMiss = errors.New("cache: miss")

// RedisCache stores raw API responses in Redis.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache connects to Redis and verifies the connection, retrying the
// ping with back-off.
func NewRedisCache(ctx context.Context, opts *redis.Options, retry *utils.RetryConfig) (*RedisCache, error) {
	client := redis.NewClient(opts)
	ping := func() error { return client.Ping(ctx).Err() }

	var err error
	if retry != nil {
		err = retry.Do(ctx, "redis-ping", ping)
	} else {
		err = ping()
	}
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("cache: connect to redis at %s: %w", opts.Addr, err)
	}
	return &RedisCache{client: client}, nil
}

// NewRedisCacheFromClient wraps an existing client without pinging it.
func NewRedisCacheFromClient(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

// Get retrieves a value from cache.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	result, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, fmt.Errorf("cache: get %s: %w", key, err)
	}
	return result, nil
}

// Set stores a value with an expiration in seconds.
func (c *RedisCache) Set(ctx context.Context, key string, value []byte, expirationSeconds int) error {
	expiration := time.Duration(expirationSeconds) * time.Second
	if err := c.client.Set(ctx, key, value, expiration).Err(); err != nil {
		return fmt.Errorf("cache: set %s: %w", key, err)
	}
	return nil
}

// Close closes the Redis connection.
func (c *RedisCache) Close() error {
	return c.client.Close()
}
