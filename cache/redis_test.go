package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"business-heatmap/utils"
)

func unreachable() *redis.Options {
	return &redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	}
}

func TestNewRedisCacheUnreachable(t *testing.T) {
	retry := &utils.RetryConfig{MaxAttempts: 2, BaseDelay: time.Millisecond, Logger: utils.NewNopLogger()}

	c, err := NewRedisCache(context.Background(), unreachable(), retry)
	assert.Nil(t, c)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "127.0.0.1:1")
}

func TestGetOnBrokenConnectionIsNotAMiss(t *testing.T) {
	c := NewRedisCacheFromClient(redis.NewClient(unreachable()))
	defer c.Close()

	_, err := c.Get(context.Background(), "k")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMiss)
}
