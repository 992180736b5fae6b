package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mapportal/internal/platform/config"
)

func TestOptions(t *testing.T) {
	t.Run("config overrides pool and timeouts", func(t *testing.T) {
		opts, err := Options(config.RedisConfig{
			URL:         "redis://cache:6380/2",
			PoolSize:    7,
			DialTimeout: 2 * time.Second,
		})
		require.NoError(t, err)
		assert.Equal(t, "cache:6380", opts.Addr)
		assert.Equal(t, 2, opts.DB)
		assert.Equal(t, 7, opts.PoolSize)
		assert.Equal(t, 2*time.Second, opts.DialTimeout)
	})

	t.Run("rejects malformed URL", func(t *testing.T) {
		_, err := Options(config.RedisConfig{URL: "http://not-redis"})
		assert.Error(t, err)
	})
}

func TestNewWithoutURL(t *testing.T) {
	client, err := New(context.Background(), config.RedisConfig{})
	require.NoError(t, err)
	assert.Nil(t, client)
}
