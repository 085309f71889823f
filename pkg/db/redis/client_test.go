package redis_test

import (
	"context"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notekeeper/pkg/db/redis"
)

func configFor(t *testing.T, addr string) *redis.Config {
	t.Helper()

	host, portStr, _ := strings.Cut(addr, ":")
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	cfg := redis.DefaultConfig()
	cfg.Host = host
	cfg.Port = port
	return cfg
}

func TestNewClient(t *testing.T) {
	ctx := context.Background()

	t.Run("connects to running server", func(t *testing.T) {
		s := miniredis.RunT(t)

		client, err := redis.NewClient(ctx, configFor(t, s.Addr()))
		require.NoError(t, err)
		require.NotNil(t, client)

		require.NoError(t, client.RawClient().Set(ctx, "k", "v", 0).Err())
		got, err := s.Get("k")
		require.NoError(t, err)
		assert.Equal(t, "v", got)

		assert.NoError(t, client.Close(ctx))
	})

	t.Run("fails when server is unreachable", func(t *testing.T) {
		s := miniredis.RunT(t)
		cfg := configFor(t, s.Addr())
		cfg.DialTimeout = 200 * time.Millisecond
		s.Close()

		client, err := redis.NewClient(ctx, cfg)
		require.Error(t, err)
		assert.Nil(t, client)
		assert.Contains(t, err.Error(), redis.ErrConnect)
	})
}

func TestDefaultConfig(t *testing.T) {
	cfg := redis.DefaultConfig()
	assert.Equal(t, "localhost:6379", cfg.Address())
	assert.Equal(t, redis.DefaultPoolSize, cfg.PoolSize)
}
