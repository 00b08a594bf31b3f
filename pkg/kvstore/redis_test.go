package kvstore_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/socialkit/pkg/kvstore"
)

func TestConnectRedis_InvalidURL(t *testing.T) {
	t.Parallel()
	_, err := kvstore.ConnectRedis(context.Background(), kvstore.RedisConfig{
		ConnectionURL:  "://bad",
		RetryAttempts:  1,
		ConnectTimeout: time.Second,
	})
	assert.ErrorIs(t, err, kvstore.ErrInvalidRedisURL)
}

func TestConnectRedis_Unreachable(t *testing.T) {
	t.Parallel()
	_, err := kvstore.ConnectRedis(context.Background(), kvstore.RedisConfig{
		ConnectionURL:  "redis://127.0.0.1:1/0",
		RetryAttempts:  2,
		RetryInterval:  10 * time.Millisecond,
		ConnectTimeout: 500 * time.Millisecond,
	})
	assert.ErrorIs(t, err, kvstore.ErrRedisNotReady)
}

func TestRedisStorage(t *testing.T) {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set")
	}

	client, err := kvstore.ConnectRedis(context.Background(), kvstore.RedisConfig{
		ConnectionURL:  url,
		RetryAttempts:  3,
		RetryInterval:  100 * time.Millisecond,
		ConnectTimeout: 5 * time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	runStorageSuite(t, func(t *testing.T) kvstore.Storage {
		s := kvstore.NewRedisStorage(client, "socialkit-test:"+t.Name()+":")
		require.NoError(t, s.Ping(context.Background()))
		return s
	})
}
