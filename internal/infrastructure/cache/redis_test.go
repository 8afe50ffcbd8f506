package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisCache(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR is not set")
	}
	ctx := context.Background()
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	defer rdb.Close()
	require.NoError(t, rdb.Ping(ctx).Err())

	c := NewRedis(rdb, logrus.New())
	key := "test_" + uuid.NewString()

	_, ok := c.Get(ctx, key)
	assert.False(t, ok)

	c.Set(ctx, key, []byte(`{"a":1}`), 200*time.Millisecond)
	got, ok := c.Get(ctx, key)
	require.True(t, ok)
	assert.JSONEq(t, `{"a":1}`, string(got))

	time.Sleep(300 * time.Millisecond)
	_, ok = c.Get(ctx, key)
	assert.False(t, ok)
}
