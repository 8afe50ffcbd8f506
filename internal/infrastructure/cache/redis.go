package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Redis keeps responses in Redis so several instances share one cache.
// Redis failures are logged and treated as misses.
type Redis struct {
	client *redis.Client
	prefix string
	log    *logrus.Logger
}

func NewRedis(client *redis.Client, log *logrus.Logger) *Redis {
	return &Redis{client: client, prefix: "coursehub:cache:", log: log}
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		r.log.WithError(err).WithField("key", key).Warn("cache get failed")
		return nil, false
	}
	return val, true
}

func (r *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if err := r.client.Set(ctx, r.prefix+key, value, ttl).Err(); err != nil {
		r.log.WithError(err).WithField("key", key).Warn("cache set failed")
	}
}
