package handlers

import (
	"context"
	"encoding/json"
	"time"

	"coursehub/internal/infrastructure/cache"

	"github.com/sirupsen/logrus"
)

// responseCache stores list payloads as encoded JSON for ttl. Writes to the
// catalog do not touch it, so a cached page can lag behind for up to ttl.
type responseCache struct {
	cache cache.Cache
	ttl   time.Duration
	log   *logrus.Logger
}

func newResponseCache(c cache.Cache, ttl time.Duration, log *logrus.Logger) responseCache {
	if ttl <= 0 {
		ttl = cache.DefaultTTL
	}
	return responseCache{cache: c, ttl: ttl, log: log}
}

func (rc responseCache) get(ctx context.Context, key string) ([]byte, bool) {
	if rc.cache == nil {
		return nil, false
	}
	return rc.cache.Get(ctx, key)
}

func (rc responseCache) put(ctx context.Context, key string, payload any) {
	if rc.cache == nil {
		return
	}
	data, err := json.Marshal(payload)
	if err != nil {
		rc.log.WithError(err).WithField("key", key).Warn("cache encode failed")
		return
	}
	rc.cache.Set(ctx, key, data, rc.ttl)
}
