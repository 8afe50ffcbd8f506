package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const rateLimitMessage = "Too many requests, please try again later."

// Counter counts hits in fixed windows. Hit returns the count including this
// hit and the time left until the window resets.
type Counter interface {
	Hit(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error)
}

type RedisCounter struct {
	client *redis.Client
}

func NewRedisCounter(client *redis.Client) *RedisCounter {
	return &RedisCounter{client: client}
}

func (rc *RedisCounter) Hit(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	count, err := rc.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, 0, err
	}

	// first hit opens the window
	if count == 1 {
		if err := rc.client.Expire(ctx, key, window).Err(); err != nil {
			return 0, 0, err
		}
		return count, window, nil
	}

	ttl, err := rc.client.TTL(ctx, key).Result()
	if err != nil {
		return 0, 0, err
	}
	if ttl < 0 {
		// key lost its expiry, e.g. Expire failed after Incr
		rc.client.Expire(ctx, key, window)
		ttl = window
	}
	return count, ttl, nil
}

type fixedWindow struct {
	count   int64
	resetAt time.Time
}

// MemoryCounter keeps windows in process memory. Expired windows are swept
// at most once per window length.
type MemoryCounter struct {
	mu        sync.Mutex
	windows   map[string]*fixedWindow
	nextSweep time.Time
	now       func() time.Time
}

func NewMemoryCounter() *MemoryCounter {
	return NewMemoryCounterWithClock(time.Now)
}

func NewMemoryCounterWithClock(now func() time.Time) *MemoryCounter {
	return &MemoryCounter{
		windows: make(map[string]*fixedWindow),
		now:     now,
	}
}

func (mc *MemoryCounter) Hit(_ context.Context, key string, size time.Duration) (int64, time.Duration, error) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	now := mc.now()
	if !now.Before(mc.nextSweep) {
		for k, w := range mc.windows {
			if !now.Before(w.resetAt) {
				delete(mc.windows, k)
			}
		}
		mc.nextSweep = now.Add(size)
	}

	w, ok := mc.windows[key]
	if !ok || !now.Before(w.resetAt) {
		w = &fixedWindow{resetAt: now.Add(size)}
		mc.windows[key] = w
	}
	w.count++
	return w.count, w.resetAt.Sub(now), nil
}

// Len reports how many windows are held, expired or not.
func (mc *MemoryCounter) Len() int {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	return len(mc.windows)
}

type RateLimiter struct {
	counter Counter
	log     *logrus.Logger
}

func NewRateLimiter(counter Counter, log *logrus.Logger) *RateLimiter {
	return &RateLimiter{counter: counter, log: log}
}

// Limit allows limit requests per client IP in each window. Counter failures
// let the request through.
func (rl *RateLimiter) Limit(keySuffix string, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("rate_limit:%s:%s", keySuffix, c.ClientIP())

		count, ttl, err := rl.counter.Hit(c.Request.Context(), key, window)
		if err != nil {
			rl.log.WithError(err).Warn("rate limiter unavailable")
			c.Next()
			return
		}

		remaining := max(int64(limit)-count, 0)
		c.Header("RateLimit-Limit", strconv.Itoa(limit))
		c.Header("RateLimit-Remaining", strconv.FormatInt(remaining, 10))
		c.Header("RateLimit-Reset", strconv.Itoa(int((ttl+time.Second-1)/time.Second)))

		if count > int64(limit) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"status":  "error",
				"message": rateLimitMessage,
			})
			return
		}
		c.Next()
	}
}
