// Package cache holds short-lived GET responses. Entries only go away through
// their TTL; writes to the catalog never invalidate them.
package cache

import (
	"context"
	"time"
)

const DefaultTTL = 60 * time.Second

type Cache interface {
	// Get returns the stored value while it has not expired.
	Get(ctx context.Context, key string) ([]byte, bool)
	// Set stores value under key until now+ttl, replacing any previous entry.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
}
