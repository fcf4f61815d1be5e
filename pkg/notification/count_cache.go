package notification

import (
	"context"
	"strconv"
	"time"
)

// KV is the minimal key-value contract the unread-count cache needs. It is
// implemented by the Redis storage wrapper in pkg/redis.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, val []byte, exp time.Duration) error
	Delete(ctx context.Context, key string) error
}

// DefaultCountTTL bounds staleness for unread badges when an invalidation is
// missed (for example by a concurrent process without the cache attached).
const DefaultCountTTL = 30 * time.Second

// CountCache caches per-user unread counts. All operations are best effort:
// a cache failure degrades to a storage read, never to a request failure.
type CountCache struct {
	kv  KV
	ttl time.Duration
}

// NewCountCache creates an unread-count cache on top of the given key-value
// store. Non-positive TTLs fall back to DefaultCountTTL.
func NewCountCache(kv KV, ttl time.Duration) *CountCache {
	if ttl <= 0 {
		ttl = DefaultCountTTL
	}
	return &CountCache{kv: kv, ttl: ttl}
}

// Get returns the cached count for the user and whether it was present.
func (c *CountCache) Get(ctx context.Context, userID string) (int64, bool) {
	val, err := c.kv.Get(ctx, c.key(userID))
	if err != nil || val == nil {
		return 0, false
	}
	count, err := strconv.ParseInt(string(val), 10, 64)
	if err != nil {
		return 0, false
	}
	return count, true
}

// Set stores the count for the user with the configured TTL.
func (c *CountCache) Set(ctx context.Context, userID string, count int64) {
	_ = c.kv.Set(ctx, c.key(userID), []byte(strconv.FormatInt(count, 10)), c.ttl)
}

// Invalidate drops the cached count for the user.
func (c *CountCache) Invalidate(ctx context.Context, userID string) {
	_ = c.kv.Delete(ctx, c.key(userID))
}

func (c *CountCache) key(userID string) string {
	return "notifyd:unread:" + userID
}
