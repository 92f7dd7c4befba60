package redis

import (
	"context"
)

// AlertDeduper implements alert.Deduper with SET NX. The first caller for a
// key within the TTL wins; later callers for the same key are suppressed.
type AlertDeduper struct {
	cache *Cache
}

// NewAlertDeduper creates an alert deduper.
func NewAlertDeduper(cache *Cache) *AlertDeduper {
	return &AlertDeduper{cache: cache}
}

// ShouldEmit reports whether an alert with the given key has not been emitted
// yet, and atomically marks it as emitted.
func (d *AlertDeduper) ShouldEmit(ctx context.Context, key string) (bool, error) {
	return d.cache.SetNX(ctx, AlertDedupKey(key), "1", TTLAlertDedup)
}
