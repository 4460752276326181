package cache

import (
	"context"
	"strings"
	"time"
)

// Cache stores JSON-encoded values under namespaced keys. Implementations
// must treat unreadable values as misses, never as errors.
type Cache interface {
	GetJSON(ctx context.Context, key string, dst any) (hit bool, err error)
	SetJSON(ctx context.Context, key string, val any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// Key joins namespace parts into a colon-separated cache key,
// e.g. Key("faq", "lang", "en") -> "faq:lang:en".
func Key(parts ...string) string {
	return strings.Join(parts, ":")
}
