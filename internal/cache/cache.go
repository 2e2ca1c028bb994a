// Package cache is the keyed fetch cache backing the dashboard read
// endpoints. Keys are built from an endpoint name plus its parameters,
// entries expire after a TTL, and mutation paths invalidate every key
// sharing a prefix after the write is acknowledged.
package cache

import (
	"context"
	"encoding/json"
	"strings"
	"time"
)

type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, val []byte, ttl time.Duration)
	// InvalidatePrefix drops every entry whose key starts with prefix.
	InvalidatePrefix(ctx context.Context, prefix string)
}

const sep = ":"

// Key builds a cache key from an endpoint name and its parameters,
// e.g. Key("admin-revenue", "SERVICE_FEE", "2025-01-01", "0").
func Key(parts ...string) string {
	return strings.Join(parts, sep)
}

// GetJSON reads key and unmarshals it into dst. A decode failure is
// treated as a miss; the stale entry is left to expire on its own.
func GetJSON(ctx context.Context, s Store, key string, dst any) bool {
	b, ok := s.Get(ctx, key)
	if !ok {
		return false
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return false
	}
	return true
}

// SetJSON marshals v and stores it under key. Marshal failures are
// dropped silently; the cache is an optimization, never a source of truth.
func SetJSON(ctx context.Context, s Store, key string, v any, ttl time.Duration) {
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	s.Set(ctx, key, b, ttl)
}
