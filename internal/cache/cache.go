// Package cache provides the key-value store used for derived aggregates.
// Entries are purely derivative: losing or evicting them costs a recompute,
// never correctness, so implementations need no coupling to the database.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrMiss is returned by Get when the key is absent or expired.
var ErrMiss = errors.New("cache miss")

// DefaultTTL caps the lifetime of entries whose callers pass a zero ttl.
// Writes that change an aggregate's inputs delete the key explicitly; the
// TTL is only a backstop.
const DefaultTTL = 30 * time.Minute

// Cache is a byte-oriented key-value store with explicit invalidation.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// AlbumLikesKey addresses the cached like count for an album.
func AlbumLikesKey(albumID string) string {
	return "albums:" + albumID
}
