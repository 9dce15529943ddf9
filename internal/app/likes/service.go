// Package likes keeps the per-album like count consistent between the
// source-of-truth rows and the aggregate cache. Reads go cache-first and
// populate on miss; writes invalidate the cached entry, never update it in
// place, so the next read always recomputes from the relation rows.
package likes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"openmusic/internal/cache"
)

// Action names the outcome of a toggle.
type Action string

const (
	ActionLiked    Action = "liked"
	ActionDisliked Action = "disliked"
)

// Store captures the persistence operations for album likes.
type Store interface {
	VerifyAlbumExists(ctx context.Context, albumID string) error
	IsAlbumLiked(ctx context.Context, albumID, userID string) (bool, error)
	InsertAlbumLike(ctx context.Context, albumID, userID string) (bool, error)
	DeleteAlbumLike(ctx context.Context, albumID, userID string) (bool, error)
	CountAlbumLikes(ctx context.Context, albumID string) (int, error)
}

// Service exposes the like-toggle and aggregate-count workflows.
type Service interface {
	VerifyAlbumExists(ctx context.Context, albumID string) error
	Toggle(ctx context.Context, albumID, userID string) (Action, error)
	Count(ctx context.Context, albumID string) (likes int, fromCache bool, err error)
}

// countPayload is the serialized aggregate stored under AlbumLikesKey.
type countPayload struct {
	Likes int `json:"likes"`
}

type service struct {
	store  Store
	cache  cache.Cache
	logger zerolog.Logger
}

// New wires a Service over the relation store and the aggregate cache.
func New(store Store, c cache.Cache, logger zerolog.Logger) Service {
	return &service{store: store, cache: c, logger: logger}
}

func (s *service) VerifyAlbumExists(ctx context.Context, albumID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.store.VerifyAlbumExists(ctx, albumID)
}

// Toggle flips the like state for the (album, user) pair. The caller has
// already verified the album exists. The store mutation completes before the
// cache entry is invalidated; the invalidation happens exactly once per
// successful toggle.
func (s *service) Toggle(ctx context.Context, albumID, userID string) (Action, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	liked, err := s.store.IsAlbumLiked(ctx, albumID, userID)
	if err != nil {
		return "", err
	}

	action := ActionLiked
	if liked {
		action = ActionDisliked
		// Zero rows deleted means a concurrent toggle removed the like
		// first; the end state matches either way, so it is not an error.
		if _, err := s.store.DeleteAlbumLike(ctx, albumID, userID); err != nil {
			return "", err
		}
	} else {
		// The insert is conflict-tolerant at the store layer; a lost race
		// against a concurrent like leaves exactly one row, as required.
		if _, err := s.store.InsertAlbumLike(ctx, albumID, userID); err != nil {
			return "", err
		}
	}

	if err := s.invalidate(ctx, albumID); err != nil {
		return "", err
	}
	return action, nil
}

// Count returns the album's like count and whether it was served from cache.
func (s *service) Count(ctx context.Context, albumID string) (int, bool, error) {
	if err := ctx.Err(); err != nil {
		return 0, false, err
	}

	key := cache.AlbumLikesKey(albumID)
	raw, err := s.cache.Get(ctx, key)
	if err == nil {
		var payload countPayload
		if err := json.Unmarshal(raw, &payload); err == nil {
			return payload.Likes, true, nil
		}
		// An undecodable entry falls through to a recompute.
		s.logger.Warn().Str("key", key).Msg("discarding undecodable like count entry")
	} else if !errors.Is(err, cache.ErrMiss) {
		// Cache trouble degrades to a recompute, never to a failed read.
		s.logger.Warn().Err(err).Str("key", key).Msg("like count cache read failed")
	}

	count, err := s.store.CountAlbumLikes(ctx, albumID)
	if err != nil {
		return 0, false, err
	}

	raw, err = json.Marshal(countPayload{Likes: count})
	if err != nil {
		return 0, false, fmt.Errorf("encode like count: %w", err)
	}
	// Populate synchronously so a subsequent read in this process sees it.
	// A failed populate only costs the next read a recompute.
	if err := s.cache.Set(ctx, key, raw, 0); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("like count cache write failed")
	}
	return count, false, nil
}

// invalidate removes the cached count after a committed store write. It runs
// detached from request cancellation: the row change has already happened,
// and skipping the delete would leave the entry stale until TTL.
func (s *service) invalidate(ctx context.Context, albumID string) error {
	ctx = context.WithoutCancel(ctx)
	key := cache.AlbumLikesKey(albumID)
	if err := s.cache.Delete(ctx, key); err != nil {
		s.logger.Error().Err(err).Str("key", key).Msg("like count invalidation failed")
		return fmt.Errorf("invalidate like count: %w", err)
	}
	return nil
}
