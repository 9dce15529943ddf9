package albums

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"openmusic/internal/cache"
	"openmusic/internal/store"
)

// Store captures the persistence operations for album workflows.
type Store interface {
	CreateAlbum(ctx context.Context, name string, year int) (string, error)
	AlbumByID(ctx context.Context, id string) (store.Album, error)
	UpdateAlbum(ctx context.Context, id, name string, year int) error
	DeleteAlbum(ctx context.Context, id string) error
	SetAlbumCover(ctx context.Context, id, coverURL string) error
}

// Service exposes album catalog workflows.
type Service interface {
	Create(ctx context.Context, name string, year int) (string, error)
	Get(ctx context.Context, id string) (store.Album, error)
	Update(ctx context.Context, id, name string, year int) error
	Delete(ctx context.Context, id string) error
	SetCover(ctx context.Context, id, filename string) (string, error)
}

type service struct {
	store   Store
	cache   cache.Cache
	baseURL string
	logger  zerolog.Logger
}

// New wires a Service backed by the provided Store. baseURL is the public
// address used to build cover URLs.
func New(st Store, c cache.Cache, baseURL string, logger zerolog.Logger) Service {
	return &service{store: st, cache: c, baseURL: baseURL, logger: logger}
}

func (s *service) Create(ctx context.Context, name string, year int) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return s.store.CreateAlbum(ctx, name, year)
}

func (s *service) Get(ctx context.Context, id string) (store.Album, error) {
	if err := ctx.Err(); err != nil {
		return store.Album{}, err
	}
	return s.store.AlbumByID(ctx, id)
}

func (s *service) Update(ctx context.Context, id, name string, year int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.store.UpdateAlbum(ctx, id, name, year)
}

// Delete removes the album and drops its cached like count, since the like
// rows cascade away with their album.
func (s *service) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.store.DeleteAlbum(ctx, id); err != nil {
		return err
	}
	key := cache.AlbumLikesKey(id)
	if err := s.cache.Delete(context.WithoutCancel(ctx), key); err != nil {
		s.logger.Error().Err(err).Str("key", key).Msg("like count invalidation failed")
		return fmt.Errorf("invalidate like count: %w", err)
	}
	return nil
}

// SetCover records the uploaded cover file and returns its public URL.
func (s *service) SetCover(ctx context.Context, id, filename string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	coverURL := fmt.Sprintf("%s/upload/covers/%s", s.baseURL, filename)
	if err := s.store.SetAlbumCover(ctx, id, coverURL); err != nil {
		return "", err
	}
	return coverURL, nil
}
