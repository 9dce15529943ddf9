// Package playlists guards and coordinates playlist workflows. Every
// mutation of an owned playlist passes the ownership check before touching
// storage: a missing playlist reports not-found even to a non-owner, and
// only then is the owner compared.
package playlists

import (
	"context"

	"openmusic/internal/store"
)

// Store captures the persistence needs for playlist workflows.
type Store interface {
	CreatePlaylist(ctx context.Context, name, owner string) (string, error)
	ListPlaylists(ctx context.Context, owner string) ([]store.PlaylistSummary, error)
	DeletePlaylist(ctx context.Context, id string) error
	PlaylistOwner(ctx context.Context, id string) (string, error)
	PlaylistWithSongs(ctx context.Context, id string) (store.PlaylistWithSongs, error)
	AddPlaylistSong(ctx context.Context, playlistID, songID string) error
	RemovePlaylistSong(ctx context.Context, playlistID, songID string) error
}

// SongStore provides the existence check for songs being added.
type SongStore interface {
	VerifySongExists(ctx context.Context, id string) error
}

// Service coordinates playlist-related operations.
type Service interface {
	Create(ctx context.Context, name, owner string) (string, error)
	List(ctx context.Context, owner string) ([]store.PlaylistSummary, error)
	Delete(ctx context.Context, id, requester string) error
	Songs(ctx context.Context, id, requester string) (store.PlaylistWithSongs, error)
	AddSong(ctx context.Context, playlistID, songID, requester string) error
	RemoveSong(ctx context.Context, playlistID, songID, requester string) error
}

type service struct {
	store Store
	songs SongStore
}

// New constructs a Service backed by the provided stores.
func New(st Store, songs SongStore) Service {
	return &service{store: st, songs: songs}
}

// verifyOwner is read-only and ordered existence-first: an absent playlist
// must report not-found, not a permission failure.
func (s *service) verifyOwner(ctx context.Context, playlistID, requester string) error {
	owner, err := s.store.PlaylistOwner(ctx, playlistID)
	if err != nil {
		return err
	}
	if owner != requester {
		return store.ErrNotOwner
	}
	return nil
}

func (s *service) Create(ctx context.Context, name, owner string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return s.store.CreatePlaylist(ctx, name, owner)
}

func (s *service) List(ctx context.Context, owner string) ([]store.PlaylistSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListPlaylists(ctx, owner)
}

func (s *service) Delete(ctx context.Context, id, requester string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.verifyOwner(ctx, id, requester); err != nil {
		return err
	}
	return s.store.DeletePlaylist(ctx, id)
}

func (s *service) Songs(ctx context.Context, id, requester string) (store.PlaylistWithSongs, error) {
	if err := ctx.Err(); err != nil {
		return store.PlaylistWithSongs{}, err
	}
	if err := s.verifyOwner(ctx, id, requester); err != nil {
		return store.PlaylistWithSongs{}, err
	}
	return s.store.PlaylistWithSongs(ctx, id)
}

func (s *service) AddSong(ctx context.Context, playlistID, songID, requester string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.verifyOwner(ctx, playlistID, requester); err != nil {
		return err
	}
	if err := s.songs.VerifySongExists(ctx, songID); err != nil {
		return err
	}
	return s.store.AddPlaylistSong(ctx, playlistID, songID)
}

func (s *service) RemoveSong(ctx context.Context, playlistID, songID, requester string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.verifyOwner(ctx, playlistID, requester); err != nil {
		return err
	}
	return s.store.RemovePlaylistSong(ctx, playlistID, songID)
}
