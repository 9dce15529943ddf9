package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrPlaylistNotFound signals a missing playlist record.
	ErrPlaylistNotFound = fmt.Errorf("playlist %w", ErrNotFound)
	// ErrSongNotInPlaylist signals the song has no membership row in the playlist.
	ErrSongNotInPlaylist = fmt.Errorf("playlist song %w", ErrNotFound)
)

// PlaylistSummary lists a playlist together with its owner's username.
type PlaylistSummary struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
}

// PlaylistWithSongs is the detail view of a playlist.
type PlaylistWithSongs struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Username string        `json:"username"`
	Songs    []SongSummary `json:"songs"`
}

// CreatePlaylist inserts a new playlist owned by the given user.
func (s *Store) CreatePlaylist(ctx context.Context, name, owner string) (string, error) {
	var id string
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO playlists (id, name, owner)
		VALUES ($1, $2, $3)
		RETURNING id
	`, newID("playlist"), strings.TrimSpace(name), owner).Scan(&id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return "", fmt.Errorf("user %w", ErrNotFound)
		}
		return "", fmt.Errorf("insert playlist: %w", err)
	}
	if id == "" {
		return "", fmt.Errorf("%w: playlist was not created", ErrInvariant)
	}
	return id, nil
}

// ListPlaylists returns the playlists owned by a user.
func (s *Store) ListPlaylists(ctx context.Context, owner string) ([]PlaylistSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT p.id, p.name, u.username
		FROM playlists p
		LEFT JOIN users u ON u.id = p.owner
		WHERE p.owner = $1
		ORDER BY p.id ASC
	`, owner)
	if err != nil {
		return nil, fmt.Errorf("select playlists: %w", err)
	}
	defer rows.Close()

	var playlists []PlaylistSummary
	for rows.Next() {
		var playlist PlaylistSummary
		if err := rows.Scan(&playlist.ID, &playlist.Name, &playlist.Username); err != nil {
			return nil, fmt.Errorf("scan playlist: %w", err)
		}
		playlists = append(playlists, playlist)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate playlists: %w", err)
	}
	return playlists, nil
}

// DeletePlaylist removes a playlist. Membership rows cascade away.
func (s *Store) DeletePlaylist(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM playlists WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete playlist: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrPlaylistNotFound
	}
	return nil
}

// PlaylistOwner returns the owning user id for a playlist.
func (s *Store) PlaylistOwner(ctx context.Context, id string) (string, error) {
	var owner string
	err := s.db.QueryRowContext(ctx, `SELECT owner FROM playlists WHERE id = $1`, id).Scan(&owner)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrPlaylistNotFound
		}
		return "", fmt.Errorf("lookup playlist owner: %w", err)
	}
	return owner, nil
}

// PlaylistWithSongs returns a playlist with its member songs.
func (s *Store) PlaylistWithSongs(ctx context.Context, id string) (PlaylistWithSongs, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT p.id, p.name, u.username, s.id, s.title, s.performer
		FROM playlists p
		LEFT JOIN users u ON u.id = p.owner
		LEFT JOIN playlist_songs ps ON ps.playlist_id = p.id
		LEFT JOIN songs s ON s.id = ps.song_id
		WHERE p.id = $1
		ORDER BY ps.id ASC
	`, id)
	if err != nil {
		return PlaylistWithSongs{}, fmt.Errorf("select playlist songs: %w", err)
	}
	defer rows.Close()

	var (
		playlist PlaylistWithSongs
		found    bool
	)
	for rows.Next() {
		var songID, title, performer sql.NullString
		if err := rows.Scan(&playlist.ID, &playlist.Name, &playlist.Username, &songID, &title, &performer); err != nil {
			return PlaylistWithSongs{}, fmt.Errorf("scan playlist song: %w", err)
		}
		found = true
		if songID.Valid {
			playlist.Songs = append(playlist.Songs, SongSummary{
				ID:        songID.String,
				Title:     title.String,
				Performer: performer.String,
			})
		}
	}
	if err := rows.Err(); err != nil {
		return PlaylistWithSongs{}, fmt.Errorf("iterate playlist songs: %w", err)
	}
	if !found {
		return PlaylistWithSongs{}, ErrPlaylistNotFound
	}
	return playlist, nil
}

// AddPlaylistSong inserts a membership row. Duplicate pairs are permitted.
func (s *Store) AddPlaylistSong(ctx context.Context, playlistID, songID string) error {
	var id string
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO playlist_songs (id, playlist_id, song_id)
		VALUES ($1, $2, $3)
		RETURNING id
	`, newID("playlistsong"), playlistID, songID).Scan(&id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrSongNotFound
		}
		return fmt.Errorf("insert playlist song: %w", err)
	}
	if id == "" {
		return fmt.Errorf("%w: song was not added to playlist", ErrInvariant)
	}
	return nil
}

// RemovePlaylistSong deletes the membership rows for a (playlist, song) pair.
func (s *Store) RemovePlaylistSong(ctx context.Context, playlistID, songID string) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM playlist_songs
		WHERE playlist_id = $1 AND song_id = $2
	`, playlistID, songID)
	if err != nil {
		return fmt.Errorf("delete playlist song: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrSongNotInPlaylist
	}
	return nil
}
