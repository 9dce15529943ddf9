package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// ErrSongNotFound signals a missing song record.
var ErrSongNotFound = fmt.Errorf("song %w", ErrNotFound)

// Song models a track, optionally attached to an album.
type Song struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Year      int     `json:"year"`
	Performer string  `json:"performer"`
	Genre     string  `json:"genre"`
	Duration  *int    `json:"duration"`
	AlbumID   *string `json:"albumId"`
}

// SongSummary is the short form used in album and playlist listings.
type SongSummary struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Performer string `json:"performer"`
}

// SongFilter constrains ListSongs results. Empty fields match everything.
type SongFilter struct {
	Title     string
	Performer string
}

// CreateSong inserts a new song and returns its identifier.
func (s *Store) CreateSong(ctx context.Context, song Song) (string, error) {
	var id string
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO songs (id, title, year, performer, genre, duration, album_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`, newID("song"), strings.TrimSpace(song.Title), song.Year, strings.TrimSpace(song.Performer),
		song.Genre, song.Duration, song.AlbumID).Scan(&id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return "", ErrAlbumNotFound
		}
		return "", fmt.Errorf("insert song: %w", err)
	}
	if id == "" {
		return "", fmt.Errorf("%w: song was not created", ErrInvariant)
	}
	return id, nil
}

// ListSongs returns songs matching the filter.
func (s *Store) ListSongs(ctx context.Context, filter SongFilter) ([]SongSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, performer
		FROM songs
		WHERE title ILIKE $1 AND performer ILIKE $2
		ORDER BY title ASC, id ASC
	`, "%"+filter.Title+"%", "%"+filter.Performer+"%")
	if err != nil {
		return nil, fmt.Errorf("select songs: %w", err)
	}
	defer rows.Close()

	var songs []SongSummary
	for rows.Next() {
		var song SongSummary
		if err := rows.Scan(&song.ID, &song.Title, &song.Performer); err != nil {
			return nil, fmt.Errorf("scan song: %w", err)
		}
		songs = append(songs, song)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate songs: %w", err)
	}
	return songs, nil
}

// SongByID returns a single song by its identifier.
func (s *Store) SongByID(ctx context.Context, id string) (Song, error) {
	var (
		song     Song
		duration sql.NullInt64
		albumID  sql.NullString
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, title, year, performer, genre, duration, album_id
		FROM songs
		WHERE id = $1
	`, id).Scan(&song.ID, &song.Title, &song.Year, &song.Performer, &song.Genre, &duration, &albumID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Song{}, ErrSongNotFound
		}
		return Song{}, fmt.Errorf("select song: %w", err)
	}
	if duration.Valid {
		val := int(duration.Int64)
		song.Duration = &val
	}
	if albumID.Valid {
		song.AlbumID = &albumID.String
	}
	return song, nil
}

// UpdateSong replaces all editable song fields.
func (s *Store) UpdateSong(ctx context.Context, id string, song Song) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE songs
		SET title = $1, year = $2, performer = $3, genre = $4, duration = $5, album_id = $6
		WHERE id = $7
	`, strings.TrimSpace(song.Title), song.Year, strings.TrimSpace(song.Performer),
		song.Genre, song.Duration, song.AlbumID, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrAlbumNotFound
		}
		return fmt.Errorf("update song: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrSongNotFound
	}
	return nil
}

// DeleteSong removes a song. Playlist membership rows cascade away.
func (s *Store) DeleteSong(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM songs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete song: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrSongNotFound
	}
	return nil
}

// VerifySongExists reports ErrSongNotFound when no song has the id.
func (s *Store) VerifySongExists(ctx context.Context, id string) error {
	var found string
	err := s.db.QueryRowContext(ctx, `SELECT id FROM songs WHERE id = $1`, id).Scan(&found)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrSongNotFound
		}
		return fmt.Errorf("lookup song: %w", err)
	}
	return nil
}
