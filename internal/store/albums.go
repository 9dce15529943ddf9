package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// ErrAlbumNotFound signals a missing album record.
var ErrAlbumNotFound = fmt.Errorf("album %w", ErrNotFound)

// Album models a catalog album with its songs.
type Album struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Year     int           `json:"year"`
	CoverURL *string       `json:"coverUrl"`
	Songs    []SongSummary `json:"songs"`
}

// CreateAlbum inserts a new album and returns its identifier.
func (s *Store) CreateAlbum(ctx context.Context, name string, year int) (string, error) {
	name = strings.TrimSpace(name)

	var id string
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO albums (id, name, year)
		VALUES ($1, $2, $3)
		RETURNING id
	`, newID("album"), name, year).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("insert album: %w", err)
	}
	if id == "" {
		return "", fmt.Errorf("%w: album was not created", ErrInvariant)
	}
	return id, nil
}

// AlbumByID returns a single album with its songs.
func (s *Store) AlbumByID(ctx context.Context, id string) (Album, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT a.id, a.name, a.year, a.cover, s.id, s.title, s.performer
		FROM albums a
		LEFT JOIN songs s ON s.album_id = a.id
		WHERE a.id = $1
	`, id)
	if err != nil {
		return Album{}, fmt.Errorf("select album: %w", err)
	}
	defer rows.Close()

	var (
		album Album
		found bool
	)
	for rows.Next() {
		var (
			cover     sql.NullString
			songID    sql.NullString
			title     sql.NullString
			performer sql.NullString
		)
		if err := rows.Scan(&album.ID, &album.Name, &album.Year, &cover, &songID, &title, &performer); err != nil {
			return Album{}, fmt.Errorf("scan album: %w", err)
		}
		found = true
		if cover.Valid {
			album.CoverURL = &cover.String
		}
		if songID.Valid {
			album.Songs = append(album.Songs, SongSummary{
				ID:        songID.String,
				Title:     title.String,
				Performer: performer.String,
			})
		}
	}
	if err := rows.Err(); err != nil {
		return Album{}, fmt.Errorf("iterate album: %w", err)
	}
	if !found {
		return Album{}, ErrAlbumNotFound
	}
	return album, nil
}

// UpdateAlbum replaces an album's name and year.
func (s *Store) UpdateAlbum(ctx context.Context, id, name string, year int) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE albums
		SET name = $1, year = $2
		WHERE id = $3
	`, strings.TrimSpace(name), year, id)
	if err != nil {
		return fmt.Errorf("update album: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrAlbumNotFound
	}
	return nil
}

// DeleteAlbum removes an album. Dependent likes cascade away and songs keep
// their rows with a cleared album reference (declared at schema level).
func (s *Store) DeleteAlbum(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM albums WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete album: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrAlbumNotFound
	}
	return nil
}

// SetAlbumCover stores the public URL of an uploaded cover image.
func (s *Store) SetAlbumCover(ctx context.Context, id, coverURL string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE albums
		SET cover = $1
		WHERE id = $2
	`, coverURL, id)
	if err != nil {
		return fmt.Errorf("update album cover: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrAlbumNotFound
	}
	return nil
}

// VerifyAlbumExists reports ErrAlbumNotFound when no album has the id.
// It is read-only and safe to call on unauthenticated paths.
func (s *Store) VerifyAlbumExists(ctx context.Context, id string) error {
	var found string
	err := s.db.QueryRowContext(ctx, `SELECT id FROM albums WHERE id = $1`, id).Scan(&found)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrAlbumNotFound
		}
		return fmt.Errorf("lookup album: %w", err)
	}
	return nil
}
