package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// IsAlbumLiked reports whether a like row exists for the (album, user) pair.
func (s *Store) IsAlbumLiked(ctx context.Context, albumID, userID string) (bool, error) {
	var id string
	err := s.db.QueryRowContext(ctx, `
		SELECT id
		FROM user_album_likes
		WHERE user_id = $1 AND album_id = $2
	`, userID, albumID).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("lookup like: %w", err)
	}
	return true, nil
}

// InsertAlbumLike records a like for the pair. The likes table carries a
// unique constraint on (user_id, album_id), so a toggle that loses a race
// against a concurrent like lands here with zero rows inserted; that is
// reported as created=false, not as an error.
func (s *Store) InsertAlbumLike(ctx context.Context, albumID, userID string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO user_album_likes (id, user_id, album_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, album_id) DO NOTHING
	`, newID("like"), userID, albumID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return false, ErrAlbumNotFound
		}
		return false, fmt.Errorf("insert like: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

// DeleteAlbumLike removes the like row for the pair. Zero rows deleted means
// a concurrent toggle got there first; reported as deleted=false.
func (s *Store) DeleteAlbumLike(ctx context.Context, albumID, userID string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM user_album_likes
		WHERE user_id = $1 AND album_id = $2
	`, userID, albumID)
	if err != nil {
		return false, fmt.Errorf("delete like: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

// CountAlbumLikes recomputes the like count from the source-of-truth rows.
// Zero rows is a legitimate zero, never a not-found condition.
func (s *Store) CountAlbumLikes(ctx context.Context, albumID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM user_album_likes
		WHERE album_id = $1
	`, albumID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count likes: %w", err)
	}
	return count, nil
}
