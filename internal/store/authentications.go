package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrInvalidRefreshToken signals an unknown or revoked refresh token.
var ErrInvalidRefreshToken = fmt.Errorf("%w: refresh token not recognized", ErrInvariant)

// AddRefreshToken persists a refresh token issued at login.
func (s *Store) AddRefreshToken(ctx context.Context, token string) error {
	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO authentications (token)
		VALUES ($1)
	`, token); err != nil {
		return fmt.Errorf("insert refresh token: %w", err)
	}
	return nil
}

// VerifyRefreshToken reports ErrInvalidRefreshToken when the token was never
// issued or has been revoked.
func (s *Store) VerifyRefreshToken(ctx context.Context, token string) error {
	var found string
	err := s.db.QueryRowContext(ctx, `
		SELECT token
		FROM authentications
		WHERE token = $1
	`, token).Scan(&found)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrInvalidRefreshToken
		}
		return fmt.Errorf("lookup refresh token: %w", err)
	}
	return nil
}

// DeleteRefreshToken revokes a refresh token. The token must exist.
func (s *Store) DeleteRefreshToken(ctx context.Context, token string) error {
	if err := s.VerifyRefreshToken(ctx, token); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, `
		DELETE FROM authentications
		WHERE token = $1
	`, token); err != nil {
		return fmt.Errorf("delete refresh token: %w", err)
	}
	return nil
}
