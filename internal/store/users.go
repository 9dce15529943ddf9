package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrUserExists signals the username is already taken.
	ErrUserExists = fmt.Errorf("%w: username already taken", ErrInvariant)
	// ErrInvalidCredentials indicates a login failure.
	ErrInvalidCredentials = errors.New("invalid username or password")

	dummyPasswordHash = []byte("$2a$10$CwTycUXWue0Thq9StjUM0uJ8n4VWeNseyX2fA9DE.D7su7J6iYGTC")
)

// CreateUser registers a new user and returns its identifier.
func (s *Store) CreateUser(ctx context.Context, username, password, fullname string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", fmt.Errorf("%w: username and password are required", ErrInvalid)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	var id string
	err = s.db.QueryRowContext(ctx, `
		INSERT INTO users (id, username, password, fullname)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, newID("user"), username, hash, fullname).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return "", ErrUserExists
		}
		return "", fmt.Errorf("insert user: %w", err)
	}
	return id, nil
}

// Authenticate validates credentials and returns the user id. An unknown
// username still runs a bcrypt compare so both failure paths take similar time.
func (s *Store) Authenticate(ctx context.Context, username, password string) (string, error) {
	var (
		id   string
		hash []byte
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, password
		FROM users
		WHERE username = $1
	`, username).Scan(&id, &hash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			_ = bcrypt.CompareHashAndPassword(dummyPasswordHash, []byte(password))
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("lookup user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}
	return id, nil
}
