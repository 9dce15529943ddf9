package store

import (
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// Base error kinds. Entity-specific errors wrap one of these so callers can
// classify a failure with errors.Is at either granularity.
var (
	// ErrNotFound signals a referenced entity or relation row is absent.
	ErrNotFound = errors.New("not found")
	// ErrNotOwner signals the requester does not own the resource.
	ErrNotOwner = errors.New("not the resource owner")
	// ErrInvariant signals a write that should have affected exactly one row
	// affected zero.
	ErrInvariant = errors.New("invariant violation")
	// ErrInvalid signals malformed input rejected before reaching storage.
	ErrInvalid = errors.New("invalid input")
)

// Store provides persistence backed by Postgres.
type Store struct {
	db *sql.DB
}

// New sets up a Store using the provided database handle.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// newID builds an entity identifier like "album-0f81…".
func newID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return false
}
