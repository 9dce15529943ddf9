package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// openDatabase connects to Postgres, retrying with exponential backoff so
// the service survives a database that comes up after it does.
func openDatabase(ctx context.Context, dsn string, logger zerolog.Logger) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	const (
		pingTimeout = 3 * time.Second
		maxAttempts = 8
		maxBackoff  = 4 * time.Second
	)

	backoff := 250 * time.Millisecond
	for attempt := 1; ; attempt++ {
		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		err = db.PingContext(pingCtx)
		cancel()

		if err == nil {
			return db, nil
		}
		if ctx.Err() != nil || attempt == maxAttempts {
			break
		}

		logger.Warn().
			Err(err).
			Int("attempt", attempt).
			Dur("backoff", backoff).
			Msg("database not ready, retrying")

		time.Sleep(backoff)
		if backoff < maxBackoff {
			backoff *= 2
		}
	}

	_ = db.Close()
	return nil, fmt.Errorf("ping database: %w", err)
}
