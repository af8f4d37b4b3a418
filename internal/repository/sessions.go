package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/atinyakov/postboard/internal/models"
)

// PostgresSessionRepository stores login sessions in the sessions table.
type PostgresSessionRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresSessionRepository creates a new PostgresSessionRepository with
// the given database connection.
func NewPostgresSessionRepository(db *sql.DB) *PostgresSessionRepository {
	return &PostgresSessionRepository{DB: db}
}

// Create stores s.
func (r *PostgresSessionRepository) Create(ctx context.Context, s models.Session) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO sessions (id, user_id, expires_at) VALUES ($1, $2, $3)`,
		s.ID, s.UserID, s.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

// Get returns the session if it exists and has not expired at now.
// Otherwise it returns models.ErrNotFound.
func (r *PostgresSessionRepository) Get(ctx context.Context, id string, now time.Time) (*models.Session, error) {
	var s models.Session
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, user_id, expires_at FROM sessions WHERE id = $1 AND expires_at > $2`,
		id, now,
	).Scan(&s.ID, &s.UserID, &s.ExpiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	return &s, nil
}

// Delete removes the session. Deleting a missing session is not an error.
func (r *PostgresSessionRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.DB.ExecContext(ctx, `DELETE FROM sessions WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
