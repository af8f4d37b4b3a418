// Package repository provides PostgreSQL persistence for users, posts and
// login sessions.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/atinyakov/postboard/internal/models"
	"github.com/lib/pq"
)

// uniqueViolation is the PostgreSQL SQLSTATE for a unique constraint failure.
const uniqueViolation = "23505"

// PostgresUserRepository stores users in the users table.
type PostgresUserRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository with the
// given database connection.
func NewPostgresUserRepository(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{DB: db}
}

// Create inserts u and returns its generated id. A taken email yields
// models.ErrDuplicate.
func (r *PostgresUserRepository) Create(ctx context.Context, u *models.User) (int64, error) {
	var id int64
	err := r.DB.QueryRowContext(ctx,
		`INSERT INTO users (email, password_hash, name) VALUES ($1, $2, $3) RETURNING id`,
		u.Email, u.PasswordHash, u.Name,
	).Scan(&id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return 0, models.ErrDuplicate
		}
		return 0, fmt.Errorf("create user: %w", err)
	}
	return id, nil
}

// GetByID returns the user with the given id or models.ErrNotFound.
func (r *PostgresUserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return r.getOne(ctx, `SELECT id, email, password_hash, name FROM users WHERE id = $1`, id)
}

// GetByEmail returns the user with the given email or models.ErrNotFound.
func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(ctx, `SELECT id, email, password_hash, name FROM users WHERE email = $1`, email)
}

func (r *PostgresUserRepository) getOne(ctx context.Context, query string, arg any) (*models.User, error) {
	var u models.User
	err := r.DB.QueryRowContext(ctx, query, arg).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

// List returns all users ordered by id.
func (r *PostgresUserRepository) List(ctx context.Context) ([]models.User, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT id, email, name FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Email, &u.Name); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// Update writes email, name and, when PasswordHash is non-empty, the
// password hash of u. It returns the number of rows changed.
func (r *PostgresUserRepository) Update(ctx context.Context, u *models.User) (int64, error) {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE users
		   SET email = $1,
		       name = $2,
		       password_hash = COALESCE($3, password_hash)
		 WHERE id = $4
	`, u.Email, u.Name, nullBytes(u.PasswordHash), u.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return 0, models.ErrDuplicate
		}
		return 0, fmt.Errorf("update user: %w", err)
	}
	return res.RowsAffected()
}

// Delete removes the user; their posts and sessions cascade.
func (r *PostgresUserRepository) Delete(ctx context.Context, id int64) (int64, error) {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("delete user: %w", err)
	}
	return res.RowsAffected()
}

func nullBytes(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return b
}
