package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/atinyakov/postboard/internal/models"
)

const postColumns = `post_id, created, title, body, user_id, url`

// PostgresPostRepository stores posts in the posts table.
type PostgresPostRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresPostRepository creates a new PostgresPostRepository with the
// given database connection.
func NewPostgresPostRepository(db *sql.DB) *PostgresPostRepository {
	return &PostgresPostRepository{DB: db}
}

// Create inserts p and returns its generated id.
func (r *PostgresPostRepository) Create(ctx context.Context, p *models.Post) (int64, error) {
	var id int64
	err := r.DB.QueryRowContext(ctx,
		`INSERT INTO posts (created, title, body, user_id, url) VALUES ($1, $2, $3, $4, $5) RETURNING post_id`,
		p.Created, p.Title, p.Body, p.UserID, p.URL,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create post: %w", err)
	}
	return id, nil
}

// GetByID returns the post or models.ErrNotFound.
func (r *PostgresPostRepository) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	return r.getOne(ctx, `SELECT `+postColumns+` FROM posts WHERE post_id = $1`, id)
}

// GetBySlug returns the first post with the given url slug or models.ErrNotFound.
func (r *PostgresPostRepository) GetBySlug(ctx context.Context, slug string) (*models.Post, error) {
	return r.getOne(ctx, `SELECT `+postColumns+` FROM posts WHERE url = $1 ORDER BY post_id LIMIT 1`, slug)
}

func (r *PostgresPostRepository) getOne(ctx context.Context, query string, arg any) (*models.Post, error) {
	var p models.Post
	err := r.DB.QueryRowContext(ctx, query, arg).Scan(&p.ID, &p.Created, &p.Title, &p.Body, &p.UserID, &p.URL)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}
	return &p, nil
}

// List returns all posts ordered by id.
func (r *PostgresPostRepository) List(ctx context.Context) ([]models.Post, error) {
	return r.query(ctx, `SELECT `+postColumns+` FROM posts ORDER BY post_id`)
}

// ListByUser returns the posts owned by userID ordered by id.
func (r *PostgresPostRepository) ListByUser(ctx context.Context, userID int64) ([]models.Post, error) {
	return r.query(ctx, `SELECT `+postColumns+` FROM posts WHERE user_id = $1 ORDER BY post_id`, userID)
}

func (r *PostgresPostRepository) query(ctx context.Context, query string, args ...any) ([]models.Post, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	var posts []models.Post
	for rows.Next() {
		var p models.Post
		if err := rows.Scan(&p.ID, &p.Created, &p.Title, &p.Body, &p.UserID, &p.URL); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// Update writes title, body and url of p. It returns the number of rows changed.
func (r *PostgresPostRepository) Update(ctx context.Context, p *models.Post) (int64, error) {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE posts SET title = $1, body = $2, url = $3 WHERE post_id = $4`,
		p.Title, p.Body, p.URL, p.ID,
	)
	if err != nil {
		return 0, fmt.Errorf("update post: %w", err)
	}
	return res.RowsAffected()
}

// Delete removes the post.
func (r *PostgresPostRepository) Delete(ctx context.Context, id int64) (int64, error) {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM posts WHERE post_id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("delete post: %w", err)
	}
	return res.RowsAffected()
}
