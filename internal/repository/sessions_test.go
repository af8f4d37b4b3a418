package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/atinyakov/postboard/internal/models"
)

func setupSessionMock(t *testing.T) (*PostgresSessionRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}
	return NewPostgresSessionRepository(db), mock, func() { db.Close() }
}

func TestSessionCreate(t *testing.T) {
	repo, mock, cleanup := setupSessionMock(t)
	defer cleanup()

	exp := time.Unix(1700000000, 0)
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO sessions (id, user_id, expires_at) VALUES ($1, $2, $3)`)).
		WithArgs("sid", int64(1), exp).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Create(context.Background(), models.Session{ID: "sid", UserID: 1, ExpiresAt: exp}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestSessionGet(t *testing.T) {
	repo, mock, cleanup := setupSessionMock(t)
	defer cleanup()

	now := time.Unix(1700000000, 0)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, user_id, expires_at FROM sessions WHERE id = $1 AND expires_at > $2`)).
		WithArgs("sid", now).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "expires_at"}).AddRow("sid", int64(4), now.Add(time.Hour)))

	s, err := repo.Get(context.Background(), "sid", now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.UserID != 4 {
		t.Errorf("UserID = %d; want 4", s.UserID)
	}
}

func TestSessionGet_Expired(t *testing.T) {
	repo, mock, cleanup := setupSessionMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM sessions WHERE id = $1`)).
		WithArgs("old", sqlmock.AnyArg()).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), "old", time.Now())
	if !errors.Is(err, models.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSessionDelete(t *testing.T) {
	repo, mock, cleanup := setupSessionMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM sessions WHERE id = $1`)).
		WithArgs("sid").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Delete(context.Background(), "sid"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
