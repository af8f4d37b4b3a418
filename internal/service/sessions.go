package service

import (
	"context"
	"errors"
	"time"

	"github.com/atinyakov/postboard/internal/models"
	"github.com/google/uuid"
)

// SessionRepository defines the persistence operations required by
// SessionService.
type SessionRepository interface {
	Create(ctx context.Context, s models.Session) error
	Get(ctx context.Context, id string, now time.Time) (*models.Session, error)
	Delete(ctx context.Context, id string) error
}

// SessionService issues and resolves login sessions.
type SessionService struct {
	repo SessionRepository
	ttl  time.Duration
	now  func() time.Time
}

// NewSessionService constructs a SessionService; sessions live for ttl.
func NewSessionService(repo SessionRepository, ttl time.Duration) *SessionService {
	return &SessionService{repo: repo, ttl: ttl, now: time.Now}
}

// Start opens a session for userID and returns its id.
func (s *SessionService) Start(ctx context.Context, userID int64) (string, error) {
	sess := models.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		ExpiresAt: s.now().Add(s.ttl),
	}
	if err := s.repo.Create(ctx, sess); err != nil {
		return "", err
	}
	return sess.ID, nil
}

// Resolve returns the user id bound to a live session. Malformed, unknown
// and expired ids yield ErrUnauthorized.
func (s *SessionService) Resolve(ctx context.Context, id string) (int64, error) {
	if _, err := uuid.Parse(id); err != nil {
		return 0, ErrUnauthorized
	}
	sess, err := s.repo.Get(ctx, id, s.now())
	if errors.Is(err, models.ErrNotFound) {
		return 0, ErrUnauthorized
	}
	if err != nil {
		return 0, err
	}
	return sess.UserID, nil
}

// End drops the session.
func (s *SessionService) End(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
