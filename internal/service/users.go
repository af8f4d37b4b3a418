package service

import (
	"context"
	"errors"
	"strings"

	"github.com/atinyakov/postboard/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// UserRepository defines the persistence operations required by UserService.
type UserRepository interface {
	// Create inserts a user and returns its id; models.ErrDuplicate on a taken email.
	Create(ctx context.Context, u *models.User) (int64, error)
	// GetByID returns the user or models.ErrNotFound.
	GetByID(ctx context.Context, id int64) (*models.User, error)
	// GetByEmail returns the user or models.ErrNotFound.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// List returns all users ordered by id.
	List(ctx context.Context) ([]models.User, error)
	// Update writes the user and returns the number of rows changed.
	Update(ctx context.Context, u *models.User) (int64, error)
	// Delete removes the user and returns the number of rows removed.
	Delete(ctx context.Context, id int64) (int64, error)
}

// UserService implements account operations.
type UserService struct {
	repo UserRepository
	cost int
}

// NewUserService constructs a UserService using the provided repository.
func NewUserService(repo UserRepository) *UserService {
	return &UserService{repo: repo, cost: bcrypt.DefaultCost}
}

// Register creates an account. Email and password are required.
func (s *UserService) Register(ctx context.Context, email, password, name string) (*models.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, &ValidationError{Field: "email", Message: "Email is required"}
	}
	if password == "" {
		return nil, &ValidationError{Field: "password", Message: "Password is required"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, err
	}

	u := &models.User{Email: email, PasswordHash: hash, Name: name}
	id, err := s.repo.Create(ctx, u)
	if errors.Is(err, models.ErrDuplicate) {
		return nil, ErrConflict
	}
	if err != nil {
		return nil, err
	}
	u.ID = id
	return u, nil
}

// Authenticate returns the user whose email and password match.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	u, err := s.repo.GetByEmail(ctx, strings.TrimSpace(email))
	if errors.Is(err, models.ErrNotFound) {
		return nil, ErrUnauthorized
	}
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password)); err != nil {
		return nil, ErrUnauthorized
	}
	return u, nil
}

// Get returns a user by id.
func (s *UserService) Get(ctx context.Context, id int64) (*models.User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, models.ErrNotFound) {
		return nil, ErrNotFound
	}
	return u, err
}

// List returns every user.
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.repo.List(ctx)
}

// Update changes the account id on behalf of actorID. Only the account
// owner may update it. An empty password keeps the current one.
func (s *UserService) Update(ctx context.Context, actorID, id int64, name, email, password string) error {
	if actorID != id {
		return ErrForbidden
	}
	email = strings.TrimSpace(email)
	if email == "" {
		return &ValidationError{Field: "email", Message: "Email is required"}
	}

	u := &models.User{ID: id, Email: email, Name: name}
	if password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
		if err != nil {
			return err
		}
		u.PasswordHash = hash
	}

	n, err := s.repo.Update(ctx, u)
	if errors.Is(err, models.ErrDuplicate) {
		return ErrConflict
	}
	if err != nil {
		return err
	}
	if n != 1 {
		return ErrNotApplied
	}
	return nil
}

// Delete removes the account id on behalf of actorID. Only the account
// owner may delete it.
func (s *UserService) Delete(ctx context.Context, actorID, id int64) error {
	if actorID != id {
		return ErrForbidden
	}
	n, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if n != 1 {
		return ErrNotApplied
	}
	return nil
}
