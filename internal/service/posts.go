package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/atinyakov/postboard/internal/models"
)

// PostRepository defines the persistence operations required by PostService.
type PostRepository interface {
	Create(ctx context.Context, p *models.Post) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Post, error)
	GetBySlug(ctx context.Context, slug string) (*models.Post, error)
	List(ctx context.Context) ([]models.Post, error)
	ListByUser(ctx context.Context, userID int64) ([]models.Post, error)
	Update(ctx context.Context, p *models.Post) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

// PostService implements post operations with ownership checks.
type PostService struct {
	repo PostRepository
	now  func() time.Time
}

// NewPostService constructs a PostService using the provided repository.
func NewPostService(repo PostRepository) *PostService {
	return &PostService{repo: repo, now: time.Now}
}

func titleRequired(title string) error {
	if strings.TrimSpace(title) == "" {
		return &ValidationError{Field: "title", Message: "Title cannot be empty"}
	}
	return nil
}

// Create stores a new post owned by userID.
func (s *PostService) Create(ctx context.Context, userID int64, title, body string) (*models.Post, error) {
	if err := titleRequired(title); err != nil {
		return nil, err
	}
	p := &models.Post{
		Created: s.now().Unix(),
		Title:   title,
		Body:    sanitizeBody(body),
		UserID:  userID,
		URL:     slugify(title),
	}
	id, err := s.repo.Create(ctx, p)
	if err != nil {
		return nil, err
	}
	p.ID = id
	return p, nil
}

// Get returns a post by id.
func (s *PostService) Get(ctx context.Context, id int64) (*models.Post, error) {
	return notFound(s.repo.GetByID(ctx, id))
}

// GetBySlug returns a post by its url slug.
func (s *PostService) GetBySlug(ctx context.Context, slug string) (*models.Post, error) {
	return notFound(s.repo.GetBySlug(ctx, slug))
}

func notFound(p *models.Post, err error) (*models.Post, error) {
	if errors.Is(err, models.ErrNotFound) {
		return nil, ErrNotFound
	}
	return p, err
}

// List returns every post.
func (s *PostService) List(ctx context.Context) ([]models.Post, error) {
	return s.repo.List(ctx)
}

// ListByUser returns the posts of one user.
func (s *PostService) ListByUser(ctx context.Context, userID int64) ([]models.Post, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Update replaces title and body of post id on behalf of actorID, who must
// own it. The slug is left unchanged so published links keep working.
func (s *PostService) Update(ctx context.Context, actorID, id int64, title, body string) error {
	p, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if p.UserID != actorID {
		return ErrForbidden
	}
	if err := titleRequired(title); err != nil {
		return err
	}

	p.Title = title
	p.Body = sanitizeBody(body)

	n, err := s.repo.Update(ctx, p)
	if err != nil {
		return err
	}
	if n != 1 {
		return ErrNotApplied
	}
	return nil
}

// Delete removes post id on behalf of actorID, who must own it.
func (s *PostService) Delete(ctx context.Context, actorID, id int64) error {
	p, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if p.UserID != actorID {
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
