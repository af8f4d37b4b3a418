package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/atinyakov/postboard/internal/models"
	"github.com/atinyakov/postboard/internal/service"
	"github.com/go-chi/chi/v5"
)

// PostService defines the post operations required by PostHandler.
type PostService interface {
	Create(ctx context.Context, userID int64, title, body string) (*models.Post, error)
	Get(ctx context.Context, id int64) (*models.Post, error)
	GetBySlug(ctx context.Context, slug string) (*models.Post, error)
	List(ctx context.Context) ([]models.Post, error)
	// Update and Delete enforce that actorID owns post id.
	Update(ctx context.Context, actorID, id int64, title, body string) error
	Delete(ctx context.Context, actorID, id int64) error
}

// PostHandler handles the home page and the /posts routes.
type PostHandler struct {
	Posts PostService
}

// Index handles GET /: every post ordered by id.
func (h *PostHandler) Index(w http.ResponseWriter, r *http.Request) {
	posts, err := h.Posts.List(r.Context())
	if err != nil {
		writeText(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	if posts == nil {
		posts = []models.Post{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"posts": posts})
}

// Show handles GET /posts/{id}.
func (h *PostHandler) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeText(w, http.StatusNotFound, "This is not found")
		return
	}
	h.writePost(w, func(ctx context.Context) (*models.Post, error) { return h.Posts.Get(ctx, id) }, r)
}

// ShowBySlug handles GET /p/{slug}.
func (h *PostHandler) ShowBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	h.writePost(w, func(ctx context.Context) (*models.Post, error) { return h.Posts.GetBySlug(ctx, slug) }, r)
}

func (h *PostHandler) writePost(w http.ResponseWriter, get func(context.Context) (*models.Post, error), r *http.Request) {
	post, err := get(r.Context())
	if errors.Is(err, service.ErrNotFound) {
		writeText(w, http.StatusNotFound, "This is not found")
		return
	}
	if err != nil {
		writeText(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"post": post})
}

// Create handles POST /posts for the logged-in user and redirects home.
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	form, err := formValues(r)
	if err != nil {
		writeText(w, http.StatusBadRequest, "Error with Form Submission")
		return
	}

	_, err = h.Posts.Create(r.Context(), actor(r), form["Title"], form["Body"])
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		writeText(w, http.StatusBadRequest, verr.Message)
		return
	case err != nil:
		writeText(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Update handles PUT /posts/{id}. Only the owner may modify the post.
func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	const forbidden = "You are not allowed to modify this resource."
	id, ok := idParam(r)
	if !ok {
		writeText(w, http.StatusBadRequest, "Something went wrong.")
		return
	}
	form, err := formValues(r)
	if err != nil {
		writeText(w, http.StatusBadRequest, "Error with Form Submission")
		return
	}

	if err := h.Posts.Update(r.Context(), actor(r), id, form["Title"], form["Body"]); err != nil {
		writeMutationError(w, err, forbidden)
		return
	}
	writeSuccess(w)
}

// Delete handles DELETE /posts/{id}. Only the owner may delete the post.
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	const forbidden = "You are not allowed to delete this resource."
	id, ok := idParam(r)
	if !ok {
		writeText(w, http.StatusBadRequest, "Something went wrong.")
		return
	}
	if err := h.Posts.Delete(r.Context(), actor(r), id); err != nil {
		writeMutationError(w, err, forbidden)
		return
	}
	writeSuccess(w)
}
