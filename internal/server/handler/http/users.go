package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/atinyakov/postboard/internal/models"
	"github.com/atinyakov/postboard/internal/service"
)

// UserService defines the account operations required by UserHandler.
type UserService interface {
	Register(ctx context.Context, email, password, name string) (*models.User, error)
	Get(ctx context.Context, id int64) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	// Update and Delete enforce that actorID owns account id.
	Update(ctx context.Context, actorID, id int64, name, email, password string) error
	Delete(ctx context.Context, actorID, id int64) error
}

// UserPosts lists the posts shown on a user's profile.
type UserPosts interface {
	ListByUser(ctx context.Context, userID int64) ([]models.Post, error)
}

// SessionStarter opens a login session for a user.
type SessionStarter interface {
	Start(ctx context.Context, userID int64) (string, error)
}

// UserHandler handles the /users routes.
type UserHandler struct {
	Users    UserService
	Posts    UserPosts
	Sessions SessionStarter
}

// List handles GET /users.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.Users.List(r.Context())
	if err != nil {
		writeText(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	if users == nil {
		users = []models.User{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"users": users})
}

// Show handles GET /users/{id}: the profile and its posts.
func (h *UserHandler) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeText(w, http.StatusNotFound, "User not found")
		return
	}
	user, err := h.Users.Get(r.Context(), id)
	if errors.Is(err, service.ErrNotFound) {
		writeText(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		writeText(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	posts, err := h.Posts.ListByUser(r.Context(), id)
	if err != nil {
		writeText(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	if posts == nil {
		posts = []models.Post{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": user, "posts": posts})
}

// Register handles POST /users. On success it logs the new user in and
// redirects to the home page.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	form, err := formValues(r)
	if err != nil {
		writeText(w, http.StatusBadRequest, "Error with Form Submission")
		return
	}

	user, err := h.Users.Register(r.Context(), form["email"], form["password"], form["name"])
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		writeText(w, http.StatusBadRequest, verr.Message)
		return
	case errors.Is(err, service.ErrConflict):
		writeText(w, http.StatusConflict, "Email is already registered.")
		return
	case err != nil:
		writeText(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	sid, err := h.Sessions.Start(r.Context(), user.ID)
	if err != nil {
		writeText(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	setSessionCookie(w, r, sid)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Update handles PUT /users/{id}. Only the logged-in owner may update.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	const forbidden = "You are not allowed to update this resource."
	id, ok := idParam(r)
	if !ok {
		writeText(w, http.StatusForbidden, forbidden)
		return
	}
	form, err := formValues(r)
	if err != nil {
		writeText(w, http.StatusBadRequest, "Error with Form Submission")
		return
	}

	err = h.Users.Update(r.Context(), actor(r), id, form["name"], form["email"], form["password"])
	if err != nil {
		writeMutationError(w, err, forbidden)
		return
	}
	writeSuccess(w)
}

// Delete handles DELETE /users/{id}. Only the logged-in owner may delete.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	const forbidden = "You are not allowed to delete this resource."
	id, ok := idParam(r)
	if !ok {
		writeText(w, http.StatusForbidden, forbidden)
		return
	}
	if err := h.Users.Delete(r.Context(), actor(r), id); err != nil {
		writeMutationError(w, err, forbidden)
		return
	}
	clearSessionCookie(w, r)
	writeSuccess(w)
}
