// Package http provides the REST handlers for users, posts and login
// sessions, and the router that mounts them.
package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/atinyakov/postboard/internal/middleware"
	"github.com/atinyakov/postboard/internal/service"
	"github.com/go-chi/chi/v5"
)

// successBody is the exact body clients treat as success.
const successBody = "success"

// writeText writes body verbatim as text/plain. Unlike http.Error it adds
// no trailing newline, so clients can display the body as-is.
func writeText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func writeSuccess(w http.ResponseWriter) {
	writeText(w, http.StatusOK, successBody)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// idParam parses the {id} route parameter.
func idParam(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil
}

// actor returns the session user, or 0 for anonymous callers. Ids start at
// 1, so 0 never owns anything.
func actor(r *http.Request) int64 {
	id, _ := middleware.GetUserIDFromContext(r.Context())
	return id
}

// formValues reads a urlencoded or JSON object body into a flat map. Missing
// fields read as empty strings.
func formValues(r *http.Request) (map[string]string, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var m map[string]string
		if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
			return nil, err
		}
		if m == nil {
			m = map[string]string{}
		}
		return m, nil
	}

	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	m := make(map[string]string, len(r.PostForm))
	for k := range r.PostForm {
		m[k] = r.PostForm.Get(k)
	}
	return m, nil
}

// writeMutationError maps service errors of PUT and DELETE handlers to the
// plain-text bodies clients display.
func writeMutationError(w http.ResponseWriter, err error, forbiddenMsg string) {
	var verr *service.ValidationError
	switch {
	case errors.Is(err, service.ErrForbidden):
		writeText(w, http.StatusForbidden, forbiddenMsg)
	case errors.As(err, &verr):
		writeText(w, http.StatusBadRequest, verr.Message)
	case errors.Is(err, service.ErrNotFound):
		writeText(w, http.StatusBadRequest, "Something went wrong.")
	case errors.Is(err, service.ErrConflict):
		writeText(w, http.StatusConflict, "Email is already registered.")
	case errors.Is(err, service.ErrNotApplied):
		writeText(w, http.StatusBadRequest, "error")
	default:
		writeText(w, http.StatusInternalServerError, "Internal Server Error")
	}
}
