package http

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/atinyakov/postboard/internal/middleware"
	"github.com/atinyakov/postboard/internal/models"
	"github.com/atinyakov/postboard/internal/service"
)

// Authenticator checks login credentials.
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
}

// SessionService opens and closes login sessions.
type SessionService interface {
	SessionStarter
	End(ctx context.Context, sessionID string) error
}

// AuthHandler handles login and logout.
type AuthHandler struct {
	Users    Authenticator
	Sessions SessionService
}

// Login handles POST /login. Valid credentials set the session cookie and
// redirect to the "next" query parameter (or "/"); invalid ones redirect
// back to /login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	form, err := formValues(r)
	if err != nil {
		writeText(w, http.StatusBadRequest, "Error with Form Submission")
		return
	}
	if form["email"] == "" || form["password"] == "" {
		writeText(w, http.StatusBadRequest, "Error with Form Submission")
		return
	}

	user, err := h.Users.Authenticate(r.Context(), form["email"], form["password"])
	if errors.Is(err, service.ErrUnauthorized) {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	if err != nil {
		writeText(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	sid, err := h.Sessions.Start(r.Context(), user.ID)
	if err != nil {
		writeText(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	setSessionCookie(w, r, sid)
	http.Redirect(w, r, safeNext(r.URL.Query().Get("next")), http.StatusSeeOther)
}

// loginPage describes the login form a client should render.
type loginPage struct {
	Page   string `json:"page"`
	Action string `json:"action"`
	Next   string `json:"next"`
}

// LoginPage handles GET /login, the target of login-required redirects.
// Logged-in callers go straight to next.
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	next := safeNext(r.URL.Query().Get("next"))
	if _, ok := middleware.GetUserIDFromContext(r.Context()); ok {
		http.Redirect(w, r, next, http.StatusSeeOther)
		return
	}
	action := "/login"
	if next != "/" {
		action += "?" + url.Values{"next": {next}}.Encode()
	}
	writeJSON(w, http.StatusOK, loginPage{Page: "login", Action: action, Next: next})
}

// RegisterPage handles GET /register. Logged-in callers go to "/".
func (h *AuthHandler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetUserIDFromContext(r.Context()); ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	writeJSON(w, http.StatusOK, loginPage{Page: "register", Action: "/users", Next: "/"})
}

// Logout handles GET /logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(middleware.SessionCookie); err == nil {
		_ = h.Sessions.End(r.Context(), c.Value)
	}
	clearSessionCookie(w, r)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// safeNext keeps redirects on this site.
func safeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return "/"
	}
	return next
}

func isHTTPS(r *http.Request) bool {
	return r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}

func setSessionCookie(w http.ResponseWriter, r *http.Request, sessionID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		Secure:   isHTTPS(r),
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   isHTTPS(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}
