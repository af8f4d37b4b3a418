// Package middleware provides HTTP middlewares for session authentication
// and request logging.
package middleware

import (
	"context"
	"net/http"
	"net/url"
)

type ctxKey string

const userKey ctxKey = "user"

// SessionCookie is the cookie carrying the login session id.
const SessionCookie = "session_id"

// SessionResolver maps a session id to the id of the logged-in user.
type SessionResolver interface {
	Resolve(ctx context.Context, sessionID string) (int64, error)
}

// SessionAuth resolves the session cookie, if any, and stores the user id
// in the request context. Requests without a valid session continue
// anonymously; handlers decide what an anonymous caller may do.
func SessionAuth(sessions SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c, err := r.Cookie(SessionCookie)
			if err != nil || c.Value == "" {
				next.ServeHTTP(w, r)
				return
			}
			userID, err := sessions.Resolve(r.Context(), c.Value)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			ctx := WithUserID(r.Context(), userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// LoginRequired redirects anonymous callers to /login?next=<path>.
func LoginRequired(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetUserIDFromContext(r.Context()); !ok {
			target := "/login?" + url.Values{"next": {r.URL.RequestURI()}}.Encode()
			http.Redirect(w, r, target, http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// WithUserID returns a copy of ctx carrying the authenticated user id.
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userKey, userID)
}

// GetUserIDFromContext extracts the authenticated user id from the request
// context. ok is false for anonymous requests.
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userKey).(int64)
	return id, ok
}
