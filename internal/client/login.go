package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// SessionCookie is the cookie the server issues on login.
const SessionCookie = "session_id"

// ErrBadCredentials is returned when the server rejects the email/password pair.
var ErrBadCredentials = errors.New("invalid email or password")

// Login posts the credentials to /login and returns the session id the
// server set. c must not follow redirects (see NewHTTPClient).
func Login(ctx context.Context, c *http.Client, baseURL, email, password string) (string, error) {
	form := url.Values{"email": {email}, "password": {password}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		strings.TrimRight(baseURL, "/")+"/login", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.Do(req)
	if err != nil {
		return "", fmt.Errorf("login failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		data, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("server error: %s", string(data))
	}

	for _, ck := range resp.Cookies() {
		if ck.Name == SessionCookie && ck.Value != "" {
			return ck.Value, nil
		}
	}
	return "", ErrBadCredentials
}

// CookieHeader formats a session id as a Cookie request header value.
func CookieHeader(session string) string {
	return (&http.Cookie{Name: SessionCookie, Value: session}).String()
}

// Logout ends the session on the server. The server answers with a redirect
// whether or not the session was still live, so any status below 400 counts
// as success.
func Logout(ctx context.Context, c *http.Client, baseURL, session string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimRight(baseURL, "/")+"/logout", nil)
	if err != nil {
		return err
	}
	req.Header.Set("Cookie", CookieHeader(session))

	resp, err := c.Do(req)
	if err != nil {
		return fmt.Errorf("logout failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server error: %s", string(data))
	}
	return nil
}
