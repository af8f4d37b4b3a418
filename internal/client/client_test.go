package client

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_MissingFileGivesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Empty(t, cfg.Session)
}

func TestConfig_SaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	in := &Config{BaseURL: "https://board.example", Session: "abc"}
	require.NoError(t, in.Save(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	out, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestLoadConfig_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	require.NoError(t, os.WriteFile(path, []byte("base_url: [unterminated"), 0o600))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfig_EmptyBaseURLFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	require.NoError(t, os.WriteFile(path, []byte("session: s1\n"), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, "s1", cfg.Session)
}

func TestNewHTTPClient_BadCAFile(t *testing.T) {
	_, err := NewHTTPClient(filepath.Join(t.TempDir(), "missing.crt"))
	assert.Error(t, err)

	junk := filepath.Join(t.TempDir(), "junk.crt")
	require.NoError(t, os.WriteFile(junk, []byte("not a cert"), 0o600))
	_, err = NewHTTPClient(junk)
	assert.EqualError(t, err, "failed to parse CA cert")
}

func loginServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/login" || r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}
		_ = r.ParseForm()
		switch {
		case r.PostForm.Get("email") == "":
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte("Error with Form Submission"))
		case r.PostForm.Get("password") == "pw":
			http.SetCookie(w, &http.Cookie{Name: SessionCookie, Value: "sess-1", Path: "/"})
			http.Redirect(w, r, "/", http.StatusSeeOther)
		default:
			http.Redirect(w, r, "/login", http.StatusSeeOther)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestLogin(t *testing.T) {
	srv := loginServer(t)
	c, err := NewHTTPClient("")
	require.NoError(t, err)

	sid, err := Login(context.Background(), c, srv.URL+"/", "a@x.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "sess-1", sid)

	_, err = Login(context.Background(), c, srv.URL, "a@x.com", "wrong")
	assert.ErrorIs(t, err, ErrBadCredentials)

	_, err = Login(context.Background(), c, srv.URL, "", "pw")
	assert.EqualError(t, err, "server error: Error with Form Submission")
}

func TestCookieHeader(t *testing.T) {
	assert.Equal(t, "session_id=abc", CookieHeader("abc"))
}

func TestTerminal(t *testing.T) {
	old := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = old })

	var buf bytes.Buffer
	term := NewTerminal(&buf)
	assert.Empty(t, term.Last())
	assert.False(t, term.Notified())

	term.Notify("Something went wrong. Post was not deleted.")
	term.Navigate("/")

	assert.Equal(t, "Something went wrong. Post was not deleted.", term.Last())
	assert.Equal(t, "Something went wrong. Post was not deleted.\n→ /\n", buf.String())
}

func TestSurveyPrompter_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := SurveyPrompter{}.Password(ctx, "Password:")
	assert.ErrorIs(t, err, context.Canceled)
	_, err = SurveyPrompter{}.Input(ctx, "Email:")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTerminal_EmptyNotificationStillCounts(t *testing.T) {
	var buf bytes.Buffer
	term := NewTerminal(&buf)

	term.Notify("")

	assert.True(t, term.Notified())
	assert.Empty(t, term.Last())
	assert.Empty(t, buf.String())
}

func TestLogout(t *testing.T) {
	var (
		mu        sync.Mutex
		gotCookie string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/logout":
			if c, err := r.Cookie(SessionCookie); err == nil {
				mu.Lock()
				gotCookie = c.Value
				mu.Unlock()
			}
			http.Redirect(w, r, "/", http.StatusSeeOther)
		default:
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte("boom"))
		}
	}))
	t.Cleanup(srv.Close)
	c, err := NewHTTPClient("")
	require.NoError(t, err)

	require.NoError(t, Logout(context.Background(), c, srv.URL, "sess-1"))
	mu.Lock()
	assert.Equal(t, "sess-1", gotCookie)
	mu.Unlock()

	err = Logout(context.Background(), c, srv.URL+"/broken", "sess-1")
	assert.EqualError(t, err, "server error: boom")
}
