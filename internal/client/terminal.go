package client

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
)

// Terminal renders binder notifications and navigations on a writer. It
// satisfies both binder.Notifier and binder.Navigator.
type Terminal struct {
	mu  sync.Mutex
	out io.Writer
	err *color.Color
	nav *color.Color

	last     string
	notified int
}

// NewTerminal writes to out. Colors follow color.NoColor, so they are off
// when out is not a terminal.
func NewTerminal(out io.Writer) *Terminal {
	return &Terminal{
		out: out,
		err: color.New(color.FgHiRed, color.Bold),
		nav: color.New(color.FgHiGreen),
	}
}

// Notify prints msg as the current error text. An empty msg (a failure
// with no response body) is counted but prints nothing.
func (t *Terminal) Notify(msg string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.last = msg
	t.notified++
	if msg != "" {
		_, _ = t.err.Fprintln(t.out, msg)
	}
}

// Navigate reports where a browser would have gone.
func (t *Terminal) Navigate(path string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, _ = fmt.Fprintln(t.out, t.nav.Sprint("→ "+path))
}

// Notified reports whether Notify was called, even with empty text.
func (t *Terminal) Notified() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.notified > 0
}

// Last returns the most recent notification, or "" if none was shown.
func (t *Terminal) Last() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.last
}
