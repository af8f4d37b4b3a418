package binder

import "sync"

// Notifier displays failure text to the user. It replaces the page's single
// error element.
type Notifier interface {
	Notify(text string)
}

// Navigator performs a full page navigation to path.
type Navigator interface {
	Navigate(path string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(text string)

// Notify calls f(text).
func (f NotifierFunc) Notify(text string) { f(text) }

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(path string)

// Navigate calls f(path).
func (f NavigatorFunc) Navigate(path string) { f(path) }

// Slot is a Notifier holding only the most recent message. Concurrent
// writers race and the last one wins; earlier messages are lost.
type Slot struct {
	mu   sync.Mutex
	text string
}

// Notify overwrites the slot.
func (s *Slot) Notify(text string) {
	s.mu.Lock()
	s.text = text
	s.mu.Unlock()
}

// Text returns the current slot content.
func (s *Slot) Text() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.text
}
