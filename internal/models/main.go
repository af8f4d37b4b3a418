// Package models defines the core data structures for users, posts and
// login sessions.
package models

import (
	"errors"
	"time"
)

var (
	// ErrNotFound is returned by repositories when no row matches.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned by repositories on a unique constraint violation.
	ErrDuplicate = errors.New("duplicate")
)

// User represents a registered account.
type User struct {
	// ID is the unique identifier for the user.
	ID int64 `json:"id"`
	// Email is the login name, unique across users.
	Email string `json:"email"`
	// PasswordHash is the bcrypt hash of the user's password.
	PasswordHash []byte `json:"-"`
	// Name is the display name.
	Name string `json:"name"`
}

// Post is a blog entry owned by a user.
type Post struct {
	// ID is the unique identifier for the post.
	ID int64 `json:"id"`
	// Created is the creation time as Unix seconds.
	Created int64 `json:"created"`
	// Title is the post title; never empty.
	Title string `json:"title"`
	// Body holds sanitized HTML.
	Body string `json:"body"`
	// UserID is the owner.
	UserID int64 `json:"user_id"`
	// URL is the slug derived from the title, served under /p/{slug}.
	URL string `json:"url"`
}

// Session binds a cookie value to a user until it expires.
type Session struct {
	ID        string
	UserID    int64
	ExpiresAt time.Time
}
