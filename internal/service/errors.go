// Package service provides the user, post and session business rules,
// delegating persistence to repository interfaces.
package service

import "errors"

var (
	// ErrNotFound means the addressed user or post does not exist.
	ErrNotFound = errors.New("not found")
	// ErrForbidden means the acting user does not own the resource.
	ErrForbidden = errors.New("forbidden")
	// ErrConflict means the email is already registered.
	ErrConflict = errors.New("conflict")
	// ErrUnauthorized means the credentials or session are invalid.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotApplied means the write matched no row.
	ErrNotApplied = errors.New("not applied")
	// ErrInvalid is matched by every *ValidationError.
	ErrInvalid = errors.New("invalid input")
)

// ValidationError reports a rejected field value.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Is lets errors.Is(err, ErrInvalid) match any validation error.
func (e *ValidationError) Is(target error) bool { return target == ErrInvalid }
