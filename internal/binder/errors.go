package binder

import (
	"errors"
	"fmt"
)

// ErrUnknownTrigger is returned by Dispatch for a trigger with no handler.
var ErrUnknownTrigger = errors.New("binder: unknown trigger")

// FailureKind tells the two failure outcomes apart.
type FailureKind int

const (
	// ApplicationFailure: the request completed with a 2xx status but the
	// body was not the success marker.
	ApplicationFailure FailureKind = iota + 1
	// TransportFailure: non-2xx status or no response at all.
	TransportFailure
)

func (k FailureKind) String() string {
	switch k {
	case ApplicationFailure:
		return "application"
	case TransportFailure:
		return "transport"
	}
	return "unknown"
}

// Failure describes a failed action. Text is exactly what was shown to the
// user through the Notifier.
type Failure struct {
	Kind   FailureKind
	Method string
	Ref    Ref
	Status int
	Text   string
	Err    error
}

func (f *Failure) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("%s %s: %s failure: %v", f.Method, f.Ref.Path(), f.Kind, f.Err)
	}
	return fmt.Sprintf("%s %s: %s failure (status %d): %q", f.Method, f.Ref.Path(), f.Kind, f.Status, f.Text)
}

func (f *Failure) Unwrap() error { return f.Err }

// DeleteFailedMessage is shown when a delete returns a body other than the
// success marker.
func DeleteFailedMessage(k Kind) string {
	return "Something went wrong. " + k.label() + " was not deleted."
}

// UpdateFailedMessage is shown when an edit returns a body other than the
// success marker.
func UpdateFailedMessage(k Kind) string {
	return "Something went wrong. " + k.label() + " was not updated."
}
