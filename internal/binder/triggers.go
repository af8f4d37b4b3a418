package binder

import (
	"context"
	"fmt"
)

// TriggerKind names the page element class a handler is bound to.
type TriggerKind string

const (
	// DeleteUser fires on a click of a .delete_user trigger.
	DeleteUser TriggerKind = "delete_user"
	// DeletePost fires on a click of a .delete_post trigger.
	DeletePost TriggerKind = "delete_post"
	// UserEdit fires on blur of a .useredit region.
	UserEdit TriggerKind = "useredit"
	// PostEdit fires on blur of a .postedit region.
	PostEdit TriggerKind = "postedit"
)

// Element ids the edit handlers read from the page.
const (
	UserIDField       = "userid"
	UserNameField     = "username"
	UserEmailField    = "useremail"
	UserPasswordField = "userpassword"
	PostIDField       = "postid"
	PostTitleField    = "posttitle"
	PostBodyField     = "postbody"
)

// Document is the part of the page a handler reads at event time.
type Document interface {
	// Text returns the visible text of the element with the given id.
	Text(id string) string
	// HTML returns the inner markup of the element with the given id.
	HTML(id string) string
	// Value returns the value of the form field with the given id.
	Value(id string) string
}

// Fields is a Document backed by a flat map; Text, HTML and Value all read
// the same entry.
type Fields map[string]string

// Text returns the entry for id.
func (f Fields) Text(id string) string { return f[id] }

// HTML returns the entry for id.
func (f Fields) HTML(id string) string { return f[id] }

// Value returns the entry for id.
func (f Fields) Value(id string) string { return f[id] }

// Event is one user interaction. Rel carries the trigger's rel attribute
// for delete triggers; Doc is consulted by edit triggers.
type Event struct {
	Trigger TriggerKind
	Rel     string
	Doc     Document
}

// Handler performs the action for one event.
type Handler func(ctx context.Context, ev Event) error

// Bind returns the trigger table.
func (b *Binder) Bind() map[TriggerKind]Handler {
	return map[TriggerKind]Handler{
		DeleteUser: func(ctx context.Context, ev Event) error {
			return b.Delete(ctx, UserRef(ev.Rel))
		},
		DeletePost: func(ctx context.Context, ev Event) error {
			return b.Delete(ctx, PostRef(ev.Rel))
		},
		UserEdit: func(ctx context.Context, ev Event) error {
			doc := docOrEmpty(ev.Doc)
			p := UserPayload(doc.Text(UserNameField), doc.Text(UserEmailField), doc.Text(UserPasswordField))
			return b.Edit(ctx, UserRef(doc.Value(UserIDField)), p)
		},
		PostEdit: func(ctx context.Context, ev Event) error {
			doc := docOrEmpty(ev.Doc)
			p := PostPayload(doc.Text(PostTitleField), doc.HTML(PostBodyField))
			return b.Edit(ctx, PostRef(doc.Value(PostIDField)), p)
		},
	}
}

func docOrEmpty(d Document) Document {
	if d == nil {
		return Fields{}
	}
	return d
}

// Run performs the action for ev and returns once it has completed. Unlike
// Dispatch it honors ctx cancellation and returns the *Failure, if any.
func (b *Binder) Run(ctx context.Context, ev Event) error {
	h, ok := b.handlers[ev.Trigger]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTrigger, ev.Trigger)
	}
	return h(ctx, ev)
}

// Dispatch runs the handler for ev in the background and returns at once.
// The request is detached from ctx cancellation: once issued it runs to
// completion. Outcomes surface through the Notifier and Navigator only.
func (b *Binder) Dispatch(ctx context.Context, ev Event) error {
	h, ok := b.handlers[ev.Trigger]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTrigger, ev.Trigger)
	}

	ctx = context.WithoutCancel(ctx)
	b.inflight.Add(1)
	go func() {
		defer b.inflight.Done()
		_ = h(ctx, ev)
	}()
	return nil
}

// Wait blocks until every dispatched request has completed.
func (b *Binder) Wait() {
	b.inflight.Wait()
}
