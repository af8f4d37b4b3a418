// Package binder turns page trigger events (delete clicks, edit-field blurs)
// into REST calls against the users and posts resources, and reports the
// outcome through Notifier and Navigator capabilities instead of a live page.
package binder

import (
	"net/url"
)

// Kind identifies the resource type a trigger operates on.
type Kind string

const (
	// KindUser addresses /users/{id}.
	KindUser Kind = "user"
	// KindPost addresses /posts/{id}.
	KindPost Kind = "post"
)

// collection returns the URL segment for the kind.
func (k Kind) collection() string {
	switch k {
	case KindUser:
		return "users"
	case KindPost:
		return "posts"
	}
	return string(k) + "s"
}

// label returns the capitalized noun used in failure messages.
func (k Kind) label() string {
	switch k {
	case KindUser:
		return "User"
	case KindPost:
		return "Post"
	}
	return string(k)
}

// Ref points at a single resource. It is read from the page at event time
// and never persisted. ID is not validated: an empty ID still yields a path.
type Ref struct {
	Kind Kind
	ID   string
}

// UserRef is shorthand for Ref{Kind: KindUser, ID: id}.
func UserRef(id string) Ref { return Ref{Kind: KindUser, ID: id} }

// PostRef is shorthand for Ref{Kind: KindPost, ID: id}.
func PostRef(id string) Ref { return Ref{Kind: KindPost, ID: id} }

// Path returns the resource path, e.g. /users/42.
func (r Ref) Path() string {
	return "/" + r.Kind.collection() + "/" + url.PathEscape(r.ID)
}

// Payload maps edit field names to their current text. Field names keep the
// casing the server binds on: lower case for users, capitalized for posts.
type Payload map[string]string

// UserPayload builds the edit payload for a user.
func UserPayload(name, email, password string) Payload {
	return Payload{
		"name":     name,
		"email":    email,
		"password": password,
	}
}

// PostPayload builds the edit payload for a post.
func PostPayload(title, body string) Payload {
	return Payload{
		"Title": title,
		"Body":  body,
	}
}

// Encode renders the payload as an application/x-www-form-urlencoded body.
func (p Payload) Encode() string {
	v := make(url.Values, len(p))
	for k, val := range p {
		v.Set(k, val)
	}
	return v.Encode()
}
