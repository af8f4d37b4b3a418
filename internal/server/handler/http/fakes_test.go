package http_test

import (
	"context"
	"errors"
	"sync"

	"github.com/atinyakov/postboard/internal/models"
	"github.com/atinyakov/postboard/internal/service"
)

// fakeUsers is an in-memory user store applying the same ownership rules
// as service.UserService.
type fakeUsers struct {
	mu       sync.Mutex
	users    map[int64]models.User
	password map[int64]string
	nextID   int64
	err      error
}

func newFakeUsers(users ...models.User) *fakeUsers {
	f := &fakeUsers{users: make(map[int64]models.User), password: make(map[int64]string), nextID: 100}
	for _, u := range users {
		f.users[u.ID] = u
		f.password[u.ID] = "pass"
	}
	return f
}

func (f *fakeUsers) Register(ctx context.Context, email, password, name string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if email == "" {
		return nil, &service.ValidationError{Field: "email", Message: "Email is required"}
	}
	for _, u := range f.users {
		if u.Email == email {
			return nil, service.ErrConflict
		}
	}
	f.nextID++
	u := models.User{ID: f.nextID, Email: email, Name: name}
	f.users[u.ID] = u
	f.password[u.ID] = password
	return &u, nil
}

func (f *fakeUsers) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, u := range f.users {
		if u.Email == email && f.password[id] == password {
			return &u, nil
		}
	}
	return nil, service.ErrUnauthorized
}

func (f *fakeUsers) Get(ctx context.Context, id int64) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, service.ErrNotFound
	}
	return &u, nil
}

func (f *fakeUsers) List(ctx context.Context) ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	var out []models.User
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUsers) Update(ctx context.Context, actorID, id int64, name, email, password string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if actorID != id {
		return service.ErrForbidden
	}
	f.users[id] = models.User{ID: id, Name: name, Email: email}
	if password != "" {
		f.password[id] = password
	}
	return nil
}

func (f *fakeUsers) Delete(ctx context.Context, actorID, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if actorID != id {
		return service.ErrForbidden
	}
	delete(f.users, id)
	return nil
}

// fakePosts is an in-memory post store with owner checks.
type fakePosts struct {
	mu     sync.Mutex
	posts  map[int64]models.Post
	nextID int64
	err    error
}

func newFakePosts(posts ...models.Post) *fakePosts {
	f := &fakePosts{posts: make(map[int64]models.Post), nextID: 100}
	for _, p := range posts {
		f.posts[p.ID] = p
	}
	return f
}

func (f *fakePosts) Create(ctx context.Context, userID int64, title, body string) (*models.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if title == "" {
		return nil, &service.ValidationError{Field: "title", Message: "Title cannot be empty"}
	}
	f.nextID++
	p := models.Post{ID: f.nextID, Title: title, Body: body, UserID: userID}
	f.posts[p.ID] = p
	return &p, nil
}

func (f *fakePosts) Get(ctx context.Context, id int64) (*models.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.posts[id]
	if !ok {
		return nil, service.ErrNotFound
	}
	return &p, nil
}

func (f *fakePosts) GetBySlug(ctx context.Context, slug string) (*models.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.posts {
		if p.URL == slug {
			return &p, nil
		}
	}
	return nil, service.ErrNotFound
}

func (f *fakePosts) List(ctx context.Context) ([]models.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Post
	for _, p := range f.posts {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakePosts) ListByUser(ctx context.Context, userID int64) ([]models.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Post
	for _, p := range f.posts {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePosts) Update(ctx context.Context, actorID, id int64, title, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	p, ok := f.posts[id]
	if !ok {
		return service.ErrNotFound
	}
	if p.UserID != actorID {
		return service.ErrForbidden
	}
	if title == "" {
		return &service.ValidationError{Field: "title", Message: "Title cannot be empty"}
	}
	p.Title, p.Body = title, body
	f.posts[id] = p
	return nil
}

func (f *fakePosts) Delete(ctx context.Context, actorID, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	p, ok := f.posts[id]
	if !ok {
		return service.ErrNotFound
	}
	if p.UserID != actorID {
		return service.ErrForbidden
	}
	delete(f.posts, id)
	return nil
}

// fakeSessions maps session ids to users.
type fakeSessions struct {
	mu       sync.Mutex
	sessions map[string]int64
	ended    []string
}

func newFakeSessions(seed map[string]int64) *fakeSessions {
	f := &fakeSessions{sessions: make(map[string]int64)}
	for k, v := range seed {
		f.sessions[k] = v
	}
	return f
}

func (f *fakeSessions) Start(ctx context.Context, userID int64) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := "sess-" + string(rune('a'+len(f.sessions)))
	f.sessions[id] = userID
	return id, nil
}

func (f *fakeSessions) Resolve(ctx context.Context, id string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	uid, ok := f.sessions[id]
	if !ok {
		return 0, errors.New("unknown session")
	}
	return uid, nil
}

func (f *fakeSessions) End(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.sessions, id)
	f.ended = append(f.ended, id)
	return nil
}
