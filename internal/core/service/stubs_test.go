package service

import (
	"context"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/apiintegration/taskhub/internal/core/domain"
	"github.com/apiintegration/taskhub/internal/core/ports"
)

type stubUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[string]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) ExistsByUsernameOrEmail(_ context.Context, username, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username || u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.users[user.Username]; exists {
		return nil, domain.ErrUserExists
	}
	r.nextID++
	stored := cloneUser(user)
	stored.ID = r.nextID
	r.users[stored.Username] = stored
	return cloneUser(stored), nil
}

type stubTodoRepo struct {
	mu     sync.Mutex
	nextID int64
	todos  map[int64]*domain.Todo
}

func newStubTodoRepo() *stubTodoRepo {
	return &stubTodoRepo{todos: make(map[int64]*domain.Todo)}
}

func (r *stubTodoRepo) Create(_ context.Context, t *domain.Todo) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	t.ID = r.nextID
	clone := *t
	r.todos[t.ID] = &clone
	return nil
}

func (r *stubTodoRepo) FindByID(_ context.Context, id int64) (*domain.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.todos[id]
	if !ok {
		return nil, domain.ErrTodoNotFound
	}
	clone := *t
	return &clone, nil
}

func (r *stubTodoRepo) FindByIdempotencyKey(_ context.Context, key string) (*domain.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.todos {
		if t.IdempotencyKey == key {
			clone := *t
			return &clone, nil
		}
	}
	return nil, domain.ErrTodoNotFound
}

func (r *stubTodoRepo) List(_ context.Context, page, limit int) ([]*domain.Todo, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]int64, 0, len(r.todos))
	for id := range r.todos {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	start := (page - 1) * limit
	if start > len(ids) {
		start = len(ids)
	}
	end := min(start+limit, len(ids))

	out := make([]*domain.Todo, 0, end-start)
	for _, id := range ids[start:end] {
		clone := *r.todos[id]
		out = append(out, &clone)
	}
	return out, int64(len(ids)), nil
}

func (r *stubTodoRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.todos[id]; !ok {
		return domain.ErrTodoNotFound
	}
	delete(r.todos, id)
	return nil
}

type recordingAuditSink struct {
	mu      sync.Mutex
	entries []domain.AuditEntry
}

func (s *recordingAuditSink) Enqueue(entry domain.AuditEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
}

func (s *recordingAuditSink) all() []domain.AuditEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.AuditEntry(nil), s.entries...)
}

type stubUpstream struct {
	users      *ports.UpstreamResponse
	err        error
	userCalls  int
	lastURL    string
	lastFile   string
	lastUpload []byte
}

func (u *stubUpstream) ListUsers(context.Context) (*ports.UpstreamResponse, error) {
	u.userCalls++
	if u.err != nil {
		return nil, u.err
	}
	return u.users, nil
}

func (u *stubUpstream) PredictURL(_ context.Context, imageURL string) (*ports.UpstreamResponse, error) {
	u.lastURL = imageURL
	if u.err != nil {
		return nil, u.err
	}
	return &ports.UpstreamResponse{StatusCode: 200, ContentType: "application/json", Body: []byte(`{"label":"apple"}`)}, nil
}

func (u *stubUpstream) PredictUpload(_ context.Context, filename string, file io.Reader) (*ports.UpstreamResponse, error) {
	u.lastFile = filename
	u.lastUpload, _ = io.ReadAll(file)
	if u.err != nil {
		return nil, u.err
	}
	return &ports.UpstreamResponse{StatusCode: 200, ContentType: "application/json", Body: []byte(`{"label":"banana"}`)}, nil
}

type memoryCache struct {
	entries map[string]*ports.UpstreamResponse
	ttls    map[string]time.Duration
	getErr  error
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string]*ports.UpstreamResponse{}, ttls: map[string]time.Duration{}}
}

func (c *memoryCache) Get(_ context.Context, key string) (*ports.UpstreamResponse, bool, error) {
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	resp, ok := c.entries[key]
	return resp, ok, nil
}

func (c *memoryCache) Set(_ context.Context, key string, resp *ports.UpstreamResponse, ttl time.Duration) error {
	c.entries[key] = resp
	c.ttls[key] = ttl
	return nil
}
