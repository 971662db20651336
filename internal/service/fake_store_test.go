package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Shivanand-hulikatti/petu/internal/model"
	"github.com/Shivanand-hulikatti/petu/internal/repository"
)

// memStore is an in-memory repository.Store for service tests.
type memStore struct {
	mu      sync.Mutex
	events  map[string]model.Event
	order   []string
	users   map[string]model.User
	nextID  int
	listErr error
	pingErr error
}

func newMemStore() *memStore {
	return &memStore{events: map[string]model.Event{}, users: map[string]model.User{}}
}

func (m *memStore) ListEvents(context.Context) ([]model.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]model.Event, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.events[id])
	}
	return out, nil
}

func (m *memStore) GetEvent(_ context.Context, id string) (*model.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.events[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &e, nil
}

func (m *memStore) CreateEvent(_ context.Context, e model.Event) (*model.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	e.ID = fmt.Sprintf("evt-%d", m.nextID)
	e.CreatedAt = time.Now().UTC()
	m.events[e.ID] = e
	m.order = append(m.order, e.ID)
	return &e, nil
}

func (m *memStore) JoinEvent(_ context.Context, id string) (*model.JoinOutcome, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.events[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if e.RequiresApproval {
		e.PendingRequests++
	} else {
		if e.IsFull() {
			return nil, repository.ErrEventFull
		}
		e.CurrentPlayers++
		e.Status = e.Status.Advance(e.CurrentPlayers, e.MinQuorum)
	}
	m.events[id] = e
	return &model.JoinOutcome{
		EventID:          id,
		RequiresApproval: e.RequiresApproval,
		CurrentPlayers:   e.CurrentPlayers,
		PendingRequests:  e.PendingRequests,
		Status:           e.Status,
	}, nil
}

func (m *memStore) CreateUser(_ context.Context, u model.User) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	if _, ok := m.users[u.Email]; ok {
		return nil, repository.ErrEmailTaken
	}
	m.nextID++
	u.ID = fmt.Sprintf("usr-%d", m.nextID)
	m.users[u.Email] = u
	return &u, nil
}

func (m *memStore) UserByEmail(_ context.Context, email string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (m *memStore) Ping(context.Context) error { return m.pingErr }

func (m *memStore) Close() error { return nil }

var _ repository.Store = (*memStore)(nil)
