package service

import (
	"context"
	"sort"
	"sync"

	"github.com/todoapp/todo-api/internal/model"
	"github.com/todoapp/todo-api/internal/repository"
)

// memUsers is an in-memory UserStore that enforces the same uniqueness
// rules as the database schema.
type memUsers struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]model.User
	err    error
}

func newMemUsers() *memUsers {
	return &memUsers{byID: make(map[int64]model.User)}
}

func (m *memUsers) Create(_ context.Context, user *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}

	for _, u := range m.byID {
		if u.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
		if u.Username == user.Username {
			return repository.ErrDuplicateUsername
		}
	}

	m.nextID++
	user.ID = m.nextID
	m.byID[user.ID] = *user
	return nil
}

func (m *memUsers) GetByUsername(_ context.Context, username string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}

	for _, u := range m.byID {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (m *memUsers) GetByID(_ context.Context, id int64) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}

	u, ok := m.byID[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return &u, nil
}

func (m *memUsers) List(_ context.Context) ([]model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}

	users := make([]model.User, 0, len(m.byID))
	for _, u := range m.byID {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

type memTodos struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]model.Todo
}

func newMemTodos() *memTodos {
	return &memTodos{byID: make(map[int64]model.Todo)}
}

func (m *memTodos) Create(_ context.Context, todo *model.Todo) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	todo.ID = m.nextID
	m.byID[todo.ID] = *todo
	return nil
}

func (m *memTodos) GetForOwner(_ context.Context, id, ownerID int64) (*model.Todo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.byID[id]
	if !ok || t.OwnerID != ownerID {
		return nil, repository.ErrTodoNotFound
	}
	return &t, nil
}

func (m *memTodos) ListByOwner(_ context.Context, ownerID int64) ([]model.Todo, error) {
	all, _ := m.ListAll(context.Background())
	out := []model.Todo{}
	for _, t := range all {
		if t.OwnerID == ownerID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *memTodos) ListAll(_ context.Context) ([]model.Todo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Todo, 0, len(m.byID))
	for _, t := range m.byID {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memTodos) Update(_ context.Context, todo *model.Todo) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t, ok := m.byID[todo.ID]; ok && t.OwnerID == todo.OwnerID {
		m.byID[todo.ID] = *todo
	}
	return nil
}

func (m *memTodos) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[id]; !ok {
		return repository.ErrTodoNotFound
	}
	delete(m.byID, id)
	return nil
}
