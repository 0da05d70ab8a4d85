package service

import (
	"context"
	"errors"

	"github.com/todoapp/todo-api/internal/model"
	"github.com/todoapp/todo-api/internal/repository"
	"github.com/todoapp/todo-api/internal/validate"
)

var ErrTodoNotFound = errors.New("todo not found")

// TodoStore is the persistence the todo use cases depend on.
type TodoStore interface {
	Create(ctx context.Context, todo *model.Todo) error
	GetForOwner(ctx context.Context, id, ownerID int64) (*model.Todo, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]model.Todo, error)
	ListAll(ctx context.Context) ([]model.Todo, error)
	Update(ctx context.Context, todo *model.Todo) error
	Delete(ctx context.Context, id int64) error
}

// TodoService handles todo business logic. Every user operation is scoped
// to the owner id carried by the principal.
type TodoService struct {
	todos     TodoStore
	validator *validate.Validator
}

// NewTodoService creates a new TodoService.
func NewTodoService(todos TodoStore, v *validate.Validator) *TodoService {
	return &TodoService{todos: todos, validator: v}
}

// List returns the caller's todos.
func (s *TodoService) List(ctx context.Context, p model.Principal) ([]model.Todo, error) {
	return s.todos.ListByOwner(ctx, p.ID)
}

// Get returns one of the caller's todos.
func (s *TodoService) Get(ctx context.Context, p model.Principal, id int64) (*model.Todo, error) {
	todo, err := s.todos.GetForOwner(ctx, id, p.ID)
	return todo, notFound(err)
}

// Create stores a new todo owned by the caller.
func (s *TodoService) Create(ctx context.Context, p model.Principal, req model.TodoRequest) (*model.Todo, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	todo := &model.Todo{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Complete:    req.Complete,
		OwnerID:     p.ID,
	}
	if err := s.todos.Create(ctx, todo); err != nil {
		return nil, err
	}
	return todo, nil
}

// Update replaces the fields of one of the caller's todos.
func (s *TodoService) Update(ctx context.Context, p model.Principal, id int64, req model.TodoRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return err
	}

	todo, err := s.todos.GetForOwner(ctx, id, p.ID)
	if err != nil {
		return notFound(err)
	}

	todo.Title = req.Title
	todo.Description = req.Description
	todo.Priority = req.Priority
	todo.Complete = req.Complete
	return s.todos.Update(ctx, todo)
}

// Delete removes one of the caller's todos.
func (s *TodoService) Delete(ctx context.Context, p model.Principal, id int64) error {
	if _, err := s.todos.GetForOwner(ctx, id, p.ID); err != nil {
		return notFound(err)
	}
	return notFound(s.todos.Delete(ctx, id))
}

// ListAll returns every todo. Callers must have checked the admin role.
func (s *TodoService) ListAll(ctx context.Context) ([]model.Todo, error) {
	return s.todos.ListAll(ctx)
}

// DeleteAny removes a todo regardless of owner. Callers must have checked
// the admin role.
func (s *TodoService) DeleteAny(ctx context.Context, id int64) error {
	return notFound(s.todos.Delete(ctx, id))
}

func notFound(err error) error {
	if errors.Is(err, repository.ErrTodoNotFound) {
		return ErrTodoNotFound
	}
	return err
}
