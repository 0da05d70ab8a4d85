package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/todoapp/todo-api/internal/model"
)

var ErrTodoNotFound = errors.New("todo not found")

const todoColumns = `id, title, description, priority, complete, owner_id`

// TodoRepository handles todo persistence operations.
type TodoRepository struct {
	db *DB
}

// NewTodoRepository creates a new TodoRepository.
func NewTodoRepository(db *DB) *TodoRepository {
	return &TodoRepository{db: db}
}

// Create inserts todo and sets its generated ID.
func (r *TodoRepository) Create(ctx context.Context, todo *model.Todo) error {
	id, err := r.db.insert(ctx, r.db,
		`INSERT INTO todos (title, description, priority, complete, owner_id) VALUES (?, ?, ?, ?, ?)`,
		todo.Title, todo.Description, todo.Priority, todo.Complete, todo.OwnerID,
	)
	if err != nil {
		return err
	}

	todo.ID = id
	return nil
}

// GetByID retrieves a todo regardless of its owner.
func (r *TodoRepository) GetByID(ctx context.Context, id int64) (*model.Todo, error) {
	return r.getOne(ctx, `SELECT `+todoColumns+` FROM todos WHERE id = ?`, id)
}

// GetForOwner retrieves a todo only if it belongs to ownerID.
func (r *TodoRepository) GetForOwner(ctx context.Context, id, ownerID int64) (*model.Todo, error) {
	return r.getOne(ctx, `SELECT `+todoColumns+` FROM todos WHERE id = ? AND owner_id = ?`, id, ownerID)
}

// ListByOwner returns the todos owned by ownerID ordered by id.
func (r *TodoRepository) ListByOwner(ctx context.Context, ownerID int64) ([]model.Todo, error) {
	return r.list(ctx, `SELECT `+todoColumns+` FROM todos WHERE owner_id = ? ORDER BY id`, ownerID)
}

// ListAll returns every todo ordered by id.
func (r *TodoRepository) ListAll(ctx context.Context) ([]model.Todo, error) {
	return r.list(ctx, `SELECT `+todoColumns+` FROM todos ORDER BY id`)
}

// Update overwrites the mutable fields of an existing todo owned by todo.OwnerID.
func (r *TodoRepository) Update(ctx context.Context, todo *model.Todo) error {
	_, err := r.db.ExecContext(ctx, r.db.rebind(
		`UPDATE todos SET title = ?, description = ?, priority = ?, complete = ? WHERE id = ? AND owner_id = ?`),
		todo.Title, todo.Description, todo.Priority, todo.Complete, todo.ID, todo.OwnerID,
	)
	return err
}

// Delete removes a todo by id.
func (r *TodoRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, r.db.rebind(`DELETE FROM todos WHERE id = ?`), id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrTodoNotFound
	}

	return nil
}

func (r *TodoRepository) getOne(ctx context.Context, query string, args ...any) (*model.Todo, error) {
	todo := &model.Todo{}
	err := scanTodo(r.db.QueryRowContext(ctx, r.db.rebind(query), args...), todo)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTodoNotFound
		}
		return nil, err
	}

	return todo, nil
}

func (r *TodoRepository) list(ctx context.Context, query string, args ...any) ([]model.Todo, error) {
	rows, err := r.db.QueryContext(ctx, r.db.rebind(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	todos := []model.Todo{}
	for rows.Next() {
		var t model.Todo
		if err := scanTodo(rows, &t); err != nil {
			return nil, err
		}
		todos = append(todos, t)
	}

	return todos, rows.Err()
}

func scanTodo(s scanner, t *model.Todo) error {
	return s.Scan(&t.ID, &t.Title, &t.Description, &t.Priority, &t.Complete, &t.OwnerID)
}
