package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/todoapp/todo-api/internal/model"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrDuplicateEmail    = errors.New("email already exists")
	ErrDuplicateUsername = errors.New("username already exists")
)

const userColumns = `id, username, email, first_name, last_name, hashed_password, role, is_active`

// UserRepository handles user persistence operations.
type UserRepository struct {
	db *DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user and sets the generated ID on the user struct.
// The email check and the insert share one transaction; a unique violation
// raised by the insert itself (a concurrent registration) is reported the
// same way as the pre-check.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, r.db.rebind(`SELECT 1 FROM users WHERE email = ?`), user.Email).Scan(&exists)
	switch {
	case err == nil:
		return ErrDuplicateEmail
	case !errors.Is(err, sql.ErrNoRows):
		return fmt.Errorf("checking email: %w", err)
	}

	id, err := r.db.insert(ctx, tx,
		`INSERT INTO users (username, email, first_name, last_name, hashed_password, role, is_active)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		user.Username, user.Email, user.FirstName, user.LastName, user.HashedPassword, user.Role, user.IsActive,
	)
	if err != nil {
		return duplicateError(err)
	}

	if err := tx.Commit(); err != nil {
		return duplicateError(err)
	}

	user.ID = id
	return nil
}

// GetByUsername retrieves a user by exact username.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE username = ?`, username)
}

// GetByEmail retrieves a user by their email address.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email)
}

// GetByID retrieves a user by their ID.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
}

// List returns every user ordered by id.
func (r *UserRepository) List(ctx context.Context) ([]model.User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		var u model.User
		if err := scanUser(rows, &u); err != nil {
			return nil, err
		}
		users = append(users, u)
	}

	return users, rows.Err()
}

func (r *UserRepository) getOne(ctx context.Context, query string, arg any) (*model.User, error) {
	user := &model.User{}
	err := scanUser(r.db.QueryRowContext(ctx, r.db.rebind(query), arg), user)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return user, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(s scanner, u *model.User) error {
	return s.Scan(&u.ID, &u.Username, &u.Email, &u.FirstName, &u.LastName, &u.HashedPassword, &u.Role, &u.IsActive)
}

// duplicateError maps unique violations on users to their sentinel errors.
func duplicateError(err error) error {
	key, ok := uniqueViolation(err)
	if !ok {
		return err
	}

	switch {
	case strings.Contains(key, "email"):
		return ErrDuplicateEmail
	case strings.Contains(key, "username"):
		return ErrDuplicateUsername
	default:
		return fmt.Errorf("%w: %v", ErrDuplicateUsername, err)
	}
}
