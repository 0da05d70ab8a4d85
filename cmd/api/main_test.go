package main

import (
	"errors"
	"testing"

	"github.com/todoapp/todo-api/internal/config"
)

func TestRunMissingSecret(t *testing.T) {
	t.Setenv("SECRET_KEY", "")
	t.Setenv("JWT_SECRET", "")

	err := run()
	if !errors.Is(err, config.ErrMissingSecret) {
		t.Fatalf("run() error = %v, want ErrMissingSecret", err)
	}
}

func TestRunReturnsListenError(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-secret")
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DATABASE_DSN", "file::memory:?_pragma=foreign_keys(1)")
	t.Setenv("PORT", "-1")

	if err := run(); err == nil {
		t.Fatal("run() with an invalid port returned nil error")
	}
}
