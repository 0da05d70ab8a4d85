package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/todoapp/todo-api/internal/config"
	"github.com/todoapp/todo-api/internal/crypto"
	"github.com/todoapp/todo-api/internal/handler"
	"github.com/todoapp/todo-api/internal/middleware"
	"github.com/todoapp/todo-api/internal/repository"
	"github.com/todoapp/todo-api/internal/service"
	"github.com/todoapp/todo-api/internal/validate"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

// run owns every resource it opens, so deferred cleanups execute on all
// error paths before main exits.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	slog.SetDefault(newLogger(cfg))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := repository.Open(ctx, repository.Dialect(cfg.DBDriver), cfg.DatabaseDSN)
	if err != nil {
		return fmt.Errorf("connecting to %s: %w", cfg.DBDriver, err)
	}
	defer db.Close()

	if cfg.AutoMigrate {
		if err := repository.EnsureSchema(ctx, db); err != nil {
			return err
		}
	}

	tokens, err := crypto.NewTokenManager(cfg.SecretKey)
	if err != nil {
		return fmt.Errorf("token manager: %w", err)
	}

	v := validate.New(cfg.StrongPasswords)
	userRepo := repository.NewUserRepository(db)
	todoRepo := repository.NewTodoRepository(db)

	router := handler.NewRouter(handler.Services{
		Auth:        service.NewAuthService(userRepo, crypto.NewHasher(cfg.BcryptCost), tokens, v, cfg.TokenTTL),
		Users:       service.NewUserService(userRepo),
		Todos:       service.NewTodoService(todoRepo, v),
		Tokens:      tokens,
		AuthLimiter: middleware.RateLimit(ctx, cfg.AuthRateLimitRPS, cfg.AuthRateLimitBurst),
		TrustProxy:  cfg.TrustProxy,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env, "driver", cfg.DBDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
	}

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

func newLogger(cfg config.Config) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.IsProduction() {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
