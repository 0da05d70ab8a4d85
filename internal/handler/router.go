package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/todoapp/todo-api/internal/middleware"
	"github.com/todoapp/todo-api/internal/service"
)

// Services bundles what the router needs to serve every route.
type Services struct {
	Auth   *service.AuthService
	Users  *service.UserService
	Todos  *service.TodoService
	Tokens middleware.TokenResolver

	// AuthLimiter guards the /auth routes. Nil disables rate limiting.
	AuthLimiter func(http.Handler) http.Handler

	// TrustProxy takes the client address from X-Forwarded-For / X-Real-IP.
	// Only enable behind a proxy that overwrites those headers, since the
	// rate limiter keys on that address.
	TrustProxy bool
}

// NewRouter wires every route onto a chi router.
func NewRouter(s Services) http.Handler {
	authHandler := NewAuthHandler(s.Auth)
	userHandler := NewUserHandler(s.Users)
	todoHandler := NewTodoHandler(s.Todos)
	adminHandler := NewAdminHandler(s.Todos, s.Users)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	if s.TrustProxy {
		r.Use(chimw.RealIP)
	}
	r.Use(middleware.Logger)
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Route("/auth", func(r chi.Router) {
		if s.AuthLimiter != nil {
			r.Use(s.AuthLimiter)
		}
		r.Post("/", authHandler.HandleRegister)
		r.Post("/token", authHandler.HandleToken)
		r.Post("/json-token", authHandler.HandleJSONToken)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(s.Tokens))

		r.Get("/users/", userHandler.HandleMe)

		r.Get("/todos/", todoHandler.HandleList)
		r.Post("/todos/todo", todoHandler.HandleCreate)
		r.Get("/todos/todo/{id}", todoHandler.HandleGet)
		r.Put("/todos/todo/{id}", todoHandler.HandleUpdate)
		r.Delete("/todos/todo/{id}", todoHandler.HandleDelete)

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireAdmin)
			r.Get("/todo", adminHandler.HandleListTodos)
			r.Delete("/todo/{id}", adminHandler.HandleDeleteTodo)
			r.Get("/users", adminHandler.HandleListUsers)
		})
	})

	return r
}
