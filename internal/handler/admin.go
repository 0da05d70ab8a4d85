package handler

import (
	"net/http"

	"github.com/todoapp/todo-api/internal/service"
)

// AdminHandler serves the admin-only routes. The admin role is enforced by
// middleware before these handlers run.
type AdminHandler struct {
	todos *service.TodoService
	users *service.UserService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(todos *service.TodoService, users *service.UserService) *AdminHandler {
	return &AdminHandler{todos: todos, users: users}
}

// HandleListTodos handles GET /admin/todo requests.
func (h *AdminHandler) HandleListTodos(w http.ResponseWriter, r *http.Request) {
	todos, err := h.todos.ListAll(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, todos)
}

// HandleDeleteTodo handles DELETE /admin/todo/{id} requests.
func (h *AdminHandler) HandleDeleteTodo(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeInvalidID(w)
		return
	}

	if err := h.todos.DeleteAny(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleListUsers handles GET /admin/users requests.
func (h *AdminHandler) HandleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, users)
}
