package handler

import (
	"net/http"

	"github.com/todoapp/todo-api/internal/middleware"
	"github.com/todoapp/todo-api/internal/model"
	"github.com/todoapp/todo-api/internal/service"
)

// TodoHandler handles HTTP requests for the caller's todos.
type TodoHandler struct {
	service *service.TodoService
}

// NewTodoHandler creates a new TodoHandler.
func NewTodoHandler(svc *service.TodoService) *TodoHandler {
	return &TodoHandler{service: svc}
}

// HandleList handles GET /todos/ requests.
func (h *TodoHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		middleware.Unauthorized(w)
		return
	}

	todos, err := h.service.List(r.Context(), p)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, todos)
}

// HandleGet handles GET /todos/todo/{id} requests.
func (h *TodoHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		middleware.Unauthorized(w)
		return
	}

	id, ok := pathID(r, "id")
	if !ok {
		writeInvalidID(w)
		return
	}

	todo, err := h.service.Get(r.Context(), p, id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, todo)
}

// HandleCreate handles POST /todos/todo requests.
func (h *TodoHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		middleware.Unauthorized(w)
		return
	}

	var req model.TodoRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	todo, err := h.service.Create(r.Context(), p, req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, todo)
}

// HandleUpdate handles PUT /todos/todo/{id} requests.
func (h *TodoHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		middleware.Unauthorized(w)
		return
	}

	id, ok := pathID(r, "id")
	if !ok {
		writeInvalidID(w)
		return
	}

	var req model.TodoRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	if err := h.service.Update(r.Context(), p, id, req); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleDelete handles DELETE /todos/todo/{id} requests.
func (h *TodoHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		middleware.Unauthorized(w)
		return
	}

	id, ok := pathID(r, "id")
	if !ok {
		writeInvalidID(w)
		return
	}

	if err := h.service.Delete(r.Context(), p, id); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
