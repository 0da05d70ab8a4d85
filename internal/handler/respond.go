package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/todoapp/todo-api/internal/middleware"
	"github.com/todoapp/todo-api/internal/service"
	"github.com/todoapp/todo-api/internal/validate"
)

const maxBodyBytes = 1 << 20 // 1MB

var errRequestTooLarge = errors.New("request body too large")

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func errorResponse(detail any) map[string]any {
	return map[string]any{"detail": detail}
}

// decodeJSON reads a JSON body of at most maxBodyBytes into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return errRequestTooLarge
		}
		return err
	}
	return nil
}

// writeDecodeError reports a body that could not be decoded.
func writeDecodeError(w http.ResponseWriter, err error) {
	if errors.Is(err, errRequestTooLarge) {
		writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse("Request body too large"))
		return
	}
	writeJSON(w, http.StatusUnprocessableEntity, errorResponse("Invalid request body"))
}

// writeError maps service and validation errors to HTTP responses.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verrs validate.Errors
	switch {
	case errors.As(err, &verrs):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse(verrs))
	case errors.Is(err, service.ErrEmailTaken):
		writeJSON(w, http.StatusBadRequest, errorResponse("User with this email already exists"))
	case errors.Is(err, service.ErrUsernameTaken):
		writeJSON(w, http.StatusBadRequest, errorResponse("User with this username already exists"))
	case errors.Is(err, service.ErrInvalidCredentials):
		middleware.Unauthorized(w)
	case errors.Is(err, service.ErrTodoNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse("Todo not found"))
	case errors.Is(err, service.ErrUserNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse("User not found"))
	default:
		slog.Error("request failed", "error", err, "path", r.URL.Path, "request_id", chimw.GetReqID(r.Context()))
		writeJSON(w, http.StatusInternalServerError, errorResponse("Internal server error"))
	}
}

// pathID parses a positive integer URL parameter.
func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func writeInvalidID(w http.ResponseWriter) {
	writeJSON(w, http.StatusUnprocessableEntity, errorResponse("Invalid todo id"))
}
