package handler

import (
	"errors"
	"net/http"

	"github.com/todoapp/todo-api/internal/model"
	"github.com/todoapp/todo-api/internal/service"
)

// AuthHandler handles HTTP requests for registration and token issuance.
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{service: svc}
}

// HandleRegister handles POST /auth/ requests.
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req model.CreateUserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	if _, err := h.service.Register(r.Context(), req); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
}

// HandleToken handles POST /auth/token requests with a form-encoded
// username and password.
func (h *AuthHandler) HandleToken(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeDecodeError(w, errRequestTooLarge)
			return
		}
		writeDecodeError(w, err)
		return
	}

	h.login(w, r, model.LoginRequest{
		Username: r.PostForm.Get("username"),
		Password: r.PostForm.Get("password"),
	})
}

// HandleJSONToken handles POST /auth/json-token requests.
func (h *AuthHandler) HandleJSONToken(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	h.login(w, r, req)
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request, req model.LoginRequest) {
	resp, err := h.service.Login(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusOK, resp)
}
