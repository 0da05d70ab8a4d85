package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"
	"github.com/todoapp/todo-api/internal/model"
)

type contextKey string

const principalKey contextKey = "principal"

// MsgUnauthenticated is the only body ever sent for a rejected token.
const MsgUnauthenticated = "Could not validate credentials"

// TokenResolver turns a raw bearer token into a principal.
type TokenResolver interface {
	Resolve(token string) (model.Principal, error)
}

// Authenticate returns middleware that resolves the Bearer token from the
// Authorization header and stores the principal in the request context.
// Every failure yields the same 401 response.
func Authenticate(tokens TokenResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := jwtauth.TokenFromHeader(r)
			if raw == "" {
				Unauthorized(w)
				return
			}

			principal, err := tokens.Resolve(raw)
			if err != nil {
				slog.Debug("token rejected", "reason", err, "request_id", middleware.GetReqID(r.Context()))
				Unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), principalKey, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin only admits principals carrying the admin role.
// It must run after Authenticate.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := PrincipalFromContext(r.Context())
		if !ok {
			Unauthorized(w)
			return
		}
		if !p.IsAdmin() {
			writeJSONError(w, http.StatusForbidden, "Admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// PrincipalFromContext extracts the authenticated principal from the request context.
func PrincipalFromContext(ctx context.Context) (model.Principal, bool) {
	p, ok := ctx.Value(principalKey).(model.Principal)
	return p, ok
}

// WithPrincipal returns a copy of ctx carrying p.
func WithPrincipal(ctx context.Context, p model.Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// Unauthorized writes the uniform 401 response.
func Unauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	writeJSONError(w, http.StatusUnauthorized, MsgUnauthenticated)
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"detail": msg})
}
