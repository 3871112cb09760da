package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"brewnet-backend/internal/services"
)

type contextKey string

const identityKey contextKey = "identity"

// AuthMiddleware creates a middleware that verifies the bearer token
// and injects the caller's identity into the request context.
func AuthMiddleware(tokens *services.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				respondError(w, "token no proporcionado", http.StatusUnauthorized)
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				respondError(w, "formato de autorización inválido", http.StatusUnauthorized)
				return
			}

			ident, err := tokens.VerifyAccessToken(r.Context(), parts[1])
			if err != nil {
				respondError(w, "token inválido o expirado", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, ident)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin rejects callers whose role is not admin. Must run after
// AuthMiddleware.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ident := GetIdentity(r.Context())
		if ident == nil || ident.Role != "admin" {
			respondError(w, "acceso denegado: solo administradores", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetIdentity extracts the authenticated identity from context
func GetIdentity(ctx context.Context) *services.Identity {
	ident, ok := ctx.Value(identityKey).(*services.Identity)
	if !ok {
		return nil
	}
	return ident
}

// BearerToken returns the raw bearer token of a request, or ""
func BearerToken(r *http.Request) string {
	parts := strings.Split(r.Header.Get("Authorization"), " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

// respondError sends an error response
func respondError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(struct {
		Success bool   `json:"exito"`
		Message string `json:"mensaje"`
	}{Success: false, Message: message})
}
