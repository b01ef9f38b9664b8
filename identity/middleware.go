package identity

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

// WithUser requires a valid Bearer token and stores its claims on the
// request context.
func WithUser(secret string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			unauthorized(w, "Token faltante")
			return
		}

		claims, err := Parse(strings.TrimPrefix(header, "Bearer "), secret)
		if err != nil || claims.UserID == "" {
			unauthorized(w, "Token inválido")
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey, claims)
		next(w, r.WithContext(ctx))
	}
}

// RequireOrganizer rejects callers whose claims lack the organizer role.
// Must run inside WithUser.
func RequireOrganizer(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := FromContext(r.Context())
		if !ok || !claims.IsOrganizer() {
			forbidden(w, "Acceso denegado. Se requiere rol de sorteador.")
			return
		}
		next(w, r)
	}
}

// RequireAdminKey guards administrator endpoints with the shared
// X-Admin-Key header.
func RequireAdminKey(adminKey string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if adminKey == "" || r.Header.Get("X-Admin-Key") != adminKey {
			forbidden(w, "Acceso denegado. Se requiere clave de administrador.")
			return
		}
		next(w, r)
	}
}

func unauthorized(w http.ResponseWriter, message string) {
	writeJSONError(w, http.StatusUnauthorized, message)
}

func forbidden(w http.ResponseWriter, message string) {
	writeJSONError(w, http.StatusForbidden, message)
}

// Local JSON writer so this package stays a leaf and does not pull in
// the middleware package.
func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{
		"error":   http.StatusText(status),
		"message": message,
	})
}
