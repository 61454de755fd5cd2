package middleware

import (
	"net/http"

	"pet-memorial/internal/platform/logger"
	"pet-memorial/internal/ports/auth"
)

// RequireAdmin corta con 401 si el cliente no tiene sesión admin.
// Tiene que ir después de ClientContext: el token es por cliente.
func RequireAdmin(gate auth.AdminGate, log logger.Logger) func(http.Handler) http.Handler {
	if log == nil {
		log = logger.Nop()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ok, err := gate.IsAuthenticated(r.Context())
			if err != nil {
				log.Error("admin session check failed", map[string]any{"err": err})
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}
			if !ok {
				http.Error(w, "admin session required", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
