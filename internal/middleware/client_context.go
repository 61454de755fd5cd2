package middleware

import (
	"net/http"
	"regexp"
	"strings"
	"time"

	"pet-memorial/internal/ports/auth"

	"github.com/google/uuid"
)

const (
	ClientCookie = "pm_client"
	ClientHeader = "X-Client-ID"

	clientCookieMaxAge = 2 * 365 * 24 * time.Hour
)

var validClientID = regexp.MustCompile(`^[A-Za-z0-9_-]{8,64}$`)

type ClientOptions struct {
	// SecureCookie marca la cookie como Secure (detrás de TLS).
	SecureCookie bool
}

// ClientContext identifica al cliente que llama y lo deja en el contexto.
// - Si viene header X-Client-ID válido => se usa (CLI, tests).
// - Si no, cookie pm_client válida.
// - Si no hay ninguno, se emite una cookie nueva con un uuid.
// El id no es una identidad verificada: solo separa el almacenamiento por cliente.
func ClientContext(opts ClientOptions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := strings.TrimSpace(r.Header.Get(ClientHeader))
			if !validClientID.MatchString(id) {
				id = ""
				if c, err := r.Cookie(ClientCookie); err == nil && validClientID.MatchString(c.Value) {
					id = c.Value
				}
			}

			if id == "" {
				id = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     ClientCookie,
					Value:    id,
					Path:     "/",
					MaxAge:   int(clientCookieMaxAge.Seconds()),
					HttpOnly: true,
					Secure:   opts.SecureCookie,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := auth.WithClient(r.Context(), auth.Client{ID: id})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
