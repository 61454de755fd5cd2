package admin

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"pet-memorial/internal/domain/pets"
	"pet-memorial/internal/middleware"
	"pet-memorial/internal/platform/logger"
	"pet-memorial/internal/platform/metrics"

	"github.com/go-chi/chi/v5"
)

type HandlerOptions struct {
	PublicURL string
	Log       logger.Logger
	Metrics   *metrics.Metrics
}

func RegisterRoutes(r chi.Router, gate *Gate, petsSvc *pets.Service, opts HandlerOptions) {
	if opts.Log == nil {
		opts.Log = logger.Nop()
	}

	r.Route("/admin", func(ar chi.Router) {
		ar.Post("/login", loginHandler(gate, opts))
		ar.Post("/logout", logoutHandler(gate, opts))
		ar.Get("/session", sessionHandler(gate, opts))

		ar.Group(func(pr chi.Router) {
			pr.Use(middleware.RequireAdmin(gate, opts.Log))

			pr.Get("/pets", listAllHandler(petsSvc, opts))
			pr.Get("/pets/export.xlsx", exportHandler(petsSvc, opts))
			pr.Post("/purge", purgeHandler(petsSvc, opts))
		})
	})
}

const maxLoginBody = 4 << 10

type loginRequest struct {
	Passphrase string `json:"passphrase"`
}

type sessionResponse struct {
	Authenticated bool `json:"authenticated"`
}

type purgeResponse struct {
	Purged int `json:"purged"`
}

// loginHandler godoc
// @Summary Login admin
// @Description Compara la passphrase configurada y, si coincide, guarda el token de sesión del cliente.
// @Tags admin
// @Accept json
// @Produce json
// @Param payload body loginRequest true "Passphrase"
// @Success 200 {object} sessionResponse
// @Failure 400 {string} string "invalid json"
// @Failure 401 {string} string "invalid passphrase"
// @Failure 413 {string} string "request body too large"
// @Router /admin/login [post]
func loginHandler(gate *Gate, opts HandlerOptions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxLoginBody)

		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			pets.WriteDecodeError(w, err)
			return
		}

		ok, err := gate.Authenticate(r.Context(), strings.TrimSpace(req.Passphrase))
		if err != nil {
			opts.Log.Error("admin login failed", map[string]any{"err": err})
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		opts.Metrics.RecordAdminAuth(ok)
		if !ok {
			opts.Log.Warn("admin login rejected", nil)
			http.Error(w, "invalid passphrase", http.StatusUnauthorized)
			return
		}

		writeJSON(w, http.StatusOK, sessionResponse{Authenticated: true})
	}
}

// logoutHandler godoc
// @Summary Logout admin
// @Tags admin
// @Success 204
// @Router /admin/logout [post]
func logoutHandler(gate *Gate, opts HandlerOptions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := gate.Logout(r.Context()); err != nil {
			opts.Log.Error("admin logout failed", map[string]any{"err": err})
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// sessionHandler godoc
// @Summary Estado de la sesión admin
// @Tags admin
// @Produce json
// @Success 200 {object} sessionResponse
// @Router /admin/session [get]
func sessionHandler(gate *Gate, opts HandlerOptions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ok, err := gate.IsAuthenticated(r.Context())
		if err != nil {
			opts.Log.Error("admin session check failed", map[string]any{"err": err})
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, sessionResponse{Authenticated: ok})
	}
}

// listAllHandler godoc
// @Summary Listar todos los memoriales (admin)
// @Tags admin
// @Produce json
// @Success 200 {array} pets.PetResponse
// @Failure 401 {string} string "admin session required"
// @Router /admin/pets [get]
func listAllHandler(svc *pets.Service, opts HandlerOptions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListAll(r.Context())
		if err != nil {
			opts.Log.Error("admin list failed", map[string]any{"err": err})
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, pets.ToResponses(items, pets.BaseURL(r, opts.PublicURL)))
	}
}

// exportHandler godoc
// @Summary Exportar memoriales vigentes a XLSX (admin)
// @Tags admin
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file
// @Failure 401 {string} string "admin session required"
// @Router /admin/pets/export.xlsx [get]
func exportHandler(svc *pets.Service, opts HandlerOptions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListAll(r.Context())
		if err != nil {
			opts.Log.Error("admin export failed", map[string]any{"err": err})
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		// a buffer: si excelize falla no queremos un 200 a medias
		var buf bytes.Buffer
		if err := pets.ExportXLSX(&buf, items); err != nil {
			opts.Log.Error("admin export failed", map[string]any{"err": err})
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="pets.xlsx"`)
		w.Header().Set("Content-Length", fmt.Sprint(buf.Len()))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(buf.Bytes())
	}
}

// purgeHandler godoc
// @Summary Purgar expirados (admin)
// @Tags admin
// @Produce json
// @Success 200 {object} purgeResponse
// @Failure 401 {string} string "admin session required"
// @Router /admin/purge [post]
func purgeHandler(svc *pets.Service, opts HandlerOptions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n, err := svc.PurgeExpired(r.Context())
		if err != nil {
			opts.Log.Error("admin purge failed", map[string]any{"err": err})
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, purgeResponse{Purged: n})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
