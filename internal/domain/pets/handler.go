package pets

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"pet-memorial/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

const (
	// MaxImages es el límite del formulario (el Service solo exige al menos una).
	MaxImages = 5
	// MaxImageBytes por imagen (data URL). El body completo se acota a MaxImages de estas.
	MaxImageBytes = 2 << 20

	maxCreateBody = MaxImages*MaxImageBytes + 64<<10
)

type HandlerOptions struct {
	// PublicURL base para los links compartibles. Vacío = se deriva del request.
	PublicURL string
	Log       logger.Logger
}

func RegisterRoutes(r chi.Router, svc *Service, opts HandlerOptions) {
	if opts.Log == nil {
		opts.Log = logger.Nop()
	}

	r.Route("/pets", func(pr chi.Router) {
		pr.Post("/", createPetHandler(svc, opts))
		pr.Get("/", listMyPetsHandler(svc, opts))

		pr.Get("/{petID}", getPetHandler(svc, opts))
		pr.Get("/{petID}/qr.png", qrCodeHandler(svc, opts))

		// Solo admin (el Service falla cerrado sin sesión)
		pr.Delete("/{petID}", deletePetHandler(svc, opts))
	})
}

// createPetRequest es el cuerpo para crear un memorial.
type createPetRequest struct {
	ID          string   `json:"id"` // opcional
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	BirthDate   string   `json:"birth_date"` // YYYY-MM-DD opcional
	Description string   `json:"description"`
	Images      []string `json:"images"`
}

type createPetResponse struct {
	ID       string `json:"id"`
	ShareURL string `json:"share_url"`
}

// PetResponse representa un memorial devuelto por la API.
type PetResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	BirthDate   *string   `json:"birth_date"`
	Description string    `json:"description"`
	Images      []string  `json:"images"`
	CreatedAt   time.Time `json:"created_at"`
	ExpiresAt   time.Time `json:"expires_at"`
	UserID      string    `json:"user_id"`
	ShareURL    string    `json:"share_url"`
}

// createPetHandler godoc
// @Summary Crear memorial
// @Description Crea un memorial para la mascota. El dueño queda etiquetado con el id del cliente (cookie `pm_client` o header `X-Client-ID`). Expira en 365 días.
// @Tags pets
// @Accept json
// @Produce json
// @Param X-Client-ID header string false "ID de cliente (si no hay cookie)"
// @Param payload body createPetRequest true "Datos del memorial; entre 1 y 5 imágenes"
// @Success 201 {object} createPetResponse
// @Failure 400 {string} string "invalid json / campos requeridos / imágenes"
// @Failure 413 {string} string "request body too large"
// @Failure 500 {string} string "internal error"
// @Router /pets [post]
func createPetHandler(svc *Service, opts HandlerOptions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxCreateBody)

		var req createPetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteDecodeError(w, err)
			return
		}

		// Validación de formulario: el Service no la hace.
		if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Type) == "" || strings.TrimSpace(req.Description) == "" {
			http.Error(w, "name, type and description are required", http.StatusBadRequest)
			return
		}
		if len(req.Images) > MaxImages {
			http.Error(w, fmt.Sprintf("at most %d images", MaxImages), http.StatusBadRequest)
			return
		}
		for _, img := range req.Images {
			if strings.TrimSpace(img) == "" {
				http.Error(w, "images must not be blank", http.StatusBadRequest)
				return
			}
			if len(img) > MaxImageBytes {
				http.Error(w, "image too large", http.StatusRequestEntityTooLarge)
				return
			}
		}

		var bd *time.Time
		if strings.TrimSpace(req.BirthDate) != "" {
			t, err := time.Parse(birthDateLayout, strings.TrimSpace(req.BirthDate))
			if err != nil {
				http.Error(w, "birth_date must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			bd = &t
		}

		id, err := svc.Create(r.Context(), Draft{
			ID:          req.ID,
			Name:        strings.TrimSpace(req.Name),
			Type:        strings.TrimSpace(req.Type),
			BirthDate:   bd,
			Description: strings.TrimSpace(req.Description),
			Images:      req.Images,
		})
		if err != nil {
			writeError(w, opts.Log, err)
			return
		}

		writeJSON(w, http.StatusCreated, createPetResponse{
			ID:       id,
			ShareURL: ShareURL(BaseURL(r, opts.PublicURL), id),
		})
	}
}

// listMyPetsHandler godoc
// @Summary Listar mis memoriales
// @Tags pets
// @Produce json
// @Success 200 {array} PetResponse
// @Router /pets [get]
func listMyPetsHandler(svc *Service, opts HandlerOptions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListForCurrentUser(r.Context())
		if err != nil {
			writeError(w, opts.Log, err)
			return
		}
		writeJSON(w, http.StatusOK, ToResponses(items, BaseURL(r, opts.PublicURL)))
	}
}

// getPetHandler godoc
// @Summary Ver memorial
// @Description Público: cualquiera con el link puede verlo mientras no expire.
// @Tags pets
// @Produce json
// @Param petID path string true "ID del memorial"
// @Success 200 {object} PetResponse
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID} [get]
func getPetHandler(svc *Service, opts HandlerOptions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.Get(r.Context(), chi.URLParam(r, "petID"))
		if err != nil {
			writeError(w, opts.Log, err)
			return
		}
		writeJSON(w, http.StatusOK, ToPetResponse(p, BaseURL(r, opts.PublicURL)))
	}
}

// qrCodeHandler godoc
// @Summary QR del link compartible
// @Tags pets
// @Produce png
// @Param petID path string true "ID del memorial"
// @Param size query int false "Lado en px (64-1024, default 256)"
// @Success 200 {file} file
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID}/qr.png [get]
func qrCodeHandler(svc *Service, opts HandlerOptions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.Get(r.Context(), chi.URLParam(r, "petID"))
		if err != nil {
			writeError(w, opts.Log, err)
			return
		}

		size := DefaultQRSize
		if raw := r.URL.Query().Get("size"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil {
				http.Error(w, "size must be an integer", http.StatusBadRequest)
				return
			}
			size = n
		}

		png, err := QRCodePNG(ShareURL(BaseURL(r, opts.PublicURL), p.ID), size)
		if err != nil {
			writeError(w, opts.Log, err)
			return
		}

		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", QRFileName(p.Name)))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(png)
	}
}

// deletePetHandler godoc
// @Summary Borrar memorial (admin)
// @Description Requiere sesión admin del cliente (POST /admin/login).
// @Tags pets
// @Param petID path string true "ID del memorial"
// @Success 204
// @Failure 401 {string} string "admin session required"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID} [delete]
func deletePetHandler(svc *Service, opts HandlerOptions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		removed, err := svc.Delete(r.Context(), chi.URLParam(r, "petID"))
		if err != nil {
			writeError(w, opts.Log, err)
			return
		}
		if !removed {
			http.Error(w, "pet not found", http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func ToPetResponse(p PetRecord, base string) PetResponse {
	var bd *string
	if p.BirthDate != nil {
		s := p.BirthDate.Format(birthDateLayout)
		bd = &s
	}
	images := p.Images
	if images == nil {
		images = []string{}
	}
	return PetResponse{
		ID:          p.ID,
		Name:        p.Name,
		Type:        p.Type,
		BirthDate:   bd,
		Description: p.Description,
		Images:      images,
		CreatedAt:   p.CreatedAt,
		ExpiresAt:   p.ExpiresAt,
		UserID:      p.UserID,
		ShareURL:    ShareURL(base, p.ID),
	}
}

// ToResponses la usa también el listado admin.
func ToResponses(items []PetRecord, base string) []PetResponse {
	out := make([]PetResponse, 0, len(items))
	for _, p := range items {
		out = append(out, ToPetResponse(p, base))
	}
	return out
}

// BaseURL: la configurada o, si no hay, el origin del request.
func BaseURL(r *http.Request, configured string) string {
	if s := strings.TrimSpace(configured); s != "" {
		return s
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if p := r.Header.Get("X-Forwarded-Proto"); p != "" {
		scheme = p
	}
	return scheme + "://" + r.Host
}

// WriteDecodeError: 413 si el body pasó el límite de MaxBytesReader, 400 si no.
func WriteDecodeError(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
		return
	}
	http.Error(w, "invalid json", http.StatusBadRequest)
}

// writeError mapea los errores del Service a status HTTP.
func writeError(w http.ResponseWriter, log logger.Logger, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "pet not found", http.StatusNotFound)
	case errors.Is(err, ErrUnauthorized):
		http.Error(w, "admin session required", http.StatusUnauthorized)
	default:
		log.Error("request failed", map[string]any{"err": err})
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
