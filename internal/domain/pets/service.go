package pets

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"pet-memorial/internal/platform/logger"
	"pet-memorial/internal/platform/metrics"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("admin session required")
	ErrStorage      = errors.New("storage failure")

	ErrNoImages    = fmt.Errorf("%w: at least one image is required", ErrInvalidInput)
	ErrDuplicateID = fmt.Errorf("%w: id already in use", ErrInvalidInput)
)

// IdentityProvider entrega la etiqueta de dueño del cliente actual.
type IdentityProvider interface {
	GetOrCreateUserID(ctx context.Context) (string, error)
}

// AdminChecker es la parte del Admin Gate que necesita el Service.
type AdminChecker interface {
	IsAuthenticated(ctx context.Context) (bool, error)
}

// Service es el Lifecycle Manager: create/get/list/delete con expiración y
// ownership aplicados.
//
// Las lecturas (Get, ListAll, ListForCurrentUser) PUEDEN escribir: si ven
// registros expirados los borran del almacenamiento (purge-on-read).
type Service struct {
	repo     Repository
	identity IdentityProvider
	gate     AdminChecker

	log     logger.Logger
	metrics *metrics.Metrics
	now     func() time.Time

	// serializa cada ciclo leer-filtrar-reescribir dentro del proceso.
	// Con varios procesos sobre el mismo backend sigue habiendo carrera.
	mu sync.Mutex
}

type Option func(*Service)

func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func NewService(repo Repository, identity IdentityProvider, gate AdminChecker, opts ...Option) *Service {
	s := &Service{
		repo:     repo,
		identity: identity,
		gate:     gate,
		log:      logger.Nop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create valida el draft, completa UserID/ExpiresAt y lo inserta.
// No valida name/type/description: eso es validación de formulario (handler).
func (s *Service) Create(ctx context.Context, d Draft) (string, error) {
	if len(d.Images) == 0 {
		return "", ErrNoImages
	}

	userID, err := s.identity.GetOrCreateUserID(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrStorage, err)
	}

	createdAt := d.CreatedAt
	if createdAt.IsZero() {
		createdAt = s.now()
	}
	// precisión de ms: es lo que guarda el blob, así get devuelve lo mismo que se creó
	createdAt = createdAt.UTC().Truncate(time.Millisecond)

	id := strings.TrimSpace(d.ID)
	callerID := id != ""
	if !callerID {
		id = uuid.NewString()
	}

	var birthDate *time.Time
	if d.BirthDate != nil {
		y, m, day := d.BirthDate.Date()
		bd := time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
		birthDate = &bd
	}

	rec := PetRecord{
		ID:          id,
		Name:        d.Name,
		Type:        d.Type,
		BirthDate:   birthDate,
		Description: d.Description,
		Images:      append([]string(nil), d.Images...),
		CreatedAt:   createdAt,
		ExpiresAt:   ExpiresAt(createdAt),
		UserID:      userID,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if callerID {
		valid, err := s.validLocked(ctx)
		if err != nil {
			return "", err
		}
		for _, r := range valid {
			if r.ID == id {
				return "", ErrDuplicateID
			}
		}
	}

	if err := s.repo.Insert(ctx, rec); err != nil {
		return "", err
	}

	s.metrics.RecordCreated()
	s.log.Info("pet record created", map[string]any{
		"pet_id":     id,
		"user_id":    userID,
		"expires_at": rec.ExpiresAt.Format(time.RFC3339),
		"images":     len(rec.Images),
	})
	return id, nil
}

// Get devuelve el registro si existe y no expiró; si no, ErrNotFound.
// Efecto colateral: purga expirados.
func (s *Service) Get(ctx context.Context, id string) (PetRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	valid, err := s.validLocked(ctx)
	if err != nil {
		return PetRecord{}, err
	}
	for _, r := range valid {
		if r.ID == id {
			return r.clone(), nil
		}
	}
	return PetRecord{}, ErrNotFound
}

// ListAll devuelve los registros vigentes, más nuevos primero.
// Efecto colateral: purga expirados.
func (s *Service) ListAll(ctx context.Context) ([]PetRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	valid, err := s.validLocked(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]PetRecord, 0, len(valid))
	for _, r := range valid {
		out = append(out, r.clone())
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// ListForCurrentUser es ListAll filtrado por la etiqueta de dueño del cliente.
func (s *Service) ListForCurrentUser(ctx context.Context) ([]PetRecord, error) {
	userID, err := s.identity.GetOrCreateUserID(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	all, err := s.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]PetRecord, 0)
	for _, r := range all {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

// Delete falla cerrado: sin sesión admin devuelve (false, ErrUnauthorized) y
// no toca el almacenamiento. Con sesión: (true, nil) si borró, (false, nil) si
// el id no existe o ya expiró.
func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	ok, err := s.gate.IsAuthenticated(ctx)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	if !ok {
		s.log.Warn("delete rejected: no admin session", map[string]any{"pet_id": id})
		return false, ErrUnauthorized
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.validLocked(ctx); err != nil {
		return false, err
	}

	removed, err := s.repo.DeleteByID(ctx, id)
	if err != nil {
		return false, err
	}
	if removed {
		s.metrics.RecordDeleted()
		s.log.Info("pet record deleted", map[string]any{"pet_id": id})
	}
	return removed, nil
}

// PurgeExpired es el purge explícito (para cron/admin). Devuelve cuántos borró.
func (s *Service) PurgeExpired(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.repo.ListAll(ctx)
	if err != nil {
		return 0, err
	}
	valid, err := s.commitPurgeLocked(ctx, all)
	if err != nil {
		return 0, err
	}
	return len(all) - len(valid), nil
}

// validLocked lee todo, filtra expirados y, si hubo alguno, reescribe la colección.
func (s *Service) validLocked(ctx context.Context) ([]PetRecord, error) {
	all, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.commitPurgeLocked(ctx, all)
}

func (s *Service) commitPurgeLocked(ctx context.Context, all []PetRecord) ([]PetRecord, error) {
	valid := FilterValid(all, s.now())
	if len(valid) == len(all) {
		return valid, nil
	}

	if err := s.repo.ReplaceAll(ctx, valid); err != nil {
		return nil, err
	}

	purged := len(all) - len(valid)
	s.metrics.RecordPurged(purged)
	s.log.Info("expired pet records purged", map[string]any{"purged": purged})
	return valid, nil
}
