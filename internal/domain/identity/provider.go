package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"pet-memorial/internal/ports/auth"
	"pet-memorial/internal/ports/storage"

	"github.com/google/uuid"
)

// UserIDKey es la clave fija donde se persiste la etiqueta de dueño.
const UserIDKey = "pet_memories_user_id"

// Provider entrega un id estable por cliente para etiquetar los registros creados.
// No es una identidad verificada, solo un handle de correlación.
type Provider struct {
	kv  storage.KV
	now func() time.Time

	// cubre Get+Set: dos primeros requests del mismo cliente tienen que ver el mismo id
	mu sync.Mutex
}

func NewProvider(kv storage.KV) *Provider {
	return &Provider{
		kv:  kv,
		now: time.Now,
	}
}

// GetOrCreateUserID devuelve el id persistido o genera uno nuevo la primera vez.
// Solo escribe en el almacenamiento en esa primera llamada.
func (p *Provider) GetOrCreateUserID(ctx context.Context) (string, error) {
	key := auth.ScopedKey(ctx, UserIDKey)

	p.mu.Lock()
	defer p.mu.Unlock()

	v, err := p.kv.Get(ctx, key)
	if err == nil && strings.TrimSpace(v) != "" {
		return v, nil
	}
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return "", fmt.Errorf("read user id: %w", err)
	}

	id := NewTaggedID("user", p.now())
	if err := p.kv.Set(ctx, key, id); err != nil {
		return "", fmt.Errorf("write user id: %w", err)
	}
	return id, nil
}

// NewTaggedID arma "<prefix>_<unix ms>_<sufijo aleatorio>".
// La unicidad es best-effort; alcanza para etiquetas de correlación y tokens opacos.
func NewTaggedID(prefix string, at time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:13]
	return fmt.Sprintf("%s_%d_%s", prefix, at.UnixMilli(), suffix)
}
