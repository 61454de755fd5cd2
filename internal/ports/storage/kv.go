package storage

import (
	"context"
	"errors"
)

var (
	ErrNotFound = errors.New("storage: key not found")
)

// KV es el "almacenamiento del cliente": get/set/remove por clave string.
// Cada valor es un blob serializado completo; no hay escrituras parciales.
type KV interface {
	// Get devuelve ErrNotFound si la clave no existe.
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	// Remove es idempotente: borrar una clave inexistente no es error.
	Remove(ctx context.Context, key string) error
}
