package memory

import (
	"context"
	"sync"

	"pet-memorial/internal/ports/storage"
)

type kv struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewKV devuelve un storage.KV en memoria. Es el default en dev y en tests.
func NewKV() storage.KV {
	return &kv{
		values: make(map[string]string),
	}
}

func (s *kv) Get(ctx context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.values[key]
	if !ok {
		return "", storage.ErrNotFound
	}
	return v, nil
}

func (s *kv) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = value
	return nil
}

func (s *kv) Remove(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.values, key)
	return nil
}
