package pets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"pet-memorial/internal/ports/storage"
)

// RecordsKey es la clave fija del blob con toda la colección.
const RecordsKey = "pet_memories_data"

const birthDateLayout = "2006-01-02"

// Repository es el Record Store: colección ordenada de PetRecord.
// No filtra expirados ni deduplica ids; eso es del Service.
type Repository interface {
	Insert(ctx context.Context, r PetRecord) error
	// ListAll incluye expirados.
	ListAll(ctx context.Context) ([]PetRecord, error)
	GetByID(ctx context.Context, id string) (PetRecord, error)
	// DeleteByID borra el primer match y dice si borró algo.
	DeleteByID(ctx context.Context, id string) (bool, error)
	ReplaceAll(ctx context.Context, records []PetRecord) error
}

// BlobRepository guarda la colección entera como un JSON bajo RecordsKey.
// Cada mutación reescribe el blob completo.
type BlobRepository struct {
	kv storage.KV
}

func NewBlobRepository(kv storage.KV) *BlobRepository {
	return &BlobRepository{kv: kv}
}

// storedRecord mantiene el formato histórico del blob (timestamps en ms).
type storedRecord struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	BirthDate   *string  `json:"birthDate"`
	Description string   `json:"description"`
	Images      []string `json:"images"`
	CreatedAt   int64    `json:"createdAt"`
	ExpiresAt   int64    `json:"expiresAt"`
	UserID      string   `json:"userId"`
}

func (r *BlobRepository) Insert(ctx context.Context, rec PetRecord) error {
	all, err := r.ListAll(ctx)
	if err != nil {
		return err
	}
	return r.ReplaceAll(ctx, append(all, rec))
}

func (r *BlobRepository) ListAll(ctx context.Context) ([]PetRecord, error) {
	raw, err := r.kv.Get(ctx, RecordsKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return []PetRecord{}, nil
		}
		return nil, fmt.Errorf("%w: read %s: %v", ErrStorage, RecordsKey, err)
	}
	return decodeRecords(raw)
}

func (r *BlobRepository) GetByID(ctx context.Context, id string) (PetRecord, error) {
	all, err := r.ListAll(ctx)
	if err != nil {
		return PetRecord{}, err
	}
	for _, rec := range all {
		if rec.ID == id {
			return rec, nil
		}
	}
	return PetRecord{}, ErrNotFound
}

func (r *BlobRepository) DeleteByID(ctx context.Context, id string) (bool, error) {
	all, err := r.ListAll(ctx)
	if err != nil {
		return false, err
	}
	for i, rec := range all {
		if rec.ID != id {
			continue
		}
		rest := append(all[:i:i], all[i+1:]...)
		if err := r.ReplaceAll(ctx, rest); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}

func (r *BlobRepository) ReplaceAll(ctx context.Context, records []PetRecord) error {
	raw, err := encodeRecords(records)
	if err != nil {
		return err
	}
	if err := r.kv.Set(ctx, RecordsKey, raw); err != nil {
		return fmt.Errorf("%w: write %s: %v", ErrStorage, RecordsKey, err)
	}
	return nil
}

func encodeRecords(records []PetRecord) (string, error) {
	out := make([]storedRecord, 0, len(records))
	for _, rec := range records {
		var bd *string
		if rec.BirthDate != nil {
			s := rec.BirthDate.Format(birthDateLayout)
			bd = &s
		}
		images := rec.Images
		if images == nil {
			images = []string{}
		}
		out = append(out, storedRecord{
			ID:          rec.ID,
			Name:        rec.Name,
			Type:        rec.Type,
			BirthDate:   bd,
			Description: rec.Description,
			Images:      images,
			CreatedAt:   rec.CreatedAt.UnixMilli(),
			ExpiresAt:   rec.ExpiresAt.UnixMilli(),
			UserID:      rec.UserID,
		})
	}

	b, err := json.Marshal(out)
	if err != nil {
		return "", fmt.Errorf("%w: encode records: %v", ErrStorage, err)
	}
	return string(b), nil
}

func decodeRecords(raw string) ([]PetRecord, error) {
	var stored []storedRecord
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		return nil, fmt.Errorf("%w: corrupted %s blob: %v", ErrStorage, RecordsKey, err)
	}

	out := make([]PetRecord, 0, len(stored))
	for _, s := range stored {
		rec := PetRecord{
			ID:          s.ID,
			Name:        s.Name,
			Type:        s.Type,
			Description: s.Description,
			Images:      s.Images,
			CreatedAt:   time.UnixMilli(s.CreatedAt).UTC(),
			ExpiresAt:   time.UnixMilli(s.ExpiresAt).UTC(),
			UserID:      s.UserID,
		}
		if s.BirthDate != nil && *s.BirthDate != "" {
			t, err := parseBirthDate(*s.BirthDate)
			if err != nil {
				return nil, fmt.Errorf("%w: record %s birthDate: %v", ErrStorage, s.ID, err)
			}
			rec.BirthDate = &t
		}
		out = append(out, rec)
	}
	return out, nil
}

// parseBirthDate acepta "YYYY-MM-DD" y, por blobs viejos, también RFC3339.
func parseBirthDate(s string) (time.Time, error) {
	if t, err := time.Parse(birthDateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}
