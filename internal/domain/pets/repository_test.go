package pets

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	mem "pet-memorial/internal/adapters/storage/memory"
)

func TestBlobRepository_DuplicatesAllowed_DeleteRemovesFirstMatch(t *testing.T) {
	ctx := context.Background()
	repo := NewBlobRepository(mem.NewKV())

	first := PetRecord{ID: "dup", Name: "first", Images: []string{"a"}}
	second := PetRecord{ID: "dup", Name: "second", Images: []string{"b"}}
	for _, r := range []PetRecord{first, second} {
		if err := repo.Insert(ctx, r); err != nil {
			t.Fatalf("Insert error: %v", err)
		}
	}

	got, err := repo.GetByID(ctx, "dup")
	if err != nil || got.Name != "first" {
		t.Fatalf("GetByID should return first match, got %q err=%v", got.Name, err)
	}

	removed, err := repo.DeleteByID(ctx, "dup")
	if err != nil || !removed {
		t.Fatalf("DeleteByID: expected true,nil got %v,%v", removed, err)
	}
	got, _ = repo.GetByID(ctx, "dup")
	if got.Name != "second" {
		t.Fatalf("expected second record to remain, got %q", got.Name)
	}

	removed, _ = repo.DeleteByID(ctx, "missing")
	if removed {
		t.Fatalf("DeleteByID on missing id must return false")
	}
	if _, err := repo.GetByID(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestBlobRepository_EmptyStorageIsEmptyCollection(t *testing.T) {
	all, err := NewBlobRepository(mem.NewKV()).ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll error: %v", err)
	}
	if all == nil || len(all) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", all)
	}
}

// El blob mantiene el formato histórico: camelCase y timestamps en ms.
func TestBlobRepository_ReadsLegacyBlob(t *testing.T) {
	ctx := context.Background()
	kv := mem.NewKV()
	legacy := `[{"id":"abc","name":"Rex","type":"Cachorro","birthDate":"2012-03-04","description":"Good boy",` +
		`"images":["data:image/png;base64,AAA"],"createdAt":1700000000000,"expiresAt":1731536000000,"userId":"user_1_x"},` +
		`{"id":"def","name":"Mia","type":"Gato","birthDate":null,"description":"d","images":["x"],` +
		`"createdAt":1700000000001,"expiresAt":1731536000001,"userId":"user_2_y"}]`
	_ = kv.Set(ctx, RecordsKey, legacy)

	all, err := NewBlobRepository(kv).ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll error: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 records, got %d", len(all))
	}
	rex := all[0]
	if rex.BirthDate == nil || rex.BirthDate.Format("2006-01-02") != "2012-03-04" {
		t.Fatalf("unexpected birth date: %v", rex.BirthDate)
	}
	if !rex.CreatedAt.Equal(time.UnixMilli(1700000000000)) || rex.UserID != "user_1_x" {
		t.Fatalf("unexpected record: %#v", rex)
	}
	if all[1].BirthDate != nil {
		t.Fatalf("expected nil birth date for null")
	}
}

func TestBlobRepository_WritesLegacyShape(t *testing.T) {
	ctx := context.Background()
	kv := mem.NewKV()
	repo := NewBlobRepository(kv)

	created := time.UnixMilli(1700000000000).UTC()
	if err := repo.ReplaceAll(ctx, []PetRecord{{
		ID:        "abc",
		Images:    []string{"x"},
		CreatedAt: created,
		ExpiresAt: ExpiresAt(created),
	}}); err != nil {
		t.Fatalf("ReplaceAll error: %v", err)
	}

	raw, _ := kv.Get(ctx, RecordsKey)
	var decoded []map[string]any
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		t.Fatalf("blob is not json: %v", err)
	}
	rec := decoded[0]
	if rec["createdAt"] != float64(1700000000000) || rec["expiresAt"] != float64(1731536000000) {
		t.Fatalf("unexpected timestamps: %v / %v", rec["createdAt"], rec["expiresAt"])
	}
	if v, ok := rec["birthDate"]; !ok || v != nil {
		t.Fatalf("expected birthDate:null, got %v", v)
	}
}
