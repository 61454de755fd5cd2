package auth

import (
	"context"
	"testing"
)

func TestScopedKey(t *testing.T) {
	ctx := context.Background()
	if got := ScopedKey(ctx, "pet_memories_user_id"); got != "pet_memories_user_id" {
		t.Fatalf("without client the key must stay as is, got %q", got)
	}

	ctx = WithClient(ctx, Client{ID: "abc"})
	if got := ScopedKey(ctx, "pet_memories_user_id"); got != "client:abc:pet_memories_user_id" {
		t.Fatalf("unexpected scoped key %q", got)
	}
}

func TestClientFromContext_IgnoresBlankID(t *testing.T) {
	ctx := WithClient(context.Background(), Client{ID: "  "})
	if _, ok := ClientFromContext(ctx); ok {
		t.Fatalf("blank client id must be treated as no client")
	}
	if got := ScopedKey(ctx, "k"); got != "k" {
		t.Fatalf("blank client must not scope keys, got %q", got)
	}
}
