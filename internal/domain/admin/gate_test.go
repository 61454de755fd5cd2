package admin

import (
	"context"
	"errors"
	"testing"
	"time"

	mem "pet-memorial/internal/adapters/storage/memory"
	"pet-memorial/internal/ports/auth"
	"pet-memorial/internal/ports/storage"
)

func TestGate_AuthenticateLogoutCycle(t *testing.T) {
	ctx := context.Background()
	kv := mem.NewKV()
	g := NewGate(kv, Config{Passphrase: "s3cret"})

	ok, err := g.Authenticate(ctx, "wrong")
	if err != nil || ok {
		t.Fatalf("expected false,nil for wrong secret, got %v,%v", ok, err)
	}
	if _, err := kv.Get(ctx, TokenKey); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("wrong secret must not write a token")
	}
	if authed, _ := g.IsAuthenticated(ctx); authed {
		t.Fatalf("expected not authenticated after wrong secret")
	}

	ok, err = g.Authenticate(ctx, "s3cret")
	if err != nil || !ok {
		t.Fatalf("expected true,nil for correct secret, got %v,%v", ok, err)
	}
	if authed, _ := g.IsAuthenticated(ctx); !authed {
		t.Fatalf("expected authenticated after correct secret")
	}

	if err := g.Logout(ctx); err != nil {
		t.Fatalf("Logout error: %v", err)
	}
	if authed, _ := g.IsAuthenticated(ctx); authed {
		t.Fatalf("expected not authenticated after logout")
	}
}

func TestGate_NoSecretConfigured_FailsClosed(t *testing.T) {
	g := NewGate(mem.NewKV(), Config{})
	if g.Configured() {
		t.Fatalf("expected unconfigured gate")
	}
	for _, s := range []string{"", "anything"} {
		if ok, _ := g.Authenticate(context.Background(), s); ok {
			t.Fatalf("unconfigured gate accepted %q", s)
		}
	}
}

func TestGate_PassphraseHash(t *testing.T) {
	hash, err := HashPassphrase("correct horse")
	if err != nil {
		t.Fatalf("HashPassphrase error: %v", err)
	}
	g := NewGate(mem.NewKV(), Config{PassphraseHash: hash, Passphrase: "ignored"})

	if ok, _ := g.Authenticate(context.Background(), "ignored"); ok {
		t.Fatalf("hash must take precedence over plain passphrase")
	}
	if ok, _ := g.Authenticate(context.Background(), "correct horse"); !ok {
		t.Fatalf("expected hash match")
	}
	if CheckPassphrase("x", "not-a-hash") {
		t.Fatalf("malformed hash must not match")
	}
}

func TestGate_TokenTTL(t *testing.T) {
	ctx := context.Background()
	g := NewGate(mem.NewKV(), Config{Passphrase: "p", TokenTTL: time.Hour})

	t0 := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	g.now = func() time.Time { return t0 }
	if ok, _ := g.Authenticate(ctx, "p"); !ok {
		t.Fatalf("expected authenticate ok")
	}

	g.now = func() time.Time { return t0.Add(59 * time.Minute) }
	if authed, _ := g.IsAuthenticated(ctx); !authed {
		t.Fatalf("expected token valid inside TTL")
	}

	g.now = func() time.Time { return t0.Add(61 * time.Minute) }
	if authed, _ := g.IsAuthenticated(ctx); authed {
		t.Fatalf("expected token expired after TTL")
	}
}

func TestGate_TokenWithoutTTLNeverExpires(t *testing.T) {
	ctx := context.Background()
	g := NewGate(mem.NewKV(), Config{Passphrase: "p"})
	t0 := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	g.now = func() time.Time { return t0 }
	_, _ = g.Authenticate(ctx, "p")

	g.now = func() time.Time { return t0.AddDate(10, 0, 0) }
	if authed, _ := g.IsAuthenticated(ctx); !authed {
		t.Fatalf("expected presence-only check without TTL")
	}
}

func TestGate_SessionsArePerClient(t *testing.T) {
	g := NewGate(mem.NewKV(), Config{Passphrase: "p"})
	adminCtx := auth.WithClient(context.Background(), auth.Client{ID: "admin-browser"})
	otherCtx := auth.WithClient(context.Background(), auth.Client{ID: "other-browser"})

	if ok, _ := g.Authenticate(adminCtx, "p"); !ok {
		t.Fatalf("expected authenticate ok")
	}
	if authed, _ := g.IsAuthenticated(otherCtx); authed {
		t.Fatalf("admin session leaked to another client")
	}
}
