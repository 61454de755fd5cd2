package admin

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"pet-memorial/internal/domain/identity"
	"pet-memorial/internal/ports/auth"
	"pet-memorial/internal/ports/storage"

	"github.com/google/uuid"
	"golang.org/x/crypto/pbkdf2"
)

// TokenKey es la clave fija del token de sesión admin.
const TokenKey = "pet_memories_admin_token"

const (
	pbkdf2Iterations = 100_000
	pbkdf2KeyLen     = 32
)

// Config del gate. Si vienen Passphrase y PassphraseHash, gana el hash.
// Sin ninguno de los dos, Authenticate siempre devuelve false.
type Config struct {
	Passphrase     string
	PassphraseHash string // "salt$hash" (pbkdf2-sha256, base64 raw)

	// TokenTTL 0 = el token no expira nunca (comportamiento histórico).
	TokenTTL time.Duration
}

// Gate implementa auth.AdminGate sobre el almacenamiento del cliente.
// Ojo: sin rate limiting y, con TTL 0, el token vale hasta el logout.
type Gate struct {
	kv  storage.KV
	cfg Config
	now func() time.Time
}

var _ auth.AdminGate = (*Gate)(nil)

func NewGate(kv storage.KV, cfg Config) *Gate {
	cfg.Passphrase = strings.TrimSpace(cfg.Passphrase)
	cfg.PassphraseHash = strings.TrimSpace(cfg.PassphraseHash)
	return &Gate{
		kv:  kv,
		cfg: cfg,
		now: time.Now,
	}
}

// Configured indica si hay algún secreto contra el cual comparar.
func (g *Gate) Configured() bool {
	return g.cfg.Passphrase != "" || g.cfg.PassphraseHash != ""
}

// Authenticate compara el secreto y, si coincide, persiste un token nuevo.
// Si no coincide no toca el almacenamiento.
func (g *Gate) Authenticate(ctx context.Context, secret string) (bool, error) {
	if !g.matches(secret) {
		return false, nil
	}

	token := identity.NewTaggedID("admin", g.now())
	if err := g.kv.Set(ctx, auth.ScopedKey(ctx, TokenKey), token); err != nil {
		return false, fmt.Errorf("write admin token: %w", err)
	}
	return true, nil
}

// IsAuthenticated es true si hay token. Con TokenTTL > 0 además exige que
// el timestamp embebido en el token esté dentro de la ventana.
func (g *Gate) IsAuthenticated(ctx context.Context) (bool, error) {
	token, err := g.kv.Get(ctx, auth.ScopedKey(ctx, TokenKey))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("read admin token: %w", err)
	}
	if strings.TrimSpace(token) == "" {
		return false, nil
	}
	if g.cfg.TokenTTL <= 0 {
		return true, nil
	}

	issued, ok := issuedAt(token)
	if !ok {
		return false, nil
	}
	return g.now().Before(issued.Add(g.cfg.TokenTTL)), nil
}

func (g *Gate) Logout(ctx context.Context) error {
	if err := g.kv.Remove(ctx, auth.ScopedKey(ctx, TokenKey)); err != nil {
		return fmt.Errorf("remove admin token: %w", err)
	}
	return nil
}

func (g *Gate) matches(secret string) bool {
	if secret == "" {
		return false
	}
	if g.cfg.PassphraseHash != "" {
		return CheckPassphrase(secret, g.cfg.PassphraseHash)
	}
	if g.cfg.Passphrase == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(secret), []byte(g.cfg.Passphrase)) == 1
}

// issuedAt lee el ms embebido en "admin_<ms>_<sufijo>".
func issuedAt(token string) (time.Time, bool) {
	parts := strings.SplitN(token, "_", 3)
	if len(parts) != 3 {
		return time.Time{}, false
	}
	ms, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	return time.UnixMilli(ms), true
}

// HashPassphrase genera "salt$hash" para PETMEM_ADMIN_PASSPHRASE_HASH.
func HashPassphrase(passphrase string) (string, error) {
	if passphrase == "" {
		return "", errors.New("passphrase is empty")
	}
	salt := []byte(strings.ReplaceAll(uuid.NewString(), "-", ""))[:16]
	hash := pbkdf2.Key([]byte(passphrase), salt, pbkdf2Iterations, pbkdf2KeyLen, sha256.New)
	return base64.RawStdEncoding.EncodeToString(salt) + "$" + base64.RawStdEncoding.EncodeToString(hash), nil
}

func CheckPassphrase(passphrase, stored string) bool {
	saltStr, hashStr, ok := strings.Cut(stored, "$")
	if !ok || passphrase == "" {
		return false
	}
	salt, err := base64.RawStdEncoding.DecodeString(saltStr)
	if err != nil {
		return false
	}
	want, err := base64.RawStdEncoding.DecodeString(hashStr)
	if err != nil {
		return false
	}
	got := pbkdf2.Key([]byte(passphrase), salt, pbkdf2Iterations, len(want), sha256.New)
	return subtle.ConstantTimeCompare(got, want) == 1
}
