package auth

import "context"

// AdminGate autoriza operaciones destructivas (delete, purge).
// El token solo se chequea por presencia; ver admin.Gate para el TTL opcional.
type AdminGate interface {
	Authenticate(ctx context.Context, secret string) (bool, error)
	IsAuthenticated(ctx context.Context) (bool, error)
	Logout(ctx context.Context) error
}
