package auth

import (
	"context"
	"strings"
)

// Client identifica al navegador/cliente que hace la llamada.
// No es una identidad verificada: solo separa el almacenamiento por cliente.
type Client struct {
	ID string
}

type ctxKey string

const clientKey ctxKey = "client"

func WithClient(ctx context.Context, c Client) context.Context {
	return context.WithValue(ctx, clientKey, c)
}

func ClientFromContext(ctx context.Context) (Client, bool) {
	v := ctx.Value(clientKey)
	if v == nil {
		return Client{}, false
	}
	c, ok := v.(Client)
	if !ok || strings.TrimSpace(c.ID) == "" {
		return Client{}, false
	}
	return c, true
}

// ScopedKey antepone el id del cliente a una clave de almacenamiento.
// Sin cliente en el contexto (modo local / tests) la clave queda igual.
func ScopedKey(ctx context.Context, key string) string {
	c, ok := ClientFromContext(ctx)
	if !ok {
		return key
	}
	return "client:" + c.ID + ":" + key
}
