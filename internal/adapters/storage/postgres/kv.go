package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"pet-memorial/internal/ports/storage"
)

type KV struct {
	db  *sql.DB
	now func() time.Time
}

func NewKV(db *sql.DB) *KV {
	return &KV{db: db, now: time.Now}
}

func (r *KV) Get(ctx context.Context, key string) (string, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT value
		FROM kv_store
		WHERE key = $1
	`, key)

	var v string
	if err := row.Scan(&v); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", storage.ErrNotFound
		}
		return "", err
	}
	return v, nil
}

func (r *KV) Set(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO kv_store (key, value, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value,
			updated_at = EXCLUDED.updated_at
	`, key, value, r.now().UTC())
	return err
}

func (r *KV) Remove(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM kv_store
		WHERE key = $1
	`, key)
	return err
}
