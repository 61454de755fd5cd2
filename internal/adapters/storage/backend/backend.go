package backend

import (
	"context"
	"fmt"

	"pet-memorial/internal/adapters/storage/memory"
	pg "pet-memorial/internal/adapters/storage/postgres"
	s3kv "pet-memorial/internal/adapters/storage/s3"
	"pet-memorial/internal/adapters/storage/sqlite"
	"pet-memorial/internal/config"
	"pet-memorial/internal/platform/logger"
	"pet-memorial/internal/ports/storage"
)

// Open arma el KV según storage.driver. El close devuelto nunca es nil.
func Open(ctx context.Context, cfg config.StorageConfig, log logger.Logger) (storage.KV, func() error, error) {
	if log == nil {
		log = logger.Nop()
	}
	noop := func() error { return nil }

	switch cfg.Driver {
	case config.DriverMemory, "":
		log.Warn("using in-memory storage, data is lost on restart", nil)
		return memory.NewKV(), noop, nil

	case config.DriverSQLite:
		kv, err := sqlite.Open(ctx, cfg.SQLite.Path)
		if err != nil {
			return nil, noop, err
		}
		log.Info("storage ready", map[string]any{"driver": cfg.Driver, "path": kv.Path()})
		return kv, kv.Close, nil

	case config.DriverPostgres:
		db, err := pg.Open(ctx, cfg.Postgres.DSN)
		if err != nil {
			return nil, noop, err
		}
		if err := pg.EnsureSchema(ctx, db); err != nil {
			_ = db.Close()
			return nil, noop, err
		}
		log.Info("storage ready", map[string]any{"driver": cfg.Driver})
		return pg.NewKV(db), db.Close, nil

	case config.DriverS3:
		kv, err := s3kv.New(ctx, s3kv.Config{
			Bucket:          cfg.S3.Bucket,
			Region:          cfg.S3.Region,
			Endpoint:        cfg.S3.Endpoint,
			Prefix:          cfg.S3.Prefix,
			AccessKeyID:     cfg.S3.AccessKeyID,
			SecretAccessKey: cfg.S3.SecretAccessKey,
			PathStyle:       cfg.S3.PathStyle,
		})
		if err != nil {
			return nil, noop, err
		}
		log.Info("storage ready", map[string]any{"driver": cfg.Driver, "bucket": cfg.S3.Bucket})
		return kv, noop, nil

	default:
		return nil, noop, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
