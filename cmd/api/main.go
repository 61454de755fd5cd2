package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pet-memorial/internal/adapters/storage/backend"
	"pet-memorial/internal/config"
	"pet-memorial/internal/platform/logger"
	"pet-memorial/internal/platform/metrics"
	"pet-memorial/internal/router"
)

// @title Pet Memorial API
// @version 1.0
// @description Memoriales de mascotas con link compartible que expiran al año.
// @BasePath /
func main() {
	configPath := flag.String("config", "", "ruta a un config.yaml (opcional)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.New(logger.Options{App: "pet-memorial"}).Error("config error", map[string]any{"err": err})
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    "pet-memorial",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	openCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	kv, closeKV, err := backend.Open(openCtx, cfg.Storage, log)
	cancel()
	if err != nil {
		log.Error("storage error", map[string]any{"driver": cfg.Storage.Driver, "err": err})
		os.Exit(1)
	}
	defer func() {
		if err := closeKV(); err != nil {
			log.Warn("storage close error", map[string]any{"err": err})
		}
	}()

	var m *metrics.Metrics
	if cfg.MetricsEnabled {
		m = metrics.New()
	}

	srv := &http.Server{
		Addr: cfg.Server.Addr,
		Handler: router.NewRouter(router.Options{
			Config:  cfg,
			KV:      kv,
			Log:     log,
			Metrics: m,
		}),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info("starting server", map[string]any{"addr": cfg.Server.Addr, "storage": cfg.Storage.Driver})
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server error", map[string]any{"err": err})
		os.Exit(1)
	}
	log.Info("server stopped", nil)
}
