package router

import (
	"net/http"

	_ "pet-memorial/docs" // registra el spec de swagger

	mem "pet-memorial/internal/adapters/storage/memory"
	"pet-memorial/internal/config"
	"pet-memorial/internal/domain/admin"
	"pet-memorial/internal/domain/identity"
	"pet-memorial/internal/domain/pets"
	"pet-memorial/internal/middleware"
	"pet-memorial/internal/platform/logger"
	"pet-memorial/internal/platform/metrics"
	"pet-memorial/internal/ports/storage"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	Config *config.Config // nil => defaults de dev

	// Opcional: si no viene, in-memory.
	KV storage.KV

	Log     logger.Logger
	Metrics *metrics.Metrics
}

func NewRouter(opts Options) http.Handler {
	cfg := opts.Config
	if cfg == nil {
		cfg = &config.Config{MetricsEnabled: true, SwaggerEnabled: true}
	}
	log := opts.Log
	if log == nil {
		log = logger.Nop()
	}
	kv := opts.KV
	if kv == nil {
		kv = mem.NewKV()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLog(log))
	r.Use(chimw.Recoverer)
	r.Use(opts.Metrics.Middleware)

	r.Use(middleware.ClientContext(middleware.ClientOptions{SecureCookie: cfg.Server.SecureCookie}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	if cfg.MetricsEnabled && opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics.Handler())
	}
	if cfg.SwaggerEnabled {
		r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	}

	// Todo comparte el mismo KV: registros (clave global) + user id y token admin (por cliente)
	ids := identity.NewProvider(kv)
	gate := admin.NewGate(kv, admin.Config{
		Passphrase:     cfg.Admin.Passphrase,
		PassphraseHash: cfg.Admin.PassphraseHash,
		TokenTTL:       cfg.Admin.TokenTTL,
	})
	if !gate.Configured() {
		log.Warn("no admin passphrase configured, admin endpoints will always reject", nil)
	}

	petsSvc := pets.NewService(
		pets.NewBlobRepository(kv),
		ids,
		gate,
		pets.WithLogger(log.With(map[string]any{"module": "pets"})),
		pets.WithMetrics(opts.Metrics),
	)

	// Rutas por módulo
	pets.RegisterRoutes(r, petsSvc, pets.HandlerOptions{
		PublicURL: cfg.Server.PublicURL,
		Log:       log,
	})
	admin.RegisterRoutes(r, gate, petsSvc, admin.HandlerOptions{
		PublicURL: cfg.Server.PublicURL,
		Log:       log.With(map[string]any{"module": "admin"}),
		Metrics:   opts.Metrics,
	})

	return r
}
