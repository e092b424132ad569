// api/internal/api/router/router.go
package router

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/featurelist/configseal/api/internal/api/handlers"
	seal_middleware "github.com/featurelist/configseal/api/internal/api/middleware"
	delivery "github.com/featurelist/configseal/api/internal/delivery/http"
)

// RouterConfig defines the strict dependencies required to build the API routing tree.
type RouterConfig struct {
	AllowedOrigins []string
	MaxBodyBytes   int64
	ConfigHandler  *handlers.ConfigHandler
	HealthHandler  *delivery.HealthHandler
	RateLimiter    *seal_middleware.RateLimiter
	TokenGuard     *seal_middleware.TokenGuard // nil disables bearer auth
	Logger         *slog.Logger
}

// NewRouter constructs the Chi multiplexer, attaches global middleware, and wires all endpoints.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	// =========================================================================
	// 1. Global Gateway Middleware Pipeline
	// =========================================================================

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(seal_middleware.TraceID)
	r.Use(seal_middleware.StructuredLogger(cfg.Logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// 🛡️ Cap request bodies (OOM Protection)
	if cfg.MaxBodyBytes > 0 {
		r.Use(seal_middleware.MaxBytes(cfg.MaxBodyBytes))
	}

	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", seal_middleware.TraceIDHeader},
		ExposedHeaders: []string{seal_middleware.TraceIDHeader},
		MaxAge:         300,
	}))

	// =========================================================================
	// 2. API v1 Routing Tree
	// =========================================================================

	r.Route("/api/v1/config", func(r chi.Router) {
		if cfg.TokenGuard != nil {
			r.Use(cfg.TokenGuard.RequireToken)
		}

		r.Post("/obfuscate", cfg.ConfigHandler.Obfuscate)
		r.Post("/deobfuscate", cfg.ConfigHandler.Deobfuscate)
		r.Post("/seal", cfg.ConfigHandler.Seal)
		r.Post("/open", cfg.ConfigHandler.Open)
	})

	r.Get("/health", cfg.HealthHandler.Check)

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("pong"))
	})

	return r
}
