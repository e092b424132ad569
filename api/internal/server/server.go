package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/featurelist/configseal/api/internal/api/handlers"
	"github.com/featurelist/configseal/api/internal/api/middleware"
	"github.com/featurelist/configseal/api/internal/api/router"
	"github.com/featurelist/configseal/api/internal/config"
	"github.com/featurelist/configseal/api/internal/core/services"
	delivery "github.com/featurelist/configseal/api/internal/delivery/http"
	"github.com/featurelist/configseal/api/internal/infrastructure/obfuscation"
)

const shutdownTimeout = 10 * time.Second

// New wires every dependency and returns the HTTP server plus the rate
// limiter whose cleanup loop the caller must run.
func New(cfg *config.Config, logger *slog.Logger) (*http.Server, *middleware.RateLimiter) {
	// --- Dependency Injection ---
	obfuscator := obfuscation.NewService()
	editConfigs := services.NewEditConfigService(obfuscator, logger)

	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)

	var guard *middleware.TokenGuard
	if cfg.JWTSecret != "" {
		guard = middleware.NewTokenGuard(services.NewTokenService(cfg.JWTSecret), logger)
	}

	mux := router.NewRouter(router.RouterConfig{
		AllowedOrigins: cfg.AllowedOrigins,
		MaxBodyBytes:   cfg.MaxBodyBytes,
		ConfigHandler:  handlers.NewConfigHandler(obfuscator, editConfigs),
		HealthHandler:  delivery.NewHealthHandler(obfuscator),
		RateLimiter:    limiter,
		TokenGuard:     guard,
		Logger:         logger,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}
	return srv, limiter
}

// Run serves on ln until ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context, cfg *config.Config, logger *slog.Logger, ln net.Listener) error {
	srv, limiter := New(cfg, logger)

	workerCtx, cancelWorkers := context.WithCancel(ctx)
	defer cancelWorkers()
	go limiter.Cleanup(workerCtx)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("🌐 configseal API active", "addr", ln.Addr().String(), "auth", cfg.JWTSecret != "")
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("🛑 Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("ERROR: Forced shutdown", "error", err)
		return err
	}
	return nil
}

// ListenAndRun listens on the configured port and calls Run.
func ListenAndRun(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	ln, err := net.Listen("tcp", ":"+cfg.Port)
	if err != nil {
		return err
	}
	return Run(ctx, cfg, logger, ln)
}
