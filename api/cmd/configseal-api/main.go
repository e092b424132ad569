package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/featurelist/configseal/api/internal/config"
	"github.com/featurelist/configseal/api/internal/server"
)

func main() {
	// --- 1. Core Telemetry & Configuration ---
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)
	logger.Info("🚀 Booting configseal API...")

	cfg, err := config.Load()
	if err != nil {
		logger.Error("FATAL: configuration rejected", "error", err)
		os.Exit(1)
	}

	// --- 2. Graceful Exit ---
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.ListenAndRun(ctx, cfg, logger); err != nil {
		logger.Error("CRITICAL: Server crashed", "error", err)
		os.Exit(1)
	}
	logger.Info("✅ configseal API shutdown.")
}
