package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/karamlee/polyask/internal/config"
	"github.com/karamlee/polyask/internal/provider"
	"github.com/karamlee/polyask/internal/server"
	"github.com/karamlee/polyask/internal/session"
	"github.com/karamlee/polyask/internal/storage"
	"github.com/karamlee/polyask/internal/storage/memory"
	"github.com/karamlee/polyask/internal/storage/sqlite"
	"github.com/karamlee/polyask/internal/telemetry"

	// Register built-in provider adapters.
	_ "github.com/karamlee/polyask/internal/provider/anthropic"
	_ "github.com/karamlee/polyask/internal/provider/gemini"
	_ "github.com/karamlee/polyask/internal/provider/openai"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Initialize OpenTelemetry
	shutdownTracer, err := telemetry.InitTracer("polyask", logger)
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			logger.Error("failed to shutdown tracer", slog.String("error", err.Error()))
		}
	}()

	cfg, err := config.Load(os.Getenv("POLYASK_CONFIG"))
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	registry, err := provider.NewRegistry(cfg.Providers)
	if err != nil {
		log.Fatalf("Failed to create providers: %v", err)
	}
	if registry.Len() == 0 {
		logger.Warn("no providers configured; every round will summarize immediately")
	}

	store, err := newRoundStore(cfg.Storage)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	if store != nil {
		defer store.Close()
	}

	sess := session.New(registry, store, logger)

	srv := server.New(cfg.Server, logger)
	server.NewHandler(sess, store).Routes(srv.Router)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	logger.Info("polyask started",
		slog.Int("providers", registry.Len()),
		slog.String("storage", cfg.Storage.Type),
	)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	case <-sigCh:
		logger.Info("shutdown signal received, stopping server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("polyask shutdown complete")
}

func newRoundStore(cfg config.StorageConfig) (storage.RoundStore, error) {
	switch cfg.Type {
	case "", "none":
		return nil, nil
	case "memory":
		return memory.New(), nil
	case "sqlite":
		path := cfg.SQLite.Path
		if path == "" {
			path = "./data/polyask.db"
		}
		return sqlite.New(path)
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
	}
}
