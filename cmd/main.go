// cmd/main.go is the application entry point.
// It wires together all layers and starts the HTTP server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Shivanand-hulikatti/petu/internal/config"
	"github.com/Shivanand-hulikatti/petu/internal/database"
	"github.com/Shivanand-hulikatti/petu/internal/handler"
	"github.com/Shivanand-hulikatti/petu/internal/repository"
	"github.com/Shivanand-hulikatti/petu/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	setupLogger(cfg)

	if err := run(cfg); err != nil {
		slog.Error("server failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func setupLogger(cfg *config.Config) {
	level, _ := cfg.SlogLevel()
	opts := &slog.HandlerOptions{Level: level}

	var h slog.Handler = slog.NewTextHandler(os.Stdout, opts)
	if cfg.IsProduction() {
		h = slog.NewJSONHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(h))
}

func run(cfg *config.Config) error {
	ctx := context.Background()

	// ── 1. Open storage ───────────────────────────────────────────────────
	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()
	slog.Info("storage ready", slog.String("backend", cfg.Storage))

	// ── 2. Optional Redis list cache ──────────────────────────────────────
	if cfg.Redis.Addr != "" {
		client, err := repository.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return fmt.Errorf("redis: %w", err)
		}
		defer client.Close()
		store = repository.NewCachedStore(store, client, cfg.Redis.TTL)
		slog.Info("event cache enabled",
			slog.String("addr", cfg.Redis.Addr),
			slog.Duration("ttl", cfg.Redis.TTL),
		)
	}

	// ── 3. Wire up layers ────────────────────────────────────────────────
	eventSvc := service.NewEventService(store, service.EventOptions{
		ExampleFallback: cfg.ExampleFallback,
		DefaultHostName: cfg.DefaultHostName,
	})
	authSvc := service.NewAuthService(store, service.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL), cfg.BcryptCost)

	router := handler.NewRouter(handler.RouterConfig{
		Events:         eventSvc,
		Auth:           authSvc,
		Storage:        cfg.Storage,
		AllowedOrigins: cfg.AllowedOrigins,
	})

	// ── 4. Start server with graceful shutdown ────────────────────────────
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("server listening",
			slog.String("addr", "http://localhost:"+cfg.Port),
			slog.String("env", cfg.Environment),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return err
	case <-quit:
	}

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	slog.Info("server stopped")
	return nil
}

// openStore connects the backend named by PETU_STORAGE.
func openStore(ctx context.Context, cfg *config.Config) (repository.Store, error) {
	switch cfg.Storage {
	case config.StoragePostgres:
		pool, err := database.NewPool(ctx, cfg.Postgres.DSN())
		if err != nil {
			return nil, fmt.Errorf("database: %w", err)
		}
		return repository.NewPostgresStore(pool), nil
	default:
		db, err := database.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("database: %w", err)
		}
		return repository.NewSQLiteStore(db), nil
	}
}
