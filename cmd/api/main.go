// Package main is the entry point for the Budgy API server.
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

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/budgy/backend/config"
	"github.com/budgy/backend/internal/application/adapter"
	"github.com/budgy/backend/internal/infra/db"
	"github.com/budgy/backend/internal/infra/dependency"
	"github.com/budgy/backend/internal/integration/adapters"
	"github.com/budgy/backend/internal/integration/persistence/model"
)

func main() {
	// Load .env file if it exists (development only)
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		slog.Error("Server terminated", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	slog.Info("Starting Budgy API",
		"environment", cfg.Server.Environment,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
	)

	database, err := db.NewConnection(&cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}()

	if err := database.AutoMigrate(model.AllModels()...); err != nil {
		return err
	}
	slog.Info("Database migrations completed successfully")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := db.Seed(ctx, database.DB(), adapters.NewPasswordService(), cfg.Admin); err != nil {
		return err
	}

	storage, err := adapters.NewLocalStorage(cfg.Storage.AttachmentDir)
	if err != nil {
		return fmt.Errorf("failed to prepare attachment storage: %w", err)
	}

	cache, cacheHealth, closeCache := newSummaryCache(ctx, cfg.Redis)
	defer closeCache()

	injector := dependency.NewInjector(cfg, database.DB(), dependency.Options{
		Storage:            storage,
		SummaryCache:       cache,
		CacheHealthChecker: cacheHealth,
		Logger:             logger,
	})
	injector.RateLimiter.StartCleanup(ctx, cfg.RateLimit.Window)

	engine := injector.Router.Setup(cfg.Server.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server failed to start: %w", err)
	case <-ctx.Done():
	}

	slog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	slog.Info("Server exited properly")
	return nil
}

// newSummaryCache connects to Redis, falling back to a no-op cache when
// Redis is disabled or unreachable.
func newSummaryCache(ctx context.Context, cfg config.RedisConfig) (adapter.SummaryCache, func() bool, func()) {
	if !cfg.Enabled {
		slog.Info("Summary cache disabled")
		return adapters.NewNoopSummaryCache(), nil, func() {}
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		slog.Warn("Invalid REDIS_URL, summary cache disabled", "error", err)
		return adapters.NewNoopSummaryCache(), nil, func() {}
	}
	if cfg.Password != "" {
		opts.Password = cfg.Password
	}
	if cfg.DB != 0 {
		opts.DB = cfg.DB
	}

	client := redis.NewClient(opts)
	cache := adapters.NewRedisSummaryCache(client, cfg.SummaryTTL)

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := cache.Ping(pingCtx); err != nil {
		slog.Warn("Redis unreachable, summary cache disabled", "error", err)
		_ = client.Close()
		return adapters.NewNoopSummaryCache(), nil, func() {}
	}

	slog.Info("Summary cache connected", "addr", opts.Addr)

	health := func() bool {
		pingCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		return cache.Ping(pingCtx) == nil
	}
	closeFn := func() {
		if err := client.Close(); err != nil {
			slog.Error("Failed to close redis client", "error", err)
		}
	}
	return cache, health, closeFn
}
