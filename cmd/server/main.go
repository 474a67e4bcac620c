// Package main is the entrypoint for the Segmenta API server.
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
	"github.com/segmenta/segmenta/internal/api"
	"github.com/segmenta/segmenta/internal/api/handler"
	mw "github.com/segmenta/segmenta/internal/api/middleware"
	"github.com/segmenta/segmenta/internal/api/response"
	"github.com/segmenta/segmenta/internal/cache"
	"github.com/segmenta/segmenta/internal/cluster"
	"github.com/segmenta/segmenta/internal/config"
	"github.com/segmenta/segmenta/internal/report"
	"github.com/segmenta/segmenta/internal/segment"
	"github.com/segmenta/segmenta/pkg/models"
)

const shutdownTimeout = 30 * time.Second

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := run(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load config — fail fast on invalid config
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	slog.Info("config loaded", "cluster_mode", cfg.Cluster.Mode, "k", cfg.Cluster.K, "env", cfg.Server.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Prepare storage directories
	for _, dir := range []string{cfg.Storage.UploadDir, cfg.Storage.OutputDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create dir %s: %w", dir, err)
		}
	}

	// 3. Create clusterer (loads model artifacts in pretrained mode)
	clusterer, err := cluster.New(cfg.Cluster)
	if err != nil {
		return fmt.Errorf("create clusterer: %w", err)
	}
	slog.Info("clusterer initialized", "mode", clusterer.Mode())

	// 4. Optional Redis-backed rate limiting
	var (
		healthCache cache.Cache
		rateLimit   *mw.RateLimit
	)
	if cfg.Redis.URL != "" {
		redisCache, err := cache.NewRedisCache(cfg.Redis.URL)
		if err != nil {
			return fmt.Errorf("create redis cache: %w", err)
		}
		defer redisCache.Close()

		if err := redisCache.Ping(ctx); err != nil {
			return fmt.Errorf("ping redis: %w", err)
		}
		rateLimit = mw.NewRateLimit(redisCache, cfg.Redis.RequestsPerMin)
		healthCache = redisCache
		slog.Info("redis connected, rate limiting enabled", "requests_per_min", cfg.Redis.RequestsPerMin)
	}

	// 5. Create the segmentation service
	writer := report.NewCSVWriter(cfg.Storage.OutputDir)
	svc := segment.NewService(clusterer, writer, cfg.Cluster.Timeout)

	// 6. Build router with dependencies
	deps := api.Dependencies{
		RateLimit: rateLimit,

		HealthHandler: healthHandler(svc, healthCache),

		AnalyzeHandler:       handler.NewAnalyzeHandler(svc, cfg.Storage.UploadDir),
		SegmentIncomeHandler: handler.NewSegmentHandler(svc, cfg.Storage.UploadDir, models.IncomeSpending),
		SegmentAgeHandler:    handler.NewSegmentHandler(svc, cfg.Storage.UploadDir, models.AgeSpending),

		IndexHandler:       handler.NewIndexHandler(),
		AnalyzePageHandler: handler.NewAnalyzePageHandler(svc, cfg.Storage.UploadDir),
	}

	router := api.NewRouter(deps)

	// 7. Start HTTP server
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background
	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// Wait for shutdown signal or server error
	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		slog.Info("shutdown signal received, draining connections...")
	}

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}

// healthHandler reports service status, the configured cluster mode and, if
// rate limiting is enabled, cache connectivity.
func healthHandler(svc *segment.Service, c cache.Cache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body := map[string]any{
			"status":       "ok",
			"cluster_mode": svc.Mode(),
		}

		if c != nil {
			cacheStatus := "ok"
			if err := c.Ping(r.Context()); err != nil {
				cacheStatus = "degraded"
			}
			body["cache"] = cacheStatus
			if cacheStatus != "ok" {
				response.Error(w, http.StatusServiceUnavailable, "DEGRADED",
					"One or more services degraded", body)
				return
			}
		}

		response.JSON(w, body)
	}
}
