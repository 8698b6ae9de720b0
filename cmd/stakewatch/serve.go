package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/ethyield/stakewatch/internal/cache"
	"github.com/ethyield/stakewatch/internal/config"
	"github.com/ethyield/stakewatch/internal/handler"
	"github.com/ethyield/stakewatch/internal/middleware"
	"github.com/ethyield/stakewatch/internal/store"
)

const cycleRetention = 30 * 24 * time.Hour

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the refresh loop and HTTP API",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	logger := newLogger(os.Stdout, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	engine := buildEngine(cfg, logger)

	// Cycle archive (optional)
	var db *store.Store
	if cfg.DatabaseURL != "" {
		var err error
		db, err = store.New(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to connect to database", "error", err)
			return err
		}
		defer db.Close()

		if err := db.Migrate(ctx); err != nil {
			logger.Error("failed to run migrations", "error", err)
			return err
		}
		engine.AttachArchive(db)
		logger.Info("database connected and migrated")
	}

	// Snapshot cache (optional; retry while the sidecar comes up)
	if cfg.RedisURL != "" {
		var sc *cache.Cache
		var err error
		for i := 0; i < 6; i++ {
			sc, err = cache.New(cfg.RedisURL, cfg.RedisPassword)
			if err == nil {
				break
			}
			logger.Warn("redis not ready, retrying...", "attempt", i+1, "error", err)
			time.Sleep(5 * time.Second)
		}
		if err != nil {
			logger.Warn("running without snapshot cache", "error", err)
		} else {
			defer sc.Close()
			engine.AttachCache(sc)
			engine.WarmStart(ctx)
			logger.Info("redis connected for snapshot cache")
		}
	}

	go engine.Run(ctx)

	if db != nil {
		go cleanupLoop(ctx, db, logger)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recover(logger))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Metrics())
	r.Use(middleware.CORS(cfg.FrontendOrigin))

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", handler.Health())
	var pinger handler.Pinger
	if db != nil {
		pinger = db
	}
	r.Get("/readyz", handler.Ready(pinger))

	r.Route("/api", func(r chi.Router) {
		r.Get("/snapshot", handler.Snapshot(engine))
		r.Get("/pools", handler.Pools(engine))
		var cycles handler.CycleReader
		if db != nil {
			cycles = db
		}
		r.Get("/history", handler.History(cycles))
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		logger.Error("server failed", "error", err)
		return err
	case <-quit:
	}

	logger.Info("shutting down gracefully")
	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	return srv.Shutdown(shutdownCtx)
}

// cleanupLoop trims the cycle archive once a day.
func cleanupLoop(ctx context.Context, db *store.Store, logger *slog.Logger) {
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			deleted, err := db.CleanupOldCycles(ctx, cycleRetention)
			if err != nil {
				logger.Error("cycle cleanup failed", "error", err)
				continue
			}
			logger.Info("cycle cleanup", "deleted", deleted)
		}
	}
}
