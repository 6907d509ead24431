// cmd/main.go is the application entry point.
// It wires together all layers and starts the HTTP server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shec-toronto/community-health-api/internal/config"
	"github.com/shec-toronto/community-health-api/internal/database"
	"github.com/shec-toronto/community-health-api/internal/handler"
	"github.com/shec-toronto/community-health-api/internal/i18n"
	"github.com/shec-toronto/community-health-api/internal/service"
	"github.com/shec-toronto/community-health-api/internal/store"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, nil)))

	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// ── 1. Pick the storage backend ───────────────────────────────────────
	var st store.Storage
	if cfg.DatabaseURL != "" {
		if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
			return err
		}
		pool, err := database.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer pool.Close()
		st = store.NewPgStore(pool)
		slog.Info("storage: postgres")
	} else {
		mem := store.NewMemStore()
		if cfg.SeedDemoData {
			if err := store.SeedDemoData(ctx, mem); err != nil {
				return err
			}
			slog.Info("demo data seeded")
		}
		st = mem
		slog.Info("storage: in-memory (state is lost on restart)")
	}

	// ── 2. Wire up layers ────────────────────────────────────────────────
	translator := i18n.NewTranslator(cfg.DefaultLanguage)
	svc := service.New(st)
	h := handler.New(svc, translator)

	// ── 3. Build the router ───────────────────────────────────────────────
	r := chi.NewRouter()

	// Global middleware stack
	r.Use(chimiddleware.Recoverer) // recover from panics, return 500
	r.Use(chimiddleware.RequestID) // attach request IDs
	r.Use(chimiddleware.RealIP)    // trust X-Forwarded-For
	r.Use(handler.Logger)          // structured access log + request metrics
	r.Use(handler.CORS)            // permissive CORS for the public site

	r.Get("/health", handler.HealthCheck)
	r.Handle("/metrics", promhttp.Handler())
	h.Routes(r)

	// ── 4. Start server with graceful shutdown ────────────────────────────
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Block until SIGINT or SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
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
