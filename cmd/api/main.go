// Package main is the entry point for the trip ledger API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
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

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/pkordes/triplog/internal/auth"
	"github.com/pkordes/triplog/internal/config"
	"github.com/pkordes/triplog/internal/handler"
	"github.com/pkordes/triplog/internal/middleware"
	"github.com/pkordes/triplog/internal/repo"
	"github.com/pkordes/triplog/internal/service"
	"github.com/pkordes/triplog/internal/store"
)

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		// Use plain stderr before the logger is configured.
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}

func run(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	// --- Storage ----------------------------------------------------------
	medium, closeMedium, err := openMedium(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeMedium()
	logger.Info("storage ready", "backend", cfg.Backend)

	trips := store.OpenTrips(ctx, medium, logger)
	vehicles := store.OpenVehicles(ctx, medium, logger)
	logger.Info("ledger loaded", "trips", trips.Len(), "vehicles", len(vehicles.List()))

	// --- Services ---------------------------------------------------------
	reports := service.NewReportService(trips)

	authn, err := newAuthenticator(cfg)
	if err != nil {
		return err
	}

	srv := handler.NewServer(handler.Deps{
		Trips:    service.NewTripService(trips, vehicles, service.NewValidator()),
		Vehicles: service.NewVehicleService(vehicles),
		Reports:  reports,
		Exports:  service.NewExportService(reports),
		Auth:     authn,
		Sessions: auth.NewSessions(cfg.SessionSecret),
		Logger:   logger,
	})

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer
	// → CORS → body limit.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))
	r.Mount("/", srv.Routes())

	// --- HTTP Server ------------------------------------------------------
	// WriteTimeout leaves room for PDF rendering of large ranges.
	httpSrv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server starting", "addr", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		// Graceful shutdown: give in-flight requests up to 15 seconds.
		<-gctx.Done()
		logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})
	return g.Wait()
}

// openMedium opens the storage backend named in cfg. The returned func
// releases it.
func openMedium(ctx context.Context, cfg config.Config) (repo.Medium, func(), error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return repo.NewMemoryMedium(), func() {}, nil
	case config.BackendSQLite:
		m, db, err := repo.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return m, func() { _ = db.Close() }, nil
	case config.BackendPostgres:
		m, pool, err := repo.OpenPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return m, pool.Close, nil
	default:
		m, err := repo.NewFileMedium(cfg.DataDir)
		if err != nil {
			return nil, nil, err
		}
		return m, func() {}, nil
	}
}

// newAuthenticator builds the login check from AUTH_PASSWORD_HASH, hashing
// AUTH_PASSWORD at startup when no hash is configured.
func newAuthenticator(cfg config.Config) (*auth.Authenticator, error) {
	hash := []byte(cfg.AuthPasswordHash)
	if len(hash) == 0 {
		var err error
		if hash, err = auth.HashPassword(cfg.AuthPassword); err != nil {
			return nil, err
		}
	}
	return auth.NewAuthenticator(cfg.AuthUsername, hash)
}
