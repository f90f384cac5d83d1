package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/weekendsync/availability-api/internal/adapters/httpapi"
	memslotrepo "github.com/weekendsync/availability-api/internal/adapters/memory/slotrepo"
	"github.com/weekendsync/availability-api/internal/adapters/postgres"
	pgslotrepo "github.com/weekendsync/availability-api/internal/adapters/postgres/slotrepo"
	platformclock "github.com/weekendsync/availability-api/internal/platform/clock"
	"github.com/weekendsync/availability-api/internal/platform/config"
	slotrepoport "github.com/weekendsync/availability-api/internal/ports/out/slotrepo"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	cfg, err := config.LoadServerConfigFromEnv()
	if err != nil {
		logger.Error("invalid config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Auth configuration:
	// - Production: AUTH_MODE=token with a static bearer token map
	// - Local dev: AUTH_MODE=dev uses the X-Debug-User header
	var authMW func(http.Handler) http.Handler
	switch cfg.AuthMode {
	case "dev":
		authMW = httpapi.NewDevAuthMiddleware(cfg.DevUser)
	default:
		authMW = httpapi.NewAuthMiddleware(cfg.Tokens)
	}

	var (
		repo    slotrepoport.Repository
		cleanup func()
	)
	switch cfg.StorageBackend {
	case "postgres":
		pool, err := postgres.NewPool(context.Background(), cfg.DatabaseURL, postgres.PoolOptions{})
		if err != nil {
			logger.Error("postgres connect failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		cleanup = pool.Close
		repo = pgslotrepo.NewRepo(pool)
	default:
		repo = memslotrepo.NewRepo()
	}
	if cleanup != nil {
		defer cleanup()
	}

	api := httpapi.NewServer(repo, platformclock.NewSystemClock(), logger)
	handler := httpapi.NewRouter(api, authMW)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("api listening",
			slog.String("port", cfg.Port),
			slog.String("storage", cfg.StorageBackend),
			slog.String("auth", cfg.AuthMode),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("listen failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
