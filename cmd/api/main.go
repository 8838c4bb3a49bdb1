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

	"campaign-analytics/internal/adapter/breaker"
	"campaign-analytics/internal/adapter/fallback"
	httpadapter "campaign-analytics/internal/adapter/http"
	"campaign-analytics/internal/adapter/postgres"
	"campaign-analytics/internal/adapter/usecase"
	"campaign-analytics/internal/config"
	"campaign-analytics/internal/db"
)

// main is the entry point of the campaign API. It loads configuration,
// optionally runs database migrations and seeding, wires the repository,
// circuit breaker and fallback snapshot into the use case, then starts the
// HTTP server. An unreachable database is logged but does not stop the
// server: reads are served from the fallback snapshot until it returns.
func main() {
	exitCode := 1
	defer func() {
		if r := recover(); r != nil {
			panic(r)
		} else {
			os.Exit(exitCode)
		}
	}()

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		return
	}

	logger := cfg.Log.NewLogger(os.Stdout).With(slog.String("env", cfg.Env), slog.String("app", "campaign-api"))

	if cfg.Psql.RunMigrations {
		if err = db.Migrate(cfg.Psql.Addr.String()); err != nil {
			logger.Error("migration error", slog.Any("error", err))
		} else {
			logger.Info("migrations applied successfully")
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	pool, err := db.NewPostgresPool(ctx, cfg.Psql)
	if err != nil {
		logger.Error("invalid database configuration", slog.Any("error", err))
		return
	}
	defer pool.Close()

	if err = db.Ping(ctx, pool); err != nil {
		logger.Warn("database unreachable at startup, serving fallback data until it recovers", slog.Any("error", err))
	} else if cfg.Psql.Seed {
		n, err := db.Seed(ctx, pool)
		if err != nil {
			logger.Error("seed error", slog.Any("error", err))
		} else if n > 0 {
			logger.Info("sample campaigns inserted", slog.Int("count", n))
		}
	}

	snapshot, err := fallback.Load(cfg.Fallback.File)
	if err != nil {
		logger.Warn("fallback file not loaded, using built-in sample campaigns",
			slog.String("file", cfg.Fallback.File), slog.Any("error", err))
	}

	repo := breaker.New(postgres.NewCampaignRepository(pool, cfg.Psql.QueryTimeout), cfg.Breaker, logger)
	svc := usecase.NewCampaignUseCase(repo, snapshot, logger)

	handler := httpadapter.NewHandler(svc, cfg.HTTP, logger)
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler: handler.Router(),
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server listening", slog.Int("port", int(cfg.HTTP.Port)))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		exitCode = 0
	case err = <-serveErr:
		logger.Error("server error", slog.Any("error", err))
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer shutdownCancel()
	if err = srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
		exitCode = 1
	} else {
		logger.Info("server gracefully stopped")
	}
}
