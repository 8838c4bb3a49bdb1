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

	"campaign-analytics/internal/config"
	"campaign-analytics/internal/dashboard"
)

// main serves the campaign dashboard. It performs the initial campaign
// fetch before listening; a failed fetch is shown on the page and can be
// retried with the refresh button.
func main() {
	exitCode := 1
	defer func() {
		if r := recover(); r != nil {
			panic(r)
		} else {
			os.Exit(exitCode)
		}
	}()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		return
	}

	logger := cfg.Log.NewLogger(os.Stdout).With(slog.String("env", cfg.Env), slog.String("app", "campaign-dashboard"))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	client := dashboard.NewClient(cfg.Dashboard.APIBaseURL, cfg.Dashboard.RequestTimeout)
	session := dashboard.NewSession(client, cfg.Dashboard.RowsPerPage, logger)
	if err = session.Load(ctx); err != nil {
		logger.Warn("initial campaign load failed", slog.String("api", cfg.Dashboard.APIBaseURL.String()), slog.Any("error", err))
	}

	web := dashboard.NewWebHandler(session, cfg.Dashboard.RequestTimeout, logger)
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Dashboard.Port),
		Handler: web.Router(),
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("dashboard listening", slog.Int("port", int(cfg.Dashboard.Port)))
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

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Dashboard.ShutdownTimeout)
	defer shutdownCancel()
	if err = srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
		exitCode = 1
	} else {
		logger.Info("dashboard gracefully stopped")
	}
}
