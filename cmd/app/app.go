package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/sparkslearn/console/internal/api"
	"github.com/sparkslearn/console/internal/bootstrap"
	"github.com/sparkslearn/console/internal/config"
	"github.com/sparkslearn/console/internal/logger"
	"github.com/sparkslearn/console/internal/observability"
)

const (
	defaultConfigPath = "./cmd/app/config.yml"
	shutdownTimeout   = 15 * time.Second
)

// ConfigPath is SPARKS_CONFIG when set, else the config file next to this package.
func ConfigPath() string {
	if p := os.Getenv("SPARKS_CONFIG"); p != "" {
		return p
	}

	return defaultConfigPath
}

func Start() error {
	conf, err := config.Load(ConfigPath())
	if err != nil {
		return fmt.Errorf("failed to initialize config -> %w", err)
	}

	level, err := logger.Init(conf.API.Environment, conf.Log.Level)
	if err != nil {
		return fmt.Errorf("failed to initialize logger -> %w", err)
	}
	conf.WatchLogLevel(func(l string) { logger.SetLevel(level, l) })

	flush, err := observability.InitSentry(conf.Sentry.DSN, conf.API.Environment, conf.Sentry.Release)
	if err != nil {
		return fmt.Errorf("failed to initialize sentry -> %w", err)
	}
	defer flush()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, conf)
	if err != nil {
		return fmt.Errorf("failed to initialize storage -> %w", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			zap.L().Warn("closing clients", zap.Error(err))
		}
	}()

	s := api.NewServer(conf, app.Services)

	addr := ":" + s.Config.API.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zap.L().Info(fmt.Sprintf("starting server at %v", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err = <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start the server -> %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	zap.L().Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err = srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down the server -> %w", err)
	}

	return nil
}
