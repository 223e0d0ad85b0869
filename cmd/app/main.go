package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"production/cmd"
	httpin "production/internal/adapters/in/http"
	"production/internal/adapters/out/postgres"
	"production/internal/pkg/observability"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		log.Fatalf("production service failed: %v", err)
	}
}

func run() error {
	loadDotEnv()
	configs, err := cmd.LoadConfig(os.Getenv)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	telemetry, shutdownTelemetry, err := observability.Setup(ctx, observability.Settings{
		ServiceName: configs.ServiceName,
		Environment: configs.Environment,
		LogLevel:    parseLevel(configs.LogLevel),
	})
	if err != nil {
		return fmt.Errorf("setup telemetry: %w", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = shutdownTelemetry(flushCtx)
	}()
	logger := telemetry.Logger

	dbSettings := configs.Database()
	gormDB, err := postgres.Open(dbSettings.DSN(), dbSettings, logger)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	if sqlDB, err := gormDB.DB(); err == nil {
		defer sqlDB.Close()
	}
	if err := postgres.Migrate(gormDB); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	app, err := cmd.NewCompositionRoot(ctx, configs, gormDB, telemetry)
	if err != nil {
		return err
	}
	defer app.Close()

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	return startWebServer(ctx, app, configs, telemetry, logger)
}

func startWebServer(ctx context.Context, app *cmd.CompositionRoot, configs cmd.Config, telemetry *observability.Telemetry, logger *slog.Logger) error {
	e, err := httpin.NewRouter(httpin.NewServer(app.HTTPHandlers()), httpin.RouterOptions{
		Actor:          app.ActorMiddleware(),
		ServiceName:    configs.ServiceName,
		TracerProvider: telemetry.TracerProvider,
		UploadLimit:    configs.EvidenceMaxBytes,
		Logger:         logger,
		Debug:          configs.LogLevel == "debug",
	})
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "port", configs.HTTPPort)
		errCh <- e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort))
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

// loadDotEnv reads .env when present. Variables already set in the
// environment win.
func loadDotEnv() {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warnf("Error loading .env file: %v", err)
	}
}

func parseLevel(raw string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(raw)); err != nil {
		return slog.LevelInfo
	}
	return level
}
