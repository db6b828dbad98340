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

	"agu/cmd"
	httpin "agu/internal/adapters/in/http"
	"agu/internal/adapters/out/postgres"

	"github.com/cenkalti/backoff/v4"
	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	configs := getConfigs()

	gormDB, err := openDatabase(ctx, configs.DSN(), logger)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	if err := postgres.Migrate(gormDB); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	app, err := cmd.NewCompositionRoot(ctx, configs, gormDB, logger)
	if err != nil {
		log.Fatalf("failed to build application: %v", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Error("failed to close application", "error", err)
		}
	}()

	jobManager := app.JobManager()
	if err := jobManager.StartAll(ctx); err != nil {
		log.Fatalf("failed to start jobs: %v", err)
	}

	startWebServer(ctx, app, configs.HTTPPort, logger)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	jobManager.StopAll(shutdownCtx)
}

// getConfigs loads .env when present and reads the configuration from the environment.
func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}
	config, err := cmd.LoadConfig()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	return config
}

// openDatabase retries the first connection while postgres is still starting.
func openDatabase(ctx context.Context, dsn string, logger *slog.Logger) (*gorm.DB, error) {
	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = time.Minute

	return backoff.RetryNotifyWithData(func() (*gorm.DB, error) {
		db, err := gorm.Open(pgdriver.Open(dsn), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Warn)})
		if err != nil {
			return nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, backoff.Permanent(err)
		}
		if err := sqlDB.PingContext(ctx); err != nil {
			_ = sqlDB.Close()
			return nil, err
		}
		return db, nil
	}, backoff.WithContext(b, ctx), func(err error, next time.Duration) {
		logger.Warn("database not ready", "error", err, "retry_in", next)
	})
}

func startWebServer(ctx context.Context, app *cmd.CompositionRoot, port string, logger *slog.Logger) {
	e := httpin.New(app.CreateServer(), httpin.ErrorHandler(logger))

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.Logger.Fatal(err)
		}
	}()
	logger.Info("http server started", "port", port)

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown failed", "error", err)
	}
}
