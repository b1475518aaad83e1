package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/estateiq/lead-import/internal/bootstrap"
	"github.com/estateiq/lead-import/internal/registry"
)

func main() {
	// .env is optional; real deployments inject the environment directly.
	_ = godotenv.Load()

	setupLogger()

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		slog.Error("DATABASE_URL is required")
		os.Exit(1)
	}

	port := getEnv("PORT", "8080")

	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
	if err != nil {
		slog.Error("failed to connect database", "error", err)
		os.Exit(1)
	}

	pool, err := pgxpool.New(context.Background(), databaseURL)
	if err != nil {
		slog.Error("failed to create pgx pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	jobs := registry.New(
		registry.WithRetention(time.Duration(parseIntEnv("JOB_RETENTION_HOURS", 24))*time.Hour),
		registry.WithSweepInterval(time.Duration(parseIntEnv("JOB_SWEEP_INTERVAL_MINUTES", 60))*time.Minute),
	)

	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	jobs.Start(sweepCtx)

	server := bootstrap.NewHTTPServer(db, pool, jobs, bootstrap.Config{
		BatchWriteTimeout:  time.Duration(parseIntEnv("IMPORT_BATCH_WRITE_TIMEOUT_SECONDS", 30)) * time.Second,
		ExportQueryTimeout: time.Duration(parseIntEnv("EXPORT_QUERY_TIMEOUT_SECONDS", 60)) * time.Second,
	})

	go func() {
		if err := server.Start(":" + port); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	stopSweep()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}

func setupLogger() {
	level := slog.LevelInfo
	switch getEnv("LOG_LEVEL", "info") {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	var handler slog.Handler
	if getEnv("LOG_FORMAT", "json") == "text" {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	} else {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	}
	slog.SetDefault(slog.New(handler))
}

func parseIntEnv(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
