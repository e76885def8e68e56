package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/subhdotsol/CEX-superdevs/internal/bootstrap"
	"github.com/subhdotsol/CEX-superdevs/pkg/config"
	"github.com/subhdotsol/CEX-superdevs/pkg/logger"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger, err := logger.NewLogger(
		logger.WithLoggingLevel(logger.Level(cfg.App.LogLevel)),
	)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLogger.Sync()

	b, err := bootstrap.Init(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Error(err)
		os.Exit(1)
	}

	go func() {
		if err := b.HTTP.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error(err)
			os.Exit(1)
		}
	}()

	appLogger.Info("orderbook service started",
		logger.Field{Key: "app", Value: cfg.App.Name},
		logger.Field{Key: "environment", Value: cfg.App.Environment},
		logger.Field{Key: "pair", Value: cfg.Book.Pair},
		logger.Field{Key: "port", Value: cfg.App.Port},
	)

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("shutting down orderbook service")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := b.HTTP.Shutdown(shutdownCtx); err != nil {
		appLogger.Error(err)
	}
	b.Shutdown(shutdownCtx)

	appLogger.Info("orderbook service stopped")
}
