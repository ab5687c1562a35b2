package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/pminda/souschef-backend/config"
	"github.com/pminda/souschef-backend/internal/database"
	"github.com/pminda/souschef-backend/internal/logging"
	"github.com/pminda/souschef-backend/internal/server"
	"github.com/pminda/souschef-backend/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	db, err := database.New(cfg)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() { _ = database.Close(db) }()

	if err := database.RunMigrations(db, "migrations"); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		// The API works without Redis: no reply cache, no rate limiting.
		logger.Warn("redis unavailable", zap.Error(err))
		redisClient = nil
	}

	chef, err := service.NewChefService(cfg.Chef, redisClient, logger)
	if err != nil {
		logger.Fatal("failed to initialize chef service", zap.Error(err))
	}

	srv := server.New(cfg, db, redisClient, chef, logger)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			logger.Fatal("server error", zap.Error(err))
		}
	case sig := <-quit:
		logger.Info("received signal", zap.String("signal", sig.String()))
	}

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server shutdown error", zap.Error(err))
	}

	if redisClient != nil {
		_ = redisClient.Close()
	}
	logger.Info("server stopped")
}
