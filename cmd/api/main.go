package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/pageza/habyx/backend/config"
	"github.com/pageza/habyx/backend/internal/database"
	"github.com/pageza/habyx/backend/internal/logger"
	"github.com/pageza/habyx/backend/internal/server"
	"github.com/pageza/habyx/backend/internal/storage"
)

func main() {
	migrationsDir := flag.String("migrations", "migrations", "directory holding the SQL migrations")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log := logger.Must("info", config.GetEnvironment())
		log.Fatal("failed to load configuration", zap.Error(err))
	}

	log := logger.Must(cfg.LogLevel, cfg.Env)
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(cfg, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := database.RunMigrations(db, *migrationsDir, log); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	var redisClient *redis.Client
	if cfg.RedisEnabled() {
		redisClient, err = database.NewRedisClient(cfg, log)
		if err != nil {
			// rate limiting is skipped without redis
			log.Warn("redis unavailable, continuing without rate limiting", zap.Error(err))
			redisClient = nil
		} else {
			defer redisClient.Close()
		}
	}

	images, err := storage.Open(ctx, cfg)
	if err != nil {
		log.Fatal("failed to initialise image storage", zap.Error(err))
	}

	srv, err := server.New(ctx, cfg, server.Deps{
		DB:     db,
		Redis:  redisClient,
		Images: images,
		Log:    log,
	})
	if err != nil {
		log.Fatal("failed to build server", zap.Error(err))
	}

	if err := srv.Run(ctx); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
	log.Info("server stopped")
}
