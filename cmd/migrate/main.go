package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"os"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/pageza/habyx/backend/config"
	"github.com/pageza/habyx/backend/internal/database"
	"github.com/pageza/habyx/backend/internal/logger"
)

func main() {
	rollback := flag.Bool("rollback", false, "Rollback the last migration")
	migrationsDir := flag.String("dir", "migrations", "directory holding the SQL migrations")
	flag.Parse()

	log := logger.Must(os.Getenv("LOG_LEVEL"), config.GetEnvironment())
	defer func() { _ = log.Sync() }()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatal("DATABASE_URL is not set and configuration could not be loaded", zap.Error(err))
		}
		dsn = cfg.DatabaseURL()
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	ctx := context.Background()
	if err := db.PingContext(ctx); err != nil {
		log.Fatal("failed to reach database", zap.Error(err))
	}

	if *rollback {
		name, err := database.Rollback(ctx, db, *migrationsDir)
		if errors.Is(err, database.ErrNoMigrations) {
			log.Info("no migrations to roll back")
			return
		}
		if err != nil {
			log.Fatal("rollback failed", zap.Error(err))
		}
		log.Info("rolled back migration", zap.String("name", name))
		return
	}

	if err := database.ApplyMigrations(ctx, db, *migrationsDir, log); err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}
	log.Info("migrations complete")
}
