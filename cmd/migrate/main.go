package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/Apurer/autoparts-pos/internal/platform/migrations"
	platformpostgres "github.com/Apurer/autoparts-pos/internal/platform/postgres"
)

func main() {
	_ = godotenv.Load()
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	db, cleanup := platformpostgres.ConnectFromEnv(ctx, logger)
	defer cleanup()
	if db == nil {
		log.Fatal("POSTGRES_DSN not set or connection failed; cannot migrate")
	}
	if err := migrations.RunSQL(db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}
	logger.Info("schema is up to date")
}
