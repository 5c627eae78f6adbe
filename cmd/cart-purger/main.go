package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	salespostgres "github.com/Apurer/autoparts-pos/internal/domains/sales/adapters/persistence/postgres"
	platformpostgres "github.com/Apurer/autoparts-pos/internal/platform/postgres"
)

func main() {
	_ = godotenv.Load()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	db, cleanup := platformpostgres.ConnectFromEnv(ctx, logger)
	defer cleanup()
	if db == nil {
		log.Fatal("POSTGRES_DSN not set or connection failed; cannot purge cart sessions")
	}

	store := salespostgres.NewSessionStore(db)
	purged, err := store.PurgeExpired(ctx, time.Now().UTC())
	if err != nil {
		log.Fatalf("failed to purge cart sessions: %v", err)
	}
	logger.Info("cart session purge completed", slog.Int64("purged", purged))
}
