package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/Apurer/go-gin-commerce-api/internal/platform/migrations"
	platformpostgres "github.com/Apurer/go-gin-commerce-api/internal/platform/postgres"
)

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	db, cleanup := platformpostgres.ConnectFromEnv(ctx, logger)
	defer cleanup()
	if db == nil {
		log.Fatal("POSTGRES_DSN not set or connection failed; cannot migrate")
	}

	if err := migrations.Run(db.WithContext(ctx)); err != nil {
		log.Fatalf("failed to apply migrations: %v", err)
	}
	logger.Info("migrations applied")
}
