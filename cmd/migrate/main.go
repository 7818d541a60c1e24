package main

// Run database migrations:
//   go run ./cmd/migrate

import (
	"context"
	"os"

	"legalassist-backend/internal/shared/config"
	"legalassist-backend/internal/shared/storage/db"
	"legalassist-backend/internal/shared/telemetry"
)

func main() {
	os.Exit(run())
}

func run() int {
	defer telemetry.Sync()

	cfg, err := config.Load()
	if err != nil {
		telemetry.Error("config.invalid", map[string]any{"error": err})
		return 1
	}
	ctx := context.Background()

	opts := db.OptionsFromEnv(db.DefaultMigrateOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		telemetry.Error("migrate.connect_failed", map[string]any{"error": err})
		return 1
	}
	defer sqlDB.Close()

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		telemetry.Error("migrate.failed", map[string]any{"error": err})
		return 1
	}
	telemetry.Info("migrate.done", nil)
	return 0
}
