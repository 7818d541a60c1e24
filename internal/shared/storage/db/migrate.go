package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"strings"

	"github.com/pressly/goose/v3"

	"legalassist-backend/internal/shared/telemetry"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// gooseLogger routes goose progress lines into structured logs.
type gooseLogger struct{}

func (gooseLogger) Printf(format string, v ...interface{}) {
	telemetry.Info("db.migrate", map[string]any{"message": strings.TrimSpace(fmt.Sprintf(format, v...))})
}

// Fatalf logs without exiting; goose also returns the error to the caller.
func (gooseLogger) Fatalf(format string, v ...interface{}) {
	telemetry.Error("db.migrate_failed", map[string]any{"message": strings.TrimSpace(fmt.Sprintf(format, v...))})
}

// RunMigrations applies the embedded users and documents migrations. A nil
// database is a no-op so in-memory mode needs no special casing.
func RunMigrations(ctx context.Context, database *sql.DB) error {
	if database == nil {
		return nil
	}
	goose.SetBaseFS(migrationFiles)
	goose.SetLogger(gooseLogger{})
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, database, "migrations"); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}
