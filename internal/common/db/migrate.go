package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v4/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/AlibekovAA/messenger/backend/internal/common/db/migrations"
	"github.com/AlibekovAA/messenger/backend/internal/common/logger"
)

var gooseUp = func(ctx context.Context, db *sql.DB, dir string) error {
	return goose.UpContext(ctx, db, dir)
}

// Migrate applies the embedded schema migrations. goose drives database/sql,
// so a short-lived connection is opened through the pgx stdlib driver.
func Migrate(ctx context.Context, log *logger.Logger, databaseURL string) error {
	sqlDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return fmt.Errorf("open migration connection: %w", err)
	}
	defer sqlDB.Close()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("pgx"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	if err := gooseUp(ctx, sqlDB, "."); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	log.WithFields(ctx, logger.Fields{"action": "migrations_applied"}).Info("database migrations applied")
	return nil
}
