package seed

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

// DemoTable is the results table created by the demo schema migrations.
const DemoTable = "speed_tests_results"

// gooseDialects maps adapter names to goose dialects. Adapters missing here
// build their tables from the CSV files instead.
var gooseDialects = map[string]string{
	"sqlite":   "sqlite3",
	"postgres": "postgres",
}

// MigrateWithDB applies the demo schema to db using the given goose dialect.
func MigrateWithDB(ctx context.Context, db *sql.DB, dialect string) error {
	goose.SetBaseFS(migrations)

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// MigrationVersion returns the applied demo schema version.
func MigrationVersion(db *sql.DB, dialect string) (int64, error) {
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect(dialect); err != nil {
		return 0, fmt.Errorf("failed to set dialect: %w", err)
	}
	return goose.GetDBVersion(db)
}
