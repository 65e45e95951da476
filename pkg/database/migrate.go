package database

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/SscSPs/ledger_engine/migrations"
	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
)

// MigrationDirection selects which way RunMigrations moves the schema.
type MigrationDirection string

const (
	MigrateUp   MigrationDirection = "up"
	MigrateDown MigrationDirection = "down"
)

// RunMigrations applies the embedded ledger migrations against databaseURL.
// It reports whether anything changed.
func RunMigrations(databaseURL string, direction MigrationDirection, logger *slog.Logger) (bool, error) {
	return runMigrations(databaseURL, migrations.FS, direction, logger)
}

func runMigrations(databaseURL string, files fs.FS, direction MigrationDirection, logger *slog.Logger) (bool, error) {
	if databaseURL == "" {
		return false, fmt.Errorf("database URL cannot be empty")
	}
	if direction != MigrateUp && direction != MigrateDown {
		return false, fmt.Errorf("unknown migration direction %q", direction)
	}
	if logger == nil {
		logger = slog.Default()
	}

	// A dedicated database/sql handle; migrate closes it together with the driver.
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return false, fmt.Errorf("open migration connection: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return false, fmt.Errorf("ping database for migrations: %w", err)
	}

	source, err := iofs.New(files, ".")
	if err != nil {
		_ = db.Close()
		return false, fmt.Errorf("create migration source: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		_ = db.Close()
		return false, fmt.Errorf("create migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		_ = db.Close()
		return false, fmt.Errorf("create migrator: %w", err)
	}

	logger.Info("Running database migrations", slog.String("direction", string(direction)))
	var runErr error
	if direction == MigrateDown {
		runErr = m.Down()
	} else {
		runErr = m.Up()
	}

	sourceErr, dbErr := m.Close()
	if runErr != nil && !errors.Is(runErr, migrate.ErrNoChange) {
		return false, fmt.Errorf("apply migrations: %w", runErr)
	}
	if sourceErr != nil {
		return false, fmt.Errorf("migration source error: %w", sourceErr)
	}
	if dbErr != nil {
		return false, fmt.Errorf("migration database error: %w", dbErr)
	}

	if errors.Is(runErr, migrate.ErrNoChange) {
		logger.Info("No new migrations to apply")
		return false, nil
	}
	logger.Info("Database migrations applied successfully")
	return true, nil
}
