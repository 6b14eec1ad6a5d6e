package db

import (
	"database/sql"
	"embed"
	"errors"
	"finance-tracker/logger"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// RunMigrations applies all pending up migrations. An empty sourceURL uses the
// migrations embedded in the binary; otherwise it is a migrate source URL such
// as "file://db/migrations".
func RunMigrations(db *sql.DB, sourceURL string) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("cannot create migrate driver: %w", err)
	}

	var mig *migrate.Migrate
	if sourceURL == "" {
		src, err := iofs.New(migrationFiles, "migrations")
		if err != nil {
			return fmt.Errorf("cannot open embedded migrations: %w", err)
		}
		mig, err = migrate.NewWithInstance("iofs", src, "postgres", driver)
		if err != nil {
			return fmt.Errorf("cannot create migrate instance: %w", err)
		}
	} else {
		mig, err = migrate.NewWithDatabaseInstance(sourceURL, "postgres", driver)
		if err != nil {
			return fmt.Errorf("cannot create migrate instance: %w", err)
		}
	}

	if err := mig.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrate up: %w", err)
	}

	version, dirty, _ := mig.Version()
	logger.Log.WithField("version", version).WithField("dirty", dirty).Info("Database migrations applied")
	return nil
}
