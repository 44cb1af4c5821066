package sqlstore

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	schema "github.com/riskibarqy/fantasy-cricket/db"

	_ "github.com/golang-migrate/migrate/v4/database/postgres"
)

// NewMigrator builds a migrator over the embedded schema. Postgres migrations
// run on their own connection opened from dsn. SQLite reuses db so that
// in-memory databases see the schema; closing the returned migrator closes
// db in that case.
func NewMigrator(db *sqlx.DB, driverName, dsn string) (*migrate.Migrate, error) {
	src, err := iofs.New(schema.Migrations, schema.MigrationsDir)
	if err != nil {
		return nil, fmt.Errorf("open embedded migrations: %w", err)
	}

	switch driverName {
	case DriverSQLite:
		if db == nil {
			return nil, fmt.Errorf("sqlite migrations need an open database")
		}
		driver, err := migratesqlite.WithInstance(db.DB, &migratesqlite.Config{})
		if err != nil {
			return nil, fmt.Errorf("init sqlite migrate driver: %w", err)
		}
		m, err := migrate.NewWithInstance("iofs", src, DriverSQLite, driver)
		if err != nil {
			return nil, fmt.Errorf("init sqlite migrator: %w", err)
		}
		return m, nil
	case DriverPostgres:
		m, err := migrate.NewWithSourceInstance("iofs", src, dsn)
		if err != nil {
			return nil, fmt.Errorf("init postgres migrator: %w", err)
		}
		return m, nil
	default:
		return nil, fmt.Errorf("unsupported migration driver %q", driverName)
	}
}

// MigrateUp applies every pending embedded migration.
func MigrateUp(db *sqlx.DB, driverName, dsn string) error {
	m, err := NewMigrator(db, driverName, dsn)
	if err != nil {
		return err
	}
	if driverName == DriverPostgres {
		defer func() {
			_, _ = m.Close()
		}()
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}
