package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// RunMigrations applies all embedded up migrations to the database at dbPath.
func RunMigrations(dbPath string) error {
	_, err := Migrate(dbPath)
	return err
}

// Migrate applies pending up migrations and reports whether any ran. It uses
// its own connection, which is closed before returning.
func Migrate(dbPath string) (applied bool, err error) {
	db, err := Open(dbPath)
	if err != nil {
		return false, err
	}
	src, err := iofs.New(migrationFS, "migrations")
	if err != nil {
		_ = db.Close()
		return false, fmt.Errorf("migration source: %w", err)
	}
	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		_ = db.Close()
		return false, fmt.Errorf("migration driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite3", driver)
	if err != nil {
		_ = db.Close()
		return false, err
	}
	// closes the source and the driver, which closes db
	defer m.Close()

	err = m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// OpenMigrated runs migrations and then opens the database for use.
func OpenMigrated(dbPath string) (*sql.DB, error) {
	db, _, err := OpenStore(dbPath)
	return db, err
}

// OpenStore is OpenMigrated that also reports whether the schema was created
// or upgraded by this call. Callers seed defaults only then, so presets the
// user deleted stay deleted.
func OpenStore(dbPath string) (*sql.DB, bool, error) {
	applied, err := Migrate(dbPath)
	if err != nil {
		return nil, false, fmt.Errorf("migrate: %w", err)
	}
	db, err := Open(dbPath)
	if err != nil {
		return nil, false, err
	}
	return db, applied, nil
}
