package migrations

import (
	"embed"
	"errors"
	"fmt"

	migrate "github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"gorm.io/gorm"
)

//go:embed sql/*.sql
var sqlFiles embed.FS

// RunSQL applies the versioned PostgreSQL migrations embedded in the binary.
// It reuses the pool behind db, so no second DSN is needed.
func RunSQL(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	source, err := iofs.New(sqlFiles, "sql")
	if err != nil {
		return fmt.Errorf("load embedded migrations: %w", err)
	}
	driver, err := migratepg.WithInstance(sqlDB, &migratepg.Config{MigrationsTable: "schema_migrations"})
	if err != nil {
		return fmt.Errorf("init migrate driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

// Apply runs RunSQL when sqlVersioned is set and the dialect is postgres,
// and AutoMigrate otherwise.
func Apply(db *gorm.DB, sqlVersioned bool) error {
	if db == nil {
		return nil
	}
	if sqlVersioned && db.Dialector.Name() == "postgres" {
		return RunSQL(db)
	}
	return Run(db)
}
