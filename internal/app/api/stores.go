package api

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	catalogmemory "github.com/Apurer/autoparts-pos/internal/domains/catalog/adapters/memory"
	catalogpostgres "github.com/Apurer/autoparts-pos/internal/domains/catalog/adapters/persistence/postgres"
	catalogports "github.com/Apurer/autoparts-pos/internal/domains/catalog/ports"
	customermemory "github.com/Apurer/autoparts-pos/internal/domains/customers/adapters/memory"
	customerpostgres "github.com/Apurer/autoparts-pos/internal/domains/customers/adapters/persistence/postgres"
	customerports "github.com/Apurer/autoparts-pos/internal/domains/customers/ports"
	salesmemory "github.com/Apurer/autoparts-pos/internal/domains/sales/adapters/memory"
	salespostgres "github.com/Apurer/autoparts-pos/internal/domains/sales/adapters/persistence/postgres"
	salesports "github.com/Apurer/autoparts-pos/internal/domains/sales/ports"
	"github.com/Apurer/autoparts-pos/internal/platform/memdb"
	"github.com/Apurer/autoparts-pos/internal/platform/migrations"
	platformpostgres "github.com/Apurer/autoparts-pos/internal/platform/postgres"
	platformsqlite "github.com/Apurer/autoparts-pos/internal/platform/sqlite"
)

// Stores bundles the persistence adapters of every bounded context over one
// backend.
type Stores struct {
	Driver    string
	Parts     catalogports.Repository
	Customers customerports.Repository
	Ledger    salesports.Ledger
	Tx        salesports.TxManager
	Sessions  salesports.SessionStore
	close     func()
}

// Close releases the backend.
func (s *Stores) Close() {
	if s != nil && s.close != nil {
		s.close()
	}
}

// OpenStores connects the configured backend and applies the schema.
func OpenStores(ctx context.Context, cfg Config, logger *slog.Logger) (*Stores, error) {
	switch cfg.DatabaseDriver {
	case DriverPostgres:
		db, cleanup, err := platformpostgres.Open(ctx, cfg.PostgresDSN, logger)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		return gormStores(DriverPostgres, db, cfg.SQLMigrations, cleanup)
	case DriverSQLite:
		db, err := platformsqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		logger.Info("sqlite database opened", slog.String("path", cfg.SQLitePath))
		cleanup := func() {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
		return gormStores(DriverSQLite, db, false, cleanup)
	default:
		logger.Warn("no database configured, sales and stock live in memory only")
		return MemoryStores(memdb.New()), nil
	}
}

// MemoryStores wires every context to one in-process database.
func MemoryStores(db *memdb.DB) *Stores {
	return &Stores{
		Driver:    DriverMemory,
		Parts:     catalogmemory.NewRepository(db),
		Customers: customermemory.NewRepository(db),
		Ledger:    salesmemory.NewLedger(db),
		Tx:        salesmemory.NewTxManager(db),
		Sessions:  salesmemory.NewSessionStore(),
		close:     db.Close,
	}
}

func gormStores(driver string, db *gorm.DB, sqlVersioned bool, cleanup func()) (*Stores, error) {
	if err := migrations.Apply(db, sqlVersioned); err != nil {
		cleanup()
		return nil, fmt.Errorf("migrate %s schema: %w", driver, err)
	}
	return &Stores{
		Driver:    driver,
		Parts:     catalogpostgres.NewRepository(db),
		Customers: customerpostgres.NewRepository(db),
		Ledger:    salespostgres.NewLedger(db),
		Tx:        salespostgres.NewTxManager(db),
		Sessions:  salespostgres.NewSessionStore(db),
		close:     cleanup,
	}, nil
}
