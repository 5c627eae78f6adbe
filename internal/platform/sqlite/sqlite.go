// Package sqlite opens the single-file database used for local runs and for
// exercising the gorm adapters in unit tests.
package sqlite

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to path with foreign keys enforced. An empty path or
// ":memory:" yields a private in-memory database.
//
// SQLite has no row locks, so the pool is pinned to one connection; writers
// are then serialised by the driver.
func Open(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsnFor(path)), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite %q: %w", path, err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}

// OpenMemory opens a named shared-cache in-memory database. Tests pass
// t.Name() so parallel tests never share state.
func OpenMemory(name string) (*gorm.DB, error) {
	return Open("file:" + sanitize(name) + "?mode=memory&cache=shared")
}

func dsnFor(path string) string {
	path = strings.TrimSpace(path)
	if path == "" || path == ":memory:" {
		path = "file::memory:"
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_foreign_keys=1&_busy_timeout=5000"
}

func sanitize(name string) string {
	return strings.NewReplacer("/", "_", " ", "_", "?", "_", "&", "_").Replace(name)
}
