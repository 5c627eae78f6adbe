package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// PoolConfig bounds the connection pool.
type PoolConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DefaultPool is sized for a single till-side API instance.
var DefaultPool = PoolConfig{MaxOpenConns: 20, MaxIdleConns: 5, ConnMaxLifetime: 30 * time.Minute}

// NormalizeDSN accepts a postgres:// URL or a key=value list and returns the
// key=value form with sslmode defaulted to disable.
func NormalizeDSN(raw string) (string, error) {
	dsn := strings.Trim(strings.TrimSpace(raw), "\"'")
	if dsn == "" {
		return "", fmt.Errorf("postgres DSN is empty")
	}
	lower := strings.ToLower(dsn)
	if strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://") {
		converted, err := pq.ParseURL(dsn)
		if err != nil {
			return "", fmt.Errorf("parse postgres DSN: %w", err)
		}
		dsn = converted
	}
	dsn = strings.Join(strings.Fields(dsn), " ")
	if !strings.Contains(strings.ToLower(dsn), "sslmode=") {
		dsn += " sslmode=disable"
	}
	return dsn, nil
}

var passwordPair = regexp.MustCompile(`(?i)password=('[^']*'|\S+)`)

// MaskDSN hides the password of a key=value DSN for logging.
func MaskDSN(dsn string) string {
	return passwordPair.ReplaceAllString(dsn, "password=****")
}

// Connect opens a PostgreSQL connection via GORM and verifies connectivity.
// Constraint violations are translated to gorm.ErrDuplicatedKey and
// gorm.ErrForeignKeyViolated.
func Connect(ctx context.Context, rawDSN string, pool PoolConfig) (*gorm.DB, error) {
	dsn, err := NormalizeDSN(rawDSN)
	if err != nil {
		return nil, err
	}
	logLevel := logger.Silent
	if os.Getenv("DB_DEBUG") == "1" {
		logLevel = logger.Info
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logLevel),
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(pool.MaxOpenConns)
	sqlDB.SetMaxIdleConns(pool.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(pool.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, err
	}
	return db, nil
}

// ConnectFromEnv dials PostgreSQL using POSTGRES_DSN and returns the DB plus a cleanup function.
// When POSTGRES_DSN is missing or the connection fails, it logs and returns nil with a no-op cleanup.
func ConnectFromEnv(ctx context.Context, logger *slog.Logger) (*gorm.DB, func()) {
	raw := strings.TrimSpace(os.Getenv("POSTGRES_DSN"))
	if raw == "" {
		if logger != nil {
			logger.Warn("POSTGRES_DSN not set")
		}
		return nil, func() {}
	}
	db, cleanup, err := Open(ctx, raw, logger)
	if err != nil {
		if logger != nil {
			logger.Warn("failed to connect to postgres", slog.String("error", err.Error()))
		}
		return nil, func() {}
	}
	return db, cleanup
}

// Open connects with DefaultPool and returns a cleanup closing the pool.
func Open(ctx context.Context, rawDSN string, logger *slog.Logger) (*gorm.DB, func(), error) {
	db, err := Connect(ctx, rawDSN, DefaultPool)
	if err != nil {
		return nil, nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, err
	}
	if logger != nil {
		if dsn, nerr := NormalizeDSN(rawDSN); nerr == nil {
			logger.Info("postgres connection established", slog.String("dsn", MaskDSN(dsn)))
		}
	}
	return db, func() { _ = sqlDB.Close() }, nil
}
