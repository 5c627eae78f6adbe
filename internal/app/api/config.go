package api

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"go.temporal.io/sdk/client"

	catalogapp "github.com/Apurer/autoparts-pos/internal/domains/catalog/application"
	salesapp "github.com/Apurer/autoparts-pos/internal/domains/sales/application"
)

// Storage drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

// Config carries environment-driven settings for the API and worker processes.
type Config struct {
	Port              string
	DatabaseDriver    string
	PostgresDSN       string
	SQLitePath        string
	SQLMigrations     bool
	TemporalAddress   string
	TemporalNamespace string
	TemporalDisabled  bool
	SessionTTL        time.Duration
	PurgeInterval     time.Duration
	LowStockThreshold int
	ReceiptNumbering  salesapp.ReceiptNumbering
	CurrencySymbol    string
	ShopName          string
}

// LoadConfig reads environment variables, applies defaults, and validates basic constraints.
func LoadConfig() (Config, error) {
	cfg := Config{
		Port:              envDefault("PORT", "8080"),
		PostgresDSN:       strings.TrimSpace(os.Getenv("POSTGRES_DSN")),
		SQLitePath:        envDefault("SQLITE_PATH", "autoparts.db"),
		SQLMigrations:     isTruthy(os.Getenv("MIGRATIONS")),
		TemporalAddress:   envDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		TemporalNamespace: envDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		TemporalDisabled:  isTruthy(os.Getenv("TEMPORAL_DISABLED")),
		CurrencySymbol:    envDefault("CURRENCY_SYMBOL", "R"),
		ShopName:          envDefault("SHOP_NAME", "AutoParts"),
	}

	driver := strings.ToLower(strings.TrimSpace(os.Getenv("DATABASE_DRIVER")))
	switch driver {
	case "":
		driver = DriverMemory
		if cfg.PostgresDSN != "" {
			driver = DriverPostgres
		}
	case DriverPostgres, DriverSQLite, DriverMemory:
	default:
		return Config{}, fmt.Errorf("DATABASE_DRIVER must be one of postgres, sqlite, memory")
	}
	if driver == DriverPostgres && cfg.PostgresDSN == "" {
		return Config{}, fmt.Errorf("POSTGRES_DSN is required when DATABASE_DRIVER is postgres")
	}
	cfg.DatabaseDriver = driver

	hours, err := positiveInt("CART_SESSION_TTL_HOURS", int(salesapp.DefaultSessionTTL/time.Hour))
	if err != nil {
		return Config{}, err
	}
	cfg.SessionTTL = time.Duration(hours) * time.Hour

	// Zero leaves purging to cmd/cart-purger.
	minutes, err := positiveInt("CART_PURGE_INTERVAL_MINUTES", 0)
	if err != nil {
		return Config{}, err
	}
	cfg.PurgeInterval = time.Duration(minutes) * time.Minute

	if cfg.LowStockThreshold, err = positiveInt("LOW_STOCK_THRESHOLD", catalogapp.DefaultLowStockThreshold); err != nil {
		return Config{}, err
	}

	numbering, err := salesapp.ParseReceiptNumbering(envDefault("RECEIPT_NUMBERING", string(salesapp.NumberingSession)))
	if err != nil {
		return Config{}, fmt.Errorf("RECEIPT_NUMBERING: %w", err)
	}
	cfg.ReceiptNumbering = numbering
	return cfg, nil
}

func positiveInt(key string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer", key)
	}
	return value, nil
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}
