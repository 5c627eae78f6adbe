package postgres

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	catalogpg "github.com/Apurer/autoparts-pos/internal/domains/catalog/adapters/persistence/postgres"
	catalogdomain "github.com/Apurer/autoparts-pos/internal/domains/catalog/domain"
	customerpg "github.com/Apurer/autoparts-pos/internal/domains/customers/adapters/persistence/postgres"
	customerdomain "github.com/Apurer/autoparts-pos/internal/domains/customers/domain"
	"github.com/Apurer/autoparts-pos/internal/domains/sales/domain"
	"github.com/Apurer/autoparts-pos/internal/platform/migrations"
	"github.com/Apurer/autoparts-pos/internal/platform/sqlite"
)

func setupSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := sqlite.OpenMemory(t.Name())
	require.NoError(t, err)
	require.NoError(t, migrations.Run(db))
	return db
}

func seedPart(t *testing.T, db *gorm.DB, name, price, cost string, stock int) *catalogdomain.Part {
	t.Helper()
	part, err := catalogdomain.NewPart(name, "Toyota Hilux", decimal.RequireFromString(price), decimal.RequireFromString(cost), stock)
	require.NoError(t, err)
	created, err := catalogpg.NewRepository(db).Create(context.Background(), part)
	require.NoError(t, err)
	return created
}

func seedCustomer(t *testing.T, db *gorm.DB, name string) *customerdomain.Customer {
	t.Helper()
	customer, err := customerdomain.NewCustomer(name, "", "")
	require.NoError(t, err)
	created, err := customerpg.NewRepository(db).Create(context.Background(), customer)
	require.NoError(t, err)
	return created.Entity
}

func stockOf(t *testing.T, db *gorm.DB, partID int64) int {
	t.Helper()
	part, err := catalogpg.NewRepository(db).GetByID(context.Background(), partID)
	require.NoError(t, err)
	return part.Stock
}

func cartFor(t *testing.T, customer *customerdomain.Customer, parts []*catalogdomain.Part, quantities ...int) *domain.Cart {
	t.Helper()
	cart := domain.NewCart(customer.ID, customer.FullName)
	for i, part := range parts {
		line, err := domain.NewLine(part.ID, part.Name, part.Model, part.Price, part.Cost, quantities[i])
		require.NoError(t, err)
		require.NoError(t, cart.Add(line, part.Stock))
	}
	return cart
}
