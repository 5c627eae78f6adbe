package application

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	catalogmemory "github.com/Apurer/autoparts-pos/internal/domains/catalog/adapters/memory"
	catalogapp "github.com/Apurer/autoparts-pos/internal/domains/catalog/application"
	catalogdomain "github.com/Apurer/autoparts-pos/internal/domains/catalog/domain"
	catalogports "github.com/Apurer/autoparts-pos/internal/domains/catalog/ports"
	customermemory "github.com/Apurer/autoparts-pos/internal/domains/customers/adapters/memory"
	customerapp "github.com/Apurer/autoparts-pos/internal/domains/customers/application"
	customerdomain "github.com/Apurer/autoparts-pos/internal/domains/customers/domain"
	customerports "github.com/Apurer/autoparts-pos/internal/domains/customers/ports"
	salesmemory "github.com/Apurer/autoparts-pos/internal/domains/sales/adapters/memory"
	"github.com/Apurer/autoparts-pos/internal/platform/memdb"
)

var fixedNow = time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

type fixture struct {
	db        *memdb.DB
	catalog   *catalogapp.Service
	customers *customerapp.Service
	ledger    *salesmemory.Ledger
	tx        *salesmemory.TxManager
	sessions  *salesmemory.SessionStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := memdb.New(memdb.WithClock(func() time.Time { return fixedNow }))
	t.Cleanup(db.Close)
	ledger := salesmemory.NewLedger(db)
	return &fixture{
		db:        db,
		catalog:   catalogapp.NewService(catalogmemory.NewRepository(db)),
		customers: customerapp.NewService(customermemory.NewRepository(db), ledger),
		ledger:    ledger,
		tx:        salesmemory.NewTxManager(db),
		sessions:  salesmemory.NewSessionStore(),
	}
}

func (f *fixture) part(t *testing.T, name, model, price, cost string, stock int) *catalogdomain.Part {
	t.Helper()
	part, err := f.catalog.AddPart(context.Background(), catalogports.AddPartInput{
		Name:  name,
		Model: model,
		Price: decimal.RequireFromString(price),
		Cost:  decimal.RequireFromString(cost),
		Stock: stock,
	})
	require.NoError(t, err)
	return part
}

func (f *fixture) customer(t *testing.T, name string) *customerdomain.Customer {
	t.Helper()
	p, err := f.customers.Register(context.Background(), customerports.RegisterInput{FullName: name})
	require.NoError(t, err)
	return p.Entity
}

func (f *fixture) stock(t *testing.T, partID int64) int {
	t.Helper()
	n, err := f.catalog.GetStock(context.Background(), partID)
	require.NoError(t, err)
	return n
}

func (f *fixture) salesCount(t *testing.T) int {
	t.Helper()
	var n int
	require.NoError(t, f.db.View(func(tables *memdb.Tables) error {
		n = len(tables.Sales)
		return nil
	}))
	return n
}
