package application

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/autoparts-pos/internal/domains/catalog/adapters/memory"
	"github.com/Apurer/autoparts-pos/internal/domains/catalog/domain"
	"github.com/Apurer/autoparts-pos/internal/domains/catalog/ports"
	"github.com/Apurer/autoparts-pos/internal/platform/memdb"
)

func newService(t *testing.T) *Service {
	t.Helper()
	return NewService(memory.NewRepository(memdb.New()))
}

func addPart(t *testing.T, svc *Service, name string, stock int) *domain.Part {
	t.Helper()
	part, err := svc.AddPart(context.Background(), ports.AddPartInput{
		Name:  name,
		Model: "Toyota Hilux",
		Price: decimal.NewFromInt(120),
		Cost:  decimal.NewFromInt(80),
		Stock: stock,
	})
	require.NoError(t, err)
	return part
}

func TestAddPart_ValidatesName(t *testing.T) {
	svc := newService(t)

	_, err := svc.AddPart(context.Background(), ports.AddPartInput{Name: " ", Price: decimal.NewFromInt(1)})
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrEmptyName)
	require.EqualError(t, err, "invalid part input: part name is required")
}

func TestAddPart_RejectsDuplicates(t *testing.T) {
	svc := newService(t)
	addPart(t, svc, "Brake Pad", 5)

	_, err := svc.AddPart(context.Background(), ports.AddPartInput{Name: "brake pad", Model: "toyota hilux"})
	require.ErrorIs(t, err, ports.ErrDuplicate)
}

func TestRestock(t *testing.T) {
	svc := newService(t)
	part := addPart(t, svc, "Brake Pad", 5)

	_, err := svc.Restock(context.Background(), part.ID, 0)
	require.ErrorIs(t, err, domain.ErrInvalidRestock)

	updated, err := svc.Restock(context.Background(), part.ID, 10)
	require.NoError(t, err)
	require.Equal(t, 15, updated.Stock)

	stock, err := svc.GetStock(context.Background(), part.ID)
	require.NoError(t, err)
	require.Equal(t, 15, stock)

	_, err = svc.Restock(context.Background(), 999, 1)
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestUpdatePrices(t *testing.T) {
	svc := newService(t)
	part := addPart(t, svc, "Brake Pad", 5)

	_, err := svc.UpdatePrices(context.Background(), part.ID, decimal.NewFromInt(-5), decimal.Zero)
	require.ErrorIs(t, err, ErrInvalidInput)

	updated, err := svc.UpdatePrices(context.Background(), part.ID, decimal.RequireFromString("130.555"), decimal.NewFromInt(90))
	require.NoError(t, err)
	require.Equal(t, "130.56", updated.Price.StringFixed(2))
	require.Equal(t, 5, updated.Stock)
}

func TestLowStockUsesDefaultThreshold(t *testing.T) {
	svc := newService(t)
	addPart(t, svc, "Brake Pad", 5)
	addPart(t, svc, "Oil Filter", 10)
	addPart(t, svc, "Spark Plug", 0)

	low, err := svc.LowStock(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, low, 2)
	require.Equal(t, "Brake Pad", low[0].Name)
	require.Equal(t, "Spark Plug", low[1].Name)

	lower, err := svc.LowStock(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, lower, 1)
}

func TestGetPartByNameAndModelTrimsInput(t *testing.T) {
	svc := newService(t)
	part := addPart(t, svc, "Brake Pad", 5)

	found, err := svc.GetPartByNameAndModel(context.Background(), " Brake Pad ", "Toyota Hilux ")
	require.NoError(t, err)
	require.Equal(t, part.ID, found.ID)

	_, err = svc.GetPartByNameAndModel(context.Background(), "Brake Pad", "VW Polo")
	require.ErrorIs(t, err, ports.ErrNotFound)
}
