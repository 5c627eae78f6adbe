package memory

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/autoparts-pos/internal/domains/sales/domain"
	"github.com/Apurer/autoparts-pos/internal/domains/sales/ports"
	"github.com/Apurer/autoparts-pos/internal/platform/memdb"
)

var soldAt = time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

func seeded(t *testing.T) *memdb.DB {
	t.Helper()
	db := memdb.New()
	t.Cleanup(db.Close)
	require.NoError(t, db.Update(func(tables *memdb.Tables) error {
		tables.Parts[1] = memdb.PartRow{ID: 1, Name: "Brake Pad", Model: "VW Polo", Price: decimal.NewFromInt(120), Stock: 5}
		tables.Customers[1] = memdb.CustomerRow{ID: 1, FullName: "Thandi Mthembu"}
		return nil
	}))
	return db
}

func appendSale(t *testing.T, db *memdb.DB, customerID, partID int64) error {
	t.Helper()
	line, err := domain.NewLine(partID, "Brake Pad", "VW Polo", decimal.NewFromInt(120), decimal.NewFromInt(80), 1)
	require.NoError(t, err)
	return NewTxManager(db).WithinTx(context.Background(), func(ctx context.Context, tx ports.Tx) error {
		return tx.AppendSale(ctx, domain.NewLedgerEntry("c-1", "20240315-001", customerID, line, soldAt))
	})
}

func salesCount(t *testing.T, db *memdb.DB) int {
	t.Helper()
	var n int
	require.NoError(t, db.View(func(tables *memdb.Tables) error {
		n = len(tables.Sales)
		return nil
	}))
	return n
}

func TestTx_AppendSaleRequiresKnownCustomerAndPart(t *testing.T) {
	db := seeded(t)

	require.ErrorIs(t, appendSale(t, db, 0, 1), errUnknownCustomer)
	require.ErrorIs(t, appendSale(t, db, 42, 1), errUnknownCustomer)
	require.ErrorIs(t, appendSale(t, db, 1, 99), errUnknownPart)
	require.Zero(t, salesCount(t, db))

	require.NoError(t, appendSale(t, db, 1, 1))
	require.Equal(t, 1, salesCount(t, db))
}

func TestTx_ReceiptForCommitReturnsLedgerTimestamp(t *testing.T) {
	db := seeded(t)
	require.NoError(t, appendSale(t, db, 1, 1))

	err := NewTxManager(db).WithinTx(context.Background(), func(ctx context.Context, tx ports.Tx) error {
		recorded, err := tx.ReceiptForCommit(ctx, "c-1")
		require.NoError(t, err)
		require.Equal(t, "20240315-001", recorded.ReceiptNumber)
		require.True(t, recorded.SoldAt.Equal(soldAt))

		missing, err := tx.ReceiptForCommit(ctx, "c-2")
		require.NoError(t, err)
		require.Nil(t, missing)
		return nil
	})
	require.NoError(t, err)
}
