package memory

import (
	"context"
	"time"

	"github.com/Apurer/autoparts-pos/internal/domains/sales/domain"
	"github.com/Apurer/autoparts-pos/internal/domains/sales/ports"
	"github.com/Apurer/autoparts-pos/internal/platform/memdb"
)

var _ ports.TxManager = (*TxManager)(nil)

// TxManager runs a sale as one memdb update. The store mutex stands in for
// row locks, so LockStock only reads.
type TxManager struct {
	db *memdb.DB
}

func NewTxManager(db *memdb.DB) *TxManager {
	return &TxManager{db: db}
}

func (m *TxManager) WithinTx(ctx context.Context, fn func(ctx context.Context, tx ports.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return m.db.Update(func(t *memdb.Tables) error {
		return fn(ctx, &tx{tables: t})
	})
}

type tx struct {
	tables *memdb.Tables
}

func (x *tx) LockStock(_ context.Context, ids []int64) (map[int64]int, error) {
	live := make(map[int64]int, len(ids))
	for _, id := range ids {
		if row, ok := x.tables.Parts[id]; ok {
			live[id] = row.Stock
		}
	}
	return live, nil
}

func (x *tx) DecrementStock(_ context.Context, partID int64, quantity int) error {
	row, ok := x.tables.Parts[partID]
	if !ok || row.Stock < quantity {
		return ports.ErrStockUnavailable
	}
	row.Stock -= quantity
	x.tables.Parts[partID] = row
	return nil
}

func (x *tx) AppendSale(_ context.Context, entry *domain.LedgerEntry) error {
	if _, ok := x.tables.Customers[entry.CustomerID]; !ok {
		return errUnknownCustomer
	}
	if _, ok := x.tables.Parts[entry.PartID]; !ok {
		return errUnknownPart
	}
	entry.ID = x.tables.NextSaleID()
	x.tables.Sales = append(x.tables.Sales, memdb.SaleRow{
		ID:            entry.ID,
		CommitID:      entry.CommitID,
		ReceiptNumber: entry.ReceiptNumber,
		CustomerID:    entry.CustomerID,
		PartID:        entry.PartID,
		Quantity:      entry.Quantity,
		UnitPrice:     entry.UnitPrice,
		UnitCost:      entry.UnitCost,
		Total:         entry.Total,
		SoldAt:        entry.SoldAt,
	})
	return nil
}

func (x *tx) NextReceiptSequence(_ context.Context, day time.Time) (int, error) {
	key := domain.DayKey(day)
	x.tables.ReceiptSeq[key]++
	return x.tables.ReceiptSeq[key], nil
}

func (x *tx) ReceiptForCommit(_ context.Context, commitID string) (*ports.RecordedCommit, error) {
	for _, row := range x.tables.Sales {
		if row.CommitID == commitID {
			return &ports.RecordedCommit{ReceiptNumber: row.ReceiptNumber, SoldAt: row.SoldAt}, nil
		}
	}
	return nil, nil
}
