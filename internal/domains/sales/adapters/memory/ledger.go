package memory

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Apurer/autoparts-pos/internal/domains/sales/domain"
	"github.com/Apurer/autoparts-pos/internal/domains/sales/ports"
	"github.com/Apurer/autoparts-pos/internal/platform/memdb"
)

var (
	errUnknownCustomer = errors.New("sale references an unknown customer")
	errUnknownPart     = errors.New("sale references an unknown part")
)

var _ ports.Ledger = (*Ledger)(nil)

// Ledger reads sale rows from the shared in-memory store.
type Ledger struct {
	db *memdb.DB
}

func NewLedger(db *memdb.DB) *Ledger {
	return &Ledger{db: db}
}

func (l *Ledger) SalesByPart(_ context.Context, from, to time.Time) ([]domain.PartSales, error) {
	byPart := map[int64]*domain.PartSales{}
	err := l.db.View(func(t *memdb.Tables) error {
		for _, row := range t.Sales {
			if row.SoldAt.Before(from) || !row.SoldAt.Before(to) {
				continue
			}
			agg, ok := byPart[row.PartID]
			if !ok {
				part := t.Parts[row.PartID]
				agg = &domain.PartSales{
					PartID:   row.PartID,
					PartName: part.Name,
					Model:    part.Model,
					Revenue:  decimal.Zero,
					Cost:     decimal.Zero,
				}
				byPart[row.PartID] = agg
			}
			agg.Units += row.Quantity
			agg.Revenue = agg.Revenue.Add(row.Total)
			agg.Cost = agg.Cost.Add(row.UnitCost.Mul(decimal.NewFromInt(int64(row.Quantity))))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := make([]domain.PartSales, 0, len(byPart))
	for _, agg := range byPart {
		out = append(out, *agg)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].PartName != out[j].PartName {
			return out[i].PartName < out[j].PartName
		}
		return out[i].PartID < out[j].PartID
	})
	return out, nil
}

func (l *Ledger) EntriesForReceipt(_ context.Context, receiptNumber string) ([]*domain.LedgerEntry, error) {
	var entries []*domain.LedgerEntry
	err := l.db.View(func(t *memdb.Tables) error {
		for _, row := range t.Sales {
			if row.ReceiptNumber == receiptNumber {
				entries = append(entries, toEntry(row))
			}
		}
		return nil
	})
	return entries, err
}

func (l *Ledger) CountByCustomer(_ context.Context, customerID int64) (int64, error) {
	var n int64
	err := l.db.View(func(t *memdb.Tables) error {
		for _, row := range t.Sales {
			if row.CustomerID == customerID {
				n++
			}
		}
		return nil
	})
	return n, err
}

func toEntry(row memdb.SaleRow) *domain.LedgerEntry {
	return &domain.LedgerEntry{
		ID:            row.ID,
		CommitID:      row.CommitID,
		ReceiptNumber: row.ReceiptNumber,
		CustomerID:    row.CustomerID,
		PartID:        row.PartID,
		Quantity:      row.Quantity,
		UnitPrice:     row.UnitPrice,
		UnitCost:      row.UnitCost,
		Total:         row.Total,
		SoldAt:        row.SoldAt,
	}
}
