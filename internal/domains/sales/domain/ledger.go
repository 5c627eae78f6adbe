package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry is one persisted sale line. Entries are append-only.
type LedgerEntry struct {
	ID            int64
	CommitID      string
	ReceiptNumber string
	CustomerID    int64
	PartID        int64
	Quantity      int
	UnitPrice     decimal.Decimal
	UnitCost      decimal.Decimal
	Total         decimal.Decimal
	SoldAt        time.Time
}

// NewLedgerEntry derives the entry for a cart line.
func NewLedgerEntry(commitID, receiptNumber string, customerID int64, line Line, soldAt time.Time) *LedgerEntry {
	return &LedgerEntry{
		CommitID:      commitID,
		ReceiptNumber: receiptNumber,
		CustomerID:    customerID,
		PartID:        line.PartID,
		Quantity:      line.Quantity,
		UnitPrice:     line.UnitPrice,
		UnitCost:      line.UnitCost,
		Total:         line.LineTotal,
		SoldAt:        soldAt,
	}
}
