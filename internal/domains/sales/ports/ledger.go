package ports

import (
	"context"
	"time"

	"github.com/Apurer/autoparts-pos/internal/domains/sales/domain"
)

// Ledger reads committed sales.
type Ledger interface {
	// SalesByPart aggregates entries sold in [from, to), ordered by part name.
	SalesByPart(ctx context.Context, from, to time.Time) ([]domain.PartSales, error)
	EntriesForReceipt(ctx context.Context, receiptNumber string) ([]*domain.LedgerEntry, error)
	CountByCustomer(ctx context.Context, customerID int64) (int64, error)
}
