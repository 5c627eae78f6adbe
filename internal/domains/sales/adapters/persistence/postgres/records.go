package postgres

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Apurer/autoparts-pos/internal/domains/sales/domain"
)

type stockRecord struct {
	ID       int64 `gorm:"column:id"`
	StockQty int   `gorm:"column:stock_qty"`
}

func (stockRecord) TableName() string { return "parts" }

type saleRecord struct {
	ID            int64           `gorm:"primaryKey;column:id"`
	CommitID      string          `gorm:"column:commit_id"`
	ReceiptNumber string          `gorm:"column:receipt_number"`
	CustomerID    int64           `gorm:"column:customer_id"`
	PartID        int64           `gorm:"column:part_id"`
	Quantity      int             `gorm:"column:quantity"`
	UnitPrice     decimal.Decimal `gorm:"column:unit_price"`
	UnitCost      decimal.Decimal `gorm:"column:unit_cost"`
	Total         decimal.Decimal `gorm:"column:total"`
	SoldAt        time.Time       `gorm:"column:sold_at"`
}

func (saleRecord) TableName() string { return "sale_ledger" }

type receiptSequenceRecord struct {
	Day       string `gorm:"primaryKey;column:day"`
	LastValue int    `gorm:"column:last_value"`
}

func (receiptSequenceRecord) TableName() string { return "receipt_sequences" }

type sessionRecord struct {
	ID                string     `gorm:"primaryKey;column:id"`
	CustomerID        int64      `gorm:"column:customer_id"`
	Cart              string     `gorm:"column:cart"`
	LastReceiptNumber string     `gorm:"column:last_receipt_number"`
	LastReceipt       string     `gorm:"column:last_receipt"`
	ExpiresAt         *time.Time `gorm:"column:expires_at"`
	CreatedAt         time.Time  `gorm:"column:created_at"`
	UpdatedAt         time.Time  `gorm:"column:updated_at"`
}

func (sessionRecord) TableName() string { return "checkout_sessions" }

func toSaleRecord(entry *domain.LedgerEntry) saleRecord {
	return saleRecord{
		CommitID:      entry.CommitID,
		ReceiptNumber: entry.ReceiptNumber,
		CustomerID:    entry.CustomerID,
		PartID:        entry.PartID,
		Quantity:      entry.Quantity,
		UnitPrice:     entry.UnitPrice,
		UnitCost:      entry.UnitCost,
		Total:         entry.Total,
		SoldAt:        entry.SoldAt.UTC(),
	}
}

func (r saleRecord) toDomain() *domain.LedgerEntry {
	return &domain.LedgerEntry{
		ID:            r.ID,
		CommitID:      r.CommitID,
		ReceiptNumber: r.ReceiptNumber,
		CustomerID:    r.CustomerID,
		PartID:        r.PartID,
		Quantity:      r.Quantity,
		UnitPrice:     r.UnitPrice,
		UnitCost:      r.UnitCost,
		Total:         r.Total,
		SoldAt:        r.SoldAt.UTC(),
	}
}
