package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Apurer/autoparts-pos/internal/domains/sales/domain"
	"github.com/Apurer/autoparts-pos/internal/domains/sales/ports"
)

var _ ports.Ledger = (*Ledger)(nil)

// Ledger reads the sale_ledger table.
type Ledger struct {
	db *gorm.DB
}

func NewLedger(db *gorm.DB) *Ledger {
	return &Ledger{db: db}
}

type partSalesRow struct {
	PartID   int64
	PartName string
	Model    string
	Units    int
	Revenue  decimal.Decimal
	Cost     decimal.Decimal
}

func (l *Ledger) SalesByPart(ctx context.Context, from, to time.Time) ([]domain.PartSales, error) {
	if err := l.ensureDB(); err != nil {
		return nil, err
	}
	var rows []partSalesRow
	err := l.db.WithContext(ctx).
		Table("sale_ledger AS s").
		Select(`s.part_id AS part_id, p.name AS part_name, p.model AS model,
			SUM(s.quantity) AS units, SUM(s.total) AS revenue, SUM(s.unit_cost * s.quantity) AS cost`).
		Joins("JOIN parts AS p ON p.id = s.part_id").
		Where("s.sold_at >= ? AND s.sold_at < ?", from.UTC(), to.UTC()).
		Group("s.part_id, p.name, p.model").
		Order("p.name, s.part_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]domain.PartSales, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.PartSales{
			PartID:   row.PartID,
			PartName: row.PartName,
			Model:    row.Model,
			Units:    row.Units,
			Revenue:  row.Revenue,
			Cost:     row.Cost,
		})
	}
	return out, nil
}

func (l *Ledger) EntriesForReceipt(ctx context.Context, receiptNumber string) ([]*domain.LedgerEntry, error) {
	if err := l.ensureDB(); err != nil {
		return nil, err
	}
	var records []saleRecord
	if err := l.db.WithContext(ctx).Where("receipt_number = ?", receiptNumber).Order("id").Find(&records).Error; err != nil {
		return nil, err
	}
	entries := make([]*domain.LedgerEntry, 0, len(records))
	for i := range records {
		entries = append(entries, records[i].toDomain())
	}
	return entries, nil
}

func (l *Ledger) CountByCustomer(ctx context.Context, customerID int64) (int64, error) {
	if err := l.ensureDB(); err != nil {
		return 0, err
	}
	var n int64
	err := l.db.WithContext(ctx).Model(&saleRecord{}).Where("customer_id = ?", customerID).Count(&n).Error
	return n, err
}

func (l *Ledger) ensureDB() error {
	if l == nil || l.db == nil {
		return errors.New("sales ledger not configured")
	}
	return nil
}
