package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/autoparts-pos/internal/domains/sales/domain"
	"github.com/Apurer/autoparts-pos/internal/domains/sales/ports"
)

var _ ports.TxManager = (*TxManager)(nil)

// TxManager runs a sale inside one database transaction. On PostgreSQL the
// part rows are locked FOR UPDATE; SQLite serialises writers instead.
type TxManager struct {
	db *gorm.DB
}

func NewTxManager(db *gorm.DB) *TxManager {
	return &TxManager{db: db}
}

func (m *TxManager) WithinTx(ctx context.Context, fn func(ctx context.Context, tx ports.Tx) error) error {
	if m == nil || m.db == nil {
		return errors.New("sales transaction manager not configured")
	}
	return m.db.WithContext(ctx).Transaction(func(gtx *gorm.DB) error {
		return fn(ctx, &tx{db: gtx})
	})
}

type tx struct {
	db *gorm.DB
}

func (t *tx) LockStock(ctx context.Context, ids []int64) (map[int64]int, error) {
	live := make(map[int64]int, len(ids))
	if len(ids) == 0 {
		return live, nil
	}
	var rows []stockRecord
	err := t.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id IN ?", ids).
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("lock stock: %w", err)
	}
	for _, row := range rows {
		live[row.ID] = row.StockQty
	}
	return live, nil
}

// DecrementStock only matches the row while enough stock remains, so the
// CHECK constraint is never the thing that stops an oversell.
func (t *tx) DecrementStock(ctx context.Context, partID int64, quantity int) error {
	result := t.db.WithContext(ctx).
		Model(&stockRecord{}).
		Where("id = ? AND stock_qty >= ?", partID, quantity).
		Updates(map[string]any{
			"stock_qty":  gorm.Expr("stock_qty - ?", quantity),
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return fmt.Errorf("decrement stock for part %d: %w", partID, result.Error)
	}
	if result.RowsAffected == 0 {
		return ports.ErrStockUnavailable
	}
	return nil
}

func (t *tx) AppendSale(ctx context.Context, entry *domain.LedgerEntry) error {
	record := toSaleRecord(entry)
	if err := t.db.WithContext(ctx).Create(&record).Error; err != nil {
		return fmt.Errorf("append sale for part %d: %w", entry.PartID, err)
	}
	entry.ID = record.ID
	return nil
}

func (t *tx) NextReceiptSequence(ctx context.Context, day time.Time) (int, error) {
	key := domain.DayKey(day)
	err := t.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "day"}},
			DoUpdates: clause.Assignments(map[string]any{"last_value": gorm.Expr("receipt_sequences.last_value + 1")}),
		}).
		Create(&receiptSequenceRecord{Day: key, LastValue: 1}).Error
	if err != nil {
		return 0, fmt.Errorf("advance receipt sequence: %w", err)
	}
	var seq receiptSequenceRecord
	if err := t.db.WithContext(ctx).First(&seq, "day = ?", key).Error; err != nil {
		return 0, fmt.Errorf("read receipt sequence: %w", err)
	}
	return seq.LastValue, nil
}

func (t *tx) ReceiptForCommit(ctx context.Context, commitID string) (*ports.RecordedCommit, error) {
	var rows []saleRecord
	err := t.db.WithContext(ctx).
		Select("receipt_number", "sold_at").
		Where("commit_id = ?", commitID).
		Order("id").
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("look up commit %s: %w", commitID, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &ports.RecordedCommit{ReceiptNumber: rows[0].ReceiptNumber, SoldAt: rows[0].SoldAt.UTC()}, nil
}
