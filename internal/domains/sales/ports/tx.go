package ports

import (
	"context"
	"errors"
	"time"

	"github.com/Apurer/autoparts-pos/internal/domains/sales/domain"
)

// ErrStockUnavailable is returned by Tx.DecrementStock when the guarded
// update matched no row because stock was too low.
var ErrStockUnavailable = errors.New("stock no longer available")

// Tx is the set of writes a sale performs. All calls made through one Tx
// commit or roll back together.
type Tx interface {
	// LockStock reads live stock for ids, holding row locks until the
	// transaction ends. ids are locked in the order given. Missing parts are
	// absent from the result.
	LockStock(ctx context.Context, ids []int64) (map[int64]int, error)
	// DecrementStock subtracts quantity only when enough stock remains.
	DecrementStock(ctx context.Context, partID int64, quantity int) error
	AppendSale(ctx context.Context, entry *domain.LedgerEntry) error
	// NextReceiptSequence atomically advances the durable counter for day.
	NextReceiptSequence(ctx context.Context, day time.Time) (int, error)
	// ReceiptForCommit returns the sale already recorded for commitID, or
	// nil when the commit has not happened.
	ReceiptForCommit(ctx context.Context, commitID string) (*RecordedCommit, error)
}

// RecordedCommit identifies a sale that already landed in the ledger.
type RecordedCommit struct {
	ReceiptNumber string
	SoldAt        time.Time
}

// TxManager runs fn inside one transaction. The transaction commits when fn
// returns nil and rolls back otherwise, including on panic.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}
