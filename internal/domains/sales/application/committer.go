package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Apurer/autoparts-pos/internal/domains/sales/domain"
	"github.com/Apurer/autoparts-pos/internal/domains/sales/ports"
)

// ReceiptNumbering selects how receipt numbers are allocated.
type ReceiptNumbering string

const (
	// NumberingSession continues the suffix of the session's previous receipt.
	NumberingSession ReceiptNumbering = "session"
	// NumberingDurable draws from a per-day counter stored with the ledger.
	NumberingDurable ReceiptNumbering = "durable"
)

// ParseReceiptNumbering validates a numbering mode name.
func ParseReceiptNumbering(raw string) (ReceiptNumbering, error) {
	switch ReceiptNumbering(raw) {
	case "", NumberingSession:
		return NumberingSession, nil
	case NumberingDurable:
		return NumberingDurable, nil
	default:
		return "", fmt.Errorf("unknown receipt numbering %q", raw)
	}
}

// Committer records a cart as a sale in one transaction: stock is re-checked
// under row locks, decremented with a guard, and one ledger row is appended
// per line. Either every line lands or none does.
type Committer struct {
	tx        ports.TxManager
	numbering ReceiptNumbering
	now       func() time.Time
}

type CommitterOption func(*Committer)

func WithNumbering(mode ReceiptNumbering) CommitterOption {
	return func(c *Committer) {
		if mode != "" {
			c.numbering = mode
		}
	}
}

func WithCommitClock(now func() time.Time) CommitterOption {
	return func(c *Committer) {
		if now != nil {
			c.now = now
		}
	}
}

func NewCommitter(tx ports.TxManager, opts ...CommitterOption) *Committer {
	c := &Committer{tx: tx, numbering: NumberingSession, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Commit records req.Cart and returns its receipt. It never mutates the cart.
// An empty cart fails before any transaction is opened.
func (c *Committer) Commit(ctx context.Context, req ports.CommitRequest) (*domain.Receipt, error) {
	if req.Cart.IsEmpty() {
		return nil, domain.ErrEmptyCart
	}
	cart := req.Cart.Clone()
	soldAt := c.now().UTC()

	var receipt *domain.Receipt
	err := c.tx.WithinTx(ctx, func(ctx context.Context, tx ports.Tx) error {
		if req.CommitID != "" {
			recorded, err := tx.ReceiptForCommit(ctx, req.CommitID)
			if err != nil {
				return err
			}
			if recorded != nil {
				receipt = domain.NewReceipt(recorded.ReceiptNumber, recorded.SoldAt, cart)
				return nil
			}
		}

		live, err := tx.LockStock(ctx, cart.PartIDs())
		if err != nil {
			return err
		}
		if conflicts := cart.CheckStock(live); len(conflicts) > 0 {
			return &domain.StockConflictError{Conflicts: conflicts}
		}

		number, err := c.receiptNumber(ctx, tx, req.PreviousReceiptNumber, soldAt)
		if err != nil {
			return err
		}

		for i, line := range cart.Lines {
			if err := tx.DecrementStock(ctx, line.PartID, line.Quantity); err != nil {
				if errors.Is(err, ports.ErrStockUnavailable) {
					return &domain.StockConflictError{Conflicts: []domain.LineConflict{{
						Line:      i + 1,
						PartID:    line.PartID,
						PartName:  line.PartName,
						Requested: line.Quantity,
					}}}
				}
				return err
			}
			entry := domain.NewLedgerEntry(req.CommitID, number, cart.CustomerID, line, soldAt)
			if err := tx.AppendSale(ctx, entry); err != nil {
				return err
			}
		}
		receipt = domain.NewReceipt(number, soldAt, cart)
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrStockConflict) || errors.Is(err, domain.ErrValidation) {
			return nil, err
		}
		var persistErr *domain.PersistenceError
		if errors.As(err, &persistErr) {
			return nil, err
		}
		return nil, &domain.PersistenceError{Op: "commit sale", Err: err}
	}
	return receipt, nil
}

func (c *Committer) receiptNumber(ctx context.Context, tx ports.Tx, previous string, now time.Time) (string, error) {
	if c.numbering == NumberingDurable {
		seq, err := tx.NextReceiptSequence(ctx, now)
		if err != nil {
			return "", err
		}
		return domain.FormatReceiptNumber(now, seq), nil
	}
	return domain.NextReceiptNumber(previous, now), nil
}

var _ ports.SaleCommitter = (*Committer)(nil)
