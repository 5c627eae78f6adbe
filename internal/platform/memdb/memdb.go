// Package memdb is the process-local store used when no SQL database is
// configured. All bounded contexts share one DB so a sale can decrement stock
// and append ledger rows in a single all-or-nothing update.
package memdb

import (
	"errors"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// PartRow is the stored form of a catalog part.
type PartRow struct {
	ID        int64
	Name      string
	Model     string
	Price     decimal.Decimal
	Cost      decimal.Decimal
	Stock     int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CustomerRow is the stored form of a customer.
type CustomerRow struct {
	ID        int64
	FullName  string
	Phone     string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SaleRow is one ledger entry.
type SaleRow struct {
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

// Tables is the full state of the store. Functions passed to Update may
// mutate it freely; the changes are discarded when they return an error.
type Tables struct {
	Parts      map[int64]PartRow
	Customers  map[int64]CustomerRow
	Sales      []SaleRow
	ReceiptSeq map[string]int

	lastPartID     int64
	lastCustomerID int64
	lastSaleID     int64
}

// NextPartID allocates a part identifier.
func (t *Tables) NextPartID() int64 {
	t.lastPartID++
	return t.lastPartID
}

// NextCustomerID allocates a customer identifier.
func (t *Tables) NextCustomerID() int64 {
	t.lastCustomerID++
	return t.lastCustomerID
}

// NextSaleID allocates a ledger identifier.
func (t *Tables) NextSaleID() int64 {
	t.lastSaleID++
	return t.lastSaleID
}

func (t *Tables) clone() *Tables {
	out := &Tables{
		Parts:          make(map[int64]PartRow, len(t.Parts)),
		Customers:      make(map[int64]CustomerRow, len(t.Customers)),
		Sales:          make([]SaleRow, len(t.Sales)),
		ReceiptSeq:     make(map[string]int, len(t.ReceiptSeq)),
		lastPartID:     t.lastPartID,
		lastCustomerID: t.lastCustomerID,
		lastSaleID:     t.lastSaleID,
	}
	for k, v := range t.Parts {
		out.Parts[k] = v
	}
	for k, v := range t.Customers {
		out.Customers[k] = v
	}
	copy(out.Sales, t.Sales)
	for k, v := range t.ReceiptSeq {
		out.ReceiptSeq[k] = v
	}
	return out
}

// ErrClosed is returned after Close.
var ErrClosed = errors.New("memdb: closed")

// DB serialises every read and write behind one mutex. Update works on a copy
// and swaps it in only when the callback succeeds.
type DB struct {
	mu     sync.Mutex
	tables *Tables
	closed bool
	now    func() time.Time
}

// Option customises a DB.
type Option func(*DB)

// WithClock overrides the clock used for row timestamps.
func WithClock(now func() time.Time) Option {
	return func(db *DB) {
		if now != nil {
			db.now = now
		}
	}
}

// New returns an empty store.
func New(opts ...Option) *DB {
	db := &DB{
		tables: &Tables{
			Parts:      map[int64]PartRow{},
			Customers:  map[int64]CustomerRow{},
			ReceiptSeq: map[string]int{},
		},
		now: time.Now,
	}
	for _, opt := range opts {
		opt(db)
	}
	return db
}

// Now returns the store clock in UTC.
func (db *DB) Now() time.Time {
	return db.now().UTC()
}

// View runs fn against the current state. fn must not mutate it.
func (db *DB) View(fn func(t *Tables) error) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	if db.closed {
		return ErrClosed
	}
	return fn(db.tables)
}

// Update runs fn against a private copy of the state and publishes the copy
// only if fn returns nil.
func (db *DB) Update(fn func(t *Tables) error) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	if db.closed {
		return ErrClosed
	}
	working := db.tables.clone()
	if err := fn(working); err != nil {
		return err
	}
	db.tables = working
	return nil
}

// Close rejects further access.
func (db *DB) Close() {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.closed = true
}
