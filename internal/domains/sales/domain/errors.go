package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrValidation        = errors.New("validation failed")
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrEmptyCart is returned when checkout is attempted with no lines.
	ErrEmptyCart     = errors.New("cart is empty")
	ErrStockConflict = errors.New("stock changed since the cart was built")
	ErrPersistence   = errors.New("sale could not be recorded")
)

// ValidationError rejects malformed input before any stock is read.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// InsufficientStockError reports a cart line the shelf cannot cover.
// Requested is the cumulative quantity for the part, including lines already
// in the cart.
type InsufficientStockError struct {
	PartID    int64
	PartName  string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: requested %d, available %d", e.PartName, e.Requested, e.Available)
}

func (e *InsufficientStockError) Is(target error) bool { return target == ErrInsufficientStock }

// LineConflict describes one cart line that failed the in-transaction check.
// Line is 1-based.
type LineConflict struct {
	Line      int    `json:"line"`
	PartID    int64  `json:"partId"`
	PartName  string `json:"partName"`
	Requested int    `json:"requested"`
	Available int    `json:"available"`
}

// StockConflictError lists every line that no longer fits live stock.
type StockConflictError struct {
	Conflicts []LineConflict
}

func (e *StockConflictError) Error() string {
	parts := make([]string, 0, len(e.Conflicts))
	for _, c := range e.Conflicts {
		parts = append(parts, fmt.Sprintf("line %d %s requested %d available %d", c.Line, c.PartName, c.Requested, c.Available))
	}
	return "stock conflict: " + strings.Join(parts, "; ")
}

func (e *StockConflictError) Is(target error) bool { return target == ErrStockConflict }

// PersistenceError wraps an infrastructure failure during commit. Nothing
// from the failed commit is visible afterwards.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func (e *PersistenceError) Is(target error) bool { return target == ErrPersistence }
