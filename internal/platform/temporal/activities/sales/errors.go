package sales

import (
	"errors"

	"go.temporal.io/sdk/temporal"

	"github.com/Apurer/autoparts-pos/internal/domains/sales/domain"
)

// Application error types carried across the Temporal boundary.
const (
	ErrTypeEmptyCart     = "EmptyCart"
	ErrTypeStockConflict = "StockConflict"
	ErrTypeValidation    = "Validation"
	ErrTypePersistence   = "Persistence"
)

// NonRetryableErrorTypes lists failures a retry can never fix.
var NonRetryableErrorTypes = []string{ErrTypeEmptyCart, ErrTypeStockConflict, ErrTypeValidation}

// ToApplicationError encodes a committer error so the workflow can stop
// retrying on business failures and the caller can rebuild the typed error.
func ToApplicationError(err error) error {
	if err == nil {
		return nil
	}
	var conflict *domain.StockConflictError
	var validation *domain.ValidationError
	switch {
	case errors.Is(err, domain.ErrEmptyCart):
		return temporal.NewNonRetryableApplicationError(err.Error(), ErrTypeEmptyCart, err)
	case errors.As(err, &conflict):
		return temporal.NewNonRetryableApplicationError(err.Error(), ErrTypeStockConflict, err, conflict.Conflicts)
	case errors.As(err, &validation):
		return temporal.NewNonRetryableApplicationError(err.Error(), ErrTypeValidation, err, *validation)
	default:
		return temporal.NewApplicationErrorWithCause(err.Error(), ErrTypePersistence, err)
	}
}

// FromError rebuilds the typed sales error from a workflow or activity
// failure. Anything unrecognised, timeouts included, is a PersistenceError.
func FromError(err error) error {
	if err == nil {
		return nil
	}
	var appErr *temporal.ApplicationError
	if !errors.As(err, &appErr) {
		return &domain.PersistenceError{Op: "commit sale", Err: err}
	}
	switch appErr.Type() {
	case ErrTypeEmptyCart:
		return domain.ErrEmptyCart
	case ErrTypeStockConflict:
		var conflicts []domain.LineConflict
		if appErr.HasDetails() {
			if derr := appErr.Details(&conflicts); derr != nil {
				return &domain.PersistenceError{Op: "decode stock conflict", Err: derr}
			}
		}
		return &domain.StockConflictError{Conflicts: conflicts}
	case ErrTypeValidation:
		var validation domain.ValidationError
		if appErr.HasDetails() {
			if derr := appErr.Details(&validation); derr != nil {
				return &domain.PersistenceError{Op: "decode validation error", Err: derr}
			}
		}
		return &validation
	default:
		return &domain.PersistenceError{Op: "commit sale", Err: err}
	}
}
