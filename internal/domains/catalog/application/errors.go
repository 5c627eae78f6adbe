package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/autoparts-pos/internal/domains/catalog/domain"
)

var (
	// ErrInvalidInput signals the request violated a part invariant.
	ErrInvalidInput = errors.New("invalid part input")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyName) ||
		errors.Is(err, domain.ErrNameTooLong) ||
		errors.Is(err, domain.ErrModelTooLong) ||
		errors.Is(err, domain.ErrNegativePrice) ||
		errors.Is(err, domain.ErrNegativeCost) ||
		errors.Is(err, domain.ErrNegativeStock) ||
		errors.Is(err, domain.ErrInvalidRestock) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
