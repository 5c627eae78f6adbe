package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/autoparts-pos/internal/domains/customers/domain"
)

var (
	// ErrInvalidInput signals the request violated a customer invariant.
	ErrInvalidInput = errors.New("invalid customer input")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyName) ||
		errors.Is(err, domain.ErrNameTooLong) ||
		errors.Is(err, domain.ErrInvalidEmail) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
