package application

import (
	"errors"
	"fmt"
)

// ErrSessionSync reports that a sale was committed but the session could not
// be updated afterwards. The receipt returned alongside it is valid.
var ErrSessionSync = errors.New("sale committed but checkout session was not updated")

func sessionSyncError(receiptNumber string, err error) error {
	return fmt.Errorf("%w: receipt %s: %w", ErrSessionSync, receiptNumber, err)
}
