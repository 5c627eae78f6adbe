package ports

import (
	"context"

	"github.com/Apurer/autoparts-pos/internal/domains/sales/domain"
)

// CommitRequest is one checkout attempt. CommitID makes retries of the same
// attempt idempotent.
type CommitRequest struct {
	CommitID              string       `json:"commitId"`
	Cart                  *domain.Cart `json:"cart"`
	PreviousReceiptNumber string       `json:"previousReceiptNumber"`
}

// SaleCommitter turns a cart into a committed sale and its receipt. The cart
// is never modified.
type SaleCommitter interface {
	Commit(ctx context.Context, req CommitRequest) (*domain.Receipt, error)
}
