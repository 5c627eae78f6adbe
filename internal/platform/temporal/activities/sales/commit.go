package sales

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"

	"github.com/Apurer/autoparts-pos/internal/domains/sales/domain"
	"github.com/Apurer/autoparts-pos/internal/domains/sales/ports"
)

// CommitSaleActivityName commits a cart as one sale transaction.
const CommitSaleActivityName = "sales.activities.CommitSale"

// Activities groups activities that operate on the sales bounded context.
type Activities struct {
	committer ports.SaleCommitter
}

// NewActivities wires the in-process committer into the activities bundle.
// Retries reuse the request's CommitID, so a retried attempt returns the
// receipt of the one that already landed.
func NewActivities(committer ports.SaleCommitter) *Activities {
	return &Activities{committer: committer}
}

// CommitSale records the cart and returns its receipt.
func (a *Activities) CommitSale(ctx context.Context, req ports.CommitRequest) (*domain.Receipt, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.committer == nil {
		logger.Error("commit sale activity not initialized", "commitId", req.CommitID)
		return nil, errors.New("commit sale activity not initialized")
	}
	logger.Info("CommitSale activity started", "commitId", req.CommitID, "attempt", activity.GetInfo(ctx).Attempt)
	receipt, err := a.committer.Commit(ctx, req)
	if err != nil {
		logger.Warn("CommitSale activity failed", "commitId", req.CommitID, "error", err)
		return nil, ToApplicationError(err)
	}
	logger.Info("CommitSale activity completed", "commitId", req.CommitID, "receiptNumber", receipt.Number)
	return receipt, nil
}
