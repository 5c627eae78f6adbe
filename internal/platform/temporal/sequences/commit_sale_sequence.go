package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/autoparts-pos/internal/domains/sales/domain"
	"github.com/Apurer/autoparts-pos/internal/domains/sales/ports"
	salesactivities "github.com/Apurer/autoparts-pos/internal/platform/temporal/activities/sales"
)

// CommitSaleActivityOptions retries infrastructure failures only; business
// rejections are marked non-retryable by the activity.
var CommitSaleActivityOptions = workflow.ActivityOptions{
	StartToCloseTimeout: 30 * time.Second,
	RetryPolicy: &temporal.RetryPolicy{
		InitialInterval:        time.Second,
		BackoffCoefficient:     2.0,
		MaximumInterval:        10 * time.Second,
		MaximumAttempts:        5,
		NonRetryableErrorTypes: salesactivities.NonRetryableErrorTypes,
	},
}

// RunCommitSaleSequence executes the commit activity for one checkout.
func RunCommitSaleSequence(ctx workflow.Context, req ports.CommitRequest) (*domain.Receipt, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("commit sale sequence started", "commitId", req.CommitID)

	var receipt domain.Receipt
	err := workflow.ExecuteActivity(workflow.WithActivityOptions(ctx, CommitSaleActivityOptions), salesactivities.CommitSaleActivityName, req).Get(ctx, &receipt)
	if err != nil {
		logger.Error("commit sale sequence failed", "commitId", req.CommitID, "error", err)
		return nil, err
	}
	logger.Info("commit sale sequence completed", "commitId", req.CommitID, "receiptNumber", receipt.Number)
	return &receipt, nil
}
