package sales

import (
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/autoparts-pos/internal/domains/sales/domain"
	"github.com/Apurer/autoparts-pos/internal/domains/sales/ports"
	"github.com/Apurer/autoparts-pos/internal/platform/temporal/sequences"
)

const (
	// CheckoutWorkflowName is the public identifier for registering the workflow.
	CheckoutWorkflowName = "sales.workflows.Checkout"
	// CheckoutTaskQueue is the queue consumed by the worker processing checkouts.
	CheckoutTaskQueue = "SALES_CHECKOUT"
)

// CheckoutWorkflowInput carries one checkout attempt.
type CheckoutWorkflowInput struct {
	Request ports.CommitRequest
	TraceID string
}

// CheckoutWorkflow commits a cart durably and returns the receipt.
func CheckoutWorkflow(ctx workflow.Context, input CheckoutWorkflowInput) (*domain.Receipt, error) {
	logger := workflow.GetLogger(ctx)
	commitID := input.Request.CommitID
	logger.Info("CheckoutWorkflow started", withTraceID(input.TraceID, "commitId", commitID)...)
	receipt, err := sequences.RunCommitSaleSequence(ctx, input.Request)
	if err != nil {
		logger.Error("CheckoutWorkflow failed", withTraceID(input.TraceID, "commitId", commitID, "error", err)...)
		return nil, err
	}
	logger.Info("CheckoutWorkflow completed", withTraceID(input.TraceID, "commitId", commitID, "receiptNumber", receipt.Number)...)
	return receipt, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
