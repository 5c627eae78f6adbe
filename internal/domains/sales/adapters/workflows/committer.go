package workflows

import (
	"context"
	"errors"
	"fmt"
	"time"

	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"

	"github.com/Apurer/autoparts-pos/internal/domains/sales/domain"
	"github.com/Apurer/autoparts-pos/internal/domains/sales/ports"
	salesactivities "github.com/Apurer/autoparts-pos/internal/platform/temporal/activities/sales"
	salesworkflows "github.com/Apurer/autoparts-pos/internal/platform/temporal/workflows/sales"
)

var _ ports.SaleCommitter = (*TemporalCommitter)(nil)

// TemporalCommitter runs each checkout as a Temporal workflow so an
// interrupted commit is retried by the worker rather than lost.
type TemporalCommitter struct {
	client    client.Client
	taskQueue string
}

// NewTemporalCommitter wires a Temporal client into the committer.
func NewTemporalCommitter(c client.Client) *TemporalCommitter {
	return &TemporalCommitter{client: c, taskQueue: salesworkflows.CheckoutTaskQueue}
}

// Commit starts the checkout workflow and waits for its receipt. Workflow
// failures come back as the same typed errors the in-process committer
// returns.
func (o *TemporalCommitter) Commit(ctx context.Context, req ports.CommitRequest) (*domain.Receipt, error) {
	if o == nil || o.client == nil {
		return nil, errors.New("temporal sales committer not configured")
	}
	if req.Cart.IsEmpty() {
		return nil, domain.ErrEmptyCart
	}
	traceComponent := workflowTraceComponent(ctx)
	workflowID := buildCheckoutWorkflowID(req.CommitID, traceComponent)
	options := client.StartWorkflowOptions{
		ID:        workflowID,
		TaskQueue: o.taskQueue,
	}
	run, err := o.client.ExecuteWorkflow(
		ctx,
		options,
		salesworkflows.CheckoutWorkflow,
		salesworkflows.CheckoutWorkflowInput{Request: req, TraceID: traceComponent},
	)
	if err != nil {
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if !errors.As(err, &alreadyStarted) || req.CommitID == "" {
			return nil, &domain.PersistenceError{Op: "start checkout workflow", Err: err}
		}
		run = o.client.GetWorkflow(ctx, workflowID, alreadyStarted.RunId)
	}
	var receipt domain.Receipt
	if err := run.Get(ctx, &receipt); err != nil {
		return nil, salesactivities.FromError(err)
	}
	return &receipt, nil
}

func buildCheckoutWorkflowID(commitID, traceComponent string) string {
	if commitID != "" {
		return "sales-checkout-" + commitID
	}
	return fmt.Sprintf("sales-checkout-%s", traceComponent)
}

func workflowTraceComponent(ctx context.Context) string {
	if traceID := workflowTraceID(ctx); traceID != "" {
		return traceID
	}
	return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
}

func workflowTraceID(ctx context.Context) string {
	spanCtx := oteltrace.SpanFromContext(ctx).SpanContext()
	if !spanCtx.IsValid() {
		return ""
	}
	return spanCtx.TraceID().String()
}
