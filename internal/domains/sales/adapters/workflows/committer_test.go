package workflows

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/mocks"
	"go.temporal.io/sdk/temporal"

	"github.com/Apurer/autoparts-pos/internal/domains/sales/domain"
	"github.com/Apurer/autoparts-pos/internal/domains/sales/ports"
	salesactivities "github.com/Apurer/autoparts-pos/internal/platform/temporal/activities/sales"
	salesworkflows "github.com/Apurer/autoparts-pos/internal/platform/temporal/workflows/sales"
)

func TestBuildCheckoutWorkflowID(t *testing.T) {
	require.Equal(t, "sales-checkout-abc", buildCheckoutWorkflowID("abc", "trace"))
	require.Equal(t, "sales-checkout-trace", buildCheckoutWorkflowID("", "trace"))
}

func TestWorkflowTraceComponent(t *testing.T) {
	traceID, err := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	require.NoError(t, err)
	spanID, err := trace.SpanIDFromHex("00f067aa0ba902b7")
	require.NoError(t, err)
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID: traceID,
		SpanID:  spanID,
	}))

	require.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", workflowTraceComponent(ctx))
	require.Contains(t, workflowTraceComponent(context.Background()), "fallback-")
}

func TestTemporalCommitter_RejectsBeforeStartingWorkflow(t *testing.T) {
	_, err := (*TemporalCommitter)(nil).Commit(context.Background(), ports.CommitRequest{})
	require.Error(t, err)

	_, err = NewTemporalCommitter(nil).Commit(context.Background(), ports.CommitRequest{Cart: domain.NewCart(1, "A")})
	require.Error(t, err)
}

func nonEmptyRequest(t *testing.T) ports.CommitRequest {
	t.Helper()
	cart := domain.NewCart(1, "Thabo Nkosi")
	line, err := domain.NewLine(7, "Brake Pad", "", decimal.NewFromInt(100), decimal.NewFromInt(60), 1)
	require.NoError(t, err)
	require.NoError(t, cart.Add(line, 5))
	return ports.CommitRequest{CommitID: "c-42", Cart: cart}
}

func TestTemporalCommitter_ReturnsWorkflowReceipt(t *testing.T) {
	temporalClient := &mocks.Client{}
	run := &mocks.WorkflowRun{}
	temporalClient.On("ExecuteWorkflow", mock.Anything, mock.MatchedBy(func(o client.StartWorkflowOptions) bool {
		return o.ID == "sales-checkout-c-42" && o.TaskQueue == salesworkflows.CheckoutTaskQueue
	}), mock.Anything, mock.Anything).Return(run, nil)
	run.On("Get", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		*args.Get(1).(*domain.Receipt) = domain.Receipt{Number: "20240315-004"}
	}).Return(nil)

	receipt, err := NewTemporalCommitter(temporalClient).Commit(context.Background(), nonEmptyRequest(t))
	require.NoError(t, err)
	require.Equal(t, "20240315-004", receipt.Number)
	temporalClient.AssertExpectations(t)
}

func TestTemporalCommitter_TranslatesWorkflowFailure(t *testing.T) {
	temporalClient := &mocks.Client{}
	run := &mocks.WorkflowRun{}
	conflicts := []domain.LineConflict{{Line: 1, PartID: 7, PartName: "Brake Pad", Requested: 1, Available: 0}}
	temporalClient.On("ExecuteWorkflow", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(run, nil)
	run.On("Get", mock.Anything, mock.Anything).Return(
		temporal.NewNonRetryableApplicationError("stock conflict", salesactivities.ErrTypeStockConflict, nil, conflicts))

	_, err := NewTemporalCommitter(temporalClient).Commit(context.Background(), nonEmptyRequest(t))
	var conflict *domain.StockConflictError
	require.ErrorAs(t, err, &conflict)
	require.Equal(t, conflicts, conflict.Conflicts)
}
