package sales

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/testsuite"
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/autoparts-pos/internal/domains/sales/domain"
	"github.com/Apurer/autoparts-pos/internal/domains/sales/ports"
	salesactivities "github.com/Apurer/autoparts-pos/internal/platform/temporal/activities/sales"
)

type scriptedCommitter struct {
	calls    atomic.Int32
	failures []error
}

func (c *scriptedCommitter) Commit(_ context.Context, req ports.CommitRequest) (*domain.Receipt, error) {
	n := int(c.calls.Add(1))
	if n <= len(c.failures) {
		return nil, c.failures[n-1]
	}
	return domain.NewReceipt("20240315-001", time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC), req.Cart), nil
}

func newEnv(t *testing.T, committer ports.SaleCommitter) *testsuite.TestWorkflowEnvironment {
	t.Helper()
	var ts testsuite.WorkflowTestSuite
	env := ts.NewTestWorkflowEnvironment()
	env.RegisterWorkflowWithOptions(CheckoutWorkflow, workflow.RegisterOptions{Name: CheckoutWorkflowName})
	env.RegisterActivityWithOptions(salesactivities.NewActivities(committer).CommitSale, activity.RegisterOptions{Name: salesactivities.CommitSaleActivityName})
	return env
}

func sampleRequest(t *testing.T) ports.CommitRequest {
	t.Helper()
	cart := domain.NewCart(1, "Thabo Nkosi")
	line, err := domain.NewLine(7, "Brake Pad", "Toyota Hilux", decimal.RequireFromString("450.00"), decimal.NewFromInt(300), 2)
	require.NoError(t, err)
	require.NoError(t, cart.Add(line, 10))
	return ports.CommitRequest{CommitID: "commit-1", Cart: cart}
}

func TestCheckoutWorkflow_ReturnsReceipt(t *testing.T) {
	committer := &scriptedCommitter{}
	env := newEnv(t, committer)

	env.ExecuteWorkflow(CheckoutWorkflowName, CheckoutWorkflowInput{Request: sampleRequest(t)})

	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())
	var receipt domain.Receipt
	require.NoError(t, env.GetWorkflowResult(&receipt))
	require.Equal(t, "20240315-001", receipt.Number)
	require.True(t, receipt.GrandTotal.Equal(decimal.NewFromInt(900)))
	require.Len(t, receipt.Lines, 1)
}

func TestCheckoutWorkflow_RetriesInfrastructureFailures(t *testing.T) {
	committer := &scriptedCommitter{failures: []error{
		&domain.PersistenceError{Op: "commit sale", Err: errors.New("connection reset")},
		&domain.PersistenceError{Op: "commit sale", Err: errors.New("connection reset")},
	}}
	env := newEnv(t, committer)

	env.ExecuteWorkflow(CheckoutWorkflowName, CheckoutWorkflowInput{Request: sampleRequest(t)})

	require.NoError(t, env.GetWorkflowError())
	require.EqualValues(t, 3, committer.calls.Load())
}

func TestCheckoutWorkflow_StockConflictIsFinal(t *testing.T) {
	conflicts := []domain.LineConflict{{Line: 1, PartID: 7, PartName: "Brake Pad", Requested: 2, Available: 1}}
	committer := &scriptedCommitter{failures: []error{&domain.StockConflictError{Conflicts: conflicts}}}
	env := newEnv(t, committer)

	env.ExecuteWorkflow(CheckoutWorkflowName, CheckoutWorkflowInput{Request: sampleRequest(t)})

	wfErr := env.GetWorkflowError()
	require.Error(t, wfErr)
	require.EqualValues(t, 1, committer.calls.Load())

	var conflict *domain.StockConflictError
	require.ErrorAs(t, salesactivities.FromError(wfErr), &conflict)
	require.Equal(t, conflicts, conflict.Conflicts)
}

func TestCheckoutWorkflow_EmptyCartIsFinal(t *testing.T) {
	committer := &scriptedCommitter{failures: []error{domain.ErrEmptyCart}}
	env := newEnv(t, committer)

	env.ExecuteWorkflow(CheckoutWorkflowName, CheckoutWorkflowInput{Request: sampleRequest(t)})

	require.ErrorIs(t, salesactivities.FromError(env.GetWorkflowError()), domain.ErrEmptyCart)
	require.EqualValues(t, 1, committer.calls.Load())
}
