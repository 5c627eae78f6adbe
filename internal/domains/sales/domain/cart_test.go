package domain

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func line(t *testing.T, partID int64, name, price string, qty int) Line {
	t.Helper()
	l, err := NewLine(partID, name, "Toyota Hilux", decimal.RequireFromString(price), decimal.Zero, qty)
	require.NoError(t, err)
	return l
}

func TestNewLineRejectsNonPositiveQuantity(t *testing.T) {
	for _, qty := range []int{0, -1} {
		_, err := NewLine(1, "Brake Pad", "", decimal.NewFromInt(120), decimal.Zero, qty)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		require.Equal(t, "quantity", verr.Field)
		require.ErrorIs(t, err, ErrValidation)
	}
}

func TestCartAddComputesTotals(t *testing.T) {
	cart := NewCart(1, "Jane Doe")

	require.NoError(t, cart.Add(line(t, 1, "Brake Pad", "120.00", 3), 5))
	require.Equal(t, 3, cart.TotalQuantity)
	require.Equal(t, "360.00", cart.GrandTotal.StringFixed(2))

	require.NoError(t, cart.Add(line(t, 2, "Oil Filter", "45.00", 2), 10))
	require.Equal(t, 5, cart.TotalQuantity)
	require.Equal(t, "450.00", cart.GrandTotal.StringFixed(2))
}

func TestCartAddIsCumulativePerPart(t *testing.T) {
	cart := NewCart(1, "Jane Doe")
	require.NoError(t, cart.Add(line(t, 1, "Brake Pad", "120.00", 3), 5))

	err := cart.Add(line(t, 1, "Brake Pad", "120.00", 3), 5)
	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	require.ErrorIs(t, err, ErrInsufficientStock)
	require.Equal(t, 6, stockErr.Requested)
	require.Equal(t, 5, stockErr.Available)

	require.Len(t, cart.Lines, 1)
	require.Equal(t, "360.00", cart.GrandTotal.StringFixed(2))
}

func TestCartAddRejectsQuantityBeyondIntRange(t *testing.T) {
	cart := NewCart(1, "Jane Doe")
	require.NoError(t, cart.Add(line(t, 1, "Brake Pad", "120.00", 1), 5))

	err := cart.Add(line(t, 1, "Brake Pad", "120.00", math.MaxInt), 5)
	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	require.Equal(t, math.MaxInt, stockErr.Requested)
	require.Equal(t, 5, stockErr.Available)

	require.Len(t, cart.Lines, 1)
	require.Equal(t, 1, cart.TotalQuantity)
	require.Equal(t, "120.00", cart.GrandTotal.StringFixed(2))
}

func TestCartGrandTotalIsSumOfRoundedLines(t *testing.T) {
	cart := NewCart(1, "Jane Doe")
	require.NoError(t, cart.Add(line(t, 1, "Washer", "0.335", 1), 10))
	require.NoError(t, cart.Add(line(t, 2, "Clip", "0.335", 1), 10))

	// each line rounds to 0.34; rounding the unrounded sum would give 0.67
	require.Equal(t, "0.68", cart.GrandTotal.StringFixed(2))
}

func TestCartClearAndCustomerBinding(t *testing.T) {
	cart := NewCart(1, "Jane Doe")
	require.NoError(t, cart.Add(line(t, 1, "Brake Pad", "120.00", 1), 5))

	require.ErrorIs(t, cart.AssignCustomer(2, "John Doe"), ErrValidation)
	require.NoError(t, cart.AssignCustomer(1, "Jane Doe"))

	cart.Clear()
	require.True(t, cart.IsEmpty())
	require.Zero(t, cart.TotalQuantity)
	require.True(t, cart.GrandTotal.IsZero())

	require.NoError(t, cart.AssignCustomer(2, "John Doe"))
	require.EqualValues(t, 2, cart.CustomerID)
}

func TestCartCheckStockReportsEveryFailingLine(t *testing.T) {
	cart := NewCart(1, "Jane Doe")
	require.NoError(t, cart.Add(line(t, 2, "Oil Filter", "45", 2), 10))
	require.NoError(t, cart.Add(line(t, 1, "Brake Pad", "120", 3), 5))
	require.NoError(t, cart.Add(line(t, 1, "Brake Pad", "120", 2), 5))

	require.Empty(t, cart.CheckStock(map[int64]int{1: 5, 2: 2}))

	conflicts := cart.CheckStock(map[int64]int{1: 4, 2: 1})
	require.Equal(t, []LineConflict{
		{Line: 1, PartID: 2, PartName: "Oil Filter", Requested: 2, Available: 1},
		{Line: 3, PartID: 1, PartName: "Brake Pad", Requested: 2, Available: 1},
	}, conflicts)

	require.Equal(t, []int64{1, 2}, cart.PartIDs())
	require.Equal(t, map[int64]int{1: 5, 2: 2}, cart.Demand())
}

func TestCartCheckStockSaturatesConsumedQuantity(t *testing.T) {
	cart := NewCart(1, "Jane Doe")
	cart.Lines = []Line{
		{PartID: 1, PartName: "Brake Pad", Quantity: math.MaxInt},
		{PartID: 1, PartName: "Brake Pad", Quantity: math.MaxInt},
		{PartID: 1, PartName: "Brake Pad", Quantity: 1},
	}

	conflicts := cart.CheckStock(map[int64]int{1: 5})
	require.Len(t, conflicts, 3)
	require.Equal(t, 5, conflicts[0].Available)
	require.Zero(t, conflicts[1].Available)
	require.Zero(t, conflicts[2].Available)
}

func TestCartCloneIsIndependent(t *testing.T) {
	cart := NewCart(1, "Jane Doe")
	require.NoError(t, cart.Add(line(t, 1, "Brake Pad", "120", 1), 5))

	clone := cart.Clone()
	cart.Clear()
	require.Len(t, clone.Lines, 1)
}
