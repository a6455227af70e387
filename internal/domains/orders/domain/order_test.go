package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		name    string
		from    Status
		to      Status
		allowed bool
	}{
		{"forward step", StatusPending, StatusConfirmed, true},
		{"forward skip", StatusPending, StatusShipped, true},
		{"confirmed to delivered", StatusConfirmed, StatusDelivered, true},
		{"backward", StatusDelivered, StatusPending, false},
		{"backward mid chain", StatusShipped, StatusProcessing, false},
		{"same status", StatusPending, StatusPending, false},
		{"cancel from pending", StatusPending, StatusCancelled, true},
		{"cancel from shipped", StatusShipped, StatusCancelled, true},
		{"cancel from delivered", StatusDelivered, StatusCancelled, false},
		{"cancel from refunded", StatusRefunded, StatusCancelled, false},
		{"refund after delivery", StatusDelivered, StatusRefunded, true},
		{"refund after cancellation", StatusCancelled, StatusRefunded, true},
		{"refund from pending", StatusPending, StatusRefunded, false},
		{"out of cancelled", StatusCancelled, StatusConfirmed, false},
		{"unknown target", StatusPending, Status("lost"), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.allowed, CanTransition(tc.from, tc.to))
		})
	}
}

func TestTransition_AppliesStatus(t *testing.T) {
	order := &Order{Status: StatusPending}
	require.NoError(t, order.Transition(StatusProcessing))
	require.Equal(t, StatusProcessing, order.Status)

	err := order.Transition(StatusPending)
	require.ErrorIs(t, err, ErrInvalidTransition)
	require.Equal(t, StatusProcessing, order.Status)
}

func TestOrderValidate_TotalEquation(t *testing.T) {
	order := &Order{
		CustomerID:  "cust-1",
		Status:      StatusPending,
		Subtotal:    decimal.NewFromInt(100),
		ShippingFee: decimal.NewFromInt(10),
		Tax:         decimal.NewFromInt(5),
		Discount:    decimal.NewFromInt(15),
		Total:       decimal.NewFromInt(100),
	}
	require.NoError(t, order.Validate())

	order.Total = decimal.NewFromInt(99)
	require.ErrorIs(t, order.Validate(), ErrTotalMismatch)

	order.Total = decimal.NewFromInt(100)
	order.Discount = decimal.NewFromInt(-1)
	require.ErrorIs(t, order.Validate(), ErrNegativeAmount)
}

func TestItemValidate_RecomputesTotal(t *testing.T) {
	item := &Item{
		ProductID: "prod-1",
		SellerID:  "seller-1",
		Name:      "Fresh Tilapia",
		Quantity:  3,
		UnitPrice: decimal.RequireFromString("4.50"),
		// Caller-supplied totals are never trusted.
		TotalPrice: decimal.NewFromInt(999),
		Status:     ItemPending,
	}
	require.NoError(t, item.Validate())
	require.True(t, item.TotalPrice.Equal(decimal.RequireFromString("13.50")))
}

func TestItemValidate_Invariants(t *testing.T) {
	base := Item{
		ProductID: "prod-1",
		SellerID:  "seller-1",
		Name:      "Fresh Tilapia",
		Quantity:  1,
		UnitPrice: decimal.NewFromInt(5),
		Status:    ItemPending,
	}

	item := base
	item.Quantity = 0
	require.ErrorIs(t, item.Validate(), ErrInvalidQuantity)

	item = base
	item.UnitPrice = decimal.NewFromInt(-1)
	require.ErrorIs(t, item.Validate(), ErrNegativeUnitPrice)

	item = base
	item.Name = ""
	require.ErrorIs(t, item.Validate(), ErrEmptyItemName)
}

func TestCanTransitionItem_ForwardOnly(t *testing.T) {
	require.True(t, CanTransitionItem(ItemPending, ItemConfirmed))
	require.True(t, CanTransitionItem(ItemConfirmed, ItemDelivered))
	require.False(t, CanTransitionItem(ItemDelivered, ItemPending))
	require.False(t, CanTransitionItem(ItemPacked, ItemPacked))
}
