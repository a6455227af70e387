package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		name    string
		from    Status
		to      Status
		allowed bool
	}{
		{"assign", StatusPending, StatusAssigned, true},
		{"pickup skip", StatusPending, StatusPickedUp, true},
		{"picked up to delivered", StatusPickedUp, StatusDelivered, true},
		{"in transit to delivered", StatusInTransit, StatusDelivered, true},
		{"backward", StatusInTransit, StatusPickedUp, false},
		{"same", StatusAssigned, StatusAssigned, false},
		{"fail from transit", StatusInTransit, StatusFailed, true},
		{"cancel from pending", StatusPending, StatusCancelled, true},
		{"out of delivered", StatusDelivered, StatusInTransit, false},
		{"fail after delivered", StatusDelivered, StatusFailed, false},
		{"cancel after failed", StatusFailed, StatusCancelled, false},
		{"unknown", StatusPending, Status("teleported"), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.allowed, CanTransition(tc.from, tc.to))
		})
	}
}

func TestTransition_StampsPickupAndDeliveryTimes(t *testing.T) {
	at := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	delivery := &Delivery{Status: StatusAssigned}

	require.NoError(t, delivery.Transition(StatusPickedUp, at))
	require.NotNil(t, delivery.PickupTime)
	require.Equal(t, at, *delivery.PickupTime)
	require.Nil(t, delivery.DeliveryTime)

	later := at.Add(2 * time.Hour)
	require.NoError(t, delivery.Transition(StatusDelivered, later))
	require.Equal(t, at, *delivery.PickupTime)
	require.NotNil(t, delivery.DeliveryTime)
	require.Equal(t, later, *delivery.DeliveryTime)
}

func TestTransition_SkipStampsPickup(t *testing.T) {
	at := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	delivery := &Delivery{Status: StatusAssigned}

	// Jumping straight to in_transit still records when the parcel left.
	require.NoError(t, delivery.Transition(StatusInTransit, at))
	require.NotNil(t, delivery.PickupTime)
	require.Equal(t, at, *delivery.PickupTime)
}

func TestTransition_KeepsExistingStamps(t *testing.T) {
	reported := time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)
	at := reported.Add(time.Hour)
	delivery := &Delivery{Status: StatusAssigned, PickupTime: &reported}

	require.NoError(t, delivery.Transition(StatusPickedUp, at))
	require.Equal(t, reported, *delivery.PickupTime)
}

func TestAssign(t *testing.T) {
	delivery := &Delivery{Status: StatusPending}
	require.NoError(t, delivery.Assign("dist-1"))
	require.Equal(t, StatusAssigned, delivery.Status)
	require.Equal(t, "dist-1", *delivery.DistributorID)

	// Re-assignment before pickup is allowed.
	require.NoError(t, delivery.Assign("dist-2"))
	require.Equal(t, "dist-2", *delivery.DistributorID)

	delivery.Status = StatusPickedUp
	require.ErrorIs(t, delivery.Assign("dist-3"), ErrNotAssignable)
	require.Equal(t, "dist-2", *delivery.DistributorID)

	require.ErrorIs(t, (&Delivery{Status: StatusPending}).Assign(""), ErrEmptyDistributor)
}

func TestValidate(t *testing.T) {
	delivery := &Delivery{
		OrderID:          "order-1",
		Status:           StatusPending,
		Priority:         PriorityNormal,
		PickupLocation:   "Mwanza landing site",
		DeliveryLocation: "Ilemela market",
	}
	require.NoError(t, delivery.Validate())

	delivery.PickupLocation = ""
	require.ErrorIs(t, delivery.Validate(), ErrEmptyPickup)
}
