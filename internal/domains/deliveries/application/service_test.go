package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	deliverymemory "github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/deliveries/adapters/memory"
	deliverytypes "github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/deliveries/application/types"
	"github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/deliveries/domain"
)

func deliveryInput(orderID string, priority domain.Priority) deliverytypes.CreateDeliveryInput {
	return deliverytypes.CreateDeliveryInput{
		OrderID:          orderID,
		Priority:         priority,
		PickupLocation:   "Mwanza landing site",
		DeliveryLocation: "Ilemela market",
	}
}

func TestCreateDelivery(t *testing.T) {
	svc := NewService(deliverymemory.NewRepository())

	delivery, err := svc.CreateDelivery(context.Background(), deliveryInput("order-1", ""))
	require.NoError(t, err)
	require.Regexp(t, `^DLV-\d{8}-[0-9A-F]{8}$`, delivery.DeliveryNumber)
	require.Equal(t, domain.StatusPending, delivery.Status)
	require.Equal(t, domain.PriorityNormal, delivery.Priority)
	require.Nil(t, delivery.DistributorID)
}

func TestCreateDelivery_DuplicateOrder(t *testing.T) {
	svc := NewService(deliverymemory.NewRepository())
	ctx := context.Background()

	_, err := svc.CreateDelivery(ctx, deliveryInput("order-1", domain.PriorityNormal))
	require.NoError(t, err)

	_, err = svc.CreateDelivery(ctx, deliveryInput("order-1", domain.PriorityHigh))
	require.ErrorIs(t, err, ErrConflict)
}

func TestCreateDelivery_InvalidInput(t *testing.T) {
	svc := NewService(deliverymemory.NewRepository())

	input := deliveryInput("order-1", domain.Priority("whenever"))
	_, err := svc.CreateDelivery(context.Background(), input)
	require.ErrorIs(t, err, ErrInvalidInput)

	input = deliveryInput("", domain.PriorityNormal)
	_, err = svc.CreateDelivery(context.Background(), input)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestAssignDelivery(t *testing.T) {
	svc := NewService(deliverymemory.NewRepository())
	ctx := context.Background()

	delivery, err := svc.CreateDelivery(ctx, deliveryInput("order-1", domain.PriorityNormal))
	require.NoError(t, err)

	assigned, err := svc.AssignDelivery(ctx, delivery.ID, "dist-1")
	require.NoError(t, err)
	require.Equal(t, domain.StatusAssigned, assigned.Status)
	require.Equal(t, "dist-1", *assigned.DistributorID)

	// Re-assignment before pickup replaces the distributor.
	reassigned, err := svc.AssignDelivery(ctx, delivery.ID, "dist-2")
	require.NoError(t, err)
	require.Equal(t, "dist-2", *reassigned.DistributorID)

	_, err = svc.UpdateDeliveryStatus(ctx, delivery.ID, deliverytypes.StatusUpdateInput{Status: domain.StatusPickedUp})
	require.NoError(t, err)

	_, err = svc.AssignDelivery(ctx, delivery.ID, "dist-3")
	require.ErrorIs(t, err, ErrInvalidTransition)
}

func TestUpdateDeliveryStatus_DirectDeliveredStampsBoth(t *testing.T) {
	svc := NewService(deliverymemory.NewRepository())
	now := time.Date(2025, 6, 1, 14, 0, 0, 0, time.UTC)
	svc.WithClock(func() time.Time { return now })
	ctx := context.Background()

	delivery, err := svc.CreateDelivery(ctx, deliveryInput("order-1", domain.PriorityNormal))
	require.NoError(t, err)
	_, err = svc.AssignDelivery(ctx, delivery.ID, "dist-1")
	require.NoError(t, err)
	_, err = svc.UpdateDeliveryStatus(ctx, delivery.ID, deliverytypes.StatusUpdateInput{Status: domain.StatusPickedUp})
	require.NoError(t, err)

	// picked_up straight to delivered, skipping in_transit.
	updated, err := svc.UpdateDeliveryStatus(ctx, delivery.ID, deliverytypes.StatusUpdateInput{Status: domain.StatusDelivered})
	require.NoError(t, err)
	require.Equal(t, domain.StatusDelivered, updated.Status)
	require.NotNil(t, updated.PickupTime)
	require.NotNil(t, updated.DeliveryTime)
	require.Equal(t, now, *updated.DeliveryTime)
}

func TestUpdateDeliveryStatus_CallerTimestampsWin(t *testing.T) {
	svc := NewService(deliverymemory.NewRepository())
	now := time.Date(2025, 6, 1, 14, 0, 0, 0, time.UTC)
	svc.WithClock(func() time.Time { return now })
	ctx := context.Background()

	delivery, err := svc.CreateDelivery(ctx, deliveryInput("order-1", domain.PriorityNormal))
	require.NoError(t, err)
	_, err = svc.AssignDelivery(ctx, delivery.ID, "dist-1")
	require.NoError(t, err)

	reported := now.Add(-30 * time.Minute)
	proof := "photo-123.jpg"
	updated, err := svc.UpdateDeliveryStatus(ctx, delivery.ID, deliverytypes.StatusUpdateInput{
		Status:          domain.StatusDelivered,
		PickupTime:      &reported,
		ProofOfDelivery: &proof,
	})
	require.NoError(t, err)
	require.Equal(t, reported, *updated.PickupTime)
	require.Equal(t, now, *updated.DeliveryTime)
	require.Equal(t, proof, *updated.ProofOfDelivery)
}

func TestUpdateDeliveryStatus_TerminalRejectsFurtherMoves(t *testing.T) {
	svc := NewService(deliverymemory.NewRepository())
	ctx := context.Background()

	delivery, err := svc.CreateDelivery(ctx, deliveryInput("order-1", domain.PriorityNormal))
	require.NoError(t, err)
	_, err = svc.UpdateDeliveryStatus(ctx, delivery.ID, deliverytypes.StatusUpdateInput{Status: domain.StatusCancelled})
	require.NoError(t, err)

	_, err = svc.UpdateDeliveryStatus(ctx, delivery.ID, deliverytypes.StatusUpdateInput{Status: domain.StatusAssigned})
	require.ErrorIs(t, err, ErrInvalidTransition)
}

func TestGetPendingDeliveries_PriorityThenFIFO(t *testing.T) {
	repo := deliverymemory.NewRepository()
	base := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	tick := 0
	repo.WithClock(func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	})
	svc := NewService(repo)
	ctx := context.Background()

	normalFirst, err := svc.CreateDelivery(ctx, deliveryInput("order-1", domain.PriorityNormal))
	require.NoError(t, err)
	urgent, err := svc.CreateDelivery(ctx, deliveryInput("order-2", domain.PriorityUrgent))
	require.NoError(t, err)
	high, err := svc.CreateDelivery(ctx, deliveryInput("order-3", domain.PriorityHigh))
	require.NoError(t, err)
	normalSecond, err := svc.CreateDelivery(ctx, deliveryInput("order-4", domain.PriorityNormal))
	require.NoError(t, err)

	// Assigned deliveries leave the queue.
	assigned, err := svc.CreateDelivery(ctx, deliveryInput("order-5", domain.PriorityUrgent))
	require.NoError(t, err)
	_, err = svc.AssignDelivery(ctx, assigned.ID, "dist-1")
	require.NoError(t, err)

	queue, err := svc.GetPendingDeliveries(ctx)
	require.NoError(t, err)
	require.Len(t, queue, 4)
	require.Equal(t, urgent.ID, queue[0].ID)
	require.Equal(t, high.ID, queue[1].ID)
	require.Equal(t, normalFirst.ID, queue[2].ID)
	require.Equal(t, normalSecond.ID, queue[3].ID)
}

func TestGetDistributorStats(t *testing.T) {
	svc := NewService(deliverymemory.NewRepository())
	ctx := context.Background()

	advance := func(orderID string, statuses ...domain.Status) {
		t.Helper()
		delivery, err := svc.CreateDelivery(ctx, deliveryInput(orderID, domain.PriorityNormal))
		require.NoError(t, err)
		_, err = svc.AssignDelivery(ctx, delivery.ID, "dist-1")
		require.NoError(t, err)
		for _, status := range statuses {
			_, err = svc.UpdateDeliveryStatus(ctx, delivery.ID, deliverytypes.StatusUpdateInput{Status: status})
			require.NoError(t, err)
		}
	}

	advance("order-1")
	advance("order-2", domain.StatusPickedUp)
	advance("order-3", domain.StatusPickedUp, domain.StatusInTransit)
	advance("order-4", domain.StatusPickedUp, domain.StatusInTransit, domain.StatusDelivered)
	advance("order-5", domain.StatusFailed)
	advance("order-6", domain.StatusCancelled)

	stats, err := svc.GetDistributorStats(ctx, "dist-1")
	require.NoError(t, err)
	require.Equal(t, 6, stats.Total)
	require.Equal(t, 1, stats.Pending)
	require.Equal(t, 2, stats.Active)
	require.Equal(t, 1, stats.Completed)
	require.Equal(t, 2, stats.Failed)
}

func TestTrackDeliveryLocation(t *testing.T) {
	svc := NewService(deliverymemory.NewRepository())
	ctx := context.Background()

	delivery, err := svc.CreateDelivery(ctx, deliveryInput("order-1", domain.PriorityNormal))
	require.NoError(t, err)

	first, err := svc.TrackDeliveryLocation(ctx, delivery.ID, deliverytypes.TrackingInput{Lat: -2.516, Lng: 32.903})
	require.NoError(t, err)
	require.NotEmpty(t, first.ID)

	_, err = svc.TrackDeliveryLocation(ctx, delivery.ID, deliverytypes.TrackingInput{Lat: -2.520, Lng: 32.910, Notes: "leaving port"})
	require.NoError(t, err)

	trail, err := svc.GetDeliveryTracking(ctx, delivery.ID)
	require.NoError(t, err)
	require.Len(t, trail, 2)
	require.Equal(t, first.ID, trail[0].ID)

	_, err = svc.TrackDeliveryLocation(ctx, "missing", deliverytypes.TrackingInput{Lat: 0, Lng: 0})
	require.Error(t, err)
}
