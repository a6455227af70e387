//go:build integration
// +build integration

// To enable gopls support for this file, add the following to your VSCode settings.json:
// "gopls": {
//   "buildFlags": ["-tags=integration"]
// }

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/deliveries/domain"
	"github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/deliveries/ports"
	"github.com/civicGenAi/tanzania-fish-hub-sub001/internal/platform/migrations"
)

func setupPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.Run(ctx, "postgres:15-alpine",
		tcpostgres.WithDatabase("fishhub_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		tcpostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, migrations.Run(db))

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		pgContainer.Terminate(ctx)
	}

	return db, cleanup
}

func newDelivery(orderID string, priority domain.Priority) *domain.Delivery {
	return &domain.Delivery{
		ID:               uuid.New().String(),
		DeliveryNumber:   "DLV-20250601-" + uuid.New().String()[:8],
		OrderID:          orderID,
		Status:           domain.StatusPending,
		Priority:         priority,
		PickupLocation:   "Mwanza landing site",
		DeliveryLocation: "Ilemela market",
	}
}

func TestPostgresRepository_CreateAndDuplicateOrder(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, newDelivery("order-1", domain.PriorityNormal))
	require.NoError(t, err)
	assert.False(t, created.CreatedAt.IsZero())

	_, err = repo.Create(ctx, newDelivery("order-1", domain.PriorityHigh))
	assert.ErrorIs(t, err, ports.ErrDuplicateOrder)

	byOrder, err := repo.GetByOrderID(ctx, "order-1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byOrder.ID)
}

func TestPostgresRepository_ListPendingPriorityOrdering(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	normalFirst, err := repo.Create(ctx, newDelivery("order-1", domain.PriorityNormal))
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)
	urgent, err := repo.Create(ctx, newDelivery("order-2", domain.PriorityUrgent))
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)
	high, err := repo.Create(ctx, newDelivery("order-3", domain.PriorityHigh))
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)
	normalSecond, err := repo.Create(ctx, newDelivery("order-4", domain.PriorityNormal))
	require.NoError(t, err)

	// An assigned delivery leaves the queue.
	assigned, err := repo.Create(ctx, newDelivery("order-5", domain.PriorityUrgent))
	require.NoError(t, err)
	require.NoError(t, assigned.Assign("dist-1"))
	_, err = repo.Update(ctx, assigned)
	require.NoError(t, err)

	queue, err := repo.ListPending(ctx)
	require.NoError(t, err)
	require.Len(t, queue, 4)
	assert.Equal(t, urgent.ID, queue[0].ID)
	assert.Equal(t, high.ID, queue[1].ID)
	assert.Equal(t, normalFirst.ID, queue[2].ID)
	assert.Equal(t, normalSecond.ID, queue[3].ID)
}

func TestPostgresRepository_TrackingAndPurge(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	active, err := repo.Create(ctx, newDelivery("order-1", domain.PriorityNormal))
	require.NoError(t, err)
	finished, err := repo.Create(ctx, newDelivery("order-2", domain.PriorityNormal))
	require.NoError(t, err)
	require.NoError(t, finished.Transition(domain.StatusDelivered, time.Now().UTC()))
	_, err = repo.Update(ctx, finished)
	require.NoError(t, err)

	old := time.Now().UTC().Add(-48 * time.Hour)
	for _, deliveryID := range []string{active.ID, finished.ID} {
		_, err = repo.AppendTracking(ctx, &domain.TrackingPoint{
			ID:         uuid.New().String(),
			DeliveryID: deliveryID,
			Lat:        -2.516,
			Lng:        32.903,
			RecordedAt: old,
		})
		require.NoError(t, err)
		_, err = repo.AppendTracking(ctx, &domain.TrackingPoint{
			ID:         uuid.New().String(),
			DeliveryID: deliveryID,
			Lat:        -2.520,
			Lng:        32.910,
			RecordedAt: time.Now().UTC(),
		})
		require.NoError(t, err)
	}

	// Only terminal deliveries lose old samples.
	purged, err := repo.PurgeTrackingBefore(ctx, time.Now().UTC().Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)

	activeTrail, err := repo.ListTracking(ctx, active.ID)
	require.NoError(t, err)
	assert.Len(t, activeTrail, 2)

	finishedTrail, err := repo.ListTracking(ctx, finished.ID)
	require.NoError(t, err)
	assert.Len(t, finishedTrail, 1)
}
