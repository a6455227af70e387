package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/orders/ports"
)

func newTestStore(t *testing.T) (*IdempotencyStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewIdempotencyStore(client, time.Hour), mr
}

func TestSaveAndGet(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	record := ports.IdempotencyRecord{Key: "checkout-1", RequestHash: "hash-a", OrderID: "order-1"}
	saved, err := store.Save(ctx, record)
	require.NoError(t, err)
	require.Equal(t, "order-1", saved.OrderID)
	require.False(t, saved.CreatedAt.IsZero())

	got, err := store.Get(ctx, "checkout-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, "hash-a", got.RequestHash)
	require.Equal(t, "order-1", got.OrderID)
}

func TestGet_MissingKey(t *testing.T) {
	store, _ := newTestStore(t)

	got, err := store.Get(context.Background(), "unknown")
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestSave_SamePayloadReturnsStored(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	record := ports.IdempotencyRecord{Key: "checkout-1", RequestHash: "hash-a", OrderID: "order-1"}
	_, err := store.Save(ctx, record)
	require.NoError(t, err)

	replay, err := store.Save(ctx, record)
	require.NoError(t, err)
	require.Equal(t, "order-1", replay.OrderID)
}

func TestSave_ConflictingPayload(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	_, err := store.Save(ctx, ports.IdempotencyRecord{Key: "checkout-1", RequestHash: "hash-a", OrderID: "order-1"})
	require.NoError(t, err)

	stored, err := store.Save(ctx, ports.IdempotencyRecord{Key: "checkout-1", RequestHash: "hash-b", OrderID: "order-2"})
	require.ErrorIs(t, err, ports.ErrIdempotencyConflict)
	require.NotNil(t, stored)
	require.Equal(t, "order-1", stored.OrderID)
}

func TestSave_ExpiredKeyIsReusable(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	_, err := store.Save(ctx, ports.IdempotencyRecord{Key: "checkout-1", RequestHash: "hash-a", OrderID: "order-1"})
	require.NoError(t, err)

	mr.FastForward(2 * time.Hour)

	saved, err := store.Save(ctx, ports.IdempotencyRecord{Key: "checkout-1", RequestHash: "hash-b", OrderID: "order-2"})
	require.NoError(t, err)
	require.Equal(t, "order-2", saved.OrderID)
}
