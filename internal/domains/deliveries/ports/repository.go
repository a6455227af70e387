package ports

import (
	"context"
	"errors"
	"time"

	"github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/deliveries/domain"
)

var (
	// ErrNotFound signals the delivery does not exist.
	ErrNotFound = errors.New("delivery not found")
	// ErrDuplicateOrder signals a delivery already exists for the order.
	ErrDuplicateOrder = errors.New("delivery already exists for order")
)

// Repository persists deliveries and their tracking trail.
type Repository interface {
	// Create persists a new delivery. Each order carries at most one
	// delivery; a second create for the same order fails with
	// ErrDuplicateOrder.
	Create(ctx context.Context, delivery *domain.Delivery) (*domain.Delivery, error)
	GetByID(ctx context.Context, id string) (*domain.Delivery, error)
	GetByOrderID(ctx context.Context, orderID string) (*domain.Delivery, error)
	// Update overwrites the mutable fields of the delivery.
	Update(ctx context.Context, delivery *domain.Delivery) (*domain.Delivery, error)
	// ListPending returns unassigned deliveries ordered by priority
	// descending, then creation time ascending.
	ListPending(ctx context.Context) ([]*domain.Delivery, error)
	ListByDistributor(ctx context.Context, distributorID string) ([]*domain.Delivery, error)
	// AppendTracking appends one sample to the delivery's location trail.
	AppendTracking(ctx context.Context, point *domain.TrackingPoint) (*domain.TrackingPoint, error)
	// ListTracking returns the full trail ordered by recording time.
	ListTracking(ctx context.Context, deliveryID string) ([]*domain.TrackingPoint, error)
	// PurgeTrackingBefore removes samples recorded before the cutoff for
	// deliveries that reached a terminal state. Returns rows removed.
	PurgeTrackingBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
