package ports

import (
	"context"

	deliverytypes "github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/deliveries/application/types"
	"github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/deliveries/domain"
)

// Service exposes the delivery assignment use cases.
type Service interface {
	CreateDelivery(ctx context.Context, input deliverytypes.CreateDeliveryInput) (*domain.Delivery, error)
	GetDelivery(ctx context.Context, id string) (*domain.Delivery, error)
	GetDeliveryByOrder(ctx context.Context, orderID string) (*domain.Delivery, error)
	AssignDelivery(ctx context.Context, deliveryID, distributorID string) (*domain.Delivery, error)
	UpdateDeliveryStatus(ctx context.Context, deliveryID string, input deliverytypes.StatusUpdateInput) (*domain.Delivery, error)
	GetPendingDeliveries(ctx context.Context) ([]*domain.Delivery, error)
	GetDistributorDeliveries(ctx context.Context, distributorID string) ([]*domain.Delivery, error)
	GetDistributorStats(ctx context.Context, distributorID string) (*deliverytypes.DistributorStats, error)
	TrackDeliveryLocation(ctx context.Context, deliveryID string, input deliverytypes.TrackingInput) (*domain.TrackingPoint, error)
	GetDeliveryTracking(ctx context.Context, deliveryID string) ([]*domain.TrackingPoint, error)
}
