package ports

import (
	"context"

	ordertypes "github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/orders/application/types"
	"github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/orders/domain"
)

// Service exposes order workflow use cases to adapters. Mutating calls take
// the acting principal explicitly; a nil actor records a system-initiated
// transition.
type Service interface {
	CreateOrder(ctx context.Context, input ordertypes.CreateOrderInput) (*domain.Order, error)
	GetOrder(ctx context.Context, id string) (*ordertypes.OrderWithItems, error)
	ListOrders(ctx context.Context, filters ordertypes.OrderFilters) ([]*domain.Order, error)
	// GetSellerOrders reconstructs one order view per distinct order the
	// seller participates in, carrying only that seller's items.
	GetSellerOrders(ctx context.Context, sellerID string) ([]*ordertypes.OrderWithItems, error)
	UpdateOrder(ctx context.Context, orderID string, patch ordertypes.OrderPatch, actorID *string) (*domain.Order, error)
	UpdateOrderItemStatus(ctx context.Context, itemID string, status domain.ItemStatus) (*domain.Item, error)
	CancelOrder(ctx context.Context, orderID, reason string, actorID *string) (*domain.Order, error)
	GetSellerOrderStats(ctx context.Context, sellerID string) (*ordertypes.SellerOrderStats, error)
	GetOrderHistory(ctx context.Context, orderID string) ([]*domain.StatusHistory, error)
	// VerifyDeliveredPurchase backs the review eligibility check of the
	// reviews context.
	VerifyDeliveredPurchase(ctx context.Context, customerID, productID string) (*domain.Item, error)
}
