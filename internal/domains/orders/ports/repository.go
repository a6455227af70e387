package ports

import (
	"context"
	"errors"

	ordertypes "github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/orders/application/types"
	"github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/orders/domain"
)

var (
	// ErrNotFound signals a missing order or line item.
	ErrNotFound = errors.New("order not found")
	// ErrItemNotFound signals a missing line item.
	ErrItemNotFound = errors.New("order item not found")
)

// Repository persists the order aggregate, its line items, and the
// append-only status history.
type Repository interface {
	// CreateWithItems persists the order, its items, and the initial
	// history row as one transaction. Nothing is written on failure.
	CreateWithItems(ctx context.Context, order *domain.Order, items []*domain.Item) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	GetWithItems(ctx context.Context, id string) (*ordertypes.OrderWithItems, error)
	List(ctx context.Context, filters ordertypes.OrderFilters) ([]*domain.Order, error)
	// ListSellerItems returns every line item belonging to the seller,
	// each paired with its parent order, newest order first.
	ListSellerItems(ctx context.Context, sellerID string) ([]ordertypes.ItemWithOrder, error)
	// Update applies the patch and, when history is non-nil, appends the
	// history row in the same transaction.
	Update(ctx context.Context, orderID string, patch ordertypes.OrderPatch, history *domain.StatusHistory) (*domain.Order, error)
	GetItemByID(ctx context.Context, itemID string) (*domain.Item, error)
	UpdateItemStatus(ctx context.Context, itemID string, status domain.ItemStatus) (*domain.Item, error)
	ListHistory(ctx context.Context, orderID string) ([]*domain.StatusHistory, error)
	// FindDeliveredItem returns a line item for the product bought by the
	// customer whose parent order is delivered, or ErrItemNotFound.
	FindDeliveredItem(ctx context.Context, customerID, productID string) (*domain.Item, error)
}
