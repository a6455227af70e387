// Package memory provides in-memory order persistence for development and tests.
package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	ordertypes "github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/orders/application/types"
	"github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/orders/domain"
	"github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory order persistence adapter.
type Repository struct {
	mu      sync.RWMutex
	orders  map[string]*domain.Order
	items   map[string]*domain.Item
	history map[string][]*domain.StatusHistory
	now     func() time.Time
}

func NewRepository() *Repository {
	return &Repository{
		orders:  map[string]*domain.Order{},
		items:   map[string]*domain.Item{},
		history: map[string][]*domain.StatusHistory{},
		now:     time.Now,
	}
}

// WithClock overrides the time source for deterministic testing.
func (r *Repository) WithClock(now func() time.Time) {
	if now != nil {
		r.now = now
	}
}

func (r *Repository) CreateWithItems(_ context.Context, order *domain.Order, items []*domain.Item) (*domain.Order, error) {
	if order == nil {
		return nil, errors.New("order is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now().UTC()
	clone := *order
	clone.CreatedAt = now
	clone.UpdatedAt = now
	r.orders[clone.ID] = &clone
	for _, item := range items {
		itemClone := *item
		itemClone.OrderID = clone.ID
		itemClone.CreatedAt = now
		itemClone.UpdatedAt = now
		r.items[itemClone.ID] = &itemClone
	}
	r.history[clone.ID] = append(r.history[clone.ID], &domain.StatusHistory{
		ID:        clone.ID + "-h0",
		OrderID:   clone.ID,
		Status:    clone.Status,
		Notes:     "order placed",
		CreatedAt: now,
	})
	result := clone
	return &result, nil
}

func (r *Repository) GetByID(_ context.Context, id string) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *order
	return &clone, nil
}

func (r *Repository) GetWithItems(_ context.Context, id string) (*ordertypes.OrderWithItems, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *order
	view := &ordertypes.OrderWithItems{Order: &clone}
	for _, item := range r.items {
		if item.OrderID == id {
			itemClone := *item
			view.Items = append(view.Items, &itemClone)
		}
	}
	sort.Slice(view.Items, func(i, j int) bool { return view.Items[i].ID < view.Items[j].ID })
	return view, nil
}

func (r *Repository) List(_ context.Context, filters ordertypes.OrderFilters) ([]*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []*domain.Order
	for _, order := range r.orders {
		if filters.CustomerID != "" && order.CustomerID != filters.CustomerID {
			continue
		}
		if filters.Status != nil && order.Status != *filters.Status {
			continue
		}
		if filters.From != nil && order.CreatedAt.Before(*filters.From) {
			continue
		}
		if filters.To != nil && order.CreatedAt.After(*filters.To) {
			continue
		}
		clone := *order
		result = append(result, &clone)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	if filters.Limit > 0 && len(result) > filters.Limit {
		result = result[:filters.Limit]
	}
	return result, nil
}

func (r *Repository) ListSellerItems(_ context.Context, sellerID string) ([]ordertypes.ItemWithOrder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var rows []ordertypes.ItemWithOrder
	for _, item := range r.items {
		if item.SellerID != sellerID {
			continue
		}
		order, ok := r.orders[item.OrderID]
		if !ok {
			continue
		}
		itemClone := *item
		orderClone := *order
		rows = append(rows, ordertypes.ItemWithOrder{Item: &itemClone, Order: &orderClone})
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].Order.CreatedAt.Equal(rows[j].Order.CreatedAt) {
			return rows[i].Order.CreatedAt.After(rows[j].Order.CreatedAt)
		}
		return rows[i].Item.ID < rows[j].Item.ID
	})
	return rows, nil
}

func (r *Repository) Update(_ context.Context, orderID string, patch ordertypes.OrderPatch, history *domain.StatusHistory) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[orderID]
	if !ok {
		return nil, ports.ErrNotFound
	}
	if patch.Status != nil {
		order.Status = *patch.Status
	}
	if patch.PaymentStatus != nil {
		order.PaymentStatus = *patch.PaymentStatus
	}
	if patch.DistributorID != nil {
		order.DistributorID = patch.DistributorID
	}
	if patch.Notes != nil {
		order.Notes = *patch.Notes
	}
	order.UpdatedAt = r.now().UTC()
	if history != nil {
		clone := *history
		r.history[orderID] = append(r.history[orderID], &clone)
	}
	result := *order
	return &result, nil
}

func (r *Repository) GetItemByID(_ context.Context, itemID string) (*domain.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.items[itemID]
	if !ok {
		return nil, ports.ErrItemNotFound
	}
	clone := *item
	return &clone, nil
}

func (r *Repository) UpdateItemStatus(_ context.Context, itemID string, status domain.ItemStatus) (*domain.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[itemID]
	if !ok {
		return nil, ports.ErrItemNotFound
	}
	item.Status = status
	item.UpdatedAt = r.now().UTC()
	clone := *item
	return &clone, nil
}

func (r *Repository) ListHistory(_ context.Context, orderID string) ([]*domain.StatusHistory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rows := r.history[orderID]
	result := make([]*domain.StatusHistory, 0, len(rows))
	for _, row := range rows {
		clone := *row
		result = append(result, &clone)
	}
	return result, nil
}

func (r *Repository) FindDeliveredItem(_ context.Context, customerID, productID string) (*domain.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, item := range r.items {
		if item.ProductID != productID {
			continue
		}
		order, ok := r.orders[item.OrderID]
		if !ok || order.CustomerID != customerID || order.Status != domain.StatusDelivered {
			continue
		}
		clone := *item
		return &clone, nil
	}
	return nil, ports.ErrItemNotFound
}
