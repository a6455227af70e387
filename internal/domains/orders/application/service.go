package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	ordertypes "github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/orders/application/types"
	"github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/orders/domain"
	"github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/orders/ports"
)

// Service orchestrates the order workflow use cases.
type Service struct {
	repo      ports.Repository
	publisher ports.EventPublisher
	idemStore ports.IdempotencyStore
	now       func() time.Time
}

// Option configures optional service collaborators.
type Option func(*Service)

// WithPublisher wires the order event publisher.
func WithPublisher(publisher ports.EventPublisher) Option {
	return func(s *Service) { s.publisher = publisher }
}

// WithIdempotencyStore wires the checkout idempotency store.
func WithIdempotencyStore(store ports.IdempotencyStore) Option {
	return func(s *Service) { s.idemStore = store }
}

// NewService wires the orders service with its dependencies.
func NewService(repo ports.Repository, opts ...Option) *Service {
	s := &Service{repo: repo, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// CreateOrder validates the checkout command and persists the order with its
// line items in one transaction. Item totals are always recomputed from
// quantity and unit price; the order total equation is enforced before any
// write happens.
func (s *Service) CreateOrder(ctx context.Context, input ordertypes.CreateOrderInput) (*domain.Order, error) {
	if len(input.Items) == 0 {
		return nil, mapError(domain.ErrNoItems)
	}

	replay, fingerprint, err := s.replayIdempotent(ctx, input)
	if err != nil {
		return nil, err
	}
	if replay != nil {
		return replay, nil
	}

	now := s.now().UTC()
	order := &domain.Order{
		ID:                uuid.New().String(),
		OrderNumber:       newOrderNumber(now),
		CustomerID:        input.CustomerID,
		Status:            domain.StatusPending,
		PaymentStatus:     domain.PaymentPending,
		PaymentMethod:     input.PaymentMethod,
		Subtotal:          input.Pricing.Subtotal,
		ShippingFee:       input.Pricing.ShippingFee,
		Tax:               input.Pricing.Tax,
		Discount:          input.Pricing.Discount,
		Total:             input.Pricing.Total,
		Notes:             input.Notes,
		ShippingAddressID: input.ShippingAddressID,
	}
	if err := order.Validate(); err != nil {
		return nil, mapError(err)
	}

	items := make([]*domain.Item, 0, len(input.Items))
	for _, in := range input.Items {
		item := &domain.Item{
			ID:        uuid.New().String(),
			OrderID:   order.ID,
			ProductID: in.ProductID,
			VariantID: in.VariantID,
			SellerID:  in.SellerID,
			Name:      in.Name,
			Quantity:  in.Quantity,
			UnitPrice: in.UnitPrice,
			Status:    domain.ItemPending,
		}
		if err := item.Validate(); err != nil {
			return nil, mapError(err)
		}
		items = append(items, item)
	}

	saved, err := s.repo.CreateWithItems(ctx, order, items)
	if err != nil {
		return nil, err
	}

	if stored, err := s.rememberIdempotent(ctx, input.IdempotencyKey, fingerprint, saved.ID); err != nil {
		return nil, err
	} else if stored != nil {
		return stored, nil
	}

	// Event publication is best effort; the order is already committed.
	if s.publisher != nil {
		_ = s.publisher.OrderPlaced(ctx, orderEvent(saved, s.now()))
	}
	return saved, nil
}

// GetOrder loads an order with all of its line items.
func (s *Service) GetOrder(ctx context.Context, id string) (*ordertypes.OrderWithItems, error) {
	return s.repo.GetWithItems(ctx, id)
}

// ListOrders returns orders matching the filters, newest first.
func (s *Service) ListOrders(ctx context.Context, filters ordertypes.OrderFilters) ([]*domain.Order, error) {
	return s.repo.List(ctx, filters)
}

// GetSellerOrders groups the seller's line items by parent order, client
// side, so each returned order carries only that seller's items. Orders keep
// their creation-time descending ordering.
func (s *Service) GetSellerOrders(ctx context.Context, sellerID string) ([]*ordertypes.OrderWithItems, error) {
	rows, err := s.repo.ListSellerItems(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	grouped := make(map[string]*ordertypes.OrderWithItems, len(rows))
	result := make([]*ordertypes.OrderWithItems, 0, len(rows))
	for _, row := range rows {
		view, ok := grouped[row.Order.ID]
		if !ok {
			view = &ordertypes.OrderWithItems{Order: row.Order}
			grouped[row.Order.ID] = view
			result = append(result, view)
		}
		view.Items = append(view.Items, row.Item)
	}
	return result, nil
}

// UpdateOrder applies a partial update. When the patch carries a status the
// transition is validated against the order state machine and exactly one
// history row is appended in the same transaction, attributed to actorID
// (nil records a system transition).
func (s *Service) UpdateOrder(ctx context.Context, orderID string, patch ordertypes.OrderPatch, actorID *string) (*domain.Order, error) {
	var history *domain.StatusHistory
	if patch.Status != nil {
		current, err := s.repo.GetByID(ctx, orderID)
		if err != nil {
			return nil, err
		}
		if err := current.Transition(*patch.Status); err != nil {
			return nil, mapError(err)
		}
		history = &domain.StatusHistory{
			ID:        uuid.New().String(),
			OrderID:   orderID,
			Status:    *patch.Status,
			Notes:     patch.StatusNotes,
			ActorID:   actorID,
			CreatedAt: s.now().UTC(),
		}
	}
	updated, err := s.repo.Update(ctx, orderID, patch, history)
	if err != nil {
		return nil, err
	}
	if history != nil && s.publisher != nil {
		_ = s.publisher.OrderStatusChanged(ctx, orderEvent(updated, s.now()))
	}
	return updated, nil
}

// UpdateOrderItemStatus moves a single line item along its lifecycle,
// independent of the parent order status.
func (s *Service) UpdateOrderItemStatus(ctx context.Context, itemID string, status domain.ItemStatus) (*domain.Item, error) {
	if !domain.IsValidItemStatus(status) {
		return nil, mapError(domain.ErrInvalidItemStatus)
	}
	item, err := s.repo.GetItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if !domain.CanTransitionItem(item.Status, status) {
		return nil, mapError(domain.ErrInvalidTransition)
	}
	return s.repo.UpdateItemStatus(ctx, itemID, status)
}

// CancelOrder sets the order to cancelled with the reason as history note.
func (s *Service) CancelOrder(ctx context.Context, orderID, reason string, actorID *string) (*domain.Order, error) {
	status := domain.StatusCancelled
	return s.UpdateOrder(ctx, orderID, ordertypes.OrderPatch{Status: &status, StatusNotes: reason}, actorID)
}

// GetSellerOrderStats scans the seller's line items and buckets them by
// parent order status. Only delivered orders accumulate revenue; items on
// shipped, cancelled, or refunded orders count toward the total bucket only.
func (s *Service) GetSellerOrderStats(ctx context.Context, sellerID string) (*ordertypes.SellerOrderStats, error) {
	rows, err := s.repo.ListSellerItems(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	stats := &ordertypes.SellerOrderStats{Revenue: decimal.Zero}
	for _, row := range rows {
		stats.Total++
		switch row.Order.Status {
		case domain.StatusPending:
			stats.Pending++
		case domain.StatusProcessing, domain.StatusConfirmed:
			stats.Processing++
		case domain.StatusDelivered:
			stats.Completed++
			stats.Revenue = stats.Revenue.Add(row.Item.TotalPrice)
		}
	}
	return stats, nil
}

// GetOrderHistory returns the append-only status trail, oldest first.
func (s *Service) GetOrderHistory(ctx context.Context, orderID string) ([]*domain.StatusHistory, error) {
	return s.repo.ListHistory(ctx, orderID)
}

// VerifyDeliveredPurchase returns a delivered line item for the customer and
// product, or ports.ErrItemNotFound when no qualifying purchase exists.
func (s *Service) VerifyDeliveredPurchase(ctx context.Context, customerID, productID string) (*domain.Item, error) {
	return s.repo.FindDeliveredItem(ctx, customerID, productID)
}

func (s *Service) replayIdempotent(ctx context.Context, input ordertypes.CreateOrderInput) (*domain.Order, string, error) {
	key := strings.TrimSpace(input.IdempotencyKey)
	if key == "" || s.idemStore == nil {
		return nil, "", nil
	}
	fingerprint, err := FingerprintCreateOrder(input)
	if err != nil {
		return nil, "", err
	}
	record, err := s.idemStore.Get(ctx, key)
	if err != nil {
		return nil, "", err
	}
	if record == nil {
		return nil, fingerprint, nil
	}
	if record.RequestHash != fingerprint {
		return nil, "", fmt.Errorf("%w: key %q was used with a different payload", ErrIdempotencyConflict, key)
	}
	order, err := s.repo.GetByID(ctx, record.OrderID)
	if err != nil {
		return nil, "", err
	}
	return order, fingerprint, nil
}

func (s *Service) rememberIdempotent(ctx context.Context, key, fingerprint, orderID string) (*domain.Order, error) {
	key = strings.TrimSpace(key)
	if key == "" || s.idemStore == nil {
		return nil, nil
	}
	stored, err := s.idemStore.Save(ctx, ports.IdempotencyRecord{
		Key:         key,
		RequestHash: fingerprint,
		OrderID:     orderID,
	})
	if err != nil {
		// A concurrent checkout won the key with the same payload: replay
		// the stored order instead of surfacing a duplicate.
		if errors.Is(err, ports.ErrIdempotencyConflict) && stored != nil && stored.RequestHash == fingerprint {
			return s.repo.GetByID(ctx, stored.OrderID)
		}
		return nil, err
	}
	return nil, nil
}

func orderEvent(order *domain.Order, at time.Time) ordertypes.OrderEvent {
	return ordertypes.OrderEvent{
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		CustomerID:  order.CustomerID,
		Status:      order.Status,
		Total:       order.Total,
		OccurredAt:  at.UTC(),
	}
}

func newOrderNumber(now time.Time) string {
	return fmt.Sprintf("ORD-%s-%s", now.Format("20060102"), strings.ToUpper(uuid.New().String()[:8]))
}

var _ ports.Service = (*Service)(nil)
