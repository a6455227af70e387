// Package types carries the use case inputs and views of the orders context.
package types

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/orders/domain"
)

// ItemInput is one line of a checkout request. Name and unit price are the
// snapshots recorded on the order item.
type ItemInput struct {
	ProductID string
	VariantID *string
	SellerID  string
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
}

// PricingInput carries the caller-computed order amounts. The service
// re-checks the total equation before anything is persisted.
type PricingInput struct {
	Subtotal    decimal.Decimal
	ShippingFee decimal.Decimal
	Tax         decimal.Decimal
	Discount    decimal.Decimal
	Total       decimal.Decimal
}

// CreateOrderInput is the checkout command.
type CreateOrderInput struct {
	CustomerID        string
	Items             []ItemInput
	PaymentMethod     *domain.PaymentMethod
	Pricing           PricingInput
	Notes             string
	ShippingAddressID *string
	// IdempotencyKey lets clients retry checkout safely. Empty disables
	// idempotent replay.
	IdempotencyKey string
}

// OrderFilters narrows order listings.
type OrderFilters struct {
	CustomerID string
	Status     *domain.Status
	From       *time.Time
	To         *time.Time
	Limit      int
}

// OrderPatch is a partial order update. Nil fields are left untouched.
// A non-nil Status triggers transition validation and a history append.
type OrderPatch struct {
	Status        *domain.Status
	PaymentStatus *domain.PaymentStatus
	DistributorID *string
	Notes         *string
	// StatusNotes is recorded on the history row when Status is set.
	StatusNotes string
}

// OrderWithItems is an order plus its line items. For seller views the item
// slice holds only that seller's items.
type OrderWithItems struct {
	Order *domain.Order
	Items []*domain.Item
}

// ItemWithOrder pairs a line item with its parent order, as returned by the
// seller-scoped item query.
type ItemWithOrder struct {
	Item  *domain.Item
	Order *domain.Order
}

// SellerOrderStats buckets a seller's line items by parent order status.
// Items on shipped, cancelled, or refunded orders count toward Total only.
type SellerOrderStats struct {
	Pending    int
	Processing int
	Completed  int
	Total      int
	Revenue    decimal.Decimal
}

// OrderEvent is the payload published when an order is placed or changes
// status.
type OrderEvent struct {
	OrderID     string          `json:"orderId"`
	OrderNumber string          `json:"orderNumber"`
	CustomerID  string          `json:"customerId"`
	Status      domain.Status   `json:"status"`
	Total       decimal.Decimal `json:"total"`
	OccurredAt  time.Time       `json:"occurredAt"`
}
