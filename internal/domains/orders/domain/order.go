// Package domain models the orders bounded context aggregate.
package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Status enumerates order progression.
type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
	StatusRefunded   Status = "refunded"
)

// PaymentStatus tracks payment settlement independent of fulfilment.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

// PaymentMethod enumerates the supported settlement channels.
type PaymentMethod string

const (
	PaymentCashOnDelivery PaymentMethod = "cash_on_delivery"
	PaymentMobileMoney    PaymentMethod = "mobile_money"
	PaymentCard           PaymentMethod = "card"
	PaymentBankTransfer   PaymentMethod = "bank_transfer"
)

var (
	ErrNoItems            = errors.New("order requires at least one item")
	ErrInvalidQuantity    = errors.New("item quantity must be greater than zero")
	ErrNegativeUnitPrice  = errors.New("item unit price must not be negative")
	ErrNegativeAmount     = errors.New("monetary amounts must not be negative")
	ErrTotalMismatch      = errors.New("order total does not equal subtotal + shipping + tax - discount")
	ErrInvalidStatus      = errors.New("order status is invalid")
	ErrInvalidItemStatus  = errors.New("order item status is invalid")
	ErrInvalidTransition  = errors.New("order status transition is not allowed")
	ErrEmptyCustomer      = errors.New("order customer is required")
	ErrEmptySeller        = errors.New("order item seller is required")
	ErrEmptyProduct       = errors.New("order item product is required")
	ErrEmptyItemName      = errors.New("order item name snapshot is required")
)

// Order is the aggregate root for a customer checkout. A single order may
// fan out into line items belonging to many sellers.
type Order struct {
	ID                string
	OrderNumber       string
	CustomerID        string
	Status            Status
	PaymentStatus     PaymentStatus
	PaymentMethod     *PaymentMethod
	Subtotal          decimal.Decimal
	ShippingFee       decimal.Decimal
	Tax               decimal.Decimal
	Discount          decimal.Decimal
	Total             decimal.Decimal
	Notes             string
	ShippingAddressID *string
	DistributorID     *string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Item is one seller's line item within an order. Name and unit price are
// snapshots taken at checkout so later catalog edits do not rewrite history.
type Item struct {
	ID         string
	OrderID    string
	ProductID  string
	VariantID  *string
	SellerID   string
	Name       string
	Quantity   int
	UnitPrice  decimal.Decimal
	TotalPrice decimal.Decimal
	Status     ItemStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// StatusHistory is one append-only audit row per order status transition.
// ActorID is nil for system-initiated transitions. Rows are never updated
// or deleted.
type StatusHistory struct {
	ID        string
	OrderID   string
	Status    Status
	Notes     string
	ActorID   *string
	CreatedAt time.Time
}

// ItemStatus is the narrower per-line-item lifecycle. It moves independently
// of the parent order status.
type ItemStatus string

const (
	ItemPending   ItemStatus = "pending"
	ItemConfirmed ItemStatus = "confirmed"
	ItemPacked    ItemStatus = "packed"
	ItemShipped   ItemStatus = "shipped"
	ItemDelivered ItemStatus = "delivered"
)

// statusRank orders the forward progression of the order lifecycle.
// Terminal states carry no rank.
var statusRank = map[Status]int{
	StatusPending:    0,
	StatusConfirmed:  1,
	StatusProcessing: 2,
	StatusShipped:    3,
	StatusDelivered:  4,
}

var itemStatusRank = map[ItemStatus]int{
	ItemPending:   0,
	ItemConfirmed: 1,
	ItemPacked:    2,
	ItemShipped:   3,
	ItemDelivered: 4,
}

// IsValidStatus reports whether the value is a known order status.
func IsValidStatus(status Status) bool {
	switch status {
	case StatusPending, StatusConfirmed, StatusProcessing, StatusShipped,
		StatusDelivered, StatusCancelled, StatusRefunded:
		return true
	default:
		return false
	}
}

// IsValidItemStatus reports whether the value is a known line item status.
func IsValidItemStatus(status ItemStatus) bool {
	_, ok := itemStatusRank[status]
	return ok
}

// IsTerminal reports whether the status ends the order lifecycle.
func IsTerminal(status Status) bool {
	switch status {
	case StatusDelivered, StatusCancelled, StatusRefunded:
		return true
	default:
		return false
	}
}

// CanTransition reports whether an order may move from one status to another.
// Forward moves along the fulfilment chain are allowed, including skips.
// Cancellation is reachable from any non-terminal state; refunds only follow
// delivery or cancellation.
func CanTransition(from, to Status) bool {
	if !IsValidStatus(from) || !IsValidStatus(to) || from == to {
		return false
	}
	switch to {
	case StatusCancelled:
		return !IsTerminal(from)
	case StatusRefunded:
		return from == StatusDelivered || from == StatusCancelled
	}
	fromRank, ok := statusRank[from]
	if !ok {
		return false
	}
	toRank, ok := statusRank[to]
	if !ok {
		return false
	}
	return toRank > fromRank
}

// CanTransitionItem applies the same forward-only rule to line items.
func CanTransitionItem(from, to ItemStatus) bool {
	fromRank, okFrom := itemStatusRank[from]
	toRank, okTo := itemStatusRank[to]
	return okFrom && okTo && toRank > fromRank
}

// Transition validates and applies a status change on the aggregate.
func (o *Order) Transition(to Status) error {
	if !IsValidStatus(to) {
		return ErrInvalidStatus
	}
	if !CanTransition(o.Status, to) {
		return ErrInvalidTransition
	}
	o.Status = to
	return nil
}

// Validate enforces the order-level invariants. The total must equal
// subtotal + shipping fee + tax - discount exactly; snapshot prices make
// this an exact decimal comparison, not an approximate one.
func (o *Order) Validate() error {
	if o.CustomerID == "" {
		return ErrEmptyCustomer
	}
	if !IsValidStatus(o.Status) {
		return ErrInvalidStatus
	}
	for _, amount := range []decimal.Decimal{o.Subtotal, o.ShippingFee, o.Tax, o.Discount, o.Total} {
		if amount.IsNegative() {
			return ErrNegativeAmount
		}
	}
	expected := o.Subtotal.Add(o.ShippingFee).Add(o.Tax).Sub(o.Discount)
	if !o.Total.Equal(expected) {
		return ErrTotalMismatch
	}
	return nil
}

// Validate enforces the line item invariants and recomputes the total price
// from quantity and unit price. The stored total is always derived, never
// trusted from the caller.
func (i *Item) Validate() error {
	if i.ProductID == "" {
		return ErrEmptyProduct
	}
	if i.SellerID == "" {
		return ErrEmptySeller
	}
	if i.Name == "" {
		return ErrEmptyItemName
	}
	if i.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	if i.UnitPrice.IsNegative() {
		return ErrNegativeUnitPrice
	}
	if !IsValidItemStatus(i.Status) {
		return ErrInvalidItemStatus
	}
	i.TotalPrice = i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
	return nil
}
