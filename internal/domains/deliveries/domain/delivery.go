// Package domain holds the delivery aggregate and its state machine.
package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Status is the delivery lifecycle state.
type Status string

const (
	StatusPending   Status = "pending"
	StatusAssigned  Status = "assigned"
	StatusPickedUp  Status = "picked_up"
	StatusInTransit Status = "in_transit"
	StatusDelivered Status = "delivered"
	StatusFailed    Status = "failed"
	StatusCancelled Status = "cancelled"
)

// Priority orders the pending queue. Urgent jumps the whole queue.
type Priority string

const (
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

var (
	ErrInvalidStatus      = errors.New("unknown delivery status")
	ErrInvalidPriority    = errors.New("unknown delivery priority")
	ErrInvalidTransition  = errors.New("delivery status transition not allowed")
	ErrEmptyOrder         = errors.New("delivery order id must not be empty")
	ErrEmptyPickup        = errors.New("pickup location must not be empty")
	ErrEmptyDestination   = errors.New("delivery location must not be empty")
	ErrEmptyDistributor   = errors.New("distributor id must not be empty")
	ErrNotAssignable      = errors.New("delivery can no longer be assigned")
	ErrAlreadyForOrder    = errors.New("a delivery already exists for this order")
	ErrNegativeDistanceKm = errors.New("distance must not be negative")
)

// Coordinates is an optional lat/lng pair.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Delivery is the fulfillment record tied 1:1 to an order.
type Delivery struct {
	ID               string
	DeliveryNumber   string
	OrderID          string
	DistributorID    *string
	Status           Status
	Priority         Priority
	PickupLocation   string
	DeliveryLocation string
	PickupCoords     *Coordinates
	DeliveryCoords   *Coordinates
	DistanceKm       *decimal.Decimal
	EstimatedMinutes *int
	ScheduledTime    *time.Time
	PickupTime       *time.Time
	DeliveryTime     *time.Time
	ProofOfDelivery  *string
	Signature        *string
	Notes            string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TrackingPoint is one append-only location sample for a delivery.
type TrackingPoint struct {
	ID         string
	DeliveryID string
	Lat        float64
	Lng        float64
	Notes      string
	RecordedAt time.Time
}

var statusRank = map[Status]int{
	StatusPending:   0,
	StatusAssigned:  1,
	StatusPickedUp:  2,
	StatusInTransit: 3,
	StatusDelivered: 4,
}

var priorityRank = map[Priority]int{
	PriorityNormal: 0,
	PriorityHigh:   1,
	PriorityUrgent: 2,
}

// IsValidStatus reports whether s is a known delivery status.
func IsValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusAssigned, StatusPickedUp, StatusInTransit,
		StatusDelivered, StatusFailed, StatusCancelled:
		return true
	}
	return false
}

// IsValidPriority reports whether p is a known priority.
func IsValidPriority(p Priority) bool {
	_, ok := priorityRank[p]
	return ok
}

// PriorityRank maps priority to its queue weight, higher first.
func PriorityRank(p Priority) int {
	return priorityRank[p]
}

// IsTerminal reports whether the status admits no further transitions.
func IsTerminal(s Status) bool {
	return s == StatusDelivered || s == StatusFailed || s == StatusCancelled
}

// CanTransition reports whether from may move to to. Forward moves along the
// chain may skip intermediate states; failed and cancelled are reachable from
// any non-terminal state; terminal states admit nothing.
func CanTransition(from, to Status) bool {
	if !IsValidStatus(from) || !IsValidStatus(to) || from == to {
		return false
	}
	if IsTerminal(from) {
		return false
	}
	if to == StatusFailed || to == StatusCancelled {
		return true
	}
	fromRank, okFrom := statusRank[from]
	toRank, okTo := statusRank[to]
	return okFrom && okTo && toRank > fromRank
}

// Transition validates and applies a status change, stamping pickup and
// delivery times the first time the corresponding state is reached. at is the
// stamp used when the field is not already set.
func (d *Delivery) Transition(to Status, at time.Time) error {
	if !IsValidStatus(to) {
		return ErrInvalidStatus
	}
	if !CanTransition(d.Status, to) {
		return ErrInvalidTransition
	}
	d.Status = to
	if reachedPickup(to) && d.PickupTime == nil {
		stamp := at
		d.PickupTime = &stamp
	}
	if to == StatusDelivered && d.DeliveryTime == nil {
		stamp := at
		d.DeliveryTime = &stamp
	}
	return nil
}

// Assign binds a distributor and forces the status to assigned. Assignment is
// rejected once the delivery has progressed past assigned.
func (d *Delivery) Assign(distributorID string) error {
	if distributorID == "" {
		return ErrEmptyDistributor
	}
	if d.Status != StatusPending && d.Status != StatusAssigned {
		return ErrNotAssignable
	}
	id := distributorID
	d.DistributorID = &id
	d.Status = StatusAssigned
	return nil
}

// Validate checks the creation invariants.
func (d *Delivery) Validate() error {
	if d.OrderID == "" {
		return ErrEmptyOrder
	}
	if d.PickupLocation == "" {
		return ErrEmptyPickup
	}
	if d.DeliveryLocation == "" {
		return ErrEmptyDestination
	}
	if !IsValidStatus(d.Status) {
		return ErrInvalidStatus
	}
	if !IsValidPriority(d.Priority) {
		return ErrInvalidPriority
	}
	if d.DistanceKm != nil && d.DistanceKm.IsNegative() {
		return ErrNegativeDistanceKm
	}
	return nil
}

func reachedPickup(s Status) bool {
	return s == StatusPickedUp || s == StatusInTransit || s == StatusDelivered
}
