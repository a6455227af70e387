// Package types carries the use case inputs and views of the deliveries context.
package types

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/deliveries/domain"
)

// CreateDeliveryInput is the dispatch command. Priority defaults to normal
// when empty.
type CreateDeliveryInput struct {
	OrderID          string
	PickupLocation   string
	DeliveryLocation string
	PickupCoords     *domain.Coordinates
	DeliveryCoords   *domain.Coordinates
	DistanceKm       *decimal.Decimal
	EstimatedMinutes *int
	Priority         domain.Priority
	ScheduledTime    *time.Time
	Notes            string
}

// StatusUpdateInput carries a status change plus optional caller-supplied
// fields. Explicit timestamps here take precedence over auto-stamping.
type StatusUpdateInput struct {
	Status          domain.Status
	PickupTime      *time.Time
	DeliveryTime    *time.Time
	ProofOfDelivery *string
	Signature       *string
	Notes           *string
}

// TrackingInput is one location sample to append to the trail.
type TrackingInput struct {
	Lat   float64
	Lng   float64
	Notes string
}

// DistributorStats buckets a distributor's deliveries by status.
type DistributorStats struct {
	Total     int
	Pending   int
	Active    int
	Completed int
	Failed    int
}
