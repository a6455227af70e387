// Package application implements the delivery assignment use cases.
package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	deliverytypes "github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/deliveries/application/types"
	"github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/deliveries/domain"
	"github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/deliveries/ports"
)

// Service orchestrates the delivery use cases.
type Service struct {
	repo ports.Repository
	now  func() time.Time
}

// NewService wires the deliveries service.
func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// WithClock overrides the time source for deterministic testing.
func (s *Service) WithClock(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// CreateDelivery creates a pending, unassigned delivery for the order.
func (s *Service) CreateDelivery(ctx context.Context, input deliverytypes.CreateDeliveryInput) (*domain.Delivery, error) {
	priority := input.Priority
	if priority == "" {
		priority = domain.PriorityNormal
	}
	now := s.now().UTC()
	delivery := &domain.Delivery{
		ID:               uuid.New().String(),
		DeliveryNumber:   newDeliveryNumber(now),
		OrderID:          input.OrderID,
		Status:           domain.StatusPending,
		Priority:         priority,
		PickupLocation:   input.PickupLocation,
		DeliveryLocation: input.DeliveryLocation,
		PickupCoords:     input.PickupCoords,
		DeliveryCoords:   input.DeliveryCoords,
		DistanceKm:       input.DistanceKm,
		EstimatedMinutes: input.EstimatedMinutes,
		ScheduledTime:    input.ScheduledTime,
		Notes:            input.Notes,
	}
	if err := delivery.Validate(); err != nil {
		return nil, mapError(err)
	}
	created, err := s.repo.Create(ctx, delivery)
	if err != nil {
		if errors.Is(err, ports.ErrDuplicateOrder) {
			return nil, mapError(domain.ErrAlreadyForOrder)
		}
		return nil, err
	}
	return created, nil
}

// GetDelivery loads a delivery by identifier.
func (s *Service) GetDelivery(ctx context.Context, id string) (*domain.Delivery, error) {
	return s.repo.GetByID(ctx, id)
}

// GetDeliveryByOrder loads the delivery tied to an order.
func (s *Service) GetDeliveryByOrder(ctx context.Context, orderID string) (*domain.Delivery, error) {
	return s.repo.GetByOrderID(ctx, orderID)
}

// AssignDelivery binds a distributor and moves the delivery to assigned.
// Re-assignment is allowed while the delivery has not been picked up.
func (s *Service) AssignDelivery(ctx context.Context, deliveryID, distributorID string) (*domain.Delivery, error) {
	delivery, err := s.repo.GetByID(ctx, deliveryID)
	if err != nil {
		return nil, err
	}
	if err := delivery.Assign(distributorID); err != nil {
		return nil, mapError(err)
	}
	return s.repo.Update(ctx, delivery)
}

// UpdateDeliveryStatus applies a validated status change. Caller-supplied
// timestamps win over auto-stamping; the stamp only fires when the field is
// still unset once the target state is reached.
func (s *Service) UpdateDeliveryStatus(ctx context.Context, deliveryID string, input deliverytypes.StatusUpdateInput) (*domain.Delivery, error) {
	delivery, err := s.repo.GetByID(ctx, deliveryID)
	if err != nil {
		return nil, err
	}
	if input.PickupTime != nil {
		delivery.PickupTime = input.PickupTime
	}
	if input.DeliveryTime != nil {
		delivery.DeliveryTime = input.DeliveryTime
	}
	if input.ProofOfDelivery != nil {
		delivery.ProofOfDelivery = input.ProofOfDelivery
	}
	if input.Signature != nil {
		delivery.Signature = input.Signature
	}
	if input.Notes != nil {
		delivery.Notes = *input.Notes
	}
	if err := delivery.Transition(input.Status, s.now().UTC()); err != nil {
		return nil, mapError(err)
	}
	return s.repo.Update(ctx, delivery)
}

// GetPendingDeliveries returns the dispatch queue: urgent before high before
// normal, FIFO within a priority band.
func (s *Service) GetPendingDeliveries(ctx context.Context) ([]*domain.Delivery, error) {
	return s.repo.ListPending(ctx)
}

// GetDistributorDeliveries lists all deliveries assigned to a distributor.
func (s *Service) GetDistributorDeliveries(ctx context.Context, distributorID string) ([]*domain.Delivery, error) {
	return s.repo.ListByDistributor(ctx, distributorID)
}

// GetDistributorStats buckets a distributor's deliveries by status.
func (s *Service) GetDistributorStats(ctx context.Context, distributorID string) (*deliverytypes.DistributorStats, error) {
	deliveries, err := s.repo.ListByDistributor(ctx, distributorID)
	if err != nil {
		return nil, err
	}
	stats := &deliverytypes.DistributorStats{}
	for _, delivery := range deliveries {
		stats.Total++
		switch delivery.Status {
		case domain.StatusPending, domain.StatusAssigned:
			stats.Pending++
		case domain.StatusPickedUp, domain.StatusInTransit:
			stats.Active++
		case domain.StatusDelivered:
			stats.Completed++
		case domain.StatusFailed, domain.StatusCancelled:
			stats.Failed++
		}
	}
	return stats, nil
}

// TrackDeliveryLocation appends one sample to the delivery's location trail.
func (s *Service) TrackDeliveryLocation(ctx context.Context, deliveryID string, input deliverytypes.TrackingInput) (*domain.TrackingPoint, error) {
	if _, err := s.repo.GetByID(ctx, deliveryID); err != nil {
		return nil, err
	}
	point := &domain.TrackingPoint{
		ID:         uuid.New().String(),
		DeliveryID: deliveryID,
		Lat:        input.Lat,
		Lng:        input.Lng,
		Notes:      input.Notes,
		RecordedAt: s.now().UTC(),
	}
	return s.repo.AppendTracking(ctx, point)
}

// GetDeliveryTracking returns the full trail ordered by recording time.
func (s *Service) GetDeliveryTracking(ctx context.Context, deliveryID string) ([]*domain.TrackingPoint, error) {
	if _, err := s.repo.GetByID(ctx, deliveryID); err != nil {
		return nil, err
	}
	return s.repo.ListTracking(ctx, deliveryID)
}

func newDeliveryNumber(now time.Time) string {
	return fmt.Sprintf("DLV-%s-%s", now.Format("20060102"), strings.ToUpper(uuid.New().String()[:8]))
}

var _ ports.Service = (*Service)(nil)
