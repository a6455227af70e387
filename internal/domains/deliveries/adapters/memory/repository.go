// Package memory provides in-memory delivery persistence for development and tests.
package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/deliveries/domain"
	"github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/deliveries/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory delivery persistence adapter.
type Repository struct {
	mu         sync.RWMutex
	deliveries map[string]*domain.Delivery
	byOrder    map[string]string
	tracking   map[string][]*domain.TrackingPoint
	now        func() time.Time
}

func NewRepository() *Repository {
	return &Repository{
		deliveries: map[string]*domain.Delivery{},
		byOrder:    map[string]string{},
		tracking:   map[string][]*domain.TrackingPoint{},
		now:        time.Now,
	}
}

// WithClock overrides the time source for deterministic testing.
func (r *Repository) WithClock(now func() time.Time) {
	if now != nil {
		r.now = now
	}
}

func (r *Repository) Create(_ context.Context, delivery *domain.Delivery) (*domain.Delivery, error) {
	if delivery == nil {
		return nil, errors.New("delivery is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byOrder[delivery.OrderID]; exists {
		return nil, ports.ErrDuplicateOrder
	}
	now := r.now().UTC()
	clone := *delivery
	clone.CreatedAt = now
	clone.UpdatedAt = now
	r.deliveries[clone.ID] = &clone
	r.byOrder[clone.OrderID] = clone.ID
	result := clone
	return &result, nil
}

func (r *Repository) GetByID(_ context.Context, id string) (*domain.Delivery, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	delivery, ok := r.deliveries[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *delivery
	return &clone, nil
}

func (r *Repository) GetByOrderID(_ context.Context, orderID string) (*domain.Delivery, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byOrder[orderID]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *r.deliveries[id]
	return &clone, nil
}

func (r *Repository) Update(_ context.Context, delivery *domain.Delivery) (*domain.Delivery, error) {
	if delivery == nil {
		return nil, errors.New("delivery is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.deliveries[delivery.ID]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *delivery
	clone.CreatedAt = stored.CreatedAt
	clone.UpdatedAt = r.now().UTC()
	r.deliveries[clone.ID] = &clone
	result := clone
	return &result, nil
}

func (r *Repository) ListPending(_ context.Context) ([]*domain.Delivery, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []*domain.Delivery
	for _, delivery := range r.deliveries {
		if delivery.Status != domain.StatusPending {
			continue
		}
		clone := *delivery
		result = append(result, &clone)
	}
	sort.SliceStable(result, func(i, j int) bool {
		ri, rj := domain.PriorityRank(result[i].Priority), domain.PriorityRank(result[j].Priority)
		if ri != rj {
			return ri > rj
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

func (r *Repository) ListByDistributor(_ context.Context, distributorID string) ([]*domain.Delivery, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []*domain.Delivery
	for _, delivery := range r.deliveries {
		if delivery.DistributorID == nil || *delivery.DistributorID != distributorID {
			continue
		}
		clone := *delivery
		result = append(result, &clone)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

func (r *Repository) AppendTracking(_ context.Context, point *domain.TrackingPoint) (*domain.TrackingPoint, error) {
	if point == nil {
		return nil, errors.New("tracking point is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.deliveries[point.DeliveryID]; !ok {
		return nil, ports.ErrNotFound
	}
	clone := *point
	if clone.RecordedAt.IsZero() {
		clone.RecordedAt = r.now().UTC()
	}
	r.tracking[clone.DeliveryID] = append(r.tracking[clone.DeliveryID], &clone)
	result := clone
	return &result, nil
}

func (r *Repository) ListTracking(_ context.Context, deliveryID string) ([]*domain.TrackingPoint, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	trail := r.tracking[deliveryID]
	result := make([]*domain.TrackingPoint, 0, len(trail))
	for _, point := range trail {
		clone := *point
		result = append(result, &clone)
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].RecordedAt.Before(result[j].RecordedAt) })
	return result, nil
}

func (r *Repository) PurgeTrackingBefore(_ context.Context, cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var removed int64
	for deliveryID, trail := range r.tracking {
		delivery, ok := r.deliveries[deliveryID]
		if !ok || !domain.IsTerminal(delivery.Status) {
			continue
		}
		kept := trail[:0]
		for _, point := range trail {
			if point.RecordedAt.Before(cutoff) {
				removed++
				continue
			}
			kept = append(kept, point)
		}
		r.tracking[deliveryID] = kept
	}
	return removed, nil
}
