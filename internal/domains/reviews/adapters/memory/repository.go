// Package memory provides in-memory review persistence for development and tests.
package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/reviews/domain"
	"github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/reviews/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory review persistence adapter.
type Repository struct {
	mu      sync.RWMutex
	reviews map[string]*domain.Review
	// votes indexed by review id, then user id.
	votes map[string]map[string]*domain.Vote
	now   func() time.Time
}

func NewRepository() *Repository {
	return &Repository{
		reviews: map[string]*domain.Review{},
		votes:   map[string]map[string]*domain.Vote{},
		now:     time.Now,
	}
}

// WithClock overrides the time source for deterministic testing.
func (r *Repository) WithClock(now func() time.Time) {
	if now != nil {
		r.now = now
	}
}

func (r *Repository) Create(_ context.Context, review *domain.Review) (*domain.Review, error) {
	if review == nil {
		return nil, errors.New("review is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now().UTC()
	clone := cloneReview(review)
	clone.CreatedAt = now
	clone.UpdatedAt = now
	r.reviews[clone.ID] = clone
	result := cloneReview(clone)
	return result, nil
}

func (r *Repository) GetByID(_ context.Context, id string) (*domain.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	review, ok := r.reviews[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return cloneReview(review), nil
}

func (r *Repository) FindByCustomerAndProduct(_ context.Context, customerID, productID string) (*domain.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, review := range r.reviews {
		if review.CustomerID == customerID && review.ProductID == productID {
			return cloneReview(review), nil
		}
	}
	return nil, ports.ErrNotFound
}

func (r *Repository) ListByProduct(_ context.Context, productID string, publishedOnly bool) ([]*domain.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []*domain.Review
	for _, review := range r.reviews {
		if review.ProductID != productID {
			continue
		}
		if publishedOnly && review.Status != domain.StatusPublished {
			continue
		}
		result = append(result, cloneReview(review))
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (r *Repository) Update(_ context.Context, review *domain.Review) (*domain.Review, error) {
	if review == nil {
		return nil, errors.New("review is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.reviews[review.ID]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := cloneReview(review)
	clone.CreatedAt = stored.CreatedAt
	clone.UpdatedAt = r.now().UTC()
	r.reviews[clone.ID] = clone
	return cloneReview(clone), nil
}

// UpsertVote overwrites the user's earlier vote and recomputes the counters
// from the vote set, mirroring the transactional recount of the SQL adapter.
func (r *Repository) UpsertVote(_ context.Context, vote *domain.Vote) (*domain.Review, error) {
	if vote == nil {
		return nil, errors.New("vote is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	review, ok := r.reviews[vote.ReviewID]
	if !ok {
		return nil, ports.ErrNotFound
	}
	byUser := r.votes[vote.ReviewID]
	if byUser == nil {
		byUser = map[string]*domain.Vote{}
		r.votes[vote.ReviewID] = byUser
	}
	clone := *vote
	if existing, voted := byUser[vote.UserID]; voted {
		clone.ID = existing.ID
		clone.CreatedAt = existing.CreatedAt
	}
	clone.UpdatedAt = r.now().UTC()
	byUser[vote.UserID] = &clone

	helpful, notHelpful := 0, 0
	for _, v := range byUser {
		if v.Helpful {
			helpful++
		} else {
			notHelpful++
		}
	}
	review.HelpfulCount = helpful
	review.NotHelpfulCount = notHelpful
	review.UpdatedAt = r.now().UTC()
	return cloneReview(review), nil
}

func cloneReview(review *domain.Review) *domain.Review {
	clone := *review
	clone.Images = append([]string(nil), review.Images...)
	return &clone
}
