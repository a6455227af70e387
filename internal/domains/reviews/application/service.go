// Package application implements the review workflow use cases.
package application

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	reviewtypes "github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/reviews/application/types"
	"github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/reviews/domain"
	"github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/reviews/ports"
)

// Service orchestrates the review use cases.
type Service struct {
	repo     ports.Repository
	verifier ports.PurchaseVerifier
	ratings  ports.RatingUpdater
	now      func() time.Time
}

// Option configures optional service collaborators.
type Option func(*Service)

// WithRatingUpdater wires the catalog rating push.
func WithRatingUpdater(ratings ports.RatingUpdater) Option {
	return func(s *Service) { s.ratings = ratings }
}

// NewService wires the reviews service. verifier is required; reviews cannot
// be gated without the orders context.
func NewService(repo ports.Repository, verifier ports.PurchaseVerifier, opts ...Option) *Service {
	s := &Service{repo: repo, verifier: verifier, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// WithClock overrides the time source for deterministic testing.
func (s *Service) WithClock(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// CanUserReviewProduct runs the two purchase gates in order: an existing
// review by this customer for this product blocks with its id; otherwise a
// delivered order item for the pair is required.
func (s *Service) CanUserReviewProduct(ctx context.Context, customerID, productID string) (*reviewtypes.Eligibility, error) {
	existing, err := s.repo.FindByCustomerAndProduct(ctx, customerID, productID)
	if err != nil && !errors.Is(err, ports.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		id := existing.ID
		return &reviewtypes.Eligibility{CanReview: false, ExistingReviewID: &id}, nil
	}
	orderItemID, _, ok, err := s.verifier.DeliveredOrderItem(ctx, customerID, productID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return &reviewtypes.Eligibility{CanReview: false}, nil
	}
	return &reviewtypes.Eligibility{CanReview: true, OrderItemID: &orderItemID}, nil
}

// CreateReview runs the eligibility gates and persists the review. Reviews
// from the delivered-purchase path publish immediately as verified.
func (s *Service) CreateReview(ctx context.Context, input reviewtypes.CreateReviewInput) (*domain.Review, error) {
	existing, err := s.repo.FindByCustomerAndProduct(ctx, input.CustomerID, input.ProductID)
	if err != nil && !errors.Is(err, ports.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, mapError(domain.ErrAlreadyReviewed)
	}
	orderItemID, sellerID, ok, err := s.verifier.DeliveredOrderItem(ctx, input.CustomerID, input.ProductID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, mapError(domain.ErrNotEligible)
	}

	review := &domain.Review{
		ID:               uuid.New().String(),
		OrderItemID:      orderItemID,
		ProductID:        input.ProductID,
		CustomerID:       input.CustomerID,
		SellerID:         sellerID,
		Rating:           input.Rating,
		Title:            input.Title,
		Comment:          input.Comment,
		Images:           input.Images,
		Status:           domain.StatusPublished,
		VerifiedPurchase: true,
	}
	if err := review.Validate(); err != nil {
		return nil, mapError(err)
	}
	created, err := s.repo.Create(ctx, review)
	if err != nil {
		return nil, err
	}
	s.pushProductRating(ctx, created.ProductID)
	return created, nil
}

// GetReview loads a review by identifier.
func (s *Service) GetReview(ctx context.Context, id string) (*domain.Review, error) {
	return s.repo.GetByID(ctx, id)
}

// GetProductReviews lists a product's reviews, newest first.
func (s *Service) GetProductReviews(ctx context.Context, productID string, publishedOnly bool) ([]*domain.Review, error) {
	return s.repo.ListByProduct(ctx, productID, publishedOnly)
}

// GetProductReviewStats folds published reviews into a count, mean, and
// per-star histogram.
func (s *Service) GetProductReviewStats(ctx context.Context, productID string) (*reviewtypes.ProductReviewStats, error) {
	reviews, err := s.repo.ListByProduct(ctx, productID, true)
	if err != nil {
		return nil, err
	}
	stats := &reviewtypes.ProductReviewStats{ProductID: productID}
	sum := 0
	for _, review := range reviews {
		if review.Rating < 1 || review.Rating > 5 {
			continue
		}
		stats.ReviewCount++
		stats.Histogram[review.Rating]++
		sum += review.Rating
	}
	if stats.ReviewCount > 0 {
		stats.AverageRating = float64(sum) / float64(stats.ReviewCount)
	}
	return stats, nil
}

// VoteReview records the user's helpfulness vote. A repeat vote overwrites
// the earlier one; counters are recomputed, never incremented blindly.
func (s *Service) VoteReview(ctx context.Context, reviewID, userID string, helpful bool) (*domain.Review, error) {
	if _, err := s.repo.GetByID(ctx, reviewID); err != nil {
		return nil, err
	}
	now := s.now().UTC()
	return s.repo.UpsertVote(ctx, &domain.Vote{
		ID:        uuid.New().String(),
		ReviewID:  reviewID,
		UserID:    userID,
		Helpful:   helpful,
		CreatedAt: now,
		UpdatedAt: now,
	})
}

// RespondToReview attaches the seller's reply to their product's review.
func (s *Service) RespondToReview(ctx context.Context, reviewID, sellerID, response string) (*domain.Review, error) {
	review, err := s.repo.GetByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if err := review.Respond(sellerID, response, s.now().UTC()); err != nil {
		return nil, mapError(err)
	}
	return s.repo.Update(ctx, review)
}

// UpdateReviewStatus moderates a review. Rating aggregates are refreshed
// because publish state changes what counts.
func (s *Service) UpdateReviewStatus(ctx context.Context, reviewID string, status domain.Status) (*domain.Review, error) {
	if !domain.IsValidStatus(status) {
		return nil, mapError(domain.ErrInvalidStatus)
	}
	review, err := s.repo.GetByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	review.Status = status
	updated, err := s.repo.Update(ctx, review)
	if err != nil {
		return nil, err
	}
	s.pushProductRating(ctx, updated.ProductID)
	return updated, nil
}

// pushProductRating recomputes and forwards the product aggregate. Rating
// push is best effort; the review write has already committed.
func (s *Service) pushProductRating(ctx context.Context, productID string) {
	if s.ratings == nil {
		return
	}
	stats, err := s.GetProductReviewStats(ctx, productID)
	if err != nil {
		return
	}
	_ = s.ratings.ApplyRating(ctx, productID, stats.AverageRating, stats.ReviewCount)
}

var _ ports.Service = (*Service)(nil)
