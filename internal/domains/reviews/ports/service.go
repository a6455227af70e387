package ports

import (
	"context"

	reviewtypes "github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/reviews/application/types"
	"github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/reviews/domain"
)

// Service exposes the review workflow use cases.
type Service interface {
	CanUserReviewProduct(ctx context.Context, customerID, productID string) (*reviewtypes.Eligibility, error)
	CreateReview(ctx context.Context, input reviewtypes.CreateReviewInput) (*domain.Review, error)
	GetReview(ctx context.Context, id string) (*domain.Review, error)
	GetProductReviews(ctx context.Context, productID string, publishedOnly bool) ([]*domain.Review, error)
	GetProductReviewStats(ctx context.Context, productID string) (*reviewtypes.ProductReviewStats, error)
	VoteReview(ctx context.Context, reviewID, userID string, helpful bool) (*domain.Review, error)
	RespondToReview(ctx context.Context, reviewID, sellerID, response string) (*domain.Review, error)
	UpdateReviewStatus(ctx context.Context, reviewID string, status domain.Status) (*domain.Review, error)
}
