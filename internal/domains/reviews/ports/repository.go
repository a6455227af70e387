package ports

import (
	"context"
	"errors"

	"github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/reviews/domain"
)

var (
	// ErrNotFound signals the review does not exist.
	ErrNotFound = errors.New("review not found")
)

// Repository persists reviews and helpfulness votes.
type Repository interface {
	Create(ctx context.Context, review *domain.Review) (*domain.Review, error)
	GetByID(ctx context.Context, id string) (*domain.Review, error)
	// FindByCustomerAndProduct returns the customer's review of the product,
	// or ErrNotFound.
	FindByCustomerAndProduct(ctx context.Context, customerID, productID string) (*domain.Review, error)
	// ListByProduct returns reviews for a product, newest first. When
	// publishedOnly is set, moderation states other than published are
	// filtered out.
	ListByProduct(ctx context.Context, productID string, publishedOnly bool) ([]*domain.Review, error)
	Update(ctx context.Context, review *domain.Review) (*domain.Review, error)
	// UpsertVote writes the user's vote, overwriting any earlier one, and
	// recomputes the review's helpful counters in the same transaction.
	UpsertVote(ctx context.Context, vote *domain.Vote) (*domain.Review, error)
}

// PurchaseVerifier answers whether the customer has a delivered order item
// for the product. Implemented by the orders context.
type PurchaseVerifier interface {
	// DeliveredOrderItem returns the order item id of a delivered purchase,
	// or ok=false when none exists.
	DeliveredOrderItem(ctx context.Context, customerID, productID string) (orderItemID, sellerID string, ok bool, err error)
}

// RatingUpdater pushes recomputed product rating aggregates to the catalog.
type RatingUpdater interface {
	ApplyRating(ctx context.Context, productID string, average float64, count int) error
}
