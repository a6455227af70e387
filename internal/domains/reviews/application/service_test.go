package application

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	reviewmemory "github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/reviews/adapters/memory"
	reviewtypes "github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/reviews/application/types"
	"github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/reviews/domain"
	"github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/reviews/ports"
)

// fakeVerifier answers the delivered-purchase gate from a fixed table keyed
// by customerID/productID.
type fakeVerifier struct {
	purchases map[string]purchase
}

type purchase struct {
	orderItemID string
	sellerID    string
}

func newFakeVerifier() *fakeVerifier {
	return &fakeVerifier{purchases: map[string]purchase{}}
}

func (v *fakeVerifier) allow(customerID, productID, orderItemID, sellerID string) {
	v.purchases[customerID+"/"+productID] = purchase{orderItemID: orderItemID, sellerID: sellerID}
}

func (v *fakeVerifier) DeliveredOrderItem(_ context.Context, customerID, productID string) (string, string, bool, error) {
	p, ok := v.purchases[customerID+"/"+productID]
	if !ok {
		return "", "", false, nil
	}
	return p.orderItemID, p.sellerID, true, nil
}

var _ ports.PurchaseVerifier = (*fakeVerifier)(nil)

type fakeRatingUpdater struct {
	mu      sync.Mutex
	applied []appliedRating
}

type appliedRating struct {
	productID string
	average   float64
	count     int
}

func (u *fakeRatingUpdater) ApplyRating(_ context.Context, productID string, average float64, count int) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.applied = append(u.applied, appliedRating{productID: productID, average: average, count: count})
	return nil
}

func reviewInput(customerID, productID string, rating int) reviewtypes.CreateReviewInput {
	return reviewtypes.CreateReviewInput{
		CustomerID: customerID,
		ProductID:  productID,
		Rating:     rating,
		Title:      "Fresh catch",
		Comment:    "Arrived cold and clean.",
	}
}

func TestCanUserReviewProduct_Gates(t *testing.T) {
	verifier := newFakeVerifier()
	verifier.allow("cust-1", "prod-1", "item-1", "seller-1")
	svc := NewService(reviewmemory.NewRepository(), verifier)
	ctx := context.Background()

	eligibility, err := svc.CanUserReviewProduct(ctx, "cust-1", "prod-1")
	require.NoError(t, err)
	require.True(t, eligibility.CanReview)
	require.NotNil(t, eligibility.OrderItemID)
	require.Equal(t, "item-1", *eligibility.OrderItemID)
	require.Nil(t, eligibility.ExistingReviewID)

	// No delivered purchase: not eligible, no ids.
	eligibility, err = svc.CanUserReviewProduct(ctx, "cust-2", "prod-1")
	require.NoError(t, err)
	require.False(t, eligibility.CanReview)
	require.Nil(t, eligibility.OrderItemID)
	require.Nil(t, eligibility.ExistingReviewID)

	// An existing review blocks before the purchase gate runs.
	review, err := svc.CreateReview(ctx, reviewInput("cust-1", "prod-1", 5))
	require.NoError(t, err)
	eligibility, err = svc.CanUserReviewProduct(ctx, "cust-1", "prod-1")
	require.NoError(t, err)
	require.False(t, eligibility.CanReview)
	require.Nil(t, eligibility.OrderItemID)
	require.NotNil(t, eligibility.ExistingReviewID)
	require.Equal(t, review.ID, *eligibility.ExistingReviewID)
}

func TestCreateReview_PublishesVerified(t *testing.T) {
	verifier := newFakeVerifier()
	verifier.allow("cust-1", "prod-1", "item-1", "seller-1")
	svc := NewService(reviewmemory.NewRepository(), verifier)

	review, err := svc.CreateReview(context.Background(), reviewInput("cust-1", "prod-1", 4))
	require.NoError(t, err)
	require.Equal(t, domain.StatusPublished, review.Status)
	require.True(t, review.VerifiedPurchase)
	require.Equal(t, "item-1", review.OrderItemID)
	require.Equal(t, "seller-1", review.SellerID)
}

func TestCreateReview_EnforcesGatesServerSide(t *testing.T) {
	verifier := newFakeVerifier()
	verifier.allow("cust-1", "prod-1", "item-1", "seller-1")
	svc := NewService(reviewmemory.NewRepository(), verifier)
	ctx := context.Background()

	_, err := svc.CreateReview(ctx, reviewInput("cust-2", "prod-1", 5))
	require.ErrorIs(t, err, ErrNotEligible)

	_, err = svc.CreateReview(ctx, reviewInput("cust-1", "prod-1", 5))
	require.NoError(t, err)

	_, err = svc.CreateReview(ctx, reviewInput("cust-1", "prod-1", 3))
	require.ErrorIs(t, err, ErrNotEligible)
	require.ErrorIs(t, err, domain.ErrAlreadyReviewed)
}

func TestCreateReview_InvalidRating(t *testing.T) {
	verifier := newFakeVerifier()
	verifier.allow("cust-1", "prod-1", "item-1", "seller-1")
	svc := NewService(reviewmemory.NewRepository(), verifier)

	_, err := svc.CreateReview(context.Background(), reviewInput("cust-1", "prod-1", 6))
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetProductReviewStats(t *testing.T) {
	verifier := newFakeVerifier()
	verifier.allow("cust-1", "prod-1", "item-1", "seller-1")
	verifier.allow("cust-2", "prod-1", "item-2", "seller-1")
	verifier.allow("cust-3", "prod-1", "item-3", "seller-1")
	svc := NewService(reviewmemory.NewRepository(), verifier)
	ctx := context.Background()

	_, err := svc.CreateReview(ctx, reviewInput("cust-1", "prod-1", 5))
	require.NoError(t, err)
	_, err = svc.CreateReview(ctx, reviewInput("cust-2", "prod-1", 4))
	require.NoError(t, err)
	flagged, err := svc.CreateReview(ctx, reviewInput("cust-3", "prod-1", 1))
	require.NoError(t, err)

	// Moderated-out reviews leave the aggregate.
	_, err = svc.UpdateReviewStatus(ctx, flagged.ID, domain.StatusFlagged)
	require.NoError(t, err)

	stats, err := svc.GetProductReviewStats(ctx, "prod-1")
	require.NoError(t, err)
	require.Equal(t, 2, stats.ReviewCount)
	require.InDelta(t, 4.5, stats.AverageRating, 1e-9)
	require.Equal(t, 1, stats.Histogram[5])
	require.Equal(t, 1, stats.Histogram[4])
	require.Equal(t, 0, stats.Histogram[1])
}

func TestVoteReview_RevoteOverwrites(t *testing.T) {
	verifier := newFakeVerifier()
	verifier.allow("cust-1", "prod-1", "item-1", "seller-1")
	svc := NewService(reviewmemory.NewRepository(), verifier)
	ctx := context.Background()

	review, err := svc.CreateReview(ctx, reviewInput("cust-1", "prod-1", 5))
	require.NoError(t, err)

	updated, err := svc.VoteReview(ctx, review.ID, "user-1", true)
	require.NoError(t, err)
	require.Equal(t, 1, updated.HelpfulCount)
	require.Equal(t, 0, updated.NotHelpfulCount)

	updated, err = svc.VoteReview(ctx, review.ID, "user-2", true)
	require.NoError(t, err)
	require.Equal(t, 2, updated.HelpfulCount)

	// user-1 changes their mind: counters shift, they do not inflate.
	updated, err = svc.VoteReview(ctx, review.ID, "user-1", false)
	require.NoError(t, err)
	require.Equal(t, 1, updated.HelpfulCount)
	require.Equal(t, 1, updated.NotHelpfulCount)

	_, err = svc.VoteReview(ctx, "missing", "user-1", true)
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestRespondToReview(t *testing.T) {
	verifier := newFakeVerifier()
	verifier.allow("cust-1", "prod-1", "item-1", "seller-1")
	svc := NewService(reviewmemory.NewRepository(), verifier)
	ctx := context.Background()

	review, err := svc.CreateReview(ctx, reviewInput("cust-1", "prod-1", 2))
	require.NoError(t, err)

	updated, err := svc.RespondToReview(ctx, review.ID, "seller-1", "Sorry, we will do better.")
	require.NoError(t, err)
	require.NotNil(t, updated.SellerResponse)
	require.NotNil(t, updated.SellerResponseAt)

	_, err = svc.RespondToReview(ctx, review.ID, "seller-2", "Not my fish.")
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrWrongSeller)
}

func TestCreateReview_PushesProductRating(t *testing.T) {
	verifier := newFakeVerifier()
	verifier.allow("cust-1", "prod-1", "item-1", "seller-1")
	updater := &fakeRatingUpdater{}
	svc := NewService(reviewmemory.NewRepository(), verifier, WithRatingUpdater(updater))

	_, err := svc.CreateReview(context.Background(), reviewInput("cust-1", "prod-1", 4))
	require.NoError(t, err)
	require.Len(t, updater.applied, 1)
	require.Equal(t, "prod-1", updater.applied[0].productID)
	require.InDelta(t, 4.0, updater.applied[0].average, 1e-9)
	require.Equal(t, 1, updater.applied[0].count)
}
