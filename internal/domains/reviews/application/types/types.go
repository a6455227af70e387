// Package types carries the use case inputs and views of the reviews context.
package types

// CreateReviewInput is the review submission command. The order item is
// resolved by the eligibility check, not supplied by the caller.
type CreateReviewInput struct {
	CustomerID string
	ProductID  string
	Rating     int
	Title      string
	Comment    string
	Images     []string
}

// Eligibility is the outcome of the two-gate purchase check.
type Eligibility struct {
	CanReview        bool
	OrderItemID      *string
	ExistingReviewID *string
}

// ProductReviewStats aggregates published reviews for a product.
type ProductReviewStats struct {
	ProductID     string
	ReviewCount   int
	AverageRating float64
	// Histogram counts reviews per star, index 0 unused, 1..5 by rating.
	Histogram [6]int
}
