// Package domain holds the product review aggregate.
package domain

import (
	"errors"
	"time"
)

// Status is the moderation state of a review.
type Status string

const (
	StatusPending   Status = "pending"
	StatusPublished Status = "published"
	StatusFlagged   Status = "flagged"
	StatusRejected  Status = "rejected"
)

var (
	ErrInvalidRating   = errors.New("rating must be between 1 and 5")
	ErrInvalidStatus   = errors.New("unknown review status")
	ErrEmptyCustomer   = errors.New("customer id must not be empty")
	ErrEmptyProduct    = errors.New("product id must not be empty")
	ErrEmptySeller     = errors.New("seller id must not be empty")
	ErrEmptyOrderItem  = errors.New("order item id must not be empty")
	ErrEmptyResponse   = errors.New("seller response must not be empty")
	ErrNotEligible     = errors.New("customer is not eligible to review this product")
	ErrAlreadyReviewed = errors.New("customer already reviewed this product")
	ErrWrongSeller     = errors.New("review does not belong to this seller")
)

// Review is one customer's verdict on one purchased line item.
type Review struct {
	ID               string
	OrderItemID      string
	ProductID        string
	CustomerID       string
	SellerID         string
	Rating           int
	Title            string
	Comment          string
	Images           []string
	Status           Status
	VerifiedPurchase bool
	HelpfulCount     int
	NotHelpfulCount  int
	SellerResponse   *string
	SellerResponseAt *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Vote is one user's helpfulness judgement on a review. One vote per
// (review, user); re-voting overwrites.
type Vote struct {
	ID        string
	ReviewID  string
	UserID    string
	Helpful   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsValidStatus reports whether s is a known review status.
func IsValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusPublished, StatusFlagged, StatusRejected:
		return true
	}
	return false
}

// Validate checks the creation invariants.
func (r *Review) Validate() error {
	if r.CustomerID == "" {
		return ErrEmptyCustomer
	}
	if r.ProductID == "" {
		return ErrEmptyProduct
	}
	if r.SellerID == "" {
		return ErrEmptySeller
	}
	if r.OrderItemID == "" {
		return ErrEmptyOrderItem
	}
	if r.Rating < 1 || r.Rating > 5 {
		return ErrInvalidRating
	}
	if !IsValidStatus(r.Status) {
		return ErrInvalidStatus
	}
	return nil
}

// Respond attaches the seller's reply, stamped at the given time.
func (r *Review) Respond(sellerID, response string, at time.Time) error {
	if r.SellerID != sellerID {
		return ErrWrongSeller
	}
	if response == "" {
		return ErrEmptyResponse
	}
	r.SellerResponse = &response
	stamp := at
	r.SellerResponseAt = &stamp
	return nil
}
