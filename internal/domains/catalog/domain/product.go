// Package domain holds the product catalog aggregates.
package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Status is the product listing state.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

var (
	ErrInvalidStatus   = errors.New("unknown product status")
	ErrEmptyName       = errors.New("product name must not be empty")
	ErrEmptySeller     = errors.New("product seller id must not be empty")
	ErrNegativePrice   = errors.New("product price must not be negative")
	ErrNegativeStock   = errors.New("product stock must not be negative")
	ErrEmptyCategory   = errors.New("category name must not be empty")
	ErrInvalidRating   = errors.New("rating average must be between 0 and 5")
	ErrNegativeReviews = errors.New("rating count must not be negative")
)

// Product is one seller's catalog listing.
type Product struct {
	ID            string
	SellerID      string
	CategoryID    *string
	Name          string
	Description   string
	Price         decimal.Decimal
	Unit          string
	Stock         int
	Images        []string
	Status        Status
	RatingAverage float64
	RatingCount   int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Category groups products for browsing.
type Category struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
}

// IsValidStatus reports whether s is a known product status.
func IsValidStatus(s Status) bool {
	return s == StatusActive || s == StatusInactive
}

// Validate checks the listing invariants.
func (p *Product) Validate() error {
	if p.SellerID == "" {
		return ErrEmptySeller
	}
	if p.Name == "" {
		return ErrEmptyName
	}
	if p.Price.IsNegative() {
		return ErrNegativePrice
	}
	if p.Stock < 0 {
		return ErrNegativeStock
	}
	if !IsValidStatus(p.Status) {
		return ErrInvalidStatus
	}
	return nil
}

// ApplyRating overwrites the denormalized review aggregate.
func (p *Product) ApplyRating(average float64, count int) error {
	if average < 0 || average > 5 {
		return ErrInvalidRating
	}
	if count < 0 {
		return ErrNegativeReviews
	}
	p.RatingAverage = average
	p.RatingCount = count
	return nil
}
