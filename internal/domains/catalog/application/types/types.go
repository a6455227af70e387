// Package types carries the use case inputs of the catalog context.
package types

import (
	"github.com/shopspring/decimal"

	"github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/catalog/domain"
)

// CreateProductInput is the listing command. Status defaults to active.
type CreateProductInput struct {
	SellerID    string
	CategoryID  *string
	Name        string
	Description string
	Price       decimal.Decimal
	Unit        string
	Stock       int
	Images      []string
}

// ProductFilters narrows product listings.
type ProductFilters struct {
	SellerID   string
	CategoryID string
	Status     *domain.Status
	Limit      int
}

// ProductPatch is a partial product update. Nil fields are left untouched.
type ProductPatch struct {
	CategoryID  *string
	Name        *string
	Description *string
	Price       *decimal.Decimal
	Unit        *string
	Stock       *int
	Images      *[]string
	Status      *domain.Status
}
