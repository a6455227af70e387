// Package application implements the catalog use cases.
package application

import (
	"context"

	"github.com/google/uuid"

	catalogtypes "github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/catalog/application/types"
	"github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/catalog/domain"
	"github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/catalog/ports"
)

// Service orchestrates the catalog use cases.
type Service struct {
	repo ports.Repository
}

// NewService wires the catalog service.
func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

// CreateProduct validates and persists a new listing, active by default.
func (s *Service) CreateProduct(ctx context.Context, input catalogtypes.CreateProductInput) (*domain.Product, error) {
	product := &domain.Product{
		ID:          uuid.New().String(),
		SellerID:    input.SellerID,
		CategoryID:  input.CategoryID,
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Unit:        input.Unit,
		Stock:       input.Stock,
		Images:      input.Images,
		Status:      domain.StatusActive,
	}
	if err := product.Validate(); err != nil {
		return nil, mapError(err)
	}
	return s.repo.Create(ctx, product)
}

// GetProduct loads a listing by identifier.
func (s *Service) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// ListProducts returns listings matching the filters.
func (s *Service) ListProducts(ctx context.Context, filters catalogtypes.ProductFilters) ([]*domain.Product, error) {
	return s.repo.List(ctx, filters)
}

// UpdateProduct applies a partial update and revalidates the listing.
func (s *Service) UpdateProduct(ctx context.Context, id string, patch catalogtypes.ProductPatch) (*domain.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.CategoryID != nil {
		product.CategoryID = patch.CategoryID
	}
	if patch.Name != nil {
		product.Name = *patch.Name
	}
	if patch.Description != nil {
		product.Description = *patch.Description
	}
	if patch.Price != nil {
		product.Price = *patch.Price
	}
	if patch.Unit != nil {
		product.Unit = *patch.Unit
	}
	if patch.Stock != nil {
		product.Stock = *patch.Stock
	}
	if patch.Images != nil {
		product.Images = *patch.Images
	}
	if patch.Status != nil {
		product.Status = *patch.Status
	}
	if err := product.Validate(); err != nil {
		return nil, mapError(err)
	}
	return s.repo.Update(ctx, product)
}

// DeleteProduct removes a listing.
func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// ApplyRating overwrites the denormalized review aggregate on the listing.
func (s *Service) ApplyRating(ctx context.Context, productID string, average float64, count int) error {
	product, err := s.repo.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if err := product.ApplyRating(average, count); err != nil {
		return mapError(err)
	}
	_, err = s.repo.Update(ctx, product)
	return err
}

// CreateCategory adds a browsing category.
func (s *Service) CreateCategory(ctx context.Context, name, description string) (*domain.Category, error) {
	if name == "" {
		return nil, mapError(domain.ErrEmptyCategory)
	}
	return s.repo.CreateCategory(ctx, &domain.Category{
		ID:          uuid.New().String(),
		Name:        name,
		Description: description,
	})
}

// ListCategories returns all categories.
func (s *Service) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	return s.repo.ListCategories(ctx)
}

var _ ports.Service = (*Service)(nil)
