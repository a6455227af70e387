package ports

import (
	"context"

	catalogtypes "github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/catalog/application/types"
	"github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/catalog/domain"
)

// Service exposes the catalog use cases.
type Service interface {
	CreateProduct(ctx context.Context, input catalogtypes.CreateProductInput) (*domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	ListProducts(ctx context.Context, filters catalogtypes.ProductFilters) ([]*domain.Product, error)
	UpdateProduct(ctx context.Context, id string, patch catalogtypes.ProductPatch) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	ApplyRating(ctx context.Context, productID string, average float64, count int) error
	CreateCategory(ctx context.Context, name, description string) (*domain.Category, error)
	ListCategories(ctx context.Context) ([]*domain.Category, error)
}
