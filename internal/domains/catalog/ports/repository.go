package ports

import (
	"context"
	"errors"

	catalogtypes "github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/catalog/application/types"
	"github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/catalog/domain"
)

var (
	// ErrNotFound signals the product does not exist.
	ErrNotFound = errors.New("product not found")
	// ErrCategoryNotFound signals the category does not exist.
	ErrCategoryNotFound = errors.New("category not found")
)

// Repository persists products and categories.
type Repository interface {
	Create(ctx context.Context, product *domain.Product) (*domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context, filters catalogtypes.ProductFilters) ([]*domain.Product, error)
	Update(ctx context.Context, product *domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
	CreateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error)
	ListCategories(ctx context.Context) ([]*domain.Category, error)
}
