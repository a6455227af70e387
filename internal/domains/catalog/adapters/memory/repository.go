// Package memory provides in-memory catalog persistence for development and tests.
package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	catalogtypes "github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/catalog/application/types"
	"github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/catalog/domain"
	"github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/catalog/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory catalog persistence adapter.
type Repository struct {
	mu         sync.RWMutex
	products   map[string]*domain.Product
	categories map[string]*domain.Category
	now        func() time.Time
}

func NewRepository() *Repository {
	return &Repository{
		products:   map[string]*domain.Product{},
		categories: map[string]*domain.Category{},
		now:        time.Now,
	}
}

// WithClock overrides the time source for deterministic testing.
func (r *Repository) WithClock(now func() time.Time) {
	if now != nil {
		r.now = now
	}
}

func (r *Repository) Create(_ context.Context, product *domain.Product) (*domain.Product, error) {
	if product == nil {
		return nil, errors.New("product is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now().UTC()
	clone := cloneProduct(product)
	clone.CreatedAt = now
	clone.UpdatedAt = now
	r.products[clone.ID] = clone
	return cloneProduct(clone), nil
}

func (r *Repository) GetByID(_ context.Context, id string) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	product, ok := r.products[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return cloneProduct(product), nil
}

func (r *Repository) List(_ context.Context, filters catalogtypes.ProductFilters) ([]*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []*domain.Product
	for _, product := range r.products {
		if filters.SellerID != "" && product.SellerID != filters.SellerID {
			continue
		}
		if filters.CategoryID != "" && (product.CategoryID == nil || *product.CategoryID != filters.CategoryID) {
			continue
		}
		if filters.Status != nil && product.Status != *filters.Status {
			continue
		}
		result = append(result, cloneProduct(product))
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID < result[j].ID
	})
	if filters.Limit > 0 && len(result) > filters.Limit {
		result = result[:filters.Limit]
	}
	return result, nil
}

func (r *Repository) Update(_ context.Context, product *domain.Product) (*domain.Product, error) {
	if product == nil {
		return nil, errors.New("product is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.products[product.ID]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := cloneProduct(product)
	clone.CreatedAt = stored.CreatedAt
	clone.UpdatedAt = r.now().UTC()
	r.products[clone.ID] = clone
	return cloneProduct(clone), nil
}

func (r *Repository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *Repository) CreateCategory(_ context.Context, category *domain.Category) (*domain.Category, error) {
	if category == nil {
		return nil, errors.New("category is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *category
	clone.CreatedAt = r.now().UTC()
	r.categories[clone.ID] = &clone
	result := clone
	return &result, nil
}

func (r *Repository) ListCategories(_ context.Context) ([]*domain.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]*domain.Category, 0, len(r.categories))
	for _, category := range r.categories {
		clone := *category
		result = append(result, &clone)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func cloneProduct(product *domain.Product) *domain.Product {
	clone := *product
	clone.Images = append([]string(nil), product.Images...)
	return &clone
}
