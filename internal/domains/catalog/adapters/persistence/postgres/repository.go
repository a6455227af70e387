// Package postgres persists the catalog in PostgreSQL using GORM.
package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	catalogtypes "github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/catalog/application/types"
	"github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/catalog/domain"
	"github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/catalog/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists products and categories in PostgreSQL.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type productRecord struct {
	ID            string          `gorm:"primaryKey;column:id;type:varchar(36)"`
	SellerID      string          `gorm:"column:seller_id;type:varchar(36);index"`
	CategoryID    *string         `gorm:"column:category_id;type:varchar(36);index"`
	Name          string          `gorm:"column:name"`
	Description   string          `gorm:"column:description;type:text"`
	Price         decimal.Decimal `gorm:"column:price;type:decimal(12,2)"`
	Unit          string          `gorm:"column:unit;type:varchar(16)"`
	Stock         int             `gorm:"column:stock"`
	Images        pq.StringArray  `gorm:"column:images;type:text[]"`
	Status        string          `gorm:"column:status;type:varchar(16);index"`
	RatingAverage float64         `gorm:"column:rating_average"`
	RatingCount   int             `gorm:"column:rating_count"`
	CreatedAt     time.Time       `gorm:"column:created_at;index"`
	UpdatedAt     time.Time       `gorm:"column:updated_at"`
}

func (productRecord) TableName() string { return "products" }

type categoryRecord struct {
	ID          string    `gorm:"primaryKey;column:id;type:varchar(36)"`
	Name        string    `gorm:"column:name;uniqueIndex"`
	Description string    `gorm:"column:description;type:text"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (categoryRecord) TableName() string { return "categories" }

func (r *Repository) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if product == nil {
		return nil, errors.New("product is nil")
	}
	record := toRecord(product)
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, record.ID)
}

func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record productRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) List(ctx context.Context, filters catalogtypes.ProductFilters) ([]*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	query := r.db.WithContext(ctx).Model(&productRecord{})
	if filters.SellerID != "" {
		query = query.Where("seller_id = ?", filters.SellerID)
	}
	if filters.CategoryID != "" {
		query = query.Where("category_id = ?", filters.CategoryID)
	}
	if filters.Status != nil {
		query = query.Where("status = ?", string(*filters.Status))
	}
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	var records []productRecord
	if err := query.Order("created_at DESC, id").Find(&records).Error; err != nil {
		return nil, err
	}
	result := make([]*domain.Product, 0, len(records))
	for i := range records {
		result = append(result, records[i].toDomain())
	}
	return result, nil
}

func (r *Repository) Update(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if product == nil {
		return nil, errors.New("product is nil")
	}
	record := toRecord(product)
	result := r.db.WithContext(ctx).Model(&productRecord{}).
		Where("id = ?", record.ID).
		Updates(map[string]any{
			"category_id":    record.CategoryID,
			"name":           record.Name,
			"description":    record.Description,
			"price":          record.Price,
			"unit":           record.Unit,
			"stock":          record.Stock,
			"images":         record.Images,
			"status":         record.Status,
			"rating_average": record.RatingAverage,
			"rating_count":   record.RatingCount,
			"updated_at":     gorm.Expr("NOW()"),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ports.ErrNotFound
	}
	return r.GetByID(ctx, record.ID)
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&productRecord{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func (r *Repository) CreateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if category == nil {
		return nil, errors.New("category is nil")
	}
	record := categoryRecord{
		ID:          category.ID,
		Name:        category.Name,
		Description: category.Description,
	}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, err
	}
	var created categoryRecord
	if err := r.db.WithContext(ctx).First(&created, "id = ?", record.ID).Error; err != nil {
		return nil, err
	}
	return created.toDomain(), nil
}

func (r *Repository) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []categoryRecord
	if err := r.db.WithContext(ctx).Order("name").Find(&records).Error; err != nil {
		return nil, err
	}
	result := make([]*domain.Category, 0, len(records))
	for i := range records {
		result = append(result, records[i].toDomain())
	}
	return result, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres catalog repository not configured")
	}
	return nil
}

func toRecord(product *domain.Product) productRecord {
	return productRecord{
		ID:            product.ID,
		SellerID:      product.SellerID,
		CategoryID:    product.CategoryID,
		Name:          product.Name,
		Description:   product.Description,
		Price:         product.Price,
		Unit:          product.Unit,
		Stock:         product.Stock,
		Images:        pq.StringArray(product.Images),
		Status:        string(product.Status),
		RatingAverage: product.RatingAverage,
		RatingCount:   product.RatingCount,
	}
}

func (r productRecord) toDomain() *domain.Product {
	return &domain.Product{
		ID:            r.ID,
		SellerID:      r.SellerID,
		CategoryID:    r.CategoryID,
		Name:          r.Name,
		Description:   r.Description,
		Price:         r.Price,
		Unit:          r.Unit,
		Stock:         r.Stock,
		Images:        []string(r.Images),
		Status:        domain.Status(r.Status),
		RatingAverage: r.RatingAverage,
		RatingCount:   r.RatingCount,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

func (r categoryRecord) toDomain() *domain.Category {
	return &domain.Category{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		CreatedAt:   r.CreatedAt,
	}
}
