// Package postgres persists reviews in PostgreSQL using GORM.
package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/reviews/domain"
	"github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/reviews/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists reviews and votes in PostgreSQL.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type reviewRecord struct {
	ID               string         `gorm:"primaryKey;column:id;type:varchar(36)"`
	OrderItemID      string         `gorm:"column:order_item_id;type:varchar(36);uniqueIndex"`
	ProductID        string         `gorm:"column:product_id;type:varchar(36);index:idx_reviews_product_customer,unique,priority:1"`
	CustomerID       string         `gorm:"column:customer_id;type:varchar(36);index:idx_reviews_product_customer,unique,priority:2"`
	SellerID         string         `gorm:"column:seller_id;type:varchar(36);index"`
	Rating           int            `gorm:"column:rating"`
	Title            string         `gorm:"column:title"`
	Comment          string         `gorm:"column:comment;type:text"`
	Images           pq.StringArray `gorm:"column:images;type:text[]"`
	Status           string         `gorm:"column:status;type:varchar(16);index"`
	VerifiedPurchase bool           `gorm:"column:verified_purchase"`
	HelpfulCount     int            `gorm:"column:helpful_count"`
	NotHelpfulCount  int            `gorm:"column:not_helpful_count"`
	SellerResponse   *string        `gorm:"column:seller_response;type:text"`
	SellerResponseAt *time.Time     `gorm:"column:seller_response_at"`
	CreatedAt        time.Time      `gorm:"column:created_at;index"`
	UpdatedAt        time.Time      `gorm:"column:updated_at"`
}

func (reviewRecord) TableName() string { return "reviews" }

type voteRecord struct {
	ID        string    `gorm:"primaryKey;column:id;type:varchar(36)"`
	ReviewID  string    `gorm:"column:review_id;type:varchar(36);index:idx_votes_review_user,unique"`
	UserID    string    `gorm:"column:user_id;type:varchar(36);index:idx_votes_review_user,unique"`
	Helpful   bool      `gorm:"column:helpful"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (voteRecord) TableName() string { return "review_votes" }

func (r *Repository) Create(ctx context.Context, review *domain.Review) (*domain.Review, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if review == nil {
		return nil, errors.New("review is nil")
	}
	record := toRecord(review)
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, record.ID)
}

func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Review, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record reviewRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) FindByCustomerAndProduct(ctx context.Context, customerID, productID string) (*domain.Review, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record reviewRecord
	err := r.db.WithContext(ctx).
		First(&record, "customer_id = ? AND product_id = ?", customerID, productID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) ListByProduct(ctx context.Context, productID string, publishedOnly bool) ([]*domain.Review, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	query := r.db.WithContext(ctx).Where("product_id = ?", productID)
	if publishedOnly {
		query = query.Where("status = ?", string(domain.StatusPublished))
	}
	var records []reviewRecord
	if err := query.Order("created_at DESC, id").Find(&records).Error; err != nil {
		return nil, err
	}
	result := make([]*domain.Review, 0, len(records))
	for i := range records {
		result = append(result, records[i].toDomain())
	}
	return result, nil
}

func (r *Repository) Update(ctx context.Context, review *domain.Review) (*domain.Review, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if review == nil {
		return nil, errors.New("review is nil")
	}
	record := toRecord(review)
	result := r.db.WithContext(ctx).Model(&reviewRecord{}).
		Where("id = ?", record.ID).
		Updates(map[string]any{
			"rating":             record.Rating,
			"title":              record.Title,
			"comment":            record.Comment,
			"images":             record.Images,
			"status":             record.Status,
			"seller_response":    record.SellerResponse,
			"seller_response_at": record.SellerResponseAt,
			"updated_at":         gorm.Expr("NOW()"),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ports.ErrNotFound
	}
	return r.GetByID(ctx, record.ID)
}

// UpsertVote writes the vote with an ON CONFLICT overwrite and recomputes the
// review counters from the vote table inside one transaction.
func (r *Repository) UpsertVote(ctx context.Context, vote *domain.Vote) (*domain.Review, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if vote == nil {
		return nil, errors.New("vote is nil")
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		record := voteRecord{
			ID:        vote.ID,
			ReviewID:  vote.ReviewID,
			UserID:    vote.UserID,
			Helpful:   vote.Helpful,
			CreatedAt: vote.CreatedAt,
			UpdatedAt: vote.UpdatedAt,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "review_id"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"helpful", "updated_at"}),
		}).Create(&record).Error; err != nil {
			return err
		}
		var helpful, notHelpful int64
		if err := tx.Model(&voteRecord{}).
			Where("review_id = ? AND helpful", vote.ReviewID).
			Count(&helpful).Error; err != nil {
			return err
		}
		if err := tx.Model(&voteRecord{}).
			Where("review_id = ? AND NOT helpful", vote.ReviewID).
			Count(&notHelpful).Error; err != nil {
			return err
		}
		result := tx.Model(&reviewRecord{}).
			Where("id = ?", vote.ReviewID).
			Updates(map[string]any{
				"helpful_count":     helpful,
				"not_helpful_count": notHelpful,
				"updated_at":        gorm.Expr("NOW()"),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ports.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, vote.ReviewID)
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres review repository not configured")
	}
	return nil
}

func toRecord(review *domain.Review) reviewRecord {
	return reviewRecord{
		ID:               review.ID,
		OrderItemID:      review.OrderItemID,
		ProductID:        review.ProductID,
		CustomerID:       review.CustomerID,
		SellerID:         review.SellerID,
		Rating:           review.Rating,
		Title:            review.Title,
		Comment:          review.Comment,
		Images:           pq.StringArray(review.Images),
		Status:           string(review.Status),
		VerifiedPurchase: review.VerifiedPurchase,
		HelpfulCount:     review.HelpfulCount,
		NotHelpfulCount:  review.NotHelpfulCount,
		SellerResponse:   review.SellerResponse,
		SellerResponseAt: review.SellerResponseAt,
	}
}

func (r reviewRecord) toDomain() *domain.Review {
	return &domain.Review{
		ID:               r.ID,
		OrderItemID:      r.OrderItemID,
		ProductID:        r.ProductID,
		CustomerID:       r.CustomerID,
		SellerID:         r.SellerID,
		Rating:           r.Rating,
		Title:            r.Title,
		Comment:          r.Comment,
		Images:           []string(r.Images),
		Status:           domain.Status(r.Status),
		VerifiedPurchase: r.VerifiedPurchase,
		HelpfulCount:     r.HelpfulCount,
		NotHelpfulCount:  r.NotHelpfulCount,
		SellerResponse:   r.SellerResponse,
		SellerResponseAt: r.SellerResponseAt,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
}
