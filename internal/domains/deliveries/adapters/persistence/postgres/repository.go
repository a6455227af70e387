// Package postgres persists deliveries in PostgreSQL using GORM.
package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/deliveries/domain"
	"github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/deliveries/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists deliveries and tracking samples in PostgreSQL.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type deliveryRecord struct {
	ID               string           `gorm:"primaryKey;column:id;type:varchar(36)"`
	DeliveryNumber   string           `gorm:"column:delivery_number;type:varchar(32);uniqueIndex"`
	OrderID          string           `gorm:"column:order_id;type:varchar(36);uniqueIndex"`
	DistributorID    *string          `gorm:"column:distributor_id;type:varchar(36);index"`
	Status           string           `gorm:"column:status;type:varchar(16);index"`
	Priority         string           `gorm:"column:priority;type:varchar(8)"`
	PickupLocation   string           `gorm:"column:pickup_location;type:text"`
	DeliveryLocation string           `gorm:"column:delivery_location;type:text"`
	PickupLat        *float64         `gorm:"column:pickup_lat"`
	PickupLng        *float64         `gorm:"column:pickup_lng"`
	DeliveryLat      *float64         `gorm:"column:delivery_lat"`
	DeliveryLng      *float64         `gorm:"column:delivery_lng"`
	DistanceKm       *decimal.Decimal `gorm:"column:distance_km;type:decimal(8,2)"`
	EstimatedMinutes *int             `gorm:"column:estimated_minutes"`
	ScheduledTime    *time.Time       `gorm:"column:scheduled_time"`
	PickupTime       *time.Time       `gorm:"column:pickup_time"`
	DeliveryTime     *time.Time       `gorm:"column:delivery_time"`
	ProofOfDelivery  *string          `gorm:"column:proof_of_delivery;type:text"`
	Signature        *string          `gorm:"column:signature;type:text"`
	Notes            string           `gorm:"column:notes;type:text"`
	CreatedAt        time.Time        `gorm:"column:created_at;index"`
	UpdatedAt        time.Time        `gorm:"column:updated_at"`
}

func (deliveryRecord) TableName() string { return "deliveries" }

type trackingRecord struct {
	ID         string    `gorm:"primaryKey;column:id;type:varchar(36)"`
	DeliveryID string    `gorm:"column:delivery_id;type:varchar(36);index"`
	Lat        float64   `gorm:"column:lat"`
	Lng        float64   `gorm:"column:lng"`
	Notes      string    `gorm:"column:notes;type:text"`
	RecordedAt time.Time `gorm:"column:recorded_at;index"`
}

func (trackingRecord) TableName() string { return "delivery_tracking" }

func (r *Repository) Create(ctx context.Context, delivery *domain.Delivery) (*domain.Delivery, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if delivery == nil {
		return nil, errors.New("delivery is nil")
	}
	var count int64
	if err := r.db.WithContext(ctx).Model(&deliveryRecord{}).
		Where("order_id = ?", delivery.OrderID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ports.ErrDuplicateOrder
	}
	record := toRecord(delivery)
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, record.ID)
}

func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Delivery, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record deliveryRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) GetByOrderID(ctx context.Context, orderID string) (*domain.Delivery, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record deliveryRecord
	if err := r.db.WithContext(ctx).First(&record, "order_id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) Update(ctx context.Context, delivery *domain.Delivery) (*domain.Delivery, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if delivery == nil {
		return nil, errors.New("delivery is nil")
	}
	record := toRecord(delivery)
	result := r.db.WithContext(ctx).Model(&deliveryRecord{}).
		Where("id = ?", record.ID).
		Select("distributor_id", "status", "priority", "pickup_time", "delivery_time",
			"proof_of_delivery", "signature", "notes", "scheduled_time", "updated_at").
		Updates(map[string]any{
			"distributor_id":    record.DistributorID,
			"status":            record.Status,
			"priority":          record.Priority,
			"pickup_time":       record.PickupTime,
			"delivery_time":     record.DeliveryTime,
			"proof_of_delivery": record.ProofOfDelivery,
			"signature":         record.Signature,
			"notes":             record.Notes,
			"scheduled_time":    record.ScheduledTime,
			"updated_at":        gorm.Expr("NOW()"),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ports.ErrNotFound
	}
	return r.GetByID(ctx, record.ID)
}

// ListPending orders the queue by priority weight descending, then FIFO.
func (r *Repository) ListPending(ctx context.Context) ([]*domain.Delivery, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []deliveryRecord
	err := r.db.WithContext(ctx).
		Where("status = ?", string(domain.StatusPending)).
		Order("CASE priority WHEN 'urgent' THEN 2 WHEN 'high' THEN 1 ELSE 0 END DESC, created_at ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return toDomainSlice(records), nil
}

func (r *Repository) ListByDistributor(ctx context.Context, distributorID string) ([]*domain.Delivery, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []deliveryRecord
	err := r.db.WithContext(ctx).
		Where("distributor_id = ?", distributorID).
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return toDomainSlice(records), nil
}

func (r *Repository) AppendTracking(ctx context.Context, point *domain.TrackingPoint) (*domain.TrackingPoint, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if point == nil {
		return nil, errors.New("tracking point is nil")
	}
	record := trackingRecord{
		ID:         point.ID,
		DeliveryID: point.DeliveryID,
		Lat:        point.Lat,
		Lng:        point.Lng,
		Notes:      point.Notes,
		RecordedAt: point.RecordedAt,
	}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) ListTracking(ctx context.Context, deliveryID string) ([]*domain.TrackingPoint, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []trackingRecord
	err := r.db.WithContext(ctx).
		Where("delivery_id = ?", deliveryID).
		Order("recorded_at").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	result := make([]*domain.TrackingPoint, 0, len(records))
	for i := range records {
		result = append(result, records[i].toDomain())
	}
	return result, nil
}

// PurgeTrackingBefore removes old samples for deliveries in a terminal state.
func (r *Repository) PurgeTrackingBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	if err := r.ensureDB(); err != nil {
		return 0, err
	}
	result := r.db.WithContext(ctx).
		Where("recorded_at < ?", cutoff).
		Where("delivery_id IN (?)", r.db.Model(&deliveryRecord{}).
			Select("id").
			Where("status IN ?", []string{
				string(domain.StatusDelivered),
				string(domain.StatusFailed),
				string(domain.StatusCancelled),
			})).
		Delete(&trackingRecord{})
	return result.RowsAffected, result.Error
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres delivery repository not configured")
	}
	return nil
}

func toRecord(delivery *domain.Delivery) deliveryRecord {
	record := deliveryRecord{
		ID:               delivery.ID,
		DeliveryNumber:   delivery.DeliveryNumber,
		OrderID:          delivery.OrderID,
		DistributorID:    delivery.DistributorID,
		Status:           string(delivery.Status),
		Priority:         string(delivery.Priority),
		PickupLocation:   delivery.PickupLocation,
		DeliveryLocation: delivery.DeliveryLocation,
		DistanceKm:       delivery.DistanceKm,
		EstimatedMinutes: delivery.EstimatedMinutes,
		ScheduledTime:    delivery.ScheduledTime,
		PickupTime:       delivery.PickupTime,
		DeliveryTime:     delivery.DeliveryTime,
		ProofOfDelivery:  delivery.ProofOfDelivery,
		Signature:        delivery.Signature,
		Notes:            delivery.Notes,
	}
	if delivery.PickupCoords != nil {
		lat, lng := delivery.PickupCoords.Lat, delivery.PickupCoords.Lng
		record.PickupLat, record.PickupLng = &lat, &lng
	}
	if delivery.DeliveryCoords != nil {
		lat, lng := delivery.DeliveryCoords.Lat, delivery.DeliveryCoords.Lng
		record.DeliveryLat, record.DeliveryLng = &lat, &lng
	}
	return record
}

func (r deliveryRecord) toDomain() *domain.Delivery {
	delivery := &domain.Delivery{
		ID:               r.ID,
		DeliveryNumber:   r.DeliveryNumber,
		OrderID:          r.OrderID,
		DistributorID:    r.DistributorID,
		Status:           domain.Status(r.Status),
		Priority:         domain.Priority(r.Priority),
		PickupLocation:   r.PickupLocation,
		DeliveryLocation: r.DeliveryLocation,
		DistanceKm:       r.DistanceKm,
		EstimatedMinutes: r.EstimatedMinutes,
		ScheduledTime:    r.ScheduledTime,
		PickupTime:       r.PickupTime,
		DeliveryTime:     r.DeliveryTime,
		ProofOfDelivery:  r.ProofOfDelivery,
		Signature:        r.Signature,
		Notes:            r.Notes,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
	if r.PickupLat != nil && r.PickupLng != nil {
		delivery.PickupCoords = &domain.Coordinates{Lat: *r.PickupLat, Lng: *r.PickupLng}
	}
	if r.DeliveryLat != nil && r.DeliveryLng != nil {
		delivery.DeliveryCoords = &domain.Coordinates{Lat: *r.DeliveryLat, Lng: *r.DeliveryLng}
	}
	return delivery
}

func (r trackingRecord) toDomain() *domain.TrackingPoint {
	return &domain.TrackingPoint{
		ID:         r.ID,
		DeliveryID: r.DeliveryID,
		Lat:        r.Lat,
		Lng:        r.Lng,
		Notes:      r.Notes,
		RecordedAt: r.RecordedAt,
	}
}

func toDomainSlice(records []deliveryRecord) []*domain.Delivery {
	result := make([]*domain.Delivery, 0, len(records))
	for i := range records {
		result = append(result, records[i].toDomain())
	}
	return result
}
