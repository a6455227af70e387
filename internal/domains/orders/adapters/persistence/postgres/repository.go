// Package postgres persists orders in PostgreSQL using GORM.
package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	ordertypes "github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/orders/application/types"
	"github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/orders/domain"
	"github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists orders, line items, and status history in PostgreSQL.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// orderRecord maps the order aggregate to a relational table.
type orderRecord struct {
	ID                string          `gorm:"primaryKey;column:id;type:varchar(36)"`
	OrderNumber       string          `gorm:"column:order_number;type:varchar(32);uniqueIndex"`
	CustomerID        string          `gorm:"column:customer_id;type:varchar(36);index:idx_orders_customer_created"`
	Status            string          `gorm:"column:status;type:varchar(16);index"`
	PaymentStatus     string          `gorm:"column:payment_status;type:varchar(16)"`
	PaymentMethod     *string         `gorm:"column:payment_method;type:varchar(24)"`
	Subtotal          decimal.Decimal `gorm:"column:subtotal;type:decimal(12,2)"`
	ShippingFee       decimal.Decimal `gorm:"column:shipping_fee;type:decimal(12,2)"`
	Tax               decimal.Decimal `gorm:"column:tax;type:decimal(12,2)"`
	Discount          decimal.Decimal `gorm:"column:discount;type:decimal(12,2)"`
	Total             decimal.Decimal `gorm:"column:total;type:decimal(12,2)"`
	Notes             string          `gorm:"column:notes;type:text"`
	ShippingAddressID *string         `gorm:"column:shipping_address_id;type:varchar(36)"`
	DistributorID     *string         `gorm:"column:distributor_id;type:varchar(36);index"`
	CreatedAt         time.Time       `gorm:"column:created_at;index:idx_orders_customer_created"`
	UpdatedAt         time.Time       `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }

type orderItemRecord struct {
	ID         string          `gorm:"primaryKey;column:id;type:varchar(36)"`
	OrderID    string          `gorm:"column:order_id;type:varchar(36);index"`
	ProductID  string          `gorm:"column:product_id;type:varchar(36);index"`
	VariantID  *string         `gorm:"column:variant_id;type:varchar(36)"`
	SellerID   string          `gorm:"column:seller_id;type:varchar(36);index"`
	Name       string          `gorm:"column:name"`
	Quantity   int             `gorm:"column:quantity"`
	UnitPrice  decimal.Decimal `gorm:"column:unit_price;type:decimal(12,2)"`
	TotalPrice decimal.Decimal `gorm:"column:total_price;type:decimal(12,2)"`
	Status     string          `gorm:"column:status;type:varchar(16)"`
	CreatedAt  time.Time       `gorm:"column:created_at"`
	UpdatedAt  time.Time       `gorm:"column:updated_at"`
}

func (orderItemRecord) TableName() string { return "order_items" }

type statusHistoryRecord struct {
	ID        string    `gorm:"primaryKey;column:id;type:varchar(36)"`
	OrderID   string    `gorm:"column:order_id;type:varchar(36);index"`
	Status    string    `gorm:"column:status;type:varchar(16)"`
	Notes     string    `gorm:"column:notes;type:text"`
	ActorID   *string   `gorm:"column:actor_id;type:varchar(36)"`
	CreatedAt time.Time `gorm:"column:created_at;index"`
}

func (statusHistoryRecord) TableName() string { return "order_status_history" }

// CreateWithItems persists the order, its items, and the initial history row
// in a single transaction.
func (r *Repository) CreateWithItems(ctx context.Context, order *domain.Order, items []*domain.Item) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.New("order is nil")
	}
	record := toOrderRecord(order)
	itemRecords := make([]orderItemRecord, 0, len(items))
	for _, item := range items {
		itemRecords = append(itemRecords, toItemRecord(item))
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&record).Error; err != nil {
			return err
		}
		if err := tx.Create(&itemRecords).Error; err != nil {
			return err
		}
		history := statusHistoryRecord{
			ID:      uuid.New().String(),
			OrderID: record.ID,
			Status:  record.Status,
			Notes:   "order placed",
		}
		return tx.Create(&history).Error
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, record.ID)
}

// GetByID fetches an order by identifier.
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record orderRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// GetWithItems fetches an order and all of its line items.
func (r *Repository) GetWithItems(ctx context.Context, id string) (*ordertypes.OrderWithItems, error) {
	order, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	var itemRecords []orderItemRecord
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", id).
		Order("id").
		Find(&itemRecords).Error; err != nil {
		return nil, err
	}
	view := &ordertypes.OrderWithItems{Order: order, Items: make([]*domain.Item, 0, len(itemRecords))}
	for i := range itemRecords {
		view.Items = append(view.Items, itemRecords[i].toDomain())
	}
	return view, nil
}

// List returns orders matching the filters, newest first.
func (r *Repository) List(ctx context.Context, filters ordertypes.OrderFilters) ([]*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	query := r.db.WithContext(ctx).Model(&orderRecord{})
	if filters.CustomerID != "" {
		query = query.Where("customer_id = ?", filters.CustomerID)
	}
	if filters.Status != nil {
		query = query.Where("status = ?", string(*filters.Status))
	}
	if filters.From != nil {
		query = query.Where("created_at >= ?", *filters.From)
	}
	if filters.To != nil {
		query = query.Where("created_at <= ?", *filters.To)
	}
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	var records []orderRecord
	if err := query.Order("created_at DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	orders := make([]*domain.Order, 0, len(records))
	for i := range records {
		orders = append(orders, records[i].toDomain())
	}
	return orders, nil
}

// ListSellerItems returns the seller's line items joined with their parent
// orders, ordered by order creation time descending.
func (r *Repository) ListSellerItems(ctx context.Context, sellerID string) ([]ordertypes.ItemWithOrder, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var itemRecords []orderItemRecord
	if err := r.db.WithContext(ctx).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("order_items.seller_id = ?", sellerID).
		Order("orders.created_at DESC, order_items.id").
		Find(&itemRecords).Error; err != nil {
		return nil, err
	}
	if len(itemRecords) == 0 {
		return nil, nil
	}
	orderIDs := make([]string, 0, len(itemRecords))
	seen := map[string]bool{}
	for i := range itemRecords {
		if !seen[itemRecords[i].OrderID] {
			seen[itemRecords[i].OrderID] = true
			orderIDs = append(orderIDs, itemRecords[i].OrderID)
		}
	}
	var orderRecords []orderRecord
	if err := r.db.WithContext(ctx).Where("id IN ?", orderIDs).Find(&orderRecords).Error; err != nil {
		return nil, err
	}
	ordersByID := make(map[string]*domain.Order, len(orderRecords))
	for i := range orderRecords {
		ordersByID[orderRecords[i].ID] = orderRecords[i].toDomain()
	}
	rows := make([]ordertypes.ItemWithOrder, 0, len(itemRecords))
	for i := range itemRecords {
		parent, ok := ordersByID[itemRecords[i].OrderID]
		if !ok {
			continue
		}
		rows = append(rows, ordertypes.ItemWithOrder{Item: itemRecords[i].toDomain(), Order: parent})
	}
	return rows, nil
}

// Update applies the patch and appends the history row in one transaction.
func (r *Repository) Update(ctx context.Context, orderID string, patch ordertypes.OrderPatch, history *domain.StatusHistory) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	updates := map[string]any{"updated_at": gorm.Expr("NOW()")}
	if patch.Status != nil {
		updates["status"] = string(*patch.Status)
	}
	if patch.PaymentStatus != nil {
		updates["payment_status"] = string(*patch.PaymentStatus)
	}
	if patch.DistributorID != nil {
		updates["distributor_id"] = *patch.DistributorID
	}
	if patch.Notes != nil {
		updates["notes"] = *patch.Notes
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&orderRecord{}).Where("id = ?", orderID).Updates(updates)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ports.ErrNotFound
		}
		if history != nil {
			record := toHistoryRecord(history)
			return tx.Create(&record).Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, orderID)
}

// GetItemByID fetches a line item by identifier.
func (r *Repository) GetItemByID(ctx context.Context, itemID string) (*domain.Item, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record orderItemRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrItemNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// UpdateItemStatus writes the new line item status.
func (r *Repository) UpdateItemStatus(ctx context.Context, itemID string, status domain.ItemStatus) (*domain.Item, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	result := r.db.WithContext(ctx).Model(&orderItemRecord{}).
		Where("id = ?", itemID).
		Updates(map[string]any{"status": string(status), "updated_at": gorm.Expr("NOW()")})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ports.ErrItemNotFound
	}
	return r.GetItemByID(ctx, itemID)
}

// ListHistory returns the status trail for an order, oldest first.
func (r *Repository) ListHistory(ctx context.Context, orderID string) ([]*domain.StatusHistory, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []statusHistoryRecord
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at").
		Find(&records).Error; err != nil {
		return nil, err
	}
	rows := make([]*domain.StatusHistory, 0, len(records))
	for i := range records {
		rows = append(rows, records[i].toDomain())
	}
	return rows, nil
}

// FindDeliveredItem returns a delivered purchase of the product by the customer.
func (r *Repository) FindDeliveredItem(ctx context.Context, customerID, productID string) (*domain.Item, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record orderItemRecord
	err := r.db.WithContext(ctx).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("order_items.product_id = ? AND orders.customer_id = ? AND orders.status = ?",
			productID, customerID, string(domain.StatusDelivered)).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrItemNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres order repository not configured")
	}
	return nil
}

func toOrderRecord(order *domain.Order) orderRecord {
	return orderRecord{
		ID:                order.ID,
		OrderNumber:       order.OrderNumber,
		CustomerID:        order.CustomerID,
		Status:            string(order.Status),
		PaymentStatus:     string(order.PaymentStatus),
		PaymentMethod:     (*string)(order.PaymentMethod),
		Subtotal:          order.Subtotal,
		ShippingFee:       order.ShippingFee,
		Tax:               order.Tax,
		Discount:          order.Discount,
		Total:             order.Total,
		Notes:             order.Notes,
		ShippingAddressID: order.ShippingAddressID,
		DistributorID:     order.DistributorID,
	}
}

func (r orderRecord) toDomain() *domain.Order {
	return &domain.Order{
		ID:                r.ID,
		OrderNumber:       r.OrderNumber,
		CustomerID:        r.CustomerID,
		Status:            domain.Status(r.Status),
		PaymentStatus:     domain.PaymentStatus(r.PaymentStatus),
		PaymentMethod:     (*domain.PaymentMethod)(r.PaymentMethod),
		Subtotal:          r.Subtotal,
		ShippingFee:       r.ShippingFee,
		Tax:               r.Tax,
		Discount:          r.Discount,
		Total:             r.Total,
		Notes:             r.Notes,
		ShippingAddressID: r.ShippingAddressID,
		DistributorID:     r.DistributorID,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}
}

func toItemRecord(item *domain.Item) orderItemRecord {
	return orderItemRecord{
		ID:         item.ID,
		OrderID:    item.OrderID,
		ProductID:  item.ProductID,
		VariantID:  item.VariantID,
		SellerID:   item.SellerID,
		Name:       item.Name,
		Quantity:   item.Quantity,
		UnitPrice:  item.UnitPrice,
		TotalPrice: item.TotalPrice,
		Status:     string(item.Status),
	}
}

func (r orderItemRecord) toDomain() *domain.Item {
	return &domain.Item{
		ID:         r.ID,
		OrderID:    r.OrderID,
		ProductID:  r.ProductID,
		VariantID:  r.VariantID,
		SellerID:   r.SellerID,
		Name:       r.Name,
		Quantity:   r.Quantity,
		UnitPrice:  r.UnitPrice,
		TotalPrice: r.TotalPrice,
		Status:     domain.ItemStatus(r.Status),
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

func (r statusHistoryRecord) toDomain() *domain.StatusHistory {
	return &domain.StatusHistory{
		ID:        r.ID,
		OrderID:   r.OrderID,
		Status:    domain.Status(r.Status),
		Notes:     r.Notes,
		ActorID:   r.ActorID,
		CreatedAt: r.CreatedAt,
	}
}

func toHistoryRecord(history *domain.StatusHistory) statusHistoryRecord {
	return statusHistoryRecord{
		ID:      history.ID,
		OrderID: history.OrderID,
		Status:  string(history.Status),
		Notes:   history.Notes,
		ActorID: history.ActorID,
	}
}
