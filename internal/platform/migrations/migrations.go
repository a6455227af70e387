package migrations

import (
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Run applies the schema for the bounded contexts. Intended to replace adapter-level automigrate.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&productRecord{},
		&categoryRecord{},
		&orderRecord{},
		&orderItemRecord{},
		&statusHistoryRecord{},
		&deliveryRecord{},
		&trackingRecord{},
		&reviewRecord{},
		&voteRecord{},
	)
}

// Product schema mirrors the catalog Postgres adapter.
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

// Order schema mirrors the orders Postgres adapter.
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

// Delivery schema mirrors the deliveries Postgres adapter.
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

// Review schema mirrors the reviews Postgres adapter.
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
