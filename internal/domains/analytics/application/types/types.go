// Package types carries the aggregation inputs and views of the analytics context.
package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// Granularity selects the time-series bucket width.
type Granularity string

const (
	GranularityDaily   Granularity = "daily"
	GranularityWeekly  Granularity = "weekly"
	GranularityMonthly Granularity = "monthly"
)

// Window bounds a time series. Zero values mean unbounded on that side;
// To is exclusive.
type Window struct {
	From time.Time
	To   time.Time
}

// Contains reports whether at falls inside the window.
func (w Window) Contains(at time.Time) bool {
	if !w.From.IsZero() && at.Before(w.From) {
		return false
	}
	if !w.To.IsZero() && !at.Before(w.To) {
		return false
	}
	return true
}

// SaleRow is one delivered line item with its order context, the raw
// material of every aggregation.
type SaleRow struct {
	OrderID    string
	CustomerID string
	ProductID  string
	ItemName   string
	Quantity   int
	Revenue    decimal.Decimal
	OrderedAt  time.Time
}

// RevenuePoint is one bucket of the revenue time series.
type RevenuePoint struct {
	Bucket  string
	Revenue decimal.Decimal
	Orders  int
	Items   int
}

// ProductSales ranks a product by delivered quantity and revenue.
type ProductSales struct {
	ProductID string
	Name      string
	Quantity  int
	Revenue   decimal.Decimal
}

// CustomerSales ranks a customer by delivered orders and revenue.
type CustomerSales struct {
	CustomerID string
	Orders     int
	Revenue    decimal.Decimal
}

// SellerSummary is the headline numbers for a seller.
type SellerSummary struct {
	TotalRevenue      decimal.Decimal
	TotalOrders       int
	TotalItemsSold    int
	TotalCustomers    int
	AverageOrderValue decimal.Decimal
}
