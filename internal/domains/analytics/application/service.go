// Package application folds delivered sales rows into seller analytics.
package application

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	analyticstypes "github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/analytics/application/types"
	"github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/analytics/ports"
)

// ErrInvalidGranularity signals an unknown time-series bucket width.
var ErrInvalidGranularity = errors.New("unknown analytics granularity")

// DefaultTopLimit bounds ranking queries when the caller passes no limit.
const DefaultTopLimit = 10

// Service computes seller analytics from delivered sales rows. All grouping
// happens in process over the seller's delivered item volume.
type Service struct {
	source ports.SalesSource
}

// NewService wires the analytics service over a sales source.
func NewService(source ports.SalesSource) *Service {
	return &Service{source: source}
}

// RevenueSeries buckets delivered revenue by day, Sunday-aligned week, or
// month. Buckets appear in chronological order; empty buckets are omitted.
func (s *Service) RevenueSeries(ctx context.Context, sellerID string, granularity analyticstypes.Granularity, window analyticstypes.Window) ([]analyticstypes.RevenuePoint, error) {
	switch granularity {
	case analyticstypes.GranularityDaily, analyticstypes.GranularityWeekly, analyticstypes.GranularityMonthly:
	default:
		return nil, ErrInvalidGranularity
	}
	rows, err := s.source.DeliveredItems(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	type bucketAcc struct {
		revenue decimal.Decimal
		orders  map[string]bool
		items   int
	}
	buckets := map[string]*bucketAcc{}
	for _, row := range rows {
		if !window.Contains(row.OrderedAt) {
			continue
		}
		key := bucketKey(row.OrderedAt, granularity)
		acc, ok := buckets[key]
		if !ok {
			acc = &bucketAcc{revenue: decimal.Zero, orders: map[string]bool{}}
			buckets[key] = acc
		}
		acc.revenue = acc.revenue.Add(row.Revenue)
		acc.orders[row.OrderID] = true
		acc.items += row.Quantity
	}
	result := make([]analyticstypes.RevenuePoint, 0, len(buckets))
	for key, acc := range buckets {
		result = append(result, analyticstypes.RevenuePoint{
			Bucket:  key,
			Revenue: acc.revenue,
			Orders:  len(acc.orders),
			Items:   acc.items,
		})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Bucket < result[j].Bucket })
	return result, nil
}

// TopProducts ranks the seller's products by delivered revenue.
func (s *Service) TopProducts(ctx context.Context, sellerID string, limit int) ([]analyticstypes.ProductSales, error) {
	if limit <= 0 {
		limit = DefaultTopLimit
	}
	rows, err := s.source.DeliveredItems(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	byProduct := map[string]*analyticstypes.ProductSales{}
	for _, row := range rows {
		acc, ok := byProduct[row.ProductID]
		if !ok {
			acc = &analyticstypes.ProductSales{ProductID: row.ProductID, Name: row.ItemName, Revenue: decimal.Zero}
			byProduct[row.ProductID] = acc
		}
		acc.Quantity += row.Quantity
		acc.Revenue = acc.Revenue.Add(row.Revenue)
	}
	result := make([]analyticstypes.ProductSales, 0, len(byProduct))
	for _, acc := range byProduct {
		result = append(result, *acc)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Revenue.Equal(result[j].Revenue) {
			return result[i].Revenue.GreaterThan(result[j].Revenue)
		}
		return result[i].ProductID < result[j].ProductID
	})
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// TopCustomers ranks the seller's customers by delivered revenue.
func (s *Service) TopCustomers(ctx context.Context, sellerID string, limit int) ([]analyticstypes.CustomerSales, error) {
	if limit <= 0 {
		limit = DefaultTopLimit
	}
	rows, err := s.source.DeliveredItems(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	type customerAcc struct {
		revenue decimal.Decimal
		orders  map[string]bool
	}
	byCustomer := map[string]*customerAcc{}
	for _, row := range rows {
		acc, ok := byCustomer[row.CustomerID]
		if !ok {
			acc = &customerAcc{revenue: decimal.Zero, orders: map[string]bool{}}
			byCustomer[row.CustomerID] = acc
		}
		acc.revenue = acc.revenue.Add(row.Revenue)
		acc.orders[row.OrderID] = true
	}
	result := make([]analyticstypes.CustomerSales, 0, len(byCustomer))
	for customerID, acc := range byCustomer {
		result = append(result, analyticstypes.CustomerSales{
			CustomerID: customerID,
			Orders:     len(acc.orders),
			Revenue:    acc.revenue,
		})
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Revenue.Equal(result[j].Revenue) {
			return result[i].Revenue.GreaterThan(result[j].Revenue)
		}
		return result[i].CustomerID < result[j].CustomerID
	})
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// SellerSummary folds all delivered rows into the headline numbers.
func (s *Service) SellerSummary(ctx context.Context, sellerID string) (*analyticstypes.SellerSummary, error) {
	rows, err := s.source.DeliveredItems(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	summary := &analyticstypes.SellerSummary{
		TotalRevenue:      decimal.Zero,
		AverageOrderValue: decimal.Zero,
	}
	orders := map[string]bool{}
	customers := map[string]bool{}
	for _, row := range rows {
		summary.TotalRevenue = summary.TotalRevenue.Add(row.Revenue)
		summary.TotalItemsSold += row.Quantity
		orders[row.OrderID] = true
		customers[row.CustomerID] = true
	}
	summary.TotalOrders = len(orders)
	summary.TotalCustomers = len(customers)
	if summary.TotalOrders > 0 {
		summary.AverageOrderValue = summary.TotalRevenue.
			Div(decimal.NewFromInt(int64(summary.TotalOrders))).
			Round(2)
	}
	return summary, nil
}

// bucketKey derives the grouping key: ISO date for daily, the Sunday-aligned
// week start date for weekly, and YYYY-MM for monthly.
func bucketKey(at time.Time, granularity analyticstypes.Granularity) string {
	at = at.UTC()
	switch granularity {
	case analyticstypes.GranularityWeekly:
		weekStart := at.AddDate(0, 0, -int(at.Weekday()))
		return weekStart.Format("2006-01-02")
	case analyticstypes.GranularityMonthly:
		return at.Format("2006-01")
	default:
		return at.Format("2006-01-02")
	}
}

var _ ports.Service = (*Service)(nil)
