// Package ports defines the analytics boundaries.
package ports

import (
	"context"

	analyticstypes "github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/analytics/application/types"
)

// SalesSource supplies the delivered line items aggregations fold over.
// Implemented by the orders context.
type SalesSource interface {
	// DeliveredItems returns the seller's line items on delivered orders.
	DeliveredItems(ctx context.Context, sellerID string) ([]analyticstypes.SaleRow, error)
}

// Service exposes the seller analytics use cases.
type Service interface {
	RevenueSeries(ctx context.Context, sellerID string, granularity analyticstypes.Granularity, window analyticstypes.Window) ([]analyticstypes.RevenuePoint, error)
	TopProducts(ctx context.Context, sellerID string, limit int) ([]analyticstypes.ProductSales, error)
	TopCustomers(ctx context.Context, sellerID string, limit int) ([]analyticstypes.CustomerSales, error)
	SellerSummary(ctx context.Context, sellerID string) (*analyticstypes.SellerSummary, error)
}
