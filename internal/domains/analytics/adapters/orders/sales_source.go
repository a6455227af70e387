// Package orders feeds delivered sales rows from the orders context.
package orders

import (
	"context"

	analyticstypes "github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/analytics/application/types"
	"github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/analytics/ports"
	orderdomain "github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/orders/domain"
	orderports "github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/orders/ports"
)

var _ ports.SalesSource = (*SalesSource)(nil)

// SalesSource reads the seller's line items from the orders repository and
// keeps only those on delivered orders.
type SalesSource struct {
	repo orderports.Repository
}

// NewSalesSource wires the orders repository as the analytics input.
func NewSalesSource(repo orderports.Repository) *SalesSource {
	return &SalesSource{repo: repo}
}

// DeliveredItems returns the seller's delivered line items as sale rows.
func (s *SalesSource) DeliveredItems(ctx context.Context, sellerID string) ([]analyticstypes.SaleRow, error) {
	rows, err := s.repo.ListSellerItems(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	result := make([]analyticstypes.SaleRow, 0, len(rows))
	for _, row := range rows {
		if row.Order.Status != orderdomain.StatusDelivered {
			continue
		}
		result = append(result, analyticstypes.SaleRow{
			OrderID:    row.Order.ID,
			CustomerID: row.Order.CustomerID,
			ProductID:  row.Item.ProductID,
			ItemName:   row.Item.Name,
			Quantity:   row.Item.Quantity,
			Revenue:    row.Item.TotalPrice,
			OrderedAt:  row.Order.CreatedAt,
		})
	}
	return result, nil
}
