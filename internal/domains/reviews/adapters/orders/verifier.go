// Package orders bridges the review purchase gate to the orders context.
package orders

import (
	"context"
	"errors"

	orderports "github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/orders/ports"
	"github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/reviews/ports"
)

var _ ports.PurchaseVerifier = (*PurchaseVerifier)(nil)

// PurchaseVerifier answers the delivered-purchase gate via the orders service.
type PurchaseVerifier struct {
	orders orderports.Service
}

// NewPurchaseVerifier wires the orders service as the review gate.
func NewPurchaseVerifier(orders orderports.Service) *PurchaseVerifier {
	return &PurchaseVerifier{orders: orders}
}

// DeliveredOrderItem reports a delivered line item for the pair, if any.
func (v *PurchaseVerifier) DeliveredOrderItem(ctx context.Context, customerID, productID string) (string, string, bool, error) {
	item, err := v.orders.VerifyDeliveredPurchase(ctx, customerID, productID)
	if err != nil {
		if errors.Is(err, orderports.ErrItemNotFound) {
			return "", "", false, nil
		}
		return "", "", false, err
	}
	return item.ID, item.SellerID, true, nil
}
