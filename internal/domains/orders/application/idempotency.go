package application

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	ordertypes "github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/orders/application/types"
)

type normalizedCreateOrder struct {
	CustomerID        string               `json:"customerId"`
	Items             []normalizedItem     `json:"items"`
	PaymentMethod     *string              `json:"paymentMethod"`
	Pricing           normalizedPricing    `json:"pricing"`
	Notes             string               `json:"notes"`
	ShippingAddressID *string              `json:"shippingAddressId"`
}

type normalizedItem struct {
	ProductID string  `json:"productId"`
	VariantID *string `json:"variantId"`
	SellerID  string  `json:"sellerId"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice string  `json:"unitPrice"`
}

type normalizedPricing struct {
	Subtotal    string `json:"subtotal"`
	ShippingFee string `json:"shippingFee"`
	Tax         string `json:"tax"`
	Discount    string `json:"discount"`
	Total       string `json:"total"`
}

// FingerprintCreateOrder builds a deterministic hash of the checkout payload
// (excluding the idempotency key). Decimals are rendered as strings so the
// hash does not depend on internal exponent representation.
func FingerprintCreateOrder(input ordertypes.CreateOrderInput) (string, error) {
	normalized := normalizedCreateOrder{
		CustomerID:        input.CustomerID,
		Notes:             input.Notes,
		ShippingAddressID: input.ShippingAddressID,
		Pricing: normalizedPricing{
			Subtotal:    input.Pricing.Subtotal.String(),
			ShippingFee: input.Pricing.ShippingFee.String(),
			Tax:         input.Pricing.Tax.String(),
			Discount:    input.Pricing.Discount.String(),
			Total:       input.Pricing.Total.String(),
		},
	}
	if input.PaymentMethod != nil {
		method := string(*input.PaymentMethod)
		normalized.PaymentMethod = &method
	}
	normalized.Items = make([]normalizedItem, 0, len(input.Items))
	for _, item := range input.Items {
		normalized.Items = append(normalized.Items, normalizedItem{
			ProductID: item.ProductID,
			VariantID: item.VariantID,
			SellerID:  item.SellerID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice.String(),
		})
	}
	payload, err := json.Marshal(normalized)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:]), nil
}
