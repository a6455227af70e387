package http

import (
	"time"

	"github.com/shopspring/decimal"

	ordertypes "github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/orders/application/types"
	"github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/orders/domain"
)

type orderResponse struct {
	ID                string          `json:"id"`
	OrderNumber       string          `json:"orderNumber"`
	CustomerID        string          `json:"customerId"`
	Status            string          `json:"status"`
	PaymentStatus     string          `json:"paymentStatus"`
	PaymentMethod     *string         `json:"paymentMethod,omitempty"`
	Subtotal          decimal.Decimal `json:"subtotal"`
	ShippingFee       decimal.Decimal `json:"shippingFee"`
	Tax               decimal.Decimal `json:"tax"`
	Discount          decimal.Decimal `json:"discount"`
	Total             decimal.Decimal `json:"total"`
	Notes             string          `json:"notes,omitempty"`
	ShippingAddressID *string         `json:"shippingAddressId,omitempty"`
	DistributorID     *string         `json:"distributorId,omitempty"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}

type itemResponse struct {
	ID         string          `json:"id"`
	OrderID    string          `json:"orderId"`
	ProductID  string          `json:"productId"`
	VariantID  *string         `json:"variantId,omitempty"`
	SellerID   string          `json:"sellerId"`
	Name       string          `json:"name"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unitPrice"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	Status     string          `json:"status"`
}

type orderWithItemsResponse struct {
	orderResponse
	Items []itemResponse `json:"items"`
}

type historyResponse struct {
	ID        string    `json:"id"`
	OrderID   string    `json:"orderId"`
	Status    string    `json:"status"`
	Notes     string    `json:"notes,omitempty"`
	ActorID   *string   `json:"actorId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type sellerStatsResponse struct {
	Pending    int             `json:"pending"`
	Processing int             `json:"processing"`
	Completed  int             `json:"completed"`
	Total      int             `json:"total"`
	Revenue    decimal.Decimal `json:"revenue"`
}

func toOrderResponse(order *domain.Order) orderResponse {
	return orderResponse{
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
		CreatedAt:         order.CreatedAt,
		UpdatedAt:         order.UpdatedAt,
	}
}

func toItemResponse(item *domain.Item) itemResponse {
	return itemResponse{
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

func toOrderWithItemsResponse(view *ordertypes.OrderWithItems) orderWithItemsResponse {
	result := orderWithItemsResponse{
		orderResponse: toOrderResponse(view.Order),
		Items:         make([]itemResponse, 0, len(view.Items)),
	}
	for _, item := range view.Items {
		result.Items = append(result.Items, toItemResponse(item))
	}
	return result
}

func toHistoryResponse(row *domain.StatusHistory) historyResponse {
	return historyResponse{
		ID:        row.ID,
		OrderID:   row.OrderID,
		Status:    string(row.Status),
		Notes:     row.Notes,
		ActorID:   row.ActorID,
		CreatedAt: row.CreatedAt,
	}
}
