// Package http exposes the orders use cases over gin.
package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/orders/application"
	ordertypes "github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/orders/application/types"
	"github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/orders/domain"
	"github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/orders/ports"
	sharederrors "github.com/civicGenAi/tanzania-fish-hub-sub001/internal/shared/errors"
)

// ActorHeader carries the acting principal. Role enforcement happens at the
// gateway; this layer only records attribution.
const ActorHeader = "X-User-ID"

// Handler adapts HTTP requests to the orders ports.
type Handler struct {
	service   ports.Service
	workflows ports.WorkflowOrchestrator
	responder *sharederrors.Responder
}

// NewHandler wires the orders HTTP adapter. workflows may be nil; creation
// then calls the service directly.
func NewHandler(service ports.Service, workflows ports.WorkflowOrchestrator, responder *sharederrors.Responder) *Handler {
	if responder == nil {
		responder = sharederrors.NewResponder("", ErrorMapper)
	}
	return &Handler{service: service, workflows: workflows, responder: responder}
}

// Register mounts the order routes on the given group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("/orders", h.createOrder)
	rg.GET("/orders", h.listOrders)
	rg.GET("/orders/:id", h.getOrder)
	rg.PATCH("/orders/:id", h.updateOrder)
	rg.POST("/orders/:id/cancel", h.cancelOrder)
	rg.GET("/orders/:id/history", h.getOrderHistory)
	rg.PATCH("/order-items/:id/status", h.updateItemStatus)
	rg.GET("/sellers/:id/orders", h.getSellerOrders)
	rg.GET("/sellers/:id/orders/stats", h.getSellerOrderStats)
}

// ErrorMapper converts orders errors into problem details.
func ErrorMapper(err error) (sharederrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, ports.ErrNotFound):
		return sharederrors.NewNotFoundProblem("order", nil), true
	case errors.Is(err, ports.ErrItemNotFound):
		return sharederrors.NewNotFoundProblem("order item", nil), true
	case errors.Is(err, application.ErrInvalidTransition):
		return sharederrors.ErrInvalidTransition.WithDetail(err.Error()), true
	case errors.Is(err, application.ErrInvalidInput):
		return sharederrors.ErrValidation.WithDetail(err.Error()), true
	case errors.Is(err, application.ErrIdempotencyConflict):
		return sharederrors.ErrConflict.WithDetail(err.Error()), true
	}
	return sharederrors.ProblemDetail{}, false
}

type itemRequest struct {
	ProductID string          `json:"productId" binding:"required"`
	VariantID *string         `json:"variantId"`
	SellerID  string          `json:"sellerId" binding:"required"`
	Name      string          `json:"name" binding:"required"`
	Quantity  int             `json:"quantity" binding:"required"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

type pricingRequest struct {
	Subtotal    decimal.Decimal `json:"subtotal"`
	ShippingFee decimal.Decimal `json:"shippingFee"`
	Tax         decimal.Decimal `json:"tax"`
	Discount    decimal.Decimal `json:"discount"`
	Total       decimal.Decimal `json:"total"`
}

type createOrderRequest struct {
	CustomerID        string         `json:"customerId" binding:"required"`
	Items             []itemRequest  `json:"items" binding:"required"`
	PaymentMethod     *string        `json:"paymentMethod"`
	Pricing           pricingRequest `json:"pricing"`
	Notes             string         `json:"notes"`
	ShippingAddressID *string        `json:"shippingAddressId"`
	IdempotencyKey    string         `json:"idempotencyKey"`
}

type updateOrderRequest struct {
	Status        *string `json:"status"`
	PaymentStatus *string `json:"paymentStatus"`
	DistributorID *string `json:"distributorId"`
	Notes         *string `json:"notes"`
	StatusNotes   string  `json:"statusNotes"`
}

type cancelOrderRequest struct {
	Reason string `json:"reason"`
}

type updateItemStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *Handler) createOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.responder.BadRequest(c, err.Error())
		return
	}
	input := ordertypes.CreateOrderInput{
		CustomerID:        req.CustomerID,
		PaymentMethod:     (*domain.PaymentMethod)(req.PaymentMethod),
		Notes:             req.Notes,
		ShippingAddressID: req.ShippingAddressID,
		IdempotencyKey:    strings.TrimSpace(req.IdempotencyKey),
		Pricing: ordertypes.PricingInput{
			Subtotal:    req.Pricing.Subtotal,
			ShippingFee: req.Pricing.ShippingFee,
			Tax:         req.Pricing.Tax,
			Discount:    req.Pricing.Discount,
			Total:       req.Pricing.Total,
		},
	}
	for _, item := range req.Items {
		input.Items = append(input.Items, ordertypes.ItemInput{
			ProductID: item.ProductID,
			VariantID: item.VariantID,
			SellerID:  item.SellerID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	var (
		order *domain.Order
		err   error
	)
	if h.workflows != nil {
		order, err = h.workflows.PlaceOrder(c.Request.Context(), input)
	} else {
		order, err = h.service.CreateOrder(c.Request.Context(), input)
	}
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toOrderResponse(order))
}

func (h *Handler) getOrder(c *gin.Context) {
	view, err := h.service.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderWithItemsResponse(view))
}

func (h *Handler) listOrders(c *gin.Context) {
	filters := ordertypes.OrderFilters{CustomerID: c.Query("customerId")}
	if raw := c.Query("status"); raw != "" {
		status := domain.Status(raw)
		if !domain.IsValidStatus(status) {
			h.responder.BadRequest(c, "unknown order status: "+raw)
			return
		}
		filters.Status = &status
	}
	if raw := c.Query("from"); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			h.responder.BadRequest(c, "from must be RFC 3339")
			return
		}
		filters.From = &from
	}
	if raw := c.Query("to"); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			h.responder.BadRequest(c, "to must be RFC 3339")
			return
		}
		filters.To = &to
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			h.responder.BadRequest(c, "limit must be a non-negative integer")
			return
		}
		filters.Limit = limit
	}
	orders, err := h.service.ListOrders(c.Request.Context(), filters)
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	result := make([]orderResponse, 0, len(orders))
	for _, order := range orders {
		result = append(result, toOrderResponse(order))
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) updateOrder(c *gin.Context) {
	var req updateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.responder.BadRequest(c, err.Error())
		return
	}
	patch := ordertypes.OrderPatch{
		DistributorID: req.DistributorID,
		Notes:         req.Notes,
		StatusNotes:   req.StatusNotes,
	}
	if req.Status != nil {
		status := domain.Status(*req.Status)
		if !domain.IsValidStatus(status) {
			h.responder.BadRequest(c, "unknown order status: "+*req.Status)
			return
		}
		patch.Status = &status
	}
	if req.PaymentStatus != nil {
		paymentStatus := domain.PaymentStatus(*req.PaymentStatus)
		patch.PaymentStatus = &paymentStatus
	}
	order, err := h.service.UpdateOrder(c.Request.Context(), c.Param("id"), patch, actorID(c))
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(order))
}

func (h *Handler) cancelOrder(c *gin.Context) {
	var req cancelOrderRequest
	// An empty body is a valid cancel without reason.
	_ = c.ShouldBindJSON(&req)
	order, err := h.service.CancelOrder(c.Request.Context(), c.Param("id"), req.Reason, actorID(c))
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(order))
}

func (h *Handler) getOrderHistory(c *gin.Context) {
	history, err := h.service.GetOrderHistory(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	result := make([]historyResponse, 0, len(history))
	for _, row := range history {
		result = append(result, toHistoryResponse(row))
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) updateItemStatus(c *gin.Context) {
	var req updateItemStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.responder.BadRequest(c, err.Error())
		return
	}
	item, err := h.service.UpdateOrderItemStatus(c.Request.Context(), c.Param("id"), domain.ItemStatus(req.Status))
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toItemResponse(item))
}

func (h *Handler) getSellerOrders(c *gin.Context) {
	views, err := h.service.GetSellerOrders(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	result := make([]orderWithItemsResponse, 0, len(views))
	for _, view := range views {
		result = append(result, toOrderWithItemsResponse(view))
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) getSellerOrderStats(c *gin.Context) {
	stats, err := h.service.GetSellerOrderStats(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sellerStatsResponse{
		Pending:    stats.Pending,
		Processing: stats.Processing,
		Completed:  stats.Completed,
		Total:      stats.Total,
		Revenue:    stats.Revenue,
	})
}

func actorID(c *gin.Context) *string {
	actor := strings.TrimSpace(c.GetHeader(ActorHeader))
	if actor == "" {
		return nil
	}
	return &actor
}
