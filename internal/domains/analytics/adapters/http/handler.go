// Package http exposes the seller analytics over gin.
package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/analytics/application"
	analyticstypes "github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/analytics/application/types"
	"github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/analytics/ports"
	sharederrors "github.com/civicGenAi/tanzania-fish-hub-sub001/internal/shared/errors"
)

// Handler adapts HTTP requests to the analytics port.
type Handler struct {
	service   ports.Service
	responder *sharederrors.Responder
}

// NewHandler wires the analytics HTTP adapter.
func NewHandler(service ports.Service, responder *sharederrors.Responder) *Handler {
	if responder == nil {
		responder = sharederrors.NewResponder("", ErrorMapper)
	}
	return &Handler{service: service, responder: responder}
}

// Register mounts the analytics routes on the given group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/sellers/:id/analytics/revenue", h.revenueSeries)
	rg.GET("/sellers/:id/analytics/top-products", h.topProducts)
	rg.GET("/sellers/:id/analytics/top-customers", h.topCustomers)
	rg.GET("/sellers/:id/analytics/summary", h.sellerSummary)
}

// ErrorMapper converts analytics errors into problem details.
func ErrorMapper(err error) (sharederrors.ProblemDetail, bool) {
	if errors.Is(err, application.ErrInvalidGranularity) {
		return sharederrors.ErrValidation.WithDetail(err.Error()), true
	}
	return sharederrors.ProblemDetail{}, false
}

type revenuePointResponse struct {
	Bucket  string          `json:"bucket"`
	Revenue decimal.Decimal `json:"revenue"`
	Orders  int             `json:"orders"`
	Items   int             `json:"items"`
}

type productSalesResponse struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Revenue   decimal.Decimal `json:"revenue"`
}

type customerSalesResponse struct {
	CustomerID string          `json:"customerId"`
	Orders     int             `json:"orders"`
	Revenue    decimal.Decimal `json:"revenue"`
}

type summaryResponse struct {
	TotalRevenue      decimal.Decimal `json:"totalRevenue"`
	TotalOrders       int             `json:"totalOrders"`
	TotalItemsSold    int             `json:"totalItemsSold"`
	TotalCustomers    int             `json:"totalCustomers"`
	AverageOrderValue decimal.Decimal `json:"averageOrderValue"`
}

func (h *Handler) revenueSeries(c *gin.Context) {
	granularity := analyticstypes.Granularity(c.DefaultQuery("granularity", string(analyticstypes.GranularityDaily)))
	window, err := parseWindow(c)
	if err != nil {
		h.responder.BadRequest(c, err.Error())
		return
	}
	series, err := h.service.RevenueSeries(c.Request.Context(), c.Param("id"), granularity, window)
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	result := make([]revenuePointResponse, 0, len(series))
	for _, point := range series {
		result = append(result, revenuePointResponse{
			Bucket:  point.Bucket,
			Revenue: point.Revenue,
			Orders:  point.Orders,
			Items:   point.Items,
		})
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) topProducts(c *gin.Context) {
	limit := parseLimit(c)
	products, err := h.service.TopProducts(c.Request.Context(), c.Param("id"), limit)
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	result := make([]productSalesResponse, 0, len(products))
	for _, product := range products {
		result = append(result, productSalesResponse{
			ProductID: product.ProductID,
			Name:      product.Name,
			Quantity:  product.Quantity,
			Revenue:   product.Revenue,
		})
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) topCustomers(c *gin.Context) {
	limit := parseLimit(c)
	customers, err := h.service.TopCustomers(c.Request.Context(), c.Param("id"), limit)
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	result := make([]customerSalesResponse, 0, len(customers))
	for _, customer := range customers {
		result = append(result, customerSalesResponse{
			CustomerID: customer.CustomerID,
			Orders:     customer.Orders,
			Revenue:    customer.Revenue,
		})
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) sellerSummary(c *gin.Context) {
	summary, err := h.service.SellerSummary(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summaryResponse{
		TotalRevenue:      summary.TotalRevenue,
		TotalOrders:       summary.TotalOrders,
		TotalItemsSold:    summary.TotalItemsSold,
		TotalCustomers:    summary.TotalCustomers,
		AverageOrderValue: summary.AverageOrderValue,
	})
}

// parseWindow reads the optional from/to query bounds as ISO dates. The
// upper bound is exclusive of the day after "to" so both ends read as
// inclusive calendar dates.
func parseWindow(c *gin.Context) (analyticstypes.Window, error) {
	var window analyticstypes.Window
	if raw := c.Query("from"); raw != "" {
		from, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return window, fmt.Errorf("invalid from date %q, want YYYY-MM-DD", raw)
		}
		window.From = from
	}
	if raw := c.Query("to"); raw != "" {
		to, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return window, fmt.Errorf("invalid to date %q, want YYYY-MM-DD", raw)
		}
		window.To = to.AddDate(0, 0, 1)
	}
	return window, nil
}

func parseLimit(c *gin.Context) int {
	raw := c.Query("limit")
	if raw == "" {
		return 0
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return 0
	}
	return limit
}
