// Package http exposes the catalog use cases over gin.
package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/catalog/application"
	catalogtypes "github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/catalog/application/types"
	"github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/catalog/domain"
	"github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/catalog/ports"
	sharederrors "github.com/civicGenAi/tanzania-fish-hub-sub001/internal/shared/errors"
)

// Handler adapts HTTP requests to the catalog ports.
type Handler struct {
	service   ports.Service
	responder *sharederrors.Responder
}

// NewHandler wires the catalog HTTP adapter.
func NewHandler(service ports.Service, responder *sharederrors.Responder) *Handler {
	if responder == nil {
		responder = sharederrors.NewResponder("", ErrorMapper)
	}
	return &Handler{service: service, responder: responder}
}

// Register mounts the catalog routes on the given group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("/products", h.createProduct)
	rg.GET("/products", h.listProducts)
	rg.GET("/products/:id", h.getProduct)
	rg.PATCH("/products/:id", h.updateProduct)
	rg.DELETE("/products/:id", h.deleteProduct)
	rg.GET("/categories", h.listCategories)
	rg.POST("/categories", h.createCategory)
}

// ErrorMapper converts catalog errors into problem details.
func ErrorMapper(err error) (sharederrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, ports.ErrNotFound):
		return sharederrors.NewNotFoundProblem("product", nil), true
	case errors.Is(err, ports.ErrCategoryNotFound):
		return sharederrors.NewNotFoundProblem("category", nil), true
	case errors.Is(err, application.ErrInvalidInput):
		return sharederrors.ErrValidation.WithDetail(err.Error()), true
	}
	return sharederrors.ProblemDetail{}, false
}

type createProductRequest struct {
	SellerID    string          `json:"sellerId" binding:"required"`
	CategoryID  *string         `json:"categoryId"`
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Unit        string          `json:"unit"`
	Stock       int             `json:"stock"`
	Images      []string        `json:"images"`
}

type updateProductRequest struct {
	CategoryID  *string          `json:"categoryId"`
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Unit        *string          `json:"unit"`
	Stock       *int             `json:"stock"`
	Images      *[]string        `json:"images"`
	Status      *string          `json:"status"`
}

type createCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type productResponse struct {
	ID            string          `json:"id"`
	SellerID      string          `json:"sellerId"`
	CategoryID    *string         `json:"categoryId,omitempty"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	Price         decimal.Decimal `json:"price"`
	Unit          string          `json:"unit,omitempty"`
	Stock         int             `json:"stock"`
	Images        []string        `json:"images,omitempty"`
	Status        string          `json:"status"`
	RatingAverage float64         `json:"ratingAverage"`
	RatingCount   int             `json:"ratingCount"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

type categoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (h *Handler) createProduct(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.responder.BadRequest(c, err.Error())
		return
	}
	product, err := h.service.CreateProduct(c.Request.Context(), catalogtypes.CreateProductInput{
		SellerID:    req.SellerID,
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Unit:        req.Unit,
		Stock:       req.Stock,
		Images:      req.Images,
	})
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toProductResponse(product))
}

func (h *Handler) getProduct(c *gin.Context) {
	product, err := h.service.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProductResponse(product))
}

func (h *Handler) listProducts(c *gin.Context) {
	filters := catalogtypes.ProductFilters{
		SellerID:   c.Query("sellerId"),
		CategoryID: c.Query("categoryId"),
	}
	if raw := c.Query("status"); raw != "" {
		status := domain.Status(raw)
		if !domain.IsValidStatus(status) {
			h.responder.BadRequest(c, "unknown product status: "+raw)
			return
		}
		filters.Status = &status
	}
	products, err := h.service.ListProducts(c.Request.Context(), filters)
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	result := make([]productResponse, 0, len(products))
	for _, product := range products {
		result = append(result, toProductResponse(product))
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) updateProduct(c *gin.Context) {
	var req updateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.responder.BadRequest(c, err.Error())
		return
	}
	patch := catalogtypes.ProductPatch{
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Unit:        req.Unit,
		Stock:       req.Stock,
		Images:      req.Images,
	}
	if req.Status != nil {
		status := domain.Status(*req.Status)
		if !domain.IsValidStatus(status) {
			h.responder.BadRequest(c, "unknown product status: "+*req.Status)
			return
		}
		patch.Status = &status
	}
	product, err := h.service.UpdateProduct(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProductResponse(product))
}

func (h *Handler) deleteProduct(c *gin.Context) {
	if err := h.service.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) listCategories(c *gin.Context) {
	categories, err := h.service.ListCategories(c.Request.Context())
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	result := make([]categoryResponse, 0, len(categories))
	for _, category := range categories {
		result = append(result, toCategoryResponse(category))
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) createCategory(c *gin.Context) {
	var req createCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.responder.BadRequest(c, err.Error())
		return
	}
	category, err := h.service.CreateCategory(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toCategoryResponse(category))
}

func toProductResponse(product *domain.Product) productResponse {
	return productResponse{
		ID:            product.ID,
		SellerID:      product.SellerID,
		CategoryID:    product.CategoryID,
		Name:          product.Name,
		Description:   product.Description,
		Price:         product.Price,
		Unit:          product.Unit,
		Stock:         product.Stock,
		Images:        product.Images,
		Status:        string(product.Status),
		RatingAverage: product.RatingAverage,
		RatingCount:   product.RatingCount,
		CreatedAt:     product.CreatedAt,
		UpdatedAt:     product.UpdatedAt,
	}
}

func toCategoryResponse(category *domain.Category) categoryResponse {
	return categoryResponse{
		ID:          category.ID,
		Name:        category.Name,
		Description: category.Description,
		CreatedAt:   category.CreatedAt,
	}
}
