// Package http exposes the review use cases over gin.
package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/reviews/application"
	reviewtypes "github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/reviews/application/types"
	"github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/reviews/domain"
	"github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/reviews/ports"
	sharederrors "github.com/civicGenAi/tanzania-fish-hub-sub001/internal/shared/errors"
)

// Handler adapts HTTP requests to the reviews ports.
type Handler struct {
	service   ports.Service
	responder *sharederrors.Responder
}

// NewHandler wires the reviews HTTP adapter.
func NewHandler(service ports.Service, responder *sharederrors.Responder) *Handler {
	if responder == nil {
		responder = sharederrors.NewResponder("", ErrorMapper)
	}
	return &Handler{service: service, responder: responder}
}

// Register mounts the review routes on the given group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/products/:id/reviews", h.getProductReviews)
	rg.GET("/products/:id/reviews/stats", h.getProductReviewStats)
	rg.GET("/customers/:id/products/:productId/review-eligibility", h.getEligibility)
	rg.POST("/reviews", h.createReview)
	rg.GET("/reviews/:id", h.getReview)
	rg.POST("/reviews/:id/vote", h.voteReview)
	rg.POST("/reviews/:id/response", h.respondToReview)
	rg.PATCH("/reviews/:id/status", h.updateStatus)
}

// ErrorMapper converts review errors into problem details.
func ErrorMapper(err error) (sharederrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, ports.ErrNotFound):
		return sharederrors.NewNotFoundProblem("review", nil), true
	case errors.Is(err, application.ErrNotEligible):
		return sharederrors.ErrConflict.WithDetail(err.Error()), true
	case errors.Is(err, application.ErrInvalidInput):
		return sharederrors.ErrValidation.WithDetail(err.Error()), true
	}
	return sharederrors.ProblemDetail{}, false
}

type createReviewRequest struct {
	CustomerID string   `json:"customerId" binding:"required"`
	ProductID  string   `json:"productId" binding:"required"`
	Rating     int      `json:"rating" binding:"required"`
	Title      string   `json:"title"`
	Comment    string   `json:"comment"`
	Images     []string `json:"images"`
}

type voteRequest struct {
	UserID  string `json:"userId" binding:"required"`
	Helpful *bool  `json:"helpful" binding:"required"`
}

type responseRequest struct {
	SellerID string `json:"sellerId" binding:"required"`
	Response string `json:"response" binding:"required"`
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

type reviewResponse struct {
	ID               string     `json:"id"`
	OrderItemID      string     `json:"orderItemId"`
	ProductID        string     `json:"productId"`
	CustomerID       string     `json:"customerId"`
	SellerID         string     `json:"sellerId"`
	Rating           int        `json:"rating"`
	Title            string     `json:"title,omitempty"`
	Comment          string     `json:"comment,omitempty"`
	Images           []string   `json:"images,omitempty"`
	Status           string     `json:"status"`
	VerifiedPurchase bool       `json:"verifiedPurchase"`
	HelpfulCount     int        `json:"helpfulCount"`
	NotHelpfulCount  int        `json:"notHelpfulCount"`
	SellerResponse   *string    `json:"sellerResponse,omitempty"`
	SellerResponseAt *time.Time `json:"sellerResponseAt,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

type eligibilityResponse struct {
	CanReview        bool    `json:"canReview"`
	OrderItemID      *string `json:"orderItemId,omitempty"`
	ExistingReviewID *string `json:"existingReviewId,omitempty"`
}

type statsResponse struct {
	ProductID     string  `json:"productId"`
	ReviewCount   int     `json:"reviewCount"`
	AverageRating float64 `json:"averageRating"`
	Histogram     [6]int  `json:"histogram"`
}

func (h *Handler) createReview(c *gin.Context) {
	var req createReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.responder.BadRequest(c, err.Error())
		return
	}
	review, err := h.service.CreateReview(c.Request.Context(), reviewtypes.CreateReviewInput{
		CustomerID: req.CustomerID,
		ProductID:  req.ProductID,
		Rating:     req.Rating,
		Title:      req.Title,
		Comment:    req.Comment,
		Images:     req.Images,
	})
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toReviewResponse(review))
}

func (h *Handler) getReview(c *gin.Context) {
	review, err := h.service.GetReview(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toReviewResponse(review))
}

func (h *Handler) getProductReviews(c *gin.Context) {
	publishedOnly := c.DefaultQuery("publishedOnly", "true") != "false"
	reviews, err := h.service.GetProductReviews(c.Request.Context(), c.Param("id"), publishedOnly)
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	result := make([]reviewResponse, 0, len(reviews))
	for _, review := range reviews {
		result = append(result, toReviewResponse(review))
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) getProductReviewStats(c *gin.Context) {
	stats, err := h.service.GetProductReviewStats(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, statsResponse{
		ProductID:     stats.ProductID,
		ReviewCount:   stats.ReviewCount,
		AverageRating: stats.AverageRating,
		Histogram:     stats.Histogram,
	})
}

func (h *Handler) getEligibility(c *gin.Context) {
	eligibility, err := h.service.CanUserReviewProduct(c.Request.Context(), c.Param("id"), c.Param("productId"))
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, eligibilityResponse{
		CanReview:        eligibility.CanReview,
		OrderItemID:      eligibility.OrderItemID,
		ExistingReviewID: eligibility.ExistingReviewID,
	})
}

func (h *Handler) voteReview(c *gin.Context) {
	var req voteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.responder.BadRequest(c, err.Error())
		return
	}
	review, err := h.service.VoteReview(c.Request.Context(), c.Param("id"), req.UserID, *req.Helpful)
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toReviewResponse(review))
}

func (h *Handler) respondToReview(c *gin.Context) {
	var req responseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.responder.BadRequest(c, err.Error())
		return
	}
	review, err := h.service.RespondToReview(c.Request.Context(), c.Param("id"), req.SellerID, req.Response)
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toReviewResponse(review))
}

func (h *Handler) updateStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.responder.BadRequest(c, err.Error())
		return
	}
	review, err := h.service.UpdateReviewStatus(c.Request.Context(), c.Param("id"), domain.Status(req.Status))
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toReviewResponse(review))
}

func toReviewResponse(review *domain.Review) reviewResponse {
	return reviewResponse{
		ID:               review.ID,
		OrderItemID:      review.OrderItemID,
		ProductID:        review.ProductID,
		CustomerID:       review.CustomerID,
		SellerID:         review.SellerID,
		Rating:           review.Rating,
		Title:            review.Title,
		Comment:          review.Comment,
		Images:           review.Images,
		Status:           string(review.Status),
		VerifiedPurchase: review.VerifiedPurchase,
		HelpfulCount:     review.HelpfulCount,
		NotHelpfulCount:  review.NotHelpfulCount,
		SellerResponse:   review.SellerResponse,
		SellerResponseAt: review.SellerResponseAt,
		CreatedAt:        review.CreatedAt,
		UpdatedAt:        review.UpdatedAt,
	}
}
