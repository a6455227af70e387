// Package http exposes the delivery use cases over gin.
package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/deliveries/application"
	deliverytypes "github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/deliveries/application/types"
	"github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/deliveries/domain"
	"github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/deliveries/ports"
	sharederrors "github.com/civicGenAi/tanzania-fish-hub-sub001/internal/shared/errors"
)

// Handler adapts HTTP requests to the deliveries ports.
type Handler struct {
	service   ports.Service
	responder *sharederrors.Responder
}

// NewHandler wires the deliveries HTTP adapter.
func NewHandler(service ports.Service, responder *sharederrors.Responder) *Handler {
	if responder == nil {
		responder = sharederrors.NewResponder("", ErrorMapper)
	}
	return &Handler{service: service, responder: responder}
}

// Register mounts the delivery routes on the given group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("/deliveries", h.createDelivery)
	rg.GET("/deliveries/pending", h.getPendingDeliveries)
	rg.GET("/deliveries/:id", h.getDelivery)
	rg.POST("/deliveries/:id/assign", h.assignDelivery)
	rg.PATCH("/deliveries/:id/status", h.updateStatus)
	rg.POST("/deliveries/:id/tracking", h.trackLocation)
	rg.GET("/deliveries/:id/tracking", h.getTracking)
	rg.GET("/orders/:id/delivery", h.getDeliveryByOrder)
	rg.GET("/distributors/:id/deliveries", h.getDistributorDeliveries)
	rg.GET("/distributors/:id/stats", h.getDistributorStats)
}

// ErrorMapper converts delivery errors into problem details.
func ErrorMapper(err error) (sharederrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, ports.ErrNotFound):
		return sharederrors.NewNotFoundProblem("delivery", nil), true
	case errors.Is(err, application.ErrInvalidTransition):
		return sharederrors.ErrInvalidTransition.WithDetail(err.Error()), true
	case errors.Is(err, application.ErrConflict):
		return sharederrors.ErrConflict.WithDetail(err.Error()), true
	case errors.Is(err, application.ErrInvalidInput):
		return sharederrors.ErrValidation.WithDetail(err.Error()), true
	}
	return sharederrors.ProblemDetail{}, false
}

type coordinatesRequest struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type createDeliveryRequest struct {
	OrderID          string              `json:"orderId" binding:"required"`
	PickupLocation   string              `json:"pickupLocation" binding:"required"`
	DeliveryLocation string              `json:"deliveryLocation" binding:"required"`
	PickupCoords     *coordinatesRequest `json:"pickupCoords"`
	DeliveryCoords   *coordinatesRequest `json:"deliveryCoords"`
	DistanceKm       *decimal.Decimal    `json:"distanceKm"`
	EstimatedMinutes *int                `json:"estimatedMinutes"`
	Priority         string              `json:"priority"`
	ScheduledTime    *time.Time          `json:"scheduledTime"`
	Notes            string              `json:"notes"`
}

type assignRequest struct {
	DistributorID string `json:"distributorId" binding:"required"`
}

type statusUpdateRequest struct {
	Status          string     `json:"status" binding:"required"`
	PickupTime      *time.Time `json:"pickupTime"`
	DeliveryTime    *time.Time `json:"deliveryTime"`
	ProofOfDelivery *string    `json:"proofOfDelivery"`
	Signature       *string    `json:"signature"`
	Notes           *string    `json:"notes"`
}

type trackingRequest struct {
	Lat   float64 `json:"lat" binding:"required"`
	Lng   float64 `json:"lng" binding:"required"`
	Notes string  `json:"notes"`
}

func (h *Handler) createDelivery(c *gin.Context) {
	var req createDeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.responder.BadRequest(c, err.Error())
		return
	}
	input := deliverytypes.CreateDeliveryInput{
		OrderID:          req.OrderID,
		PickupLocation:   req.PickupLocation,
		DeliveryLocation: req.DeliveryLocation,
		DistanceKm:       req.DistanceKm,
		EstimatedMinutes: req.EstimatedMinutes,
		Priority:         domain.Priority(req.Priority),
		ScheduledTime:    req.ScheduledTime,
		Notes:            req.Notes,
	}
	if req.PickupCoords != nil {
		input.PickupCoords = &domain.Coordinates{Lat: req.PickupCoords.Lat, Lng: req.PickupCoords.Lng}
	}
	if req.DeliveryCoords != nil {
		input.DeliveryCoords = &domain.Coordinates{Lat: req.DeliveryCoords.Lat, Lng: req.DeliveryCoords.Lng}
	}
	delivery, err := h.service.CreateDelivery(c.Request.Context(), input)
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toDeliveryResponse(delivery))
}

func (h *Handler) getDelivery(c *gin.Context) {
	delivery, err := h.service.GetDelivery(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toDeliveryResponse(delivery))
}

func (h *Handler) getDeliveryByOrder(c *gin.Context) {
	delivery, err := h.service.GetDeliveryByOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toDeliveryResponse(delivery))
}

func (h *Handler) assignDelivery(c *gin.Context) {
	var req assignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.responder.BadRequest(c, err.Error())
		return
	}
	delivery, err := h.service.AssignDelivery(c.Request.Context(), c.Param("id"), req.DistributorID)
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toDeliveryResponse(delivery))
}

func (h *Handler) updateStatus(c *gin.Context) {
	var req statusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.responder.BadRequest(c, err.Error())
		return
	}
	status := domain.Status(req.Status)
	if !domain.IsValidStatus(status) {
		h.responder.BadRequest(c, "unknown delivery status: "+req.Status)
		return
	}
	delivery, err := h.service.UpdateDeliveryStatus(c.Request.Context(), c.Param("id"), deliverytypes.StatusUpdateInput{
		Status:          status,
		PickupTime:      req.PickupTime,
		DeliveryTime:    req.DeliveryTime,
		ProofOfDelivery: req.ProofOfDelivery,
		Signature:       req.Signature,
		Notes:           req.Notes,
	})
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toDeliveryResponse(delivery))
}

func (h *Handler) getPendingDeliveries(c *gin.Context) {
	deliveries, err := h.service.GetPendingDeliveries(c.Request.Context())
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toDeliveryResponses(deliveries))
}

func (h *Handler) getDistributorDeliveries(c *gin.Context) {
	deliveries, err := h.service.GetDistributorDeliveries(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toDeliveryResponses(deliveries))
}

func (h *Handler) getDistributorStats(c *gin.Context) {
	stats, err := h.service.GetDistributorStats(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, distributorStatsResponse{
		Total:     stats.Total,
		Pending:   stats.Pending,
		Active:    stats.Active,
		Completed: stats.Completed,
		Failed:    stats.Failed,
	})
}

func (h *Handler) trackLocation(c *gin.Context) {
	var req trackingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.responder.BadRequest(c, err.Error())
		return
	}
	point, err := h.service.TrackDeliveryLocation(c.Request.Context(), c.Param("id"), deliverytypes.TrackingInput{
		Lat:   req.Lat,
		Lng:   req.Lng,
		Notes: req.Notes,
	})
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toTrackingResponse(point))
}

func (h *Handler) getTracking(c *gin.Context) {
	trail, err := h.service.GetDeliveryTracking(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.responder.RespondError(c, err)
		return
	}
	result := make([]trackingResponse, 0, len(trail))
	for _, point := range trail {
		result = append(result, toTrackingResponse(point))
	}
	c.JSON(http.StatusOK, result)
}
