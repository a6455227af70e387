package http

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/deliveries/domain"
)

type coordinatesResponse struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type deliveryResponse struct {
	ID               string               `json:"id"`
	DeliveryNumber   string               `json:"deliveryNumber"`
	OrderID          string               `json:"orderId"`
	DistributorID    *string              `json:"distributorId,omitempty"`
	Status           string               `json:"status"`
	Priority         string               `json:"priority"`
	PickupLocation   string               `json:"pickupLocation"`
	DeliveryLocation string               `json:"deliveryLocation"`
	PickupCoords     *coordinatesResponse `json:"pickupCoords,omitempty"`
	DeliveryCoords   *coordinatesResponse `json:"deliveryCoords,omitempty"`
	DistanceKm       *decimal.Decimal     `json:"distanceKm,omitempty"`
	EstimatedMinutes *int                 `json:"estimatedMinutes,omitempty"`
	ScheduledTime    *time.Time           `json:"scheduledTime,omitempty"`
	PickupTime       *time.Time           `json:"pickupTime,omitempty"`
	DeliveryTime     *time.Time           `json:"deliveryTime,omitempty"`
	ProofOfDelivery  *string              `json:"proofOfDelivery,omitempty"`
	Signature        *string              `json:"signature,omitempty"`
	Notes            string               `json:"notes,omitempty"`
	CreatedAt        time.Time            `json:"createdAt"`
	UpdatedAt        time.Time            `json:"updatedAt"`
}

type trackingResponse struct {
	ID         string    `json:"id"`
	DeliveryID string    `json:"deliveryId"`
	Lat        float64   `json:"lat"`
	Lng        float64   `json:"lng"`
	Notes      string    `json:"notes,omitempty"`
	RecordedAt time.Time `json:"recordedAt"`
}

type distributorStatsResponse struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Active    int `json:"active"`
	Completed int `json:"completed"`
	Failed    int `json:"failed"`
}

func toDeliveryResponse(delivery *domain.Delivery) deliveryResponse {
	result := deliveryResponse{
		ID:               delivery.ID,
		DeliveryNumber:   delivery.DeliveryNumber,
		OrderID:          delivery.OrderID,
		DistributorID:    delivery.DistributorID,
		Status:           string(delivery.Status),
		Priority:         string(delivery.Priority),
		PickupLocation:   delivery.PickupLocation,
		DeliveryLocation: delivery.DeliveryLocation,
		DistanceKm:       delivery.DistanceKm,
		EstimatedMinutes: delivery.EstimatedMinutes,
		ScheduledTime:    delivery.ScheduledTime,
		PickupTime:       delivery.PickupTime,
		DeliveryTime:     delivery.DeliveryTime,
		ProofOfDelivery:  delivery.ProofOfDelivery,
		Signature:        delivery.Signature,
		Notes:            delivery.Notes,
		CreatedAt:        delivery.CreatedAt,
		UpdatedAt:        delivery.UpdatedAt,
	}
	if delivery.PickupCoords != nil {
		result.PickupCoords = &coordinatesResponse{Lat: delivery.PickupCoords.Lat, Lng: delivery.PickupCoords.Lng}
	}
	if delivery.DeliveryCoords != nil {
		result.DeliveryCoords = &coordinatesResponse{Lat: delivery.DeliveryCoords.Lat, Lng: delivery.DeliveryCoords.Lng}
	}
	return result
}

func toDeliveryResponses(deliveries []*domain.Delivery) []deliveryResponse {
	result := make([]deliveryResponse, 0, len(deliveries))
	for _, delivery := range deliveries {
		result = append(result, toDeliveryResponse(delivery))
	}
	return result
}

func toTrackingResponse(point *domain.TrackingPoint) trackingResponse {
	return trackingResponse{
		ID:         point.ID,
		DeliveryID: point.DeliveryID,
		Lat:        point.Lat,
		Lng:        point.Lng,
		Notes:      point.Notes,
		RecordedAt: point.RecordedAt,
	}
}
