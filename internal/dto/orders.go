package dto

import (
	"time"

	"luma-service/internal/models"
	"luma-service/internal/service"

	"github.com/google/uuid"
)

type OrderItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required"`
}

type CreateOrderRequest struct {
	Items []OrderItemRequest `json:"items" binding:"required"`
	Phone *string            `json:"phone,omitempty"`
}

type ReplaceItemsRequest struct {
	Items []OrderItemRequest `json:"items" binding:"required"`
}

type AdvanceStatusRequest struct {
	Status  string `json:"status" binding:"required"`
	Comment string `json:"comment"`
}

type OrderItemResponse struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

type OrderResponse struct {
	ID        uuid.UUID           `json:"id"`
	ClientID  uuid.UUID           `json:"client_id"`
	Status    string              `json:"status"`
	CreatedAt time.Time           `json:"created_at"`
	Items     []OrderItemResponse `json:"items"`
}

type TrackingEntryResponse struct {
	Status     string     `json:"status"`
	Comment    *string    `json:"comment,omitempty"`
	EmployeeID *uuid.UUID `json:"employee_id,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

type TrackingResponse struct {
	OrderID   uuid.UUID               `json:"order_id"`
	Status    string                  `json:"status"`
	CreatedAt time.Time               `json:"created_at"`
	Redacted  bool                    `json:"redacted"`
	Entries   []TrackingEntryResponse `json:"entries"`
}

type ListOrdersResponse struct {
	Orders []OrderResponse `json:"orders"`
	Total  int64           `json:"total"`
}

func FromOrder(o *models.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderItemResponse{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	return OrderResponse{
		ID:        o.ID,
		ClientID:  o.ClientID,
		Status:    string(o.Status),
		CreatedAt: o.CreatedAt,
		Items:     items,
	}
}

func FromTrackingView(v *service.TrackingView) TrackingResponse {
	entries := make([]TrackingEntryResponse, 0, len(v.Entries))
	for _, e := range v.Entries {
		entries = append(entries, TrackingEntryResponse{
			Status:     string(e.Status),
			Comment:    e.Comment,
			EmployeeID: e.EmployeeID,
			CreatedAt:  e.CreatedAt,
		})
	}
	return TrackingResponse{
		OrderID:   v.OrderID,
		Status:    string(v.Status),
		CreatedAt: v.CreatedAt,
		Redacted:  v.Redacted,
		Entries:   entries,
	}
}
