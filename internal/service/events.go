package service

import (
	"context"
	"time"

	"luma-service/internal/models"

	"github.com/google/uuid"
)

type OrderItemEvent struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

type OrderCreatedEvent struct {
	OrderID   uuid.UUID          `json:"order_id"`
	ClientID  uuid.UUID          `json:"client_id"`
	Items     []OrderItemEvent   `json:"items"`
	Status    models.OrderStatus `json:"status"`
	CreatedAt time.Time          `json:"created_at"`
}

type OrderStatusChangedEvent struct {
	OrderID    uuid.UUID          `json:"order_id"`
	Status     models.OrderStatus `json:"status"`
	EmployeeID *uuid.UUID         `json:"employee_id,omitempty"`
	Comment    string             `json:"comment,omitempty"`
	ChangedAt  time.Time          `json:"changed_at"`
}

type EventBus interface {
	PublishOrderCreated(ctx context.Context, e OrderCreatedEvent) error
	PublishOrderStatusChanged(ctx context.Context, e OrderStatusChangedEvent) error
}
