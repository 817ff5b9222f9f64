package service

import (
	"context"
	"time"

	"luma-service/internal/models"

	"github.com/google/uuid"
)

type CreateOrderItem struct {
	ProductID uuid.UUID
	Quantity  int
}

type CreateOrderInput struct {
	Items []CreateOrderItem
	Phone *string
}

type ListFilter struct {
	ClientID *uuid.UUID
	Status   *models.OrderStatus
	Limit    int
	Offset   int
}

// TrackingEntryView is one ledger row as disclosed to a caller. Comment and
// EmployeeID are nil in redacted views.
type TrackingEntryView struct {
	Status     models.OrderStatus `json:"status"`
	Comment    *string            `json:"comment,omitempty"`
	EmployeeID *uuid.UUID         `json:"employee_id,omitempty"`
	CreatedAt  time.Time          `json:"created_at"`
}

// TrackingView is the public projection of an order's lifecycle, newest
// entry first.
type TrackingView struct {
	OrderID   uuid.UUID           `json:"order_id"`
	Status    models.OrderStatus  `json:"status"`
	CreatedAt time.Time           `json:"created_at"`
	Redacted  bool                `json:"redacted"`
	Entries   []TrackingEntryView `json:"entries"`
}

type OrderService interface {
	CreateOrder(ctx context.Context, in CreateOrderInput) (*models.Order, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ListOrders(ctx context.Context, f ListFilter) ([]models.Order, int64, error)
	ReplaceItems(ctx context.Context, id uuid.UUID, items []CreateOrderItem) (*models.Order, error)
	AdvanceStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus, comment string) (*models.TrackingEntry, error)
	DeleteOrder(ctx context.Context, id uuid.UUID) error
	TrackOrder(ctx context.Context, id uuid.UUID) (*TrackingView, error)
}
