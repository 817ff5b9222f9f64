package models

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleAdmin    Role = "ROLE_ADMIN"
	RoleEmployee Role = "ROLE_EMPLOYEE"
	RoleClient   Role = "ROLE_CLIENT"
)

func ValidRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleEmployee, RoleClient:
		return true
	}
	return false
}

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string    `gorm:"type:text;not null"`
	Email        string    `gorm:"type:text;not null;uniqueIndex"`
	PasswordHash string    `gorm:"type:text;not null"`
	Role         Role      `gorm:"type:text;not null;index"`
	Active       bool      `gorm:"not null;default:true"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

func (User) TableName() string { return "users" }

// Client is the ordering profile of a user. Created lazily on the first
// order placement.
type Client struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Phone     *string   `gorm:"type:text"`
	CreatedAt time.Time `gorm:"not null"`

	Orders []Order `gorm:"foreignKey:ClientID"`
}

func (Client) TableName() string { return "clients" }

type Employee struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Position  *string   `gorm:"type:text"`
	CreatedAt time.Time `gorm:"not null"`
}

func (Employee) TableName() string { return "employees" }

// PriceCents is fixed-point currency with 2 decimals.
type Product struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"type:text;not null"`
	Description string    `gorm:"type:text"`
	PriceCents  int64     `gorm:"not null"`
	Stock       int       `gorm:"not null;default:0"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

func (Product) TableName() string { return "products" }

// Supply is a raw-material record. Not linked to orders: consumption is not
// modeled.
type Supply struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"type:text;not null"`
	Description string    `gorm:"type:text"`
	Quantity    int       `gorm:"not null;default:0"`
	Unit        string    `gorm:"type:text;not null"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

func (Supply) TableName() string { return "supplies" }

type OrderStatus string

const (
	OrderStatusPending      OrderStatus = "pending"
	OrderStatusInProgress   OrderStatus = "in_progress"
	OrderStatusInProduction OrderStatus = "in_production"
	OrderStatusReady        OrderStatus = "ready"
	OrderStatusShipped      OrderStatus = "shipped"
	OrderStatusDelivered    OrderStatus = "delivered"
	OrderStatusCancelled    OrderStatus = "cancelled"
)

// statusRank orders the forward lifecycle. Cancelled sits outside the
// sequence and is handled separately.
var statusRank = map[OrderStatus]int{
	OrderStatusPending:      0,
	OrderStatusInProgress:   1,
	OrderStatusInProduction: 2,
	OrderStatusReady:        3,
	OrderStatusShipped:      4,
	OrderStatusDelivered:    5,
}

func ValidOrderStatus(s OrderStatus) bool {
	if s == OrderStatusCancelled {
		return true
	}
	_, ok := statusRank[s]
	return ok
}

func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// CanTransitionTo enforces the lifecycle graph: forward moves only (skipping
// ahead is allowed), cancellation from any non-terminal state, nothing out of
// a terminal state.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if !ValidOrderStatus(s) || !ValidOrderStatus(next) {
		return false
	}
	if s.IsTerminal() {
		return false
	}
	if next == OrderStatusCancelled {
		return true
	}
	return statusRank[next] > statusRank[s]
}

type Order struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`
	// ClientID references the ordering client profile, not the user.
	ClientID uuid.UUID `gorm:"type:uuid;not null;index"`
	// Status is denormalized from the newest tracking entry and must never
	// diverge from it. Written only together with a tracking append.
	Status    OrderStatus `gorm:"type:text;not null;index"`
	CreatedAt time.Time   `gorm:"not null;index"`
	UpdatedAt time.Time   `gorm:"not null"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (Order) TableName() string { return "orders" }

type OrderItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index"`
	Quantity  int       `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
}

func (OrderItem) TableName() string { return "order_items" }

// TrackingEntry is one row of the append-only status ledger. Entries are
// never updated; they are deleted only as a cascade with their order.
// The bigserial primary key doubles as the timestamp tie-breaker: display
// order is (created_at DESC, id DESC).
type TrackingEntry struct {
	ID         int64       `gorm:"primaryKey;autoIncrement"`
	OrderID    uuid.UUID   `gorm:"type:uuid;not null;index"`
	Status     OrderStatus `gorm:"type:text;not null"`
	EmployeeID *uuid.UUID  `gorm:"type:uuid;index"`
	Comment    string      `gorm:"type:text"`
	CreatedAt  time.Time   `gorm:"not null;index"`
}

func (TrackingEntry) TableName() string { return "tracking_entries" }
