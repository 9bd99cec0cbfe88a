package domain

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus is a custom type that represents the current status of an order in its lifecycle.
type OrderStatus string

const (
	StatusPending    OrderStatus = "PENDING"
	StatusProcessing OrderStatus = "PROCESSING"
	StatusCompleted  OrderStatus = "COMPLETED"
	StatusCancelled  OrderStatus = "CANCELLED"
)

// ValidStatus reports whether s is one of the four known statuses.
// This is a pure membership check: the HTTP status-update path accepts any
// known status regardless of the order's current one. Only the queue worker
// walks the linear PENDING -> PROCESSING -> COMPLETED path.
func ValidStatus(s OrderStatus) bool {
	switch s {
	case StatusPending, StatusProcessing, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// OrderLine references a product by id only; product existence is not enforced.
type OrderLine struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// Order is the aggregate persisted in the orders table and carried on queue messages.
// UserID and CreatedAt are immutable after creation; Products never mutate in this core.
type Order struct {
	OrderID   string      `json:"orderId"`
	UserID    string      `json:"userId"`
	Products  []OrderLine `json:"products"`
	Status    OrderStatus `json:"status"`
	CreatedAt time.Time   `json:"createdAt"`
}

// NewOrder builds a PENDING order owned by userID with a fresh random id.
func NewOrder(userID string, products []OrderLine) Order {
	return Order{
		OrderID:   uuid.NewString(),
		UserID:    userID,
		Products:  products,
		Status:    StatusPending,
		CreatedAt: time.Now().UTC(),
	}
}
