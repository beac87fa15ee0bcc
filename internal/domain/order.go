package domain

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusFulfilled OrderStatus = "fulfilled"
	OrderStatusCancelled OrderStatus = "cancelled"
)

func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusFulfilled || s == OrderStatusCancelled
}

func (s OrderStatus) String() string {
	return string(s)
}

// Valid reports whether s is one of the known order states.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusFulfilled, OrderStatusCancelled:
		return true
	}
	return false
}

type OrderItem struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

// Order is immutable after creation except for status, which moves
// pending -> fulfilled | cancelled via external fulfillment tooling.
type Order struct {
	ID             uuid.UUID
	CustomerName   string
	Phone          string
	Items          []OrderItem
	Subtotal       float64
	DeliveryCharge float64
	Total          float64
	Status         OrderStatus
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
