package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle position of an order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusReady     OrderStatus = "ready"
	OrderStatusDelivered OrderStatus = "delivered"
)

// Order is an immutable snapshot of a cart taken at confirmation time
type Order struct {
	ID           int64           `json:"id"`
	Items        []CartLine      `json:"items"`
	Total        decimal.Decimal `json:"total"`
	Mode         DeliveryMode    `json:"delivery_mode"`
	TableNumber  *int            `json:"table_number,omitempty"`
	CustomerName string          `json:"customer_name,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	Status       OrderStatus     `json:"status"`
}
