package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// DeliveryMode is how a cafeteria order reaches the customer
type DeliveryMode string

const (
	// DeliveryTable serves the order at a coworking table
	DeliveryTable DeliveryMode = "table"
	// DeliveryCounter is pickup at the counter
	DeliveryCounter DeliveryMode = "counter"
)

// ParseDeliveryMode converts a raw string into a DeliveryMode
func ParseDeliveryMode(s string) (DeliveryMode, error) {
	switch DeliveryMode(s) {
	case DeliveryTable, DeliveryCounter:
		return DeliveryMode(s), nil
	}
	return "", fmt.Errorf("unknown delivery mode %q", s)
}

// CartLine pairs a catalog item with a positive quantity
type CartLine struct {
	Item     CatalogItem `json:"item"`
	Quantity int         `json:"quantity"`
}

// Subtotal returns quantity × unit price
func (l CartLine) Subtotal() decimal.Decimal {
	return l.Item.UnitPrice().Mul(decimal.NewFromInt(int64(l.Quantity)))
}
