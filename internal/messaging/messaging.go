// Package messaging hands confirmed orders and contact requests to whatever
// is listening downstream.
package messaging

import (
	"context"
	"errors"
)

// Event types
const (
	EventOrderConfirmed   = "order.confirmed"
	EventContactSubmitted = "contact.submitted"
)

// ErrDisabled is returned when a broker publisher is built without brokers
var ErrDisabled = errors.New("kafka disabled")

// Publisher defines an interface for publishing events to a message broker.
type Publisher interface {
	PublishEvent(ctx context.Context, topic string, key string, event any) error
	Close() error
}

// Envelope wraps every published payload
type Envelope struct {
	Type       string `json:"type"`
	OccurredAt string `json:"occurred_at"`
	Payload    any    `json:"payload"`
}
