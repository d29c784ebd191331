package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
)

type logPublisher struct {
	logger *zap.Logger
}

// NewLogPublisher writes events to the structured log instead of a broker
func NewLogPublisher(logger *zap.Logger) Publisher {
	return &logPublisher{logger: logger.Named("events")}
}

func (p *logPublisher) PublishEvent(ctx context.Context, topic string, key string, event any) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	p.logger.Info("Event published",
		zap.String("topic", topic),
		zap.String("key", key),
		zap.ByteString("payload", payload),
	)
	return nil
}

func (p *logPublisher) Close() error {
	return nil
}
