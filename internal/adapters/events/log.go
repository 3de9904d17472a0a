package events

import (
	"context"
	"encoding/json"

	"pet-qr-tags/internal/platform/logger"
)

// LogPublisher deja los eventos en el log cuando no hay NATS.
type LogPublisher struct {
	log logger.Logger
}

func NewLogPublisher(log logger.Logger) *LogPublisher {
	if log == nil {
		log = logger.Nop()
	}
	return &LogPublisher{log: log}
}

func (p *LogPublisher) Publish(ctx context.Context, subject string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}
	logger.FromContext(ctx, p.log).Info("event", map[string]any{"subject": subject, "payload": string(payload)})
	return nil
}
