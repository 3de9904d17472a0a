package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"pet-qr-tags/internal/platform/logger"

	"github.com/nats-io/nats.go"
)

// NATSPublisher publica eventos de dominio como JSON.
type NATSPublisher struct {
	conn *nats.Conn
	log  logger.Logger
}

func NewNATSPublisher(url, name string, log logger.Logger) (*NATSPublisher, error) {
	if log == nil {
		log = logger.Nop()
	}
	conn, err := nats.Connect(url,
		nats.Name(name),
		nats.Timeout(5*time.Second),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				log.Warn("nats disconnected", map[string]any{"error": err.Error()})
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			log.Info("nats reconnected", map[string]any{"url": c.ConnectedUrl()})
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return &NATSPublisher{conn: conn, log: log}, nil
}

func (n *NATSPublisher) Publish(ctx context.Context, subject string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal event data: %w", err)
	}
	n.log.Debug("publishing event", map[string]any{"subject": subject})
	return n.conn.Publish(subject, payload)
}

// Close vacía lo pendiente antes de cerrar.
func (n *NATSPublisher) Close() error {
	if err := n.conn.Drain(); err != nil {
		n.conn.Close()
		return err
	}
	return nil
}
