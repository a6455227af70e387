// Package events publishes order lifecycle events to RabbitMQ.
package events

import (
	"context"
	"encoding/json"
	"errors"

	amqp "github.com/rabbitmq/amqp091-go"

	ordertypes "github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/orders/application/types"
	"github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/orders/ports"
	"github.com/civicGenAi/tanzania-fish-hub-sub001/internal/platform/rabbit"
)

var _ ports.EventPublisher = (*RabbitPublisher)(nil)

// RabbitPublisher emits order events as JSON on fanout exchanges. Consumers
// bind their own queues; the routing key is left empty.
type RabbitPublisher struct {
	conn *rabbit.Conn
}

// NewRabbitPublisher wraps an established RabbitMQ connection.
func NewRabbitPublisher(conn *rabbit.Conn) *RabbitPublisher {
	return &RabbitPublisher{conn: conn}
}

// OrderPlaced publishes to the order_placed exchange.
func (p *RabbitPublisher) OrderPlaced(ctx context.Context, event ordertypes.OrderEvent) error {
	return p.publish(ctx, rabbit.OrderPlacedExchange, event)
}

// OrderStatusChanged publishes to the order_status exchange.
func (p *RabbitPublisher) OrderStatusChanged(ctx context.Context, event ordertypes.OrderEvent) error {
	return p.publish(ctx, rabbit.OrderStatusExchange, event)
}

func (p *RabbitPublisher) publish(ctx context.Context, exchange string, event ordertypes.OrderEvent) error {
	if p == nil || p.conn == nil || p.conn.Channel == nil {
		return errors.New("rabbitmq publisher not configured")
	}
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.conn.Channel.PublishWithContext(ctx, exchange, "", false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
		Timestamp:   event.OccurredAt,
	})
}
