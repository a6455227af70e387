// Package rabbit manages the shared RabbitMQ connection and exchanges.
package rabbit

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Exchanges declared by the marketplace. Both are fanout: consumers bind
// their own queues and ignore routing keys.
const (
	OrderPlacedExchange = "order_placed"
	OrderStatusExchange = "order_status"
)

// Conn bundles the AMQP connection and channel used by publishers.
type Conn struct {
	conn    *amqp.Connection
	Channel *amqp.Channel
}

// Connect dials RabbitMQ and declares the marketplace exchanges.
func Connect(url string) (*Conn, error) {
	if strings.TrimSpace(url) == "" {
		return nil, fmt.Errorf("rabbitmq URL is empty")
	}
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	for _, exchange := range []string{OrderPlacedExchange, OrderStatusExchange} {
		if err := ch.ExchangeDeclare(exchange, "fanout", true, false, false, false, nil); err != nil {
			ch.Close()
			conn.Close()
			return nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
		}
	}
	return &Conn{conn: conn, Channel: ch}, nil
}

// ConnectFromEnv dials RabbitMQ using RABBITMQ_URL. A missing URL or a failed
// dial is logged and reported as nil so callers can run without eventing.
func ConnectFromEnv(logger *slog.Logger) *Conn {
	url := strings.TrimSpace(os.Getenv("RABBITMQ_URL"))
	if url == "" {
		if logger != nil {
			logger.Warn("RABBITMQ_URL not set, order events disabled")
		}
		return nil
	}
	conn, err := Connect(url)
	if err != nil {
		if logger != nil {
			logger.Warn("failed to connect to rabbitmq, order events disabled", slog.String("error", err.Error()))
		}
		return nil
	}
	if logger != nil {
		logger.Info("rabbitmq connection established")
	}
	return conn
}

// Close releases the channel and connection.
func (c *Conn) Close() {
	if c == nil {
		return
	}
	if c.Channel != nil {
		_ = c.Channel.Close()
	}
	if c.conn != nil {
		_ = c.conn.Close()
	}
}
