// Package broker moves event records over RabbitMQ. Each aggregate type has
// its own topic exchange and events are routed by aggregate id, so consumers
// see a per-key ordered, at-least-once stream.
package broker

import (
	"context"
	"fmt"

	"github.com/rabbitmq/amqp091-go"
)

// Exchange names, one per event stream.
const (
	RideEventsExchange    = "ride-events"
	VehicleEventsExchange = "vehicle-events"
)

// Connect dials RabbitMQ and declares the event exchanges.
func Connect(url string) (*amqp091.Connection, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	if err := declareExchanges(conn); err != nil {
		conn.Close()
		return nil, err
	}
	return conn, nil
}

func declareExchanges(conn *amqp091.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open channel: %w", err)
	}
	defer ch.Close()

	for _, name := range []string{RideEventsExchange, VehicleEventsExchange} {
		err = ch.ExchangeDeclare(
			name,
			"topic",
			true,  // durable
			false, // auto-deleted
			false, // internal
			false, // no-wait
			nil,   // arguments
		)
		if err != nil {
			return fmt.Errorf("failed to declare exchange %s: %w", name, err)
		}
	}
	return nil
}

// PublisherInterface publishes one event record keyed by aggregate id.
type PublisherInterface interface {
	Publish(ctx context.Context, exchange, key string, payload []byte) error
}

// Publisher publishes persistent JSON messages to a topic exchange.
type Publisher struct {
	ch *amqp091.Channel
}

// NewPublisher opens a dedicated channel for publishing.
func NewPublisher(conn *amqp091.Connection) (*Publisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open publish channel: %w", err)
	}
	return &Publisher{ch: ch}, nil
}

// Publish sends the payload to the exchange with the aggregate id as routing
// key. Delivery is at-least-once; the broker preserves per-key order.
func (p *Publisher) Publish(ctx context.Context, exchange, key string, payload []byte) error {
	return p.ch.PublishWithContext(ctx, exchange, key, false, false, amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		Body:         payload,
	})
}

// Close releases the publish channel.
func (p *Publisher) Close() error {
	return p.ch.Close()
}

// Ensure the interface is satisfied.
var _ PublisherInterface = (*Publisher)(nil)
