package broker

import (
	"context"
	"fmt"

	"github.com/rabbitmq/amqp091-go"

	"autonomo/internal/logger"
)

// Handler processes one delivered event record. Returning an error leaves the
// message unacknowledged so the broker redelivers it (at-least-once).
type Handler func(ctx context.Context, key string, payload []byte) error

// Consumer binds a queue to an event exchange and feeds deliveries to a
// handler, one at a time, preserving queue order.
type Consumer struct {
	ch    *amqp091.Channel
	queue string
	log   *logger.Logger
}

// NewConsumer declares a durable queue bound to the exchange for all routing
// keys and returns a consumer reading from it.
func NewConsumer(conn *amqp091.Connection, exchange, queue string, log *logger.Logger) (*Consumer, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open consume channel: %w", err)
	}

	// One in-flight delivery per consumer keeps per-key processing ordered.
	if err := ch.Qos(1, 0, false); err != nil {
		ch.Close()
		return nil, fmt.Errorf("failed to set qos: %w", err)
	}

	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		ch.Close()
		return nil, fmt.Errorf("failed to declare queue %s: %w", queue, err)
	}
	if err := ch.QueueBind(queue, "#", exchange, false, nil); err != nil {
		ch.Close()
		return nil, fmt.Errorf("failed to bind queue %s to %s: %w", queue, exchange, err)
	}

	return &Consumer{ch: ch, queue: queue, log: log}, nil
}

// Run consumes deliveries until ctx is cancelled or the channel closes.
func (c *Consumer) Run(ctx context.Context, handle Handler) error {
	deliveries, err := c.ch.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to start consuming %s: %w", c.queue, err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-deliveries:
			if !ok {
				return nil
			}
			if err := handle(ctx, msg.RoutingKey, msg.Body); err != nil {
				c.log.Error("event handling failed", "queue", c.queue, "key", msg.RoutingKey, "error", err)
				// Requeue so the event is not lost; the handler is expected
				// to be idempotent under redelivery.
				_ = msg.Nack(false, true)
				continue
			}
			_ = msg.Ack(false)
		}
	}
}

// Close releases the consume channel.
func (c *Consumer) Close() error {
	return c.ch.Close()
}
