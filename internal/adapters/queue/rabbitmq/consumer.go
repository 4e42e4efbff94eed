package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"golang-sms-dispatch/internal/domain"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Consumer implements ports.EnvelopeConsumer using RabbitMQ.
type Consumer struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   string
	log     *slog.Logger
}

// NewConsumer dials RabbitMQ, declares the queue, and returns a Consumer.
func NewConsumer(amqpURL, queue string, log *slog.Logger) (*Consumer, error) {
	conn, err := amqp.Dial(amqpURL)
	if err != nil {
		return nil, fmt.Errorf("%w: dial rabbitmq: %v", domain.ErrBrokerConnection, err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("%w: open channel: %v", domain.ErrBrokerConnection, err)
	}

	// One message at a time per consumer to ensure ordered processing.
	if err := ch.Qos(1, 0, false); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("set qos: %w", err)
	}

	if err := declare(ch, queue); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	return &Consumer{conn: conn, channel: ch, queue: queue, log: log}, nil
}

// Consume registers a consumer on the queue and calls handler for each envelope.
// Successful envelopes are acked. Failed or malformed ones are nacked without
// requeue; there is no retry. It blocks until ctx is cancelled.
func (c *Consumer) Consume(ctx context.Context, handler func(ctx context.Context, env domain.Envelope) error) error {
	deliveries, err := c.channel.Consume(
		c.queue,
		"",    // auto-generated consumer tag
		false, // manual ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("consume: %w", err)
	}

	return c.process(ctx, deliveries, handler)
}

func (c *Consumer) process(
	ctx context.Context,
	deliveries <-chan amqp.Delivery,
	handler func(ctx context.Context, env domain.Envelope) error,
) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case d, ok := <-deliveries:
			if !ok {
				return errors.New("deliveries channel closed")
			}

			var env domain.Envelope
			if err := json.Unmarshal(d.Body, &env); err != nil {
				c.log.Error("unmarshal envelope", "msg_id", d.MessageId, "err", err)
				_ = d.Nack(false, false)
				continue
			}

			if err := handler(ctx, env); err != nil {
				c.log.Error("handler error", "msg_id", d.MessageId, "err", err)
				_ = d.Nack(false, false)
				continue
			}

			_ = d.Ack(false)
		}
	}
}

// Close cleanly shuts down the channel and connection.
func (c *Consumer) Close() {
	c.channel.Close()
	c.conn.Close()
}
