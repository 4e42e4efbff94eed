package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"golang-sms-dispatch/internal/domain"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// DefaultQueue is the durable queue SMS envelopes are published to.
const DefaultQueue = "sms_queue"

type publishChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// Publisher implements ports.Queuer using RabbitMQ. The connection and
// channel are opened once and shared by all callers.
type Publisher struct {
	conn    *amqp.Connection
	channel publishChannel
	closeCh func() error
	queue   string
	timeout time.Duration
}

// NewPublisher dials RabbitMQ and declares the queue. timeout bounds each
// publish; zero means no bound.
func NewPublisher(amqpURL, queue string, timeout time.Duration) (*Publisher, error) {
	conn, err := amqp.Dial(amqpURL)
	if err != nil {
		return nil, fmt.Errorf("%w: dial rabbitmq: %v", domain.ErrBrokerConnection, err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("%w: open channel: %v", domain.ErrBrokerConnection, err)
	}

	if err := declare(ch, queue); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	return &Publisher{conn: conn, channel: ch, closeCh: ch.Close, queue: queue, timeout: timeout}, nil
}

// Enqueue serialises {destination, body} and publishes it to the queue via
// the default exchange. It does not wait for a broker confirm.
func (p *Publisher) Enqueue(ctx context.Context, destination, body string) error {
	payload, err := json.Marshal(domain.Envelope{Destination: destination, Body: body})
	if err != nil {
		return fmt.Errorf("%w: marshal envelope: %v", domain.ErrSerialization, err)
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	err = p.channel.PublishWithContext(
		ctx,
		"",      // default exchange
		p.queue, // routing key is the queue name
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType: "application/json",
			MessageId:   uuid.NewString(),
			Timestamp:   time.Now().UTC(),
			Body:        payload,
		},
	)
	if err != nil {
		return fmt.Errorf("%w: publish: %v", domain.ErrBrokerConnection, err)
	}
	return nil
}

// Close cleanly shuts down the channel and connection.
func (p *Publisher) Close() {
	if p.closeCh != nil {
		p.closeCh()
	}
	if p.conn != nil {
		p.conn.Close()
	}
}

// declare idempotently sets up the durable queue.
func declare(ch *amqp.Channel, queue string) error {
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("%w: declare queue: %v", domain.ErrBrokerConnection, err)
	}
	return nil
}
