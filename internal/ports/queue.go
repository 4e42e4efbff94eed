package ports

import (
	"context"

	"golang-sms-dispatch/internal/domain"
)

// Queuer hands a message to the broker for asynchronous delivery. It performs
// no sender validation. A nil error means the message left the process, not
// that the broker persisted it.
type Queuer interface {
	Enqueue(ctx context.Context, destination, body string) error
}

// EnvelopeConsumer consumes queued envelopes.
type EnvelopeConsumer interface {
	// Consume starts delivery of envelopes; each is passed to the handler.
	// Blocks until ctx is cancelled or a fatal error occurs.
	Consume(ctx context.Context, handler func(ctx context.Context, env domain.Envelope) error) error
}
