package ports

import (
	"context"
)

// OutboundSMS is a single provider submission. Fields are already validated.
type OutboundSMS struct {
	To   string
	From string
	Body string
}

// SMSProvider abstracts the external SMS gateway's send endpoint.
type SMSProvider interface {
	// Send submits one SMS. Non-2xx responses and transport failures are
	// returned as *domain.SendFailedError.
	Send(ctx context.Context, sms OutboundSMS) error
}

// DirectSender delivers a message synchronously after validating the
// recipient and authorizing the sender.
type DirectSender interface {
	Send(ctx context.Context, destination, sender, body string) error
}
