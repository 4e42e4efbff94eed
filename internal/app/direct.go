package app

import (
	"context"
	"fmt"
	"log/slog"

	"golang-sms-dispatch/internal/domain"
	"golang-sms-dispatch/internal/ports"
)

// DirectSender delivers a message synchronously through the provider.
// The destination check, the sender check and the provider call run in that
// order and each one short-circuits the rest.
type DirectSender struct {
	authorizer *SenderAuthorizer
	provider   ports.SMSProvider
	log        *slog.Logger
}

// NewDirectSender wires a DirectSender with its dependencies.
func NewDirectSender(authorizer *SenderAuthorizer, provider ports.SMSProvider, log *slog.Logger) *DirectSender {
	return &DirectSender{authorizer: authorizer, provider: provider, log: log}
}

// Send validates destination, authorizes sender and submits the message.
func (s *DirectSender) Send(ctx context.Context, destination, sender, body string) error {
	if err := domain.ValidateE164(destination); err != nil {
		return err
	}

	if err := s.authorizer.Authorize(ctx, sender); err != nil {
		return fmt.Errorf("authorize sender: %w", err)
	}

	if err := s.provider.Send(ctx, ports.OutboundSMS{To: destination, From: sender, Body: body}); err != nil {
		return err
	}

	s.log.Info("message sent", "to", destination, "from", sender)
	return nil
}
