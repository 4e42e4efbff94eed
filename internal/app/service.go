package app

import (
	"context"
	"fmt"
	"log/slog"

	"golang-sms-dispatch/internal/domain"
	"golang-sms-dispatch/internal/metrics"
	"golang-sms-dispatch/internal/ports"
)

// DispatchService delivers queued envelopes. Envelopes carry no sender, so
// every message goes out under the configured default sender, which is
// authorized on each delivery like any direct send.
type DispatchService struct {
	sender        ports.DirectSender
	repo          ports.DeliveryRepository
	defaultSender string
	metrics       *metrics.Metrics
	log           *slog.Logger
}

// NewDispatchService wires the service. repo may be nil, in which case
// outcomes are only logged.
func NewDispatchService(
	sender ports.DirectSender,
	repo ports.DeliveryRepository,
	defaultSender string,
	m *metrics.Metrics,
	log *slog.Logger,
) *DispatchService {
	return &DispatchService{
		sender:        sender,
		repo:          repo,
		defaultSender: defaultSender,
		metrics:       m,
		log:           log,
	}
}

// HandleEnvelope sends one dequeued envelope and records the outcome.
// This is called by the sms-worker binary for each message it dequeues.
func (s *DispatchService) HandleEnvelope(ctx context.Context, env domain.Envelope) error {
	sendErr := s.sender.Send(ctx, env.Destination, s.defaultSender, env.Body)

	d := domain.NewDelivery(env, s.defaultSender, sendErr)
	s.metrics.Delivery(d.Status)

	if s.repo != nil {
		if err := s.repo.SaveDelivery(ctx, d); err != nil {
			s.log.Error("save delivery failed", "delivery_id", d.ID, "err", err)
		}
	}

	if sendErr != nil {
		return fmt.Errorf("deliver to %s: %w", env.Destination, sendErr)
	}

	s.log.Info("envelope delivered", "delivery_id", d.ID, "to", env.Destination)
	return nil
}
