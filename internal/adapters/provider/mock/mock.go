// Package mock provides in-memory stand-ins for the SMS provider: a static
// sender directory and a provider that records what it was asked to send.
package mock

import (
	"context"
	"sync"

	"golang-sms-dispatch/internal/domain"
	"golang-sms-dispatch/internal/ports"
)

// Fixed directory contents returned by DefaultDirectory.
var (
	VerifiedNumbers  = []string{"+1234567890", "+1987654321"}
	DedicatedNumbers = []string{"+11234567890"}
	AlphaTags        = []string{"MYBUSINESS", "ALPHAEXAMPLE"}
)

// Directory implements ports.SenderDirectory over pre-seeded sets.
type Directory struct {
	verified  []string
	dedicated []string
	alphaTags []string
}

// NewDirectory returns a Directory seeded with the given lists.
func NewDirectory(verified, dedicated, alphaTags []string) *Directory {
	return &Directory{verified: verified, dedicated: dedicated, alphaTags: alphaTags}
}

// DefaultDirectory returns a Directory with the fixed test contents.
func DefaultDirectory() *Directory {
	return NewDirectory(VerifiedNumbers, DedicatedNumbers, AlphaTags)
}

func (d *Directory) VerifiedNumbers(ctx context.Context) (domain.StringSet, error) {
	return domain.NewStringSet(d.verified...), nil
}

func (d *Directory) DedicatedNumbers(ctx context.Context) (domain.StringSet, error) {
	return domain.NewStringSet(d.dedicated...), nil
}

func (d *Directory) AlphaTags(ctx context.Context) (domain.StringSet, error) {
	return domain.NewStringSet(d.alphaTags...), nil
}

// Provider implements ports.SMSProvider by recording every submission.
type Provider struct {
	mu   sync.Mutex
	sent []ports.OutboundSMS
	err  error
}

// NewProvider returns a Provider that accepts everything.
func NewProvider() *Provider {
	return &Provider{}
}

// FailWith makes subsequent sends return err. Pass nil to accept again.
func (p *Provider) FailWith(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.err = err
}

// Send records sms unless the provider was told to fail.
func (p *Provider) Send(ctx context.Context, sms ports.OutboundSMS) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.sent = append(p.sent, sms)
	return nil
}

// Sent returns a copy of everything accepted so far.
func (p *Provider) Sent() []ports.OutboundSMS {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]ports.OutboundSMS(nil), p.sent...)
}
