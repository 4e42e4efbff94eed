package app

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"

	"golang-sms-dispatch/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// brokenDirectory fails the lists named in unavailable and counts calls.
type brokenDirectory struct {
	verified    []string
	dedicated   []string
	alphaTags   []string
	unavailable map[string]bool
	calls       atomic.Int32
}

func (d *brokenDirectory) list(name string, values []string) (domain.StringSet, error) {
	d.calls.Add(1)
	if d.unavailable[name] {
		return nil, domain.ErrDirectoryUnavailable
	}
	return domain.NewStringSet(values...), nil
}

func (d *brokenDirectory) VerifiedNumbers(ctx context.Context) (domain.StringSet, error) {
	return d.list("verified", d.verified)
}

func (d *brokenDirectory) DedicatedNumbers(ctx context.Context) (domain.StringSet, error) {
	return d.list("dedicated", d.dedicated)
}

func (d *brokenDirectory) AlphaTags(ctx context.Context) (domain.StringSet, error) {
	return d.list("alpha", d.alphaTags)
}
