package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang-sms-dispatch/internal/domain"
	"golang-sms-dispatch/internal/ports"

	"golang.org/x/sync/errgroup"
)

// DirectoryPolicy decides what happens when a directory list cannot be read.
type DirectoryPolicy string

const (
	// DirectoryPolicyStrict fails the authorization with ErrDirectoryUnavailable.
	DirectoryPolicyStrict DirectoryPolicy = "strict"
	// DirectoryPolicyLenient treats an unreadable list as empty. A sender
	// found in no readable list is still rejected.
	DirectoryPolicyLenient DirectoryPolicy = "lenient"
)

// ParseDirectoryPolicy maps a config value to a policy. Empty means strict.
func ParseDirectoryPolicy(s string) (DirectoryPolicy, error) {
	switch DirectoryPolicy(s) {
	case "", DirectoryPolicyStrict:
		return DirectoryPolicyStrict, nil
	case DirectoryPolicyLenient:
		return DirectoryPolicyLenient, nil
	default:
		return "", fmt.Errorf("unknown directory policy %q", s)
	}
}

// SenderAuthorizer decides whether a sender identity may originate traffic.
type SenderAuthorizer struct {
	directory ports.SenderDirectory
	policy    DirectoryPolicy
	log       *slog.Logger
}

// NewSenderAuthorizer wires an authorizer over the given directory.
func NewSenderAuthorizer(directory ports.SenderDirectory, policy DirectoryPolicy, log *slog.Logger) *SenderAuthorizer {
	if policy == "" {
		policy = DirectoryPolicyStrict
	}
	return &SenderAuthorizer{directory: directory, policy: policy, log: log}
}

// Authorize returns nil if sender is a verified or dedicated number, or an
// exact match for a registered alpha tag. Directory lists are fetched fresh
// on every call.
func (a *SenderAuthorizer) Authorize(ctx context.Context, sender string) error {
	id := domain.ParseSender(sender)

	if id.Kind == domain.SenderNumeric {
		if err := domain.ValidateE164(id.Value); err != nil {
			return err
		}

		var snap domain.DirectorySnapshot
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			set, err := a.fetch(gctx, "verified", a.directory.VerifiedNumbers)
			snap.Verified = set
			return err
		})
		g.Go(func() error {
			set, err := a.fetch(gctx, "dedicated", a.directory.DedicatedNumbers)
			snap.Dedicated = set
			return err
		})
		if err := g.Wait(); err != nil {
			return err
		}

		if !snap.Verified.Has(id.Value) && !snap.Dedicated.Has(id.Value) {
			return fmt.Errorf("%w: %q", domain.ErrInvalidSender, sender)
		}
		return nil
	}

	tags, err := a.fetch(ctx, "alpha tags", a.directory.AlphaTags)
	if err != nil {
		return err
	}
	if !tags.Has(id.Value) {
		return fmt.Errorf("%w: %q", domain.ErrInvalidSender, sender)
	}
	return nil
}

func (a *SenderAuthorizer) fetch(
	ctx context.Context,
	list string,
	fn func(context.Context) (domain.StringSet, error),
) (domain.StringSet, error) {
	set, err := fn(ctx)
	if err == nil {
		return set, nil
	}

	if a.policy == DirectoryPolicyLenient && errors.Is(err, domain.ErrDirectoryUnavailable) {
		a.log.Warn("directory list unavailable, treating as empty", "list", list, "err", err)
		return domain.StringSet{}, nil
	}
	return nil, fmt.Errorf("fetch %s: %w", list, err)
}
