package ports

import (
	"context"

	"golang-sms-dispatch/internal/domain"
)

// SenderDirectory lists the sender identities the provider account may use.
// Every call hits the source; implementations must not cache.
type SenderDirectory interface {
	// VerifiedNumbers returns the numbers the account holder has proven ownership of.
	VerifiedNumbers(ctx context.Context) (domain.StringSet, error)

	// DedicatedNumbers returns the numbers purchased from the provider.
	DedicatedNumbers(ctx context.Context) (domain.StringSet, error)

	// AlphaTags returns the registered textual sender IDs.
	AlphaTags(ctx context.Context) (domain.StringSet, error)
}
