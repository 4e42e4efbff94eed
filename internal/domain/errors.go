package domain

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrInvalidPhoneNumber   = errors.New("invalid phone number")
	ErrInvalidSender        = errors.New("sender ID must be either a registered alpha tag, a verified own number, or a purchased dedicated number")
	ErrMessageSendFailed    = errors.New("failed to send message")
	ErrDirectoryUnavailable = errors.New("sender directory unavailable")
	ErrProviderClient       = errors.New("provider client construction failed")
	ErrBrokerConnection     = errors.New("broker connection error")
	ErrSerialization        = errors.New("serialization error")
)

// SendFailedError is returned when the provider rejects a message or cannot
// be reached. StatusCode is zero for transport failures.
type SendFailedError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *SendFailedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", ErrMessageSendFailed, e.Err)
	}
	return fmt.Sprintf("%s: status %d: %s", ErrMessageSendFailed, e.StatusCode, e.Body)
}

func (e *SendFailedError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrMessageSendFailed, e.Err}
	}
	return []error{ErrMessageSendFailed}
}

// IsClientError reports whether err was caused by the request itself rather
// than by the provider or the broker.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidPhoneNumber) || errors.Is(err, ErrInvalidSender)
}
