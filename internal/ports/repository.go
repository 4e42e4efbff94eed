package ports

import (
	"context"

	"golang-sms-dispatch/internal/domain"
)

// DeliveryRepository records what the worker did with each envelope.
type DeliveryRepository interface {
	// SaveDelivery persists one delivery outcome.
	SaveDelivery(ctx context.Context, d domain.Delivery) error
}
