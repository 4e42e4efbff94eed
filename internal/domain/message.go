package domain

import (
	"time"

	"github.com/google/uuid"
)

// Envelope is the broker wire form of a queued send request. It carries no
// sender; once published the gateway keeps no reference to it.
type Envelope struct {
	Destination string `json:"destination"`
	Body        string `json:"body"`
}

// Status represents the outcome of a worker delivery attempt.
type Status string

const (
	StatusSent   Status = "sent"   // Accepted by the SMS provider
	StatusFailed Status = "failed" // Rejected locally or by the provider
)

// Delivery is one consumed envelope and what happened to it.
type Delivery struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Destination string    `gorm:"not null"`
	Sender      string    `gorm:"not null"`
	Body        string    `gorm:"not null"`
	Status      Status    `gorm:"type:varchar(16);not null;index"`
	Error       string
	CreatedAt   time.Time
}

// NewDelivery creates a Delivery for an envelope sent from sender.
func NewDelivery(env Envelope, sender string, sendErr error) Delivery {
	d := Delivery{
		ID:          uuid.New(),
		Destination: env.Destination,
		Sender:      sender,
		Body:        env.Body,
		Status:      StatusSent,
		CreatedAt:   time.Now().UTC(),
	}
	if sendErr != nil {
		d.Status = StatusFailed
		d.Error = sendErr.Error()
	}
	return d
}
