package metrics

import (
	"golang-sms-dispatch/internal/domain"

	"github.com/prometheus/client_golang/prometheus"
)

// Gateway outcomes.
const (
	OutcomeQueued       = "queued"
	OutcomeUnauthorized = "unauthorized"
	OutcomeRejected     = "rejected"
	OutcomeFailed       = "failed"
)

// Metrics holds the counters exported on /metrics. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	gatewayRequests *prometheus.CounterVec
	deliveries      *prometheus.CounterVec
}

// New creates the counters and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		gatewayRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sms",
			Subsystem: "gateway",
			Name:      "requests_total",
			Help:      "Gateway send requests by outcome.",
		}, []string{"outcome"}),
		deliveries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sms",
			Subsystem: "worker",
			Name:      "deliveries_total",
			Help:      "Queued envelopes processed by the worker, by status.",
		}, []string{"status"}),
	}
	reg.MustRegister(m.gatewayRequests, m.deliveries)
	return m
}

// GatewayRequest counts one gateway call.
func (m *Metrics) GatewayRequest(outcome string) {
	if m == nil {
		return
	}
	m.gatewayRequests.WithLabelValues(outcome).Inc()
}

// Delivery counts one worker delivery.
func (m *Metrics) Delivery(status domain.Status) {
	if m == nil {
		return
	}
	m.deliveries.WithLabelValues(string(status)).Inc()
}
