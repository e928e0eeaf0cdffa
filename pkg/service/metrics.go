package service

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors of a Context. A nil *Metrics
// records nothing.
type Metrics struct {
	APDUsReceived    *prometheus.CounterVec
	APDUsSent        *prometheus.CounterVec
	DecodeFailures   prometheus.Counter
	DroppedResponses prometheus.Counter
	DroppedEvents    prometheus.Counter
	PendingRequests  prometheus.Gauge
}

// NewMetrics creates the collectors and registers them with reg. Metrics
// already registered by another context are shared.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		APDUsReceived: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "phd",
			Name:      "apdus_received_total",
			Help:      "APDUs received, by choice",
		}, []string{"choice"}),
		APDUsSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "phd",
			Name:      "apdus_sent_total",
			Help:      "APDUs sent, by choice",
		}, []string{"choice"}),
		DecodeFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "phd",
			Name:      "decode_failures_total",
			Help:      "APDUs or event payloads that failed to decode",
		}),
		DroppedResponses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "phd",
			Name:      "dropped_responses_total",
			Help:      "Responses dropped because their invoke-id was unknown",
		}),
		DroppedEvents: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "phd",
			Name:      "dropped_events_total",
			Help:      "Event reports dropped because their handle did not resolve",
		}),
		PendingRequests: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "phd",
			Name:      "pending_requests",
			Help:      "Confirmed requests awaiting a response",
		}),
	}
	if reg == nil {
		return m, nil
	}

	var err error
	m.APDUsReceived = register(reg, m.APDUsReceived, &err)
	m.APDUsSent = register(reg, m.APDUsSent, &err)
	m.DecodeFailures = register(reg, m.DecodeFailures, &err)
	m.DroppedResponses = register(reg, m.DroppedResponses, &err)
	m.DroppedEvents = register(reg, m.DroppedEvents, &err)
	m.PendingRequests = register(reg, m.PendingRequests, &err)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// register registers c, returning the existing collector when an equal
// one is already registered.
func register[C prometheus.Collector](reg prometheus.Registerer, c C, errp *error) C {
	if *errp != nil {
		return c
	}
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing
			}
		}
		*errp = err
	}
	return c
}

func (m *Metrics) received(choice string) {
	if m != nil {
		m.APDUsReceived.WithLabelValues(choice).Inc()
	}
}

func (m *Metrics) sent(choice string) {
	if m != nil {
		m.APDUsSent.WithLabelValues(choice).Inc()
	}
}

func (m *Metrics) decodeFailure() {
	if m != nil {
		m.DecodeFailures.Inc()
	}
}

func (m *Metrics) droppedResponse() {
	if m != nil {
		m.DroppedResponses.Inc()
	}
}

func (m *Metrics) droppedEvent() {
	if m != nil {
		m.DroppedEvents.Inc()
	}
}

func (m *Metrics) pending(n int) {
	if m != nil {
		m.PendingRequests.Set(float64(n))
	}
}
