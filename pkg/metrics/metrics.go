package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Lookup results recorded by ObserveLookup
const (
	ResultOK                 = "ok"
	ResultInvalidInput       = "invalid_input"
	ResultInsufficientRoster = "insufficient_roster"
	ResultRosterFetch        = "roster_fetch_error"
	ResultError              = "error"
)

// Metrics holds the Prometheus collectors of the duty API
type Metrics struct {
	reg prometheus.Gatherer

	lookups    *prometheus.CounterVec
	rosterSize prometheus.Gauge
	slots      prometheus.Counter
}

// New registers the collectors on reg. A nil reg gets a private registry.
func New(reg *prometheus.Registry, namespace string) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	if namespace == "" {
		namespace = "bau"
	}

	m := &Metrics{
		reg: reg,
		lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "duty_lookups_total",
			Help:      "Duty lookups by endpoint and result.",
		}, []string{"endpoint", "result"}),
		rosterSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "roster_size",
			Help:      "Number of engineers in the most recently fetched roster.",
		}),
		slots: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "schedule_slots_total",
			Help:      "Slots computed by schedule range requests.",
		}),
	}
	reg.MustRegister(m.lookups, m.rosterSize, m.slots)
	return m
}

// ObserveLookup counts a lookup outcome
func (m *Metrics) ObserveLookup(endpoint, result string) {
	m.lookups.WithLabelValues(endpoint, result).Inc()
}

// SetRosterSize records the size of the last roster fetched
func (m *Metrics) SetRosterSize(n int) {
	m.rosterSize.Set(float64(n))
}

// AddSlots counts slots computed for a schedule range
func (m *Metrics) AddSlots(n int) {
	m.slots.Add(float64(n))
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}
