package prom

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exports operation outcomes as a labelled Prometheus counter.
type Metrics struct {
	outcomes *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	outcomes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "xianverse",
		Name:      "operations_total",
		Help:      "Count of gameplay operations by outcome.",
	}, []string{"operation", "outcome"})
	reg.MustRegister(outcomes)
	return &Metrics{outcomes: outcomes}
}

func (m *Metrics) RecordSuccess(operation string) {
	m.outcomes.WithLabelValues(operation, "success").Inc()
}

func (m *Metrics) RecordRejected(operation string) {
	m.outcomes.WithLabelValues(operation, "rejected").Inc()
}

func (m *Metrics) RecordFailure(operation string) {
	m.outcomes.WithLabelValues(operation, "failure").Inc()
}
