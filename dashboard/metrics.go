package dashboard

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"flightdash/flightdb"
)

// Metrics counts and times every report and view execution.
type Metrics struct {
	queries  *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics registers the dashboard collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		queries: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "flightdash_queries_total",
			Help: "Report and view executions by outcome.",
		}, []string{"ref", "outcome"}),
		duration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "flightdash_query_duration_seconds",
			Help:    "Time spent executing reports and views.",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.3, 1, 3, 10},
		}, []string{"ref"}),
	}
}

func (m *Metrics) observe(ref string, seconds float64, err error) {
	if m == nil {
		return
	}
	m.queries.WithLabelValues(ref, outcome(err)).Inc()
	if err == nil {
		m.duration.WithLabelValues(ref).Observe(seconds)
	}
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, flightdb.ErrNotFound):
		return "not_found"
	case errors.Is(err, flightdb.ErrValidation):
		return "invalid"
	case errors.Is(err, flightdb.ErrConnection):
		return "connection"
	default:
		return "query"
	}
}
