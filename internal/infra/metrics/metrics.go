package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search outcomes used as the "outcome" label.
const (
	OutcomeResults = "results"
	OutcomeEmpty   = "empty"
	OutcomeError   = "error"
	OutcomeStale   = "stale"
)

// SearchMetrics exposes counters for the search flow and wizard sessions.
type SearchMetrics struct {
	requestsTotal *prometheus.CounterVec
	duration      prometheus.Histogram
	sessions      prometheus.Gauge
}

func NewSearchMetrics(reg prometheus.Registerer) *SearchMetrics {
	m := &SearchMetrics{
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tutorbot",
			Subsystem: "search",
			Name:      "requests_total",
			Help:      "Total tutor searches by outcome",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "tutorbot",
			Subsystem: "search",
			Name:      "duration_seconds",
			Help:      "Latency of search API round trips",
			Buckets:   prometheus.DefBuckets,
		}),
		sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "tutorbot",
			Subsystem: "wizard",
			Name:      "sessions",
			Help:      "Wizard sessions currently held in memory",
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.requestsTotal, m.duration, m.sessions)
	return m
}

func (m *SearchMetrics) ObserveSearch(outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.requestsTotal.WithLabelValues(outcome).Inc()
	m.duration.Observe(seconds)
}

func (m *SearchMetrics) SetSessions(n int) {
	if m == nil {
		return
	}
	m.sessions.Set(float64(n))
}
