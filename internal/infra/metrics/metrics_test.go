package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestSearchMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewSearchMetrics(reg)

	m.ObserveSearch(OutcomeResults, 0.2)
	m.ObserveSearch(OutcomeResults, 0.1)
	m.ObserveSearch(OutcomeError, 0.5)
	m.SetSessions(3)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues(OutcomeResults)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues(OutcomeError)))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.sessions))
	assert.Equal(t, 1, testutil.CollectAndCount(m.duration))
}

func TestSearchMetricsNilSafe(t *testing.T) {
	var m *SearchMetrics
	m.ObserveSearch(OutcomeStale, 0.1)
	m.SetSessions(1)
}
