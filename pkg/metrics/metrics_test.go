package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_ExportsOrderCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.OrderCreated()
	m.OrderCreated()
	m.OrderStatusChanged("Pendiente", "Cancelado")

	mfs, err := reg.Gather()
	require.NoError(t, err)

	created := findMetricFamily(mfs, "pedidos_creados_total")
	require.NotNil(t, created)
	assert.Equal(t, float64(2), created.GetMetric()[0].GetCounter().GetValue())

	transitions := findMetricFamily(mfs, "pedidos_transiciones_total")
	require.NotNil(t, transitions)
	require.Len(t, transitions.GetMetric(), 1)
	assert.True(t, hasLabel(transitions.GetMetric()[0].GetLabel(), "hacia", "Cancelado"))
}

func TestMetrics_ObserveRequest(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveRequest("GET", "/api/pedidos", 200, 15*time.Millisecond)
	m.ObserveRequest("GET", "", 404, time.Millisecond)

	mfs, err := reg.Gather()
	require.NoError(t, err)
	requests := findMetricFamily(mfs, "http_requests_total")
	require.NotNil(t, requests)
	assert.Len(t, requests.GetMetric(), 2)

	var sawUnknown bool
	for _, metric := range requests.GetMetric() {
		if hasLabel(metric.GetLabel(), "route", "unknown") {
			sawUnknown = true
		}
	}
	assert.True(t, sawUnknown)
}

func TestMetrics_NilIsInert(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.OrderCreated()
		m.OrderStatusChanged("a", "b")
		m.ObserveRequest("GET", "/", 200, time.Second)
	})
	assert.NotPanics(t, func() { New(nil).OrderCreated() })
}

func findMetricFamily(mfs []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func hasLabel(labels []*dto.LabelPair, name, value string) bool {
	for _, l := range labels {
		if l.GetName() == name && l.GetValue() == value {
			return true
		}
	}
	return false
}
