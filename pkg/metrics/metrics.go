// Package metrics agrupa los colectores Prometheus de la API.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics colectores HTTP y de pedidos. Un *Metrics nil o sin registrar ignora las observaciones.
type Metrics struct {
	requests    *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	created     prometheus.Counter
	transitions *prometheus.CounterVec
}

// New registra los colectores en reg. Con reg nil devuelve un Metrics inerte.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		return &Metrics{}
	}
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Peticiones HTTP atendidas.",
	}, []string{"method", "route", "status"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duración de las peticiones HTTP en segundos.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
	created := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pedidos_creados_total",
		Help: "Pedidos creados.",
	})
	transitions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pedidos_transiciones_total",
		Help: "Cambios de estado de pedidos.",
	}, []string{"desde", "hacia"})
	reg.MustRegister(requests, duration, created, transitions)
	return &Metrics{
		requests:    requests,
		duration:    duration,
		created:     created,
		transitions: transitions,
	}
}

// ObserveRequest registra una petición HTTP terminada.
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil || m.requests == nil {
		return
	}
	route = normalizeLabel(route)
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.duration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// OrderCreated incrementa el contador de pedidos creados.
func (m *Metrics) OrderCreated() {
	if m == nil || m.created == nil {
		return
	}
	m.created.Inc()
}

// OrderStatusChanged cuenta una transición de estado.
func (m *Metrics) OrderStatusChanged(from, to string) {
	if m == nil || m.transitions == nil {
		return
	}
	m.transitions.WithLabelValues(normalizeLabel(from), normalizeLabel(to)).Inc()
}

func normalizeLabel(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
