// Package metrics exposes Prometheus collectors for the answer pipeline.
// Every method tolerates a nil *Metrics so components can run unmetered.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "ragchat"

type Metrics struct {
	registry  *prometheus.Registry
	requests  *prometheus.CounterVec
	durations *prometheus.HistogramVec
	fallbacks prometheus.Counter
	fetches   *prometheus.CounterVec
	sessions  prometheus.GaugeFunc
}

// New registers the collectors on a fresh registry. sessionCount feeds the
// sessions gauge and may be nil.
func New(sessionCount func() int) *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Pipeline invocations by operation and outcome.",
		}, []string{"operation", "outcome"}),
		durations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "request_duration_seconds",
			Help:      "Pipeline latency by operation.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		fallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "search_fallbacks_total",
			Help:      "Live search failures answered from mock data.",
		}),
		fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetch_total",
			Help:      "Article extraction attempts by outcome.",
		}, []string{"outcome"}),
	}
	if sessionCount == nil {
		sessionCount = func() int { return 0 }
	}
	m.sessions = prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "sessions",
		Help:      "Chat sessions held in memory.",
	}, func() float64 { return float64(sessionCount()) })

	reg.MustRegister(m.requests, m.durations, m.fallbacks, m.fetches, m.sessions)
	return m
}

// ObserveRequest records one pipeline call.
func (m *Metrics) ObserveRequest(operation string, start time.Time, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.requests.WithLabelValues(operation, outcome).Inc()
	m.durations.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

func (m *Metrics) SearchFallback() {
	if m == nil {
		return
	}
	m.fallbacks.Inc()
}

func (m *Metrics) Fetch(ok bool) {
	if m == nil {
		return
	}
	if ok {
		m.fetches.WithLabelValues("ok").Inc()
		return
	}
	m.fetches.WithLabelValues("error").Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }
