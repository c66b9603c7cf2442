package http

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "sensibo_client"

type metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func newMetrics(registerer prometheus.Registerer) *metrics {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "requests_total",
		Help:      "API requests by method and HTTP status code (\"error\" for transport failures).",
	}, []string{"method", "code"})

	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Name:      "request_duration_seconds",
		Help:      "API request latency by method.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method"})

	return &metrics{
		requests: register(registerer, requests),
		duration: register(registerer, duration),
	}
}

// register returns the already registered collector when several clients
// share one registerer.
func register[T prometheus.Collector](registerer prometheus.Registerer, collector T) T {
	err := registerer.Register(collector)
	if err == nil {
		return collector
	}

	already := prometheus.AlreadyRegisteredError{}
	if errors.As(err, &already) {
		if existing, ok := already.ExistingCollector.(T); ok {
			return existing
		}
	}

	return collector
}

func (m *metrics) observe(method, code string, elapsed time.Duration) {
	if m == nil {
		return
	}

	m.requests.WithLabelValues(method, code).Inc()
	m.duration.WithLabelValues(method).Observe(elapsed.Seconds())
}
