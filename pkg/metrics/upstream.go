package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// UpstreamMetrics records round trips to the CMS and commerce backends.
type UpstreamMetrics struct {
	duration *prometheus.HistogramVec
	success  *prometheus.CounterVec
	failure  *prometheus.CounterVec
}

// NewUpstreamMetrics registers the upstream metrics on the provided registerer.
// A nil registerer yields a no-op recorder.
func NewUpstreamMetrics(reg prometheus.Registerer, namespace string) *UpstreamMetrics {
	if reg == nil {
		return &UpstreamMetrics{}
	}
	labels := []string{"service", "operation"}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_request_duration_seconds",
		Help:      "Duration of upstream requests in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, labels)
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_request_success",
		Help:      "Successful upstream requests.",
	}, labels)
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_request_failure",
		Help:      "Failed upstream requests.",
	}, labels)
	reg.MustRegister(duration, success, failure)
	return &UpstreamMetrics{
		duration: duration,
		success:  success,
		failure:  failure,
	}
}

// Observe records the outcome of a single request that started at start.
func (m *UpstreamMetrics) Observe(service, operation string, start time.Time, err error) {
	if m == nil || m.duration == nil {
		return
	}
	service, operation = normalizeLabel(service), normalizeLabel(operation)
	m.duration.WithLabelValues(service, operation).Observe(time.Since(start).Seconds())
	if err != nil {
		m.failure.WithLabelValues(service, operation).Inc()
		return
	}
	m.success.WithLabelValues(service, operation).Inc()
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
