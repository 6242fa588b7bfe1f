package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// JobMetrics records scheduled maintenance runs.
type JobMetrics struct {
	duration *prometheus.HistogramVec
	success  *prometheus.CounterVec
	failure  *prometheus.CounterVec
	affected *prometheus.CounterVec
}

// NewJobMetrics registers the job metrics on reg. A nil registerer yields a
// no-op recorder.
func NewJobMetrics(reg prometheus.Registerer, namespace string) *JobMetrics {
	if reg == nil {
		return &JobMetrics{}
	}
	labels := []string{"job"}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "job_duration_seconds",
		Help:      "Duration of scheduled jobs in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, labels)
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "job_success",
		Help:      "Successful scheduled job executions.",
	}, labels)
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "job_failure",
		Help:      "Failed scheduled job executions.",
	}, labels)
	affected := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "job_rows_affected",
		Help:      "Rows touched by scheduled jobs.",
	}, labels)
	reg.MustRegister(duration, success, failure, affected)
	return &JobMetrics{
		duration: duration,
		success:  success,
		failure:  failure,
		affected: affected,
	}
}

func (m *JobMetrics) ObserveDuration(job string, d time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.WithLabelValues(normalizeLabel(job)).Observe(d.Seconds())
}

func (m *JobMetrics) IncSuccess(job string) {
	if m == nil || m.success == nil {
		return
	}
	m.success.WithLabelValues(normalizeLabel(job)).Inc()
}

func (m *JobMetrics) IncFailure(job string) {
	if m == nil || m.failure == nil {
		return
	}
	m.failure.WithLabelValues(normalizeLabel(job)).Inc()
}

// AddAffected counts rows removed or updated by a job run.
func (m *JobMetrics) AddAffected(job string, n int64) {
	if m == nil || m.affected == nil || n <= 0 {
		return
	}
	m.affected.WithLabelValues(normalizeLabel(job)).Add(float64(n))
}
