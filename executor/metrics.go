package executor

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records upstream call counts and latencies.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics creates the upstream collectors and registers them on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rest_gateway",
			Name:      "upstream_requests_total",
			Help:      "Number of REST calls issued to upstream services.",
		}, []string{"entity", "operation", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "rest_gateway",
			Name:      "upstream_request_duration_seconds",
			Help:      "Latency of REST calls issued to upstream services.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"entity", "operation"}),
	}

	reg.MustRegister(m.requests, m.duration)

	return m
}

func (m *Metrics) observe(r *Request, status int, elapsed time.Duration) {
	if m == nil {
		return
	}

	label := "error"
	if status != 0 {
		label = strconv.Itoa(status)
	}

	m.requests.WithLabelValues(r.Entity, r.Operation, label).Inc()
	m.duration.WithLabelValues(r.Entity, r.Operation).Observe(elapsed.Seconds())
}
