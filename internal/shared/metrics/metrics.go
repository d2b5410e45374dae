package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	UpstreamRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "arbolitics_upstream_requests_total",
			Help: "Total number of requests made to the Arbolitics API",
		},
		[]string{"endpoint", "outcome"},
	)

	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "arbolitics_upstream_request_duration_seconds",
			Help: "Duration of Arbolitics API requests in seconds",
		},
		[]string{"endpoint"},
	)

	AnalyticsFetchRetries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "arbolitics_analytics_fetch_retries_total",
			Help: "Total number of automatic analytics fetch retries",
		},
	)
)

// ObserveUpstreamRequest records one upstream call with its outcome and latency.
func ObserveUpstreamRequest(endpoint, outcome string, duration time.Duration) {
	UpstreamRequests.WithLabelValues(endpoint, outcome).Inc()
	UpstreamRequestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}
