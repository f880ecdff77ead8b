// Package monitoring exposes Prometheus collectors for the gateway. The
// upstream API is the only dependency that can slow a page down, so the
// request counter and latency histogram are labeled by upstream operation.
package monitoring

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	upstreamRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "webgate_upstream_requests_total",
			Help: "Upstream API requests by operation and HTTP status",
		},
		[]string{"op", "status"},
	)

	upstreamDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "webgate_upstream_duration_seconds",
			Help:    "Upstream API request latency by operation",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"op"},
	)

	queuePolls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "webgate_queue_polls_total",
			Help: "Queue page rank checks by outcome",
		},
		[]string{"outcome"},
	)

	sessionsStarted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "webgate_sessions_started_total",
			Help: "New browser sessions issued",
		},
	)
)

// ObserveUpstream records one upstream call. A status of 0 means the request
// never produced a response (transport error or timeout).
func ObserveUpstream(op string, status int, d time.Duration) {
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	upstreamRequests.WithLabelValues(op, label).Inc()
	upstreamDuration.WithLabelValues(op).Observe(d.Seconds())
}

// QueuePoll counts one queue page rank check. Outcomes are "waiting",
// "admitted" and "error".
func QueuePoll(outcome string) {
	queuePolls.WithLabelValues(outcome).Inc()
}

// SessionStarted counts a freshly minted session cookie.
func SessionStarted() {
	sessionsStarted.Inc()
}
