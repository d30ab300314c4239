// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request latency (seconds)
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "moodbite_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "route", "status"},
	)

	AuthEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moodbite_auth_events_total",
			Help: "Signup, login and token verification outcomes",
		},
		[]string{"event", "result"}, // event: signup, login, verify
	)

	MoodSelections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moodbite_mood_selections_total",
			Help: "Total number of mood selections recorded",
		},
		[]string{"mood"},
	)

	ContactMessages = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "moodbite_contact_messages_total",
			Help: "Total number of contact messages received",
		},
	)

	AnalyticsCache = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moodbite_analytics_cache_total",
			Help: "Analytics cache lookups by result",
		},
		[]string{"result"}, // hit, miss, error
	)
)

func RecordHTTPRequestDuration(method, route, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, route, status).Observe(duration.Seconds())
}

func RecordAuthEvent(event, result string) {
	AuthEvents.WithLabelValues(event, result).Inc()
}

// RecordMoodSelection counts a selection. Moods outside the picker vocabulary
// share the "other" label to keep label cardinality bounded.
func RecordMoodSelection(mood string, known bool) {
	if !known {
		mood = "other"
	}
	MoodSelections.WithLabelValues(mood).Inc()
}

func RecordContactMessage() {
	ContactMessages.Inc()
}

func RecordAnalyticsCache(result string) {
	AnalyticsCache.WithLabelValues(result).Inc()
}
