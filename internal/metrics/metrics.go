package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// RequestDuration tracks HTTP request duration in seconds by method, route, status.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	// RequestTotal counts HTTP requests by method, route, status.
	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	// AuthEvents counts authentication events (register, login, logout, delete_account) by outcome.
	AuthEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_events_total",
			Help: "Total number of authentication events by outcome",
		},
		[]string{"event", "outcome"},
	)

	// AccessDenied counts authorization denials by reason (unauthenticated, forbidden, forgery).
	AccessDenied = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "access_denied_total",
			Help: "Total number of denied requests by reason",
		},
		[]string{"reason"},
	)
)

func init() {
	prometheus.MustRegister(RequestDuration, RequestTotal, AuthEvents, AccessDenied)
}

// RecordRequest records duration and count for an HTTP request. route is the matched pattern, not the raw path.
func RecordRequest(method, route string, statusCode int, durationSeconds float64) {
	if route == "" {
		route = "unmatched"
	}
	status := strconv.Itoa(statusCode)
	RequestDuration.WithLabelValues(method, route, status).Observe(durationSeconds)
	RequestTotal.WithLabelValues(method, route, status).Inc()
}

// RecordAuthEvent increments the auth event counter.
func RecordAuthEvent(event, outcome string) {
	AuthEvents.WithLabelValues(event, outcome).Inc()
}

// RecordAccessDenied increments the denial counter for reason.
func RecordAccessDenied(reason string) {
	AccessDenied.WithLabelValues(reason).Inc()
}
