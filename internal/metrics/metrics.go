package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestTotal counts HTTP requests by method, route and status.
	RequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "studiopm_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)
	// RequestDuration is the latency of HTTP requests.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "studiopm_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
	// MilestonesCompleted counts milestone completions by key (M1, M2, M3).
	MilestonesCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "studiopm_milestones_completed_total",
			Help: "Total number of milestone completions",
		},
		[]string{"milestone"},
	)
	// NotificationsSent counts notifications by kind (direct, broadcast).
	NotificationsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "studiopm_notifications_sent_total",
			Help: "Total number of notifications sent",
		},
		[]string{"kind"},
	)
	// HoursLogged sums hours recorded on timecards.
	HoursLogged = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "studiopm_hours_logged_total",
			Help: "Total hours recorded on timecards",
		},
	)
)
