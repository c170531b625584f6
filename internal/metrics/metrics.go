package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	ReservationsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reservations_created_total",
			Help: "Reservations created, by status",
		},
		[]string{"status"},
	)

	PaymentsRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payments_recorded_total",
			Help: "Payments recorded, by method",
		},
		[]string{"method"},
	)

	RefundsRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "refunds_recorded_total",
			Help: "Refunds recorded, by reason",
		},
		[]string{"reason"},
	)

	OptionsExpired = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "options_expired_total",
			Help: "Capacity options released by the expiry sweeper",
		},
	)

	WaitlistConversions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "waitlist_conversions_total",
			Help: "Waitlist entries converted to reservations",
		},
	)

	BulkActions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bulk_actions_total",
			Help: "Reservations processed by bulk actions, by action",
		},
		[]string{"action"},
	)

	ExportsGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "exports_generated_total",
			Help: "Export artifacts generated, by format",
		},
		[]string{"format"},
	)

	EventUtilization = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "event_utilization_percent",
			Help: "Capacity utilization per upcoming event",
		},
		[]string{"event_id"},
	)
)
