package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RemindersDispatched tracks reminder dispatch attempts per channel and outcome
	RemindersDispatched = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bill_reminder_dispatched_total",
			Help: "Total number of reminder dispatch attempts",
		},
		[]string{"channel", "status"},
	)

	// SweepDuration tracks how long each scheduler pass takes
	SweepDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bill_reminder_sweep_duration_seconds",
			Help:    "Duration of one reminder evaluation pass in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"job"},
	)

	// BillsEvaluated tracks how many bills each pass inspected
	BillsEvaluated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bill_reminder_bills_evaluated_total",
			Help: "Total number of bills inspected by the reminder engine",
		},
		[]string{"job"},
	)

	// OverdueAlerts tracks overdue alerts sent by the daily sweep
	OverdueAlerts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bill_reminder_overdue_alerts_total",
			Help: "Total number of overdue alerts sent",
		},
	)

	// ComposerFallbacks tracks how often the message composer fell back to
	// the fixed template
	ComposerFallbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bill_reminder_composer_fallbacks_total",
			Help: "Total number of reminder messages built from the fallback template",
		},
	)

	// TickErrors tracks unexpected errors recovered at the scheduler boundary
	TickErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bill_reminder_tick_errors_total",
			Help: "Total number of scheduler ticks that ended with an error",
		},
		[]string{"job"},
	)

	// RateLimitExceeded tracks API rate limit violations
	RateLimitExceeded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bill_reminder_rate_limit_exceeded_total",
			Help: "Total number of rate limit exceeded events",
		},
		[]string{"user_id"},
	)
)
