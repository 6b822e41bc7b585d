// Package metrics holds Prometheus instruments for the contact workflow.
// All collectors are registered with the global registry, so mounting
// promhttp.Handler() in main.go is enough to expose them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	SubmissionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "contact_submissions_total",
			Help: "Contact submit attempts by outcome (invalid, succeeded, failed, canceled).",
		},
		[]string{"outcome"})

	ValidationErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "contact_validation_errors_total",
			Help: "Field-level validation errors by field and kind.",
		},
		[]string{"field", "kind"})

	SendDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "contact_send_duration_seconds",
			Help:    "Time spent delivering valid submissions.",
			Buckets: []float64{.05, .1, .25, .5, 1, 1.5, 2.5, 5, 10},
		})

	NotificationsShownTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "contact_notifications_shown_total",
			Help: "Transient notifications shown, by severity.",
		},
		[]string{"severity"})

	WebhookAttemptsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "contact_webhook_attempts_total",
			Help: "HTTP attempts made by the webhook transport, by status class.",
		},
		[]string{"class"})

	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests served, by route pattern, method, and status code.",
		},
		[]string{"route", "method", "code"})
)

func init() {
	prometheus.MustRegister(
		SubmissionsTotal,
		ValidationErrorsTotal,
		SendDuration,
		NotificationsShownTotal,
		WebhookAttemptsTotal,
		HTTPRequestsTotal,
	)
}
