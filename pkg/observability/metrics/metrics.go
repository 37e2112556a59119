// Package metrics is the single source of truth for the service's
// Prometheus metric names, labels and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "hirezy"

// RegistrationsTotal counts completed registrations by role.
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "accounts",
		Name:      "registrations_total",
		Help:      "Completed account registrations, labeled by role.",
	},
	[]string{"role"},
)

// LoginsTotal counts login attempts by outcome ("ok" or "denied").
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "accounts",
		Name:      "logins_total",
		Help:      "Login attempts, labeled by outcome.",
	},
	[]string{"outcome"},
)

// HTTPRequestDuration observes request latency per route and status.
var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by method, route and status code.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "route", "status"},
)
