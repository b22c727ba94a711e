// Package metrics defines and registers all custom Prometheus metrics for the
// blog API. It is the single source of truth for metric names, labels, and
// help strings.
//
// Metrics register with the default Prometheus registry at package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "blog"

// ── Authentication ────────────────────────────────────────────────────────────

// LoginAttemptsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials" or "error"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts registration attempts.
// Label:
//   - result: "success", "duplicate_email", "duplicate_username", "invalid" or "error"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
)

// TokenValidationsTotal counts bearer token checks done by the auth middleware.
// Label:
//   - outcome: "ok", "missing", "invalid_signature", "expired", "malformed",
//     "unknown_subject", "inactive" or "error"
var TokenValidationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_validations_total",
		Help:      "Total number of bearer token validations, by outcome.",
	},
	[]string{"outcome"},
)

// ── Authorization ─────────────────────────────────────────────────────────────

// PermissionDeniedTotal counts requests rejected with 403.
// Label:
//   - route: the Echo route path (e.g. "/posts/:id")
var PermissionDeniedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "permission_denied_total",
		Help:      "Total number of requests denied for insufficient permissions.",
	},
	[]string{"route"},
)

// RateLimitedTotal counts requests rejected by a rate limit.
// Label:
//   - scope: the limit bucket ("login", "register", "write")
var RateLimitedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limited_total",
		Help:      "Total number of requests rejected by rate limiting.",
	},
	[]string{"scope"},
)

// ── Password hashing ──────────────────────────────────────────────────────────

// HashQueueDepth tracks the number of hashing jobs waiting for a worker.
var HashQueueDepth = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "hash_queue_depth",
		Help:      "Current number of password hashing jobs waiting for a worker.",
	},
)

// HashDuration measures time spent hashing or verifying on a worker.
// Label:
//   - op: "hash" or "verify"
var HashDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "hash_duration_seconds",
		Help:      "Duration of bcrypt operations on the hashing pool.",
		Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5},
	},
	[]string{"op"},
)
