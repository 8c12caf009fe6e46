// Package metrics defines and registers all custom Prometheus metrics for
// the planning API. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "planning"

// ── Authentication metrics ────────────────────────────────────────────────────

// PrincipalResolutionsTotal counts successful credential-to-principal
// resolutions.
var PrincipalResolutionsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "principal_resolutions_total",
		Help:      "Total number of successfully resolved principals.",
	},
)

// AuthFailuresTotal counts rejected requests at the auth guard.
// Label:
//   - reason: "missing", "invalid", "throttled", or "store_error"
var AuthFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Total number of requests rejected by the authentication guard.",
	},
	[]string{"reason"},
)

// PrincipalResolutionDuration measures end-to-end resolution latency,
// covering the credential lookup plus the concurrent role and ownership
// fetches.
var PrincipalResolutionDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "principal_resolution_duration_seconds",
		Help:      "Duration of credential-to-principal resolution.",
		Buckets:   prometheus.DefBuckets,
	},
)

// ── Authorization metrics ─────────────────────────────────────────────────────

// AccessDenialsTotal counts forbidden responses rendered to authenticated
// principals.
var AccessDenialsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "access_denials_total",
		Help:      "Total number of authorization denials (403s) served.",
	},
)

// ── Audit pipeline metrics ────────────────────────────────────────────────────

// AuditQueueDepth tracks the current number of audit events waiting in each
// dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// AuditEventsDroppedTotal counts audit events discarded because a worker
// queue was full.
var AuditEventsDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_dropped_total",
		Help:      "Total number of audit events dropped due to a full worker queue.",
	},
)
