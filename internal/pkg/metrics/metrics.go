// Package metrics defines and registers the custom Prometheus metrics for the
// taskhub API. It is the single source of truth for metric names, labels and
// help strings.
//
// All collectors register with the default registry at package init through
// promauto; the HTTP layer exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "taskhub"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials" or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts registration attempts.
// Label:
//   - result: "created", "exists" or "invalid_role"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_registrations_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
)

// AuthzDecisionsTotal counts gate outcomes on protected routes.
// Label:
//   - outcome: "permitted", "unauthenticated", "invalid_token", "token_expired", "forbidden"
var AuthzDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "authz_decisions_total",
		Help:      "Total number of authorization gate decisions, by outcome.",
	},
	[]string{"outcome"},
)

// ── Todo metrics ──────────────────────────────────────────────────────────────

// TodosCreatedTotal counts newly created todos.
// Label:
//   - priority: "Low", "Medium" or "High"
var TodosCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "todos_created_total",
		Help:      "Total number of todos created, by priority.",
	},
	[]string{"priority"},
)

// AuditQueueDepth tracks the number of audit entries waiting in each worker channel.
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit entries pending in each worker channel.",
	},
	[]string{"worker_id"},
)

// ── Upstream metrics ──────────────────────────────────────────────────────────

// UpstreamRequestDuration measures round trips to third-party services.
// Labels:
//   - upstream: "directory" or "classifier"
//   - code: upstream HTTP status, or "error" on transport failure
var UpstreamRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_request_duration_seconds",
		Help:      "Duration of pass-through calls to third-party services.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"upstream", "code"},
)

// UpstreamCacheTotal counts directory cache lookups.
// Label:
//   - result: "hit" or "miss"
var UpstreamCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_cache_total",
		Help:      "Total number of directory cache lookups, labelled by result (hit/miss).",
	},
	[]string{"result"},
)
