// Package metrics defines and registers all custom Prometheus metrics for the
// blog API. It is the single source of truth for metric names, labels, and
// help strings. Metrics register with the default registry at import time;
// the /metrics endpoint is wired in the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "blog"

// ── Synchronizer metrics ──────────────────────────────────────────────────────

// SyncPropagationsTotal counts cross-aggregate copy propagations that
// completed successfully.
// Label:
//   - operation: "post_create", "post_update", "post_delete", "user_update"
var SyncPropagationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sync_propagations_total",
		Help:      "Total number of successful denormalization propagations.",
	},
	[]string{"operation"},
)

// SyncFailuresTotal counts propagations that failed, including the swallowed
// best-effort ones.
// Labels:
//   - operation: same values as SyncPropagationsTotal
//   - reason: "owner_not_found" or "store_error"
var SyncFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sync_failures_total",
		Help:      "Total number of failed denormalization propagations.",
	},
	[]string{"operation", "reason"},
)

// ── File lifecycle metrics ────────────────────────────────────────────────────

// UploadsTotal counts remote object-store uploads.
// Label:
//   - result: "ok" or "error"
var UploadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "uploads_total",
		Help:      "Total number of object storage uploads, by result.",
	},
	[]string{"result"},
)

// CleanupDeletesTotal counts best-effort local file deletions performed by
// the cleanup workers.
// Label:
//   - result: "ok" or "error"
var CleanupDeletesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cleanup_deletes_total",
		Help:      "Total number of background local file deletions, by result.",
	},
	[]string{"result"},
)

// ── Aggregate metrics ─────────────────────────────────────────────────────────

// PostsCreatedTotal counts newly created posts.
// Label:
//   - with_image: "true" or "false"
var PostsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "posts_created_total",
		Help:      "Total number of posts created, by image presence.",
	},
	[]string{"with_image"},
)
