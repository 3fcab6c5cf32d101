// Package metrics defines the storefront's custom Prometheus metrics. HTTP
// request metrics come from the echoprometheus middleware; the counters here
// cover what the middleware cannot see.
//
// All metrics register with the default Prometheus registry on import.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "bookstore"

// ── Account metrics ──────────────────────────────────────────────────────────

// UsersRegisteredTotal counts successful registrations.
var UsersRegisteredTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_registered_total",
		Help:      "Total number of accounts created.",
	},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials" or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ── Order metrics ────────────────────────────────────────────────────────────

var OrdersPlacedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_placed_total",
		Help:      "Total number of orders placed.",
	},
)

// ── Catalog provider metrics ─────────────────────────────────────────────────

// CatalogRequestsTotal counts calls to the book metadata provider.
// Labels:
//   - operation: "fetch", "lookup" or "search"
//   - result: "ok", "not_found" or "error"
var CatalogRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "catalog_requests_total",
		Help:      "Total number of catalog provider requests, by operation and result.",
	},
	[]string{"operation", "result"},
)

var CatalogRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "catalog_request_duration_seconds",
		Help:      "Latency of catalog provider requests.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"operation"},
)

// ObserveCatalog records one provider call.
func ObserveCatalog(operation, result string, started time.Time) {
	CatalogRequestsTotal.WithLabelValues(operation, result).Inc()
	CatalogRequestDuration.WithLabelValues(operation).Observe(time.Since(started).Seconds())
}
