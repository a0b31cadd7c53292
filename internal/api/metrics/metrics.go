// Package metrics defines and registers all custom Prometheus metrics for the
// ordering API. It is the single source of truth for metric names, labels,
// and help strings. Collectors are registered with the default registry via
// promauto at package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "ordering"

// OrdersCreatedTotal counts orders that passed price verification and were
// persisted.
var OrdersCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_created_total",
		Help:      "Total number of orders successfully created.",
	},
)

// OrdersRejectedTotal counts order submissions rejected before persistence.
// Label:
//   - reason: "empty_order", "invalid_quantity", "unknown_item", "total_mismatch"
var OrdersRejectedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_rejected_total",
		Help:      "Total number of order submissions rejected by verification.",
	},
	[]string{"reason"},
)

// AuthFailuresTotal counts rejected requests at the auth middleware.
// Label:
//   - reason: "missing_token", "expired_token", "invalid_token"
var AuthFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Total number of requests rejected by authentication.",
	},
	[]string{"reason"},
)

// MenuCacheTotal counts menu cache lookups.
// Label:
//   - result: "hit" or "miss"
var MenuCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "menu_cache_total",
		Help:      "Total number of menu cache lookups by result.",
	},
	[]string{"result"},
)
