// Package metrics defines the custom Prometheus metrics for the admin
// console. It is the single source of truth for metric names, labels, and
// help strings; collectors register with the default registry at init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "inventory_console"

// APIRequestsTotal counts backend calls made through the session manager.
// Labels:
//   - method: the HTTP method used ("GET", "POST", ...)
//   - outcome: "ok", "session_expired", "decode_error", "connectivity",
//     "http_error" or "error"
var APIRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "api_requests_total",
		Help:      "Total number of backend API calls, by method and outcome.",
	},
	[]string{"method", "outcome"},
)

// SessionExpiriesTotal counts forced logouts caused by the backend
// rejecting the stored token.
var SessionExpiriesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_expiries_total",
		Help:      "Total number of sessions terminated by a 401 from the backend.",
	},
)

// OrdersSubmittedTotal counts draft orders accepted by the backend.
var OrdersSubmittedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_submitted_total",
		Help:      "Total number of draft orders successfully submitted.",
	},
)
