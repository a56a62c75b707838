// Package metrics holds the service's custom Prometheus collectors. They
// register with the default registry on import; HTTP request metrics come
// from echoprometheus in the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "accounts"

// ── Authentication ────────────────────────────────────────────────────────────

// LoginAttemptsTotal counts login outcomes.
// Label:
//   - result: "success", "invalid_credentials", "inactive", "throttled" or "error"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// AccessDecisionsTotal counts access gate outcomes.
// Labels:
//   - decision: "allow" or "deny"
//   - reason: "inactive", "admin_required" or "" for allows
var AccessDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "access_decisions_total",
		Help:      "Total number of access gate decisions.",
	},
	[]string{"decision", "reason"},
)

// ── Accounts ──────────────────────────────────────────────────────────────────

// UsersCreatedTotal counts new accounts.
// Label:
//   - source: "register" or "admin"
var UsersCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_created_total",
		Help:      "Total number of accounts created, by source.",
	},
	[]string{"source"},
)

// UserLifecycleTotal counts admin lifecycle actions that succeeded.
// Label:
//   - action: "update", "delete", "restore" or "update_self"
var UserLifecycleTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "user_lifecycle_total",
		Help:      "Total number of account lifecycle changes, by action.",
	},
	[]string{"action"},
)
