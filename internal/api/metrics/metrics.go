// Package metrics defines the custom Prometheus collectors shared by the auth
// and event services. HTTP request metrics come from echoprometheus; this
// package only covers identity and enrichment.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "eventhub"

// ── Identity ─────────────────────────────────────────────────────────────────

// TokensIssuedTotal counts signed tokens.
// Label:
//   - reason: "login" or "register"
var TokensIssuedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_issued_total",
		Help:      "Total number of identity tokens issued.",
	},
	[]string{"reason"},
)

// AuthFailuresTotal counts rejected requests at the identity and access layers.
// Label:
//   - reason: the error message, e.g. "invalid-token", "user-role-not-allowed"
var AuthFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Total number of requests rejected by token verification or role checks.",
	},
	[]string{"reason"},
)

// ── Cross-service lookup ─────────────────────────────────────────────────────

// ProfileLookupsTotal counts profile fetches against the auth service.
// Label:
//   - result: "ok", "error", "not_found", "malformed", "cache_hit"
var ProfileLookupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "profile_lookups_total",
		Help:      "Total number of user profile lookups, by result.",
	},
	[]string{"result"},
)

// ProfileLookupDuration measures a single remote profile lookup.
var ProfileLookupDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "profile_lookup_duration_seconds",
		Help:      "Duration of remote user profile lookups.",
		Buckets:   prometheus.DefBuckets,
	},
)
