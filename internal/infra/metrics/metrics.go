// File: internal/infra/metrics/metrics.go
package metrics

import (
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	updatesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_updates_total",
			Help: "Inbound updates by kind (message/callback/other).",
		},
		[]string{"kind"},
	)

	updatesDropped = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_updates_dropped_total",
			Help: "Updates dropped before dispatch (malformed/rate_limited/unknown_state).",
		},
		[]string{"reason"},
	)

	pollErrors = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "bot_poll_errors_total",
			Help: "Failed getUpdates fetches (each triggers a backoff-and-retry).",
		},
	)

	outboundFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_outbound_failures_total",
			Help: "Swallowed outbound call failures by operation.",
		},
		[]string{"op"},
	)

	subCacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_sub_cache_lookups_total",
			Help: "Subscription-gate cache lookups by outcome (hit/miss).",
		},
		[]string{"outcome"},
	)

	subCacheSweeps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_sub_cache_sweeps_total",
			Help: "Cache overflow sweeps by kind (purge/clear).",
		},
		[]string{"kind"},
	)

	membershipChecks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_membership_checks_total",
			Help: "Membership verification round-trips by verdict (ok/denied/error).",
		},
		[]string{"verdict"},
	)

	broadcastSends = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_broadcast_sends_total",
			Help: "Broadcast deliveries by status (sent/failed).",
		},
		[]string{"status"},
	)
)

// MustRegister registers collectors with the default registry (idempotent).
func MustRegister() {
	once.Do(func() {
		prometheus.MustRegister(
			updatesTotal, updatesDropped, pollErrors,
			outboundFailures,
			subCacheLookups, subCacheSweeps, membershipChecks,
			broadcastSends,
		)
	})
}

func norm(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

func IncUpdate(kind string)           { updatesTotal.WithLabelValues(norm(kind)).Inc() }
func IncDropped(reason string)        { updatesDropped.WithLabelValues(norm(reason)).Inc() }
func IncPollError()                   { pollErrors.Inc() }
func IncOutboundFailure(op string)    { outboundFailures.WithLabelValues(norm(op)).Inc() }
func IncSubCacheHit()                 { subCacheLookups.WithLabelValues("hit").Inc() }
func IncSubCacheMiss()                { subCacheLookups.WithLabelValues("miss").Inc() }
func IncSubCacheSweep(kind string)    { subCacheSweeps.WithLabelValues(norm(kind)).Inc() }
func IncMembershipCheck(verdict string) {
	membershipChecks.WithLabelValues(norm(verdict)).Inc()
}
func IncBroadcastSend(status string) { broadcastSends.WithLabelValues(norm(status)).Inc() }
