// Package metrics defines and registers the custom Prometheus metrics of the
// MerryWeather time clock. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default registry on package init (promauto)
// and exposed on /metrics next to the echoprometheus HTTP metrics. It has no
// dependency on the HTTP layer so the core services can count domain events.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "merryweather"

// ── Session metrics ───────────────────────────────────────────────────────────

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

// LogoutsTotal counts logout requests, including ones for unknown sessions.
var LogoutsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logouts_total",
		Help:      "Total number of logout requests.",
	},
)

// AccessDeniedTotal counts requests rejected by the authorization gate.
// Label:
//   - reason: "unauthenticated" or "forbidden"
var AccessDeniedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "access_denied_total",
		Help:      "Total number of requests rejected by the authorization gate.",
	},
	[]string{"reason"},
)

// ── Record metrics ────────────────────────────────────────────────────────────

// ShiftsRecordedTotal counts clock events.
// Label:
//   - type: "OnDuty" or "OffDuty"
var ShiftsRecordedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "shifts_recorded_total",
		Help:      "Total number of shift records appended, by type.",
	},
	[]string{"type"},
)

// RecordsCreatedTotal counts admin-created records.
// Label:
//   - kind: "user", "rule" or "notice"
var RecordsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "records_created_total",
		Help:      "Total number of records created by administrators, by kind.",
	},
	[]string{"kind"},
)

// SeedRunsTotal counts demo-data seed requests.
// Label:
//   - result: "seeded", "already_seeded" or "error"
var SeedRunsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "seed_runs_total",
		Help:      "Total number of demo-data seed requests, by result.",
	},
	[]string{"result"},
)
