// Package metrics defines and registers all custom Prometheus metrics for the
// time clock API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default Prometheus registry through promauto
// when the package is loaded; /metrics exposes them next to the HTTP metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "timeclock"

// Label values shared by the counters below.
const (
	ActionClockIn  = "clock_in"
	ActionClockOut = "clock_out"

	ResultOK       = "ok"
	ResultConflict = "conflict"
	ResultError    = "error"
	ResultDropped  = "dropped"
)

// ── Session ledger ────────────────────────────────────────────────────────────

// ClockEventsTotal counts clock-in and clock-out attempts.
// Labels:
//   - action: "clock_in" or "clock_out"
//   - result: "ok", "conflict" (invariant rejected the request) or "error"
var ClockEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "clock_events_total",
		Help:      "Total number of clock-in/clock-out requests, by outcome.",
	},
	[]string{"action", "result"},
)

// ── Reports ───────────────────────────────────────────────────────────────────

// ReportsGeneratedTotal counts reports served.
// Label:
//   - format: "json", "xlsx" or "docx"
var ReportsGeneratedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reports_generated_total",
		Help:      "Total number of monthly reports generated, by format.",
	},
	[]string{"format"},
)

// ReportBuildDuration measures fetch + aggregation + rendering of a report.
var ReportBuildDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "report_build_duration_seconds",
		Help:      "Duration of monthly report generation.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"format"},
)

// ── Mail ──────────────────────────────────────────────────────────────────────

// MailQueueDepth is the number of emails waiting for a dispatcher worker.
var MailQueueDepth = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "mail_queue_depth",
		Help:      "Current number of emails pending in the mail dispatcher.",
	},
)

// MailDeliveryTotal counts delivery attempts.
// Label:
//   - result: "ok", "error", or "dropped" (queue full or shutting down)
var MailDeliveryTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "mail_delivery_total",
		Help:      "Total number of email deliveries, by result.",
	},
	[]string{"result"},
)
