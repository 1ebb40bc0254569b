package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ChangeMetrics covers the change lifecycle: creation, terminal outcomes,
// rollbacks and autopilot policy decisions.
type ChangeMetrics struct {
	ChangesCreatedTotal    prometheus.CounterVec
	ChangesCompletedTotal  prometheus.CounterVec
	ChangesDryRunTotal     prometheus.CounterVec
	ChangesFailedTotal     prometheus.CounterVec
	ChangesRejectedTotal   prometheus.CounterVec
	ChangesRolledBackTotal prometheus.CounterVec

	RollbackFailuresTotal prometheus.CounterVec

	AutopilotExecutedTotal prometheus.CounterVec
	AutopilotDeniedTotal   prometheus.CounterVec

	ExecutionDuration prometheus.HistogramVec
	RollbackDuration  prometheus.HistogramVec

	PendingChangesGauge prometheus.GaugeVec
}

func NewChangeMetrics() *ChangeMetrics {
	return &ChangeMetrics{
		ChangesCreatedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "changes_created_total",
				Help: "Total change records created",
			},
			[]string{"merchant_id", "action_type", "executed_by"},
		),

		ChangesCompletedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "changes_completed_total",
				Help: "Total change records applied to the live store",
			},
			[]string{"merchant_id", "action_type"},
		),

		ChangesDryRunTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "changes_dry_run_total",
				Help: "Total change records executed in dry-run mode",
			},
			[]string{"merchant_id", "action_type"},
		),

		ChangesFailedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "changes_failed_total",
				Help: "Total change records that failed during execution",
			},
			[]string{"merchant_id", "action_type"},
		),

		ChangesRejectedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "changes_rejected_total",
				Help: "Total change records rejected before execution",
			},
			[]string{"merchant_id", "action_type"},
		),

		ChangesRolledBackTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "changes_rolled_back_total",
				Help: "Total change records reverted to their prior snapshot",
			},
			[]string{"merchant_id", "action_type"},
		),

		RollbackFailuresTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rollback_failures_total",
				Help: "Total rollback attempts that failed on the store platform call",
			},
			[]string{"merchant_id", "action_type"},
		),

		AutopilotExecutedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "autopilot_executed_total",
				Help: "Total changes executed unattended by the autopilot loop",
			},
			[]string{"merchant_id", "action_type"},
		),

		AutopilotDeniedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "autopilot_denied_total",
				Help: "Total autopilot executions denied by policy",
			},
			[]string{"merchant_id", "reason"},
		),

		ExecutionDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "change_execution_duration_seconds",
				Help:    "Time spent applying a change to the store platform",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"action_type", "dry_run"},
		),

		RollbackDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "change_rollback_duration_seconds",
				Help:    "Time spent reverting a change on the store platform",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"action_type"},
		),

		PendingChangesGauge: *promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "pending_changes_count",
				Help: "Current number of change records awaiting approval",
			},
			[]string{"merchant_id"},
		),
	}
}
