package usecase

import (
	"strconv"
	"time"

	"github.com/zyra-app/zyra-change-service/internal/domain"
)

// Metrics helpers tolerate a nil metrics struct so unit tests can run without
// a registry.

func (uc *DefaultChangeUsecase) recordChangeCreated(record *domain.ChangeRecord) {
	if uc.Metrics == nil {
		return
	}
	uc.Metrics.ChangesCreatedTotal.WithLabelValues(
		record.MerchantID, string(record.ActionType), string(record.ExecutedBy),
	).Inc()
}

func (uc *DefaultChangeUsecase) recordChangeCompleted(record *domain.ChangeRecord) {
	if uc.Metrics == nil {
		return
	}
	uc.Metrics.ChangesCompletedTotal.WithLabelValues(record.MerchantID, string(record.ActionType)).Inc()
}

func (uc *DefaultChangeUsecase) recordChangeDryRun(record *domain.ChangeRecord) {
	if uc.Metrics == nil {
		return
	}
	uc.Metrics.ChangesDryRunTotal.WithLabelValues(record.MerchantID, string(record.ActionType)).Inc()
}

func (uc *DefaultChangeUsecase) recordChangeFailed(record *domain.ChangeRecord) {
	if uc.Metrics == nil {
		return
	}
	uc.Metrics.ChangesFailedTotal.WithLabelValues(record.MerchantID, string(record.ActionType)).Inc()
}

func (uc *DefaultChangeUsecase) recordChangeRejected(record *domain.ChangeRecord) {
	if uc.Metrics == nil {
		return
	}
	uc.Metrics.ChangesRejectedTotal.WithLabelValues(record.MerchantID, string(record.ActionType)).Inc()
}

func (uc *DefaultChangeUsecase) recordChangeRolledBack(record *domain.ChangeRecord) {
	if uc.Metrics == nil {
		return
	}
	uc.Metrics.ChangesRolledBackTotal.WithLabelValues(record.MerchantID, string(record.ActionType)).Inc()
}

func (uc *DefaultChangeUsecase) recordRollbackFailed(record *domain.ChangeRecord) {
	if uc.Metrics == nil {
		return
	}
	uc.Metrics.RollbackFailuresTotal.WithLabelValues(record.MerchantID, string(record.ActionType)).Inc()
}

func (uc *DefaultChangeUsecase) recordAutopilotExecuted(record *domain.ChangeRecord) {
	if uc.Metrics == nil {
		return
	}
	uc.Metrics.AutopilotExecutedTotal.WithLabelValues(record.MerchantID, string(record.ActionType)).Inc()
}

func (uc *DefaultChangeUsecase) recordAutopilotDenied(merchantID, reason string) {
	if uc.Metrics == nil {
		return
	}
	uc.Metrics.AutopilotDeniedTotal.WithLabelValues(merchantID, reason).Inc()
}

func (uc *DefaultChangeUsecase) observeExecutionDuration(record *domain.ChangeRecord, dryRun bool, elapsed time.Duration) {
	if uc.Metrics == nil {
		return
	}
	uc.Metrics.ExecutionDuration.WithLabelValues(
		string(record.ActionType), strconv.FormatBool(dryRun),
	).Observe(elapsed.Seconds())
}

func (uc *DefaultChangeUsecase) observeRollbackDuration(record *domain.ChangeRecord, elapsed time.Duration) {
	if uc.Metrics == nil {
		return
	}
	uc.Metrics.RollbackDuration.WithLabelValues(string(record.ActionType)).Observe(elapsed.Seconds())
}

func (uc *DefaultChangeUsecase) setPendingGauge(merchantID string, pending int64) {
	if uc.Metrics == nil {
		return
	}
	uc.Metrics.PendingChangesGauge.WithLabelValues(merchantID).Set(float64(pending))
}
