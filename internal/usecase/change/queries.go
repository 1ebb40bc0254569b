package usecase

import (
	"context"
	"log/slog"

	"github.com/zyra-app/zyra-change-service/internal/domain"
)

func (uc *DefaultChangeUsecase) GetChangeByID(id string) (*domain.ChangeRecord, error) {
	return uc.ChangeRepo.GetByID(id)
}

func (uc *DefaultChangeUsecase) ListChanges(filter domain.ChangeFilter, page, limit int64) ([]*domain.ChangeRecord, int64, error) {
	return uc.ChangeRepo.List(filter, page, limit)
}

// Summary serves the dashboard counters, cache first. Pending counts records
// awaiting the gate; applied counts everything live on the store.
func (uc *DefaultChangeUsecase) Summary(ctx context.Context, merchantID string) (*domain.ChangeSummary, error) {
	if uc.Cache != nil {
		cached, err := uc.Cache.Get(ctx, merchantID)
		if err != nil {
			slog.Error("summary cache read failed", "merchant_id", merchantID, "error", err.Error())
		} else if cached != nil {
			return cached, nil
		}
	}

	pending, err := uc.ChangeRepo.CountByStatuses(merchantID, []domain.ChangeStatus{domain.StatusPending})
	if err != nil {
		return nil, err
	}
	applied, err := uc.ChangeRepo.CountByStatuses(merchantID, []domain.ChangeStatus{domain.StatusCompleted, domain.StatusDryRun})
	if err != nil {
		return nil, err
	}

	summary := &domain.ChangeSummary{Pending: pending, Applied: applied}

	uc.setPendingGauge(merchantID, pending)

	if uc.Cache != nil {
		if err := uc.Cache.Set(ctx, merchantID, *summary); err != nil {
			slog.Error("summary cache write failed", "merchant_id", merchantID, "error", err.Error())
		}
	}

	return summary, nil
}

// ApplyMeasurement stores the measured impact delivered by the analytics
// process. Status and payload stay untouched.
func (uc *DefaultChangeUsecase) ApplyMeasurement(id string, impact domain.Impact) error {
	impact.Status = "measured"
	return uc.ChangeRepo.SetActualImpact(id, impact)
}
