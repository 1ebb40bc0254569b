package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/zyra-app/zyra-change-service/internal/domain"
)

// RunAutopilotPass picks up agent-created pending records and executes the
// ones policy admits. The tier gate and the daily-cap reservation both happen
// while the record is still pending, so a denied record simply stays in the
// approval queue.
func (uc *DefaultChangeUsecase) RunAutopilotPass(ctx context.Context, merchantID string) error {
	settings, err := uc.SettingsRepo.Get(merchantID)
	if err != nil {
		return err
	}

	if !settings.GlobalAutopilotEnabled || !settings.AutopilotEnabled {
		return nil
	}

	batch := uc.AutopilotBatch
	if batch <= 0 {
		batch = 20
	}
	candidates, err := uc.ChangeRepo.FindAutopilotCandidates(merchantID, batch)
	if err != nil {
		return fmt.Errorf("failed to find autopilot candidates: %w", err)
	}

	for _, record := range candidates {
		if reason, ok := autopilotAdmits(settings, record); !ok {
			uc.recordAutopilotDenied(merchantID, reason)
			continue
		}

		if err := uc.SettingsRepo.ReserveDailyAction(merchantID, settings.MaxDailyActions); err != nil {
			if errors.Is(err, domain.ErrPolicyDenied) {
				uc.recordAutopilotDenied(merchantID, "daily_cap_reached")
				// Cap exhausted for the day, no point trying the rest.
				return nil
			}
			return err
		}

		if err := uc.autopilotExecute(ctx, record); err != nil {
			slog.Error("autopilot execution failed", "change_id", record.ID, "error", err.Error())
			continue
		}

		uc.recordAutopilotExecuted(record)
	}

	return nil
}

func (uc *DefaultChangeUsecase) autopilotExecute(ctx context.Context, record *domain.ChangeRecord) error {
	unlock := uc.lockRecord(record.ID)
	defer unlock()

	op := &ChangeOperation{
		ChangeID:  record.ID,
		Operation: "approve",
		OldStatus: domain.StatusPending,
		NewStatus: domain.StatusRunning,
		CreatedAt: time.Now(),
	}
	if err := uc.ProcessChangeOperation(ctx, record, op); err != nil {
		return err
	}
	record.Status = domain.StatusRunning

	_, err := uc.executeLocked(ctx, record)
	return err
}

// ExpireStalePending rejects pending records older than the TTL so the
// approval queue does not accumulate proposals nobody acts on.
func (uc *DefaultChangeUsecase) ExpireStalePending(ctx context.Context, olderThanHours int) error {
	cutoff := time.Now().Add(-time.Duration(olderThanHours) * time.Hour)
	records, err := uc.ChangeRepo.FindExpiredPending(cutoff)
	if err != nil {
		return err
	}

	for _, record := range records {
		if _, err := uc.Reject(ctx, record.ID, "expired: no approval decision within TTL"); err != nil {
			slog.Error("failed to expire pending change", "change_id", record.ID, "error", err.Error())
		}
	}

	return nil
}
