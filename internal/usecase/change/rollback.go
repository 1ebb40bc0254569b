package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/zyra-app/zyra-change-service/internal/domain"
	changedto "github.com/zyra-app/zyra-change-service/internal/usecase/dto/change"
)

// Rollback reverts a completed or dry-run record to its stored before
// snapshot. Atomic per record: the status flips only after the store platform
// accepted the reapplication; on failure the record is left untouched.
func (uc *DefaultChangeUsecase) Rollback(ctx context.Context, id string) (*domain.ChangeRecord, error) {
	unlock := uc.lockRecord(id)
	defer unlock()

	record, err := uc.ChangeRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if !record.Status.Rollbackable() {
		return nil, fmt.Errorf("status %s: %w", record.Status, domain.ErrNotRollbackable)
	}

	// A dry run never touched the live store, so there is nothing to reapply;
	// only the status marker flips.
	if record.Status == domain.StatusCompleted {
		before := record.Payload.BeforeContent(record.ActionType)
		if before == nil {
			return nil, domain.ErrInvalidPayload
		}

		startTime := time.Now()
		applyErr := uc.StorePlatform.ApplyContent(ctx, record.EntityType, record.EntityID, before)
		uc.observeRollbackDuration(record, time.Since(startTime))

		if applyErr != nil {
			uc.recordRollbackFailed(record)
			return nil, fmt.Errorf("%w: %s", domain.ErrExternalMutation, applyErr.Error())
		}
	}

	rolledBackAt := time.Now()
	op := &ChangeOperation{
		ChangeID:  record.ID,
		Operation: "rollback",
		OldStatus: record.Status,
		NewStatus: domain.StatusRolledBack,
		Fields: domain.TransitionFields{
			RolledBackAt: &rolledBackAt,
		},
		CreatedAt: rolledBackAt,
	}
	if err := uc.ProcessChangeOperation(ctx, record, op); err != nil {
		return nil, err
	}

	uc.recordChangeRolledBack(record)

	return uc.ChangeRepo.GetByID(record.ID)
}

// RollbackAll reverts every currently rollbackable record for the merchant,
// sequentially. Items are independent: one failure is reported and the batch
// moves on.
func (uc *DefaultChangeUsecase) RollbackAll(ctx context.Context, merchantID string) (*changedto.BulkRollbackOutput, error) {
	records, err := uc.ChangeRepo.ListRollbackable(merchantID)
	if err != nil {
		return nil, err
	}

	output := &changedto.BulkRollbackOutput{}
	for _, record := range records {
		if _, err := uc.Rollback(ctx, record.ID); err != nil {
			slog.Error("bulk rollback item failed", "change_id", record.ID, "error", err.Error())
			output.Failed++
			output.Failures = append(output.Failures, changedto.ItemFailure{
				ChangeID: record.ID,
				Error:    err.Error(),
			})
			continue
		}
		output.RolledBack++
	}

	return output, nil
}
