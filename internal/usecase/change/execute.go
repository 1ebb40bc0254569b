package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/zyra-app/zyra-change-service/internal/domain"
)

// Execute applies a running record to the store platform and commits exactly
// one terminal result. The status transition is written only after the external
// call has returned, never optimistically.
func (uc *DefaultChangeUsecase) Execute(ctx context.Context, id string) (*domain.ChangeRecord, error) {
	unlock := uc.lockRecord(id)
	defer unlock()

	record, err := uc.ChangeRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	return uc.executeLocked(ctx, record)
}

// executeLocked assumes the per-record lock is held by the caller.
func (uc *DefaultChangeUsecase) executeLocked(ctx context.Context, record *domain.ChangeRecord) (*domain.ChangeRecord, error) {
	if record.Status != domain.StatusRunning {
		return nil, fmt.Errorf("execute requires a running record, got %s: %w", record.Status, domain.ErrPreconditionFailed)
	}

	settings, err := uc.SettingsRepo.Get(record.MerchantID)
	if err != nil {
		return nil, err
	}

	dryRun := settings.DryRunMode || record.DryRun
	startTime := time.Now()

	if dryRun {
		return uc.commitDryRun(ctx, record, startTime)
	}

	after := record.Payload.AfterContent(record.ActionType)
	if after == nil {
		return nil, domain.ErrInvalidPayload
	}

	// Not cancellable past this point: the store may already hold a partial
	// change, so we wait for a definitive answer and record one terminal state.
	applyErr := uc.StorePlatform.ApplyContent(ctx, record.EntityType, record.EntityID, after)
	uc.observeExecutionDuration(record, false, time.Since(startTime))

	if applyErr != nil {
		return uc.commitFailed(ctx, record, applyErr)
	}

	completedAt := time.Now()
	published := true
	op := &ChangeOperation{
		ChangeID:  record.ID,
		Operation: "execute",
		OldStatus: domain.StatusRunning,
		NewStatus: domain.StatusCompleted,
		Fields: domain.TransitionFields{
			Result: &domain.ExecutionResult{
				Success: true,
				Message: "change applied to live store",
			},
			PublishedToShopify: &published,
			CompletedAt:        &completedAt,
		},
		CreatedAt: completedAt,
	}
	if err := uc.ProcessChangeOperation(ctx, record, op); err != nil {
		return nil, err
	}

	uc.recordChangeCompleted(record)

	return uc.ChangeRepo.GetByID(record.ID)
}

func (uc *DefaultChangeUsecase) commitDryRun(ctx context.Context, record *domain.ChangeRecord, startTime time.Time) (*domain.ChangeRecord, error) {
	uc.observeExecutionDuration(record, true, time.Since(startTime))

	completedAt := time.Now()
	dryRun := true
	op := &ChangeOperation{
		ChangeID:  record.ID,
		Operation: "execute",
		OldStatus: domain.StatusRunning,
		NewStatus: domain.StatusDryRun,
		Fields: domain.TransitionFields{
			Result: &domain.ExecutionResult{
				Success: true,
				Message: "dry run: mutation simulated, live store untouched",
			},
			DryRun:      &dryRun,
			CompletedAt: &completedAt,
		},
		CreatedAt: completedAt,
	}
	if err := uc.ProcessChangeOperation(ctx, record, op); err != nil {
		return nil, err
	}

	uc.recordChangeDryRun(record)

	return uc.ChangeRepo.GetByID(record.ID)
}

// commitFailed records the terminal failure. No automatic retry: a retry is a
// fresh decision upstream and a brand-new record.
func (uc *DefaultChangeUsecase) commitFailed(ctx context.Context, record *domain.ChangeRecord, applyErr error) (*domain.ChangeRecord, error) {
	op := &ChangeOperation{
		ChangeID:  record.ID,
		Operation: "execute",
		OldStatus: domain.StatusRunning,
		NewStatus: domain.StatusFailed,
		Fields: domain.TransitionFields{
			Result: &domain.ExecutionResult{
				Success: false,
				Error:   applyErr.Error(),
			},
		},
		Reason:    applyErr.Error(),
		CreatedAt: time.Now(),
	}
	if err := uc.ProcessChangeOperation(ctx, record, op); err != nil {
		return nil, err
	}

	uc.recordChangeFailed(record)

	return nil, fmt.Errorf("%w: %s", domain.ErrExternalMutation, applyErr.Error())
}
