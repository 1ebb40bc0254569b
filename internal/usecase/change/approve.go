package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/zyra-app/zyra-change-service/internal/domain"
)

// Approve resolves a pending record and hands it to the execution engine. Only
// pending records pass the gate; of two concurrent approvals exactly one wins
// the CAS, the other sees the precondition failure.
func (uc *DefaultChangeUsecase) Approve(ctx context.Context, id string) (*domain.ChangeRecord, error) {
	unlock := uc.lockRecord(id)
	defer unlock()

	record, err := uc.ChangeRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if record.Status != domain.StatusPending {
		return nil, fmt.Errorf("approve requires a pending record, got %s: %w", record.Status, domain.ErrPreconditionFailed)
	}

	op := &ChangeOperation{
		ChangeID:  id,
		Operation: "approve",
		OldStatus: domain.StatusPending,
		NewStatus: domain.StatusRunning,
		CreatedAt: time.Now(),
	}
	if err := uc.ProcessChangeOperation(ctx, record, op); err != nil {
		if errors.Is(err, domain.ErrInvalidTransition) {
			return nil, fmt.Errorf("record is no longer pending: %w", domain.ErrPreconditionFailed)
		}
		return nil, err
	}
	record.Status = domain.StatusRunning

	return uc.executeLocked(ctx, record)
}

// Reject terminates a pending record. No external mutation happens and no
// impact fields are populated; the record stays in history with its reason.
func (uc *DefaultChangeUsecase) Reject(ctx context.Context, id string, reason string) (*domain.ChangeRecord, error) {
	unlock := uc.lockRecord(id)
	defer unlock()

	record, err := uc.ChangeRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if record.Status != domain.StatusPending {
		return nil, fmt.Errorf("reject requires a pending record, got %s: %w", record.Status, domain.ErrPreconditionFailed)
	}

	result := &domain.ExecutionResult{
		Success: false,
		Message: "rejected before execution",
	}
	fields := domain.TransitionFields{Result: result}
	if reason != "" {
		fields.DecisionReason = &reason
	}

	op := &ChangeOperation{
		ChangeID:  id,
		Operation: "reject",
		OldStatus: domain.StatusPending,
		NewStatus: domain.StatusRejected,
		Fields:    fields,
		Reason:    reason,
		CreatedAt: time.Now(),
	}
	if err := uc.ProcessChangeOperation(ctx, record, op); err != nil {
		if errors.Is(err, domain.ErrInvalidTransition) {
			return nil, fmt.Errorf("record is no longer pending: %w", domain.ErrPreconditionFailed)
		}
		return nil, err
	}

	uc.recordChangeRejected(record)

	return uc.ChangeRepo.GetByID(id)
}
