package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jaevor/go-nanoid"
	"github.com/zyra-app/zyra-change-service/internal/domain"
	publisher "github.com/zyra-app/zyra-change-service/internal/infrastructure/kafka"
)

// ChangeOperation describes one guarded status transition. Every operation on a
// record funnels through ProcessChangeOperation so the CAS guard, the cache
// invalidation and the event publish happen the same way everywhere.
type ChangeOperation struct {
	ChangeID  string                  `json:"change_id"`
	Operation string                  `json:"operation"` // "approve", "reject", "execute", "rollback"
	OldStatus domain.ChangeStatus     `json:"old_status"`
	NewStatus domain.ChangeStatus     `json:"new_status"`
	Fields    domain.TransitionFields `json:"-"`
	Reason    string                  `json:"reason,omitempty"`
	CreatedAt time.Time               `json:"created_at"`
}

var newEventID, _ = nanoid.Standard(21)

// ProcessChangeOperation commits the transition. The status write is the
// critical part; notifications and cache invalidation follow only after it
// succeeded, so observers never see a state the store does not hold.
func (uc *DefaultChangeUsecase) ProcessChangeOperation(ctx context.Context, record *domain.ChangeRecord, op *ChangeOperation) error {
	if !domain.CanTransition(op.OldStatus, op.NewStatus) {
		return fmt.Errorf("%s -> %s: %w", op.OldStatus, op.NewStatus, domain.ErrInvalidTransition)
	}

	if err := uc.ChangeRepo.TransitionStatus(op.ChangeID, op.OldStatus, op.NewStatus, op.Fields); err != nil {
		return err
	}

	uc.invalidateSummary(ctx, record.MerchantID)
	uc.publishChangeEvent(record, op)

	return nil
}

func (uc *DefaultChangeUsecase) invalidateSummary(ctx context.Context, merchantID string) {
	if uc.Cache == nil {
		return
	}
	if err := uc.Cache.Invalidate(ctx, merchantID); err != nil {
		slog.Error("failed to invalidate summary cache", "merchant_id", merchantID, "error", err.Error())
	}
}

func (uc *DefaultChangeUsecase) publishChangeEvent(record *domain.ChangeRecord, op *ChangeOperation) {
	if uc.Publisher == nil {
		return
	}
	go func(event publisher.ChangeEvent) {
		if err := uc.Publisher.PublishChange(uc.EventsTopic, event); err != nil {
			slog.Error("failed to publish kafka ChangeEvent", "stage", op.Operation, "error", err.Error())
		}
	}(publisher.ChangeEvent{
		EventID:    newEventID(),
		ChangeID:   record.ID,
		MerchantID: record.MerchantID,
		ActionType: string(record.ActionType),
		EntityID:   record.EntityID,
		OldStatus:  string(op.OldStatus),
		NewStatus:  string(op.NewStatus),
		Reason:     op.Reason,
		OccurredAt: time.Now(),
	})
}
