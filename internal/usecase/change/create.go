package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/zyra-app/zyra-change-service/internal/domain"
	publisher "github.com/zyra-app/zyra-change-service/internal/infrastructure/kafka"
	changedto "github.com/zyra-app/zyra-change-service/internal/usecase/dto/change"
)

// CreateChange records a proposal from the decision process. The payload must
// carry the full before snapshot; it is immutable from here on.
func (uc *DefaultChangeUsecase) CreateChange(ctx context.Context, input *changedto.CreateChangeInput) (*domain.ChangeRecord, error) {
	if err := input.Payload.Validate(input.ActionType); err != nil {
		return nil, err
	}
	if input.MerchantID == "" {
		return nil, fmt.Errorf("merchant id is required")
	}

	executedBy := input.ExecutedBy
	if executedBy == "" {
		executedBy = domain.ExecutedByUser
	}

	record := &domain.ChangeRecord{
		MerchantID:      input.MerchantID,
		ActionType:      input.ActionType,
		EntityType:      input.EntityType,
		EntityID:        input.EntityID,
		Status:          domain.StatusPending,
		DecisionReason:  input.DecisionReason,
		Payload:         input.Payload,
		EstimatedImpact: input.EstimatedImpact,
		ExecutedBy:      executedBy,
		DryRun:          input.DryRun,
	}

	// Direct-to-running creation is the autonomous path: the policy gate and
	// the daily cap are consumed up front, before the record exists.
	if input.StartRunning {
		if executedBy != domain.ExecutedByAgent {
			return nil, fmt.Errorf("only agent actions may start running: %w", domain.ErrPolicyDenied)
		}
		settings, err := uc.SettingsRepo.Get(input.MerchantID)
		if err != nil {
			return nil, err
		}
		if reason, ok := autopilotAdmits(settings, record); !ok {
			uc.recordAutopilotDenied(input.MerchantID, reason)
			return nil, fmt.Errorf("%s: %w", reason, domain.ErrPolicyDenied)
		}
		if err := uc.SettingsRepo.ReserveDailyAction(input.MerchantID, settings.MaxDailyActions); err != nil {
			uc.recordAutopilotDenied(input.MerchantID, "daily_cap_reached")
			return nil, err
		}
		record.Status = domain.StatusRunning
	}

	id, err := uc.ChangeRepo.Create(record)
	if err != nil {
		return nil, err
	}
	record.ID = id

	uc.invalidateSummary(ctx, record.MerchantID)
	uc.recordChangeCreated(record)

	if uc.Publisher != nil {
		go func(event publisher.ChangeEvent) {
			if err := uc.Publisher.PublishChange(uc.EventsTopic, event); err != nil {
				slog.Error("failed to publish kafka ChangeEvent", "stage", "creating", "error", err.Error())
			}
		}(publisher.ChangeEvent{
			EventID:    newEventID(),
			ChangeID:   record.ID,
			MerchantID: record.MerchantID,
			ActionType: string(record.ActionType),
			EntityID:   record.EntityID,
			NewStatus:  string(record.Status),
			Reason:     record.DecisionReason,
			OccurredAt: time.Now(),
		})
	}

	// A record born running executes immediately.
	if record.Status == domain.StatusRunning {
		return uc.Execute(ctx, record.ID)
	}

	return record, nil
}
