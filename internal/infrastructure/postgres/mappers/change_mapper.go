package mappers

import (
	"encoding/json"

	"github.com/zyra-app/zyra-change-service/internal/domain"
	"github.com/zyra-app/zyra-change-service/internal/infrastructure/postgres/models"
)

func ToGORMChange(record *domain.ChangeRecord) (*models.ChangeRecordModel, error) {
	payload, err := json.Marshal(record.Payload)
	if err != nil {
		return nil, err
	}

	model := &models.ChangeRecordModel{
		ID:                 record.ID,
		MerchantID:         record.MerchantID,
		ActionType:         record.ActionType,
		EntityType:         record.EntityType,
		EntityID:           record.EntityID,
		Status:             record.Status,
		DecisionReason:     record.DecisionReason,
		Payload:            string(payload),
		ExecutedBy:         record.ExecutedBy,
		DryRun:             record.DryRun,
		PublishedToShopify: record.PublishedToShopify,
		CreatedAt:          record.CreatedAt,
		UpdatedAt:          record.UpdatedAt,
		CompletedAt:        record.CompletedAt,
		RolledBackAt:       record.RolledBackAt,
	}

	if record.Result != nil {
		result, err := json.Marshal(record.Result)
		if err != nil {
			return nil, err
		}
		model.Result = string(result)
	}
	if record.EstimatedImpact != nil {
		impact, err := json.Marshal(record.EstimatedImpact)
		if err != nil {
			return nil, err
		}
		model.EstimatedImpact = string(impact)
	}
	if record.ActualImpact != nil {
		impact, err := json.Marshal(record.ActualImpact)
		if err != nil {
			return nil, err
		}
		model.ActualImpact = string(impact)
	}

	return model, nil
}

func ToDomainChange(model *models.ChangeRecordModel) (*domain.ChangeRecord, error) {
	record := &domain.ChangeRecord{
		ID:                 model.ID,
		MerchantID:         model.MerchantID,
		ActionType:         model.ActionType,
		EntityType:         model.EntityType,
		EntityID:           model.EntityID,
		Status:             model.Status,
		DecisionReason:     model.DecisionReason,
		ExecutedBy:         model.ExecutedBy,
		DryRun:             model.DryRun,
		PublishedToShopify: model.PublishedToShopify,
		CreatedAt:          model.CreatedAt,
		UpdatedAt:          model.UpdatedAt,
		CompletedAt:        model.CompletedAt,
		RolledBackAt:       model.RolledBackAt,
	}

	if err := json.Unmarshal([]byte(model.Payload), &record.Payload); err != nil {
		return nil, err
	}
	if model.Result != "" {
		record.Result = &domain.ExecutionResult{}
		if err := json.Unmarshal([]byte(model.Result), record.Result); err != nil {
			return nil, err
		}
	}
	if model.EstimatedImpact != "" {
		record.EstimatedImpact = &domain.Impact{}
		if err := json.Unmarshal([]byte(model.EstimatedImpact), record.EstimatedImpact); err != nil {
			return nil, err
		}
	}
	if model.ActualImpact != "" {
		record.ActualImpact = &domain.Impact{}
		if err := json.Unmarshal([]byte(model.ActualImpact), record.ActualImpact); err != nil {
			return nil, err
		}
	}

	return record, nil
}

func ToDomainSettings(model *models.AutomationSettingsModel) *domain.AutomationSettings {
	return &domain.AutomationSettings{
		MerchantID:             model.MerchantID,
		GlobalAutopilotEnabled: model.GlobalAutopilotEnabled,
		AutopilotEnabled:       model.AutopilotEnabled,
		AutopilotMode:          model.AutopilotMode,
		DryRunMode:             model.DryRunMode,
		AutoPublishEnabled:     model.AutoPublishEnabled,
		MaxDailyActions:        model.MaxDailyActions,
		UpdatedAt:              model.UpdatedAt,
	}
}
