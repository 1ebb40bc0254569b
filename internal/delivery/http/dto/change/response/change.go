package response

import (
	"time"

	"github.com/zyra-app/zyra-change-service/internal/domain"
)

type ChangeResponse struct {
	ID                 string                  `json:"id"`
	MerchantID         string                  `json:"merchant_id"`
	ActionType         domain.ActionType       `json:"action_type"`
	EntityType         string                  `json:"entity_type,omitempty"`
	EntityID           string                  `json:"entity_id,omitempty"`
	Status             domain.ChangeStatus     `json:"status"`
	DecisionReason     string                  `json:"decision_reason,omitempty"`
	Payload            domain.ChangePayload    `json:"payload"`
	Result             *domain.ExecutionResult `json:"result,omitempty"`
	EstimatedImpact    *domain.Impact          `json:"estimated_impact,omitempty"`
	ActualImpact       *domain.Impact          `json:"actual_impact,omitempty"`
	ExecutedBy         domain.ExecutedBy       `json:"executed_by"`
	DryRun             bool                    `json:"dry_run"`
	PublishedToShopify bool                    `json:"published_to_shopify"`
	CreatedAt          time.Time               `json:"created_at"`
	CompletedAt        *time.Time              `json:"completed_at,omitempty"`
	RolledBackAt       *time.Time              `json:"rolled_back_at,omitempty"`
}

func FromDomain(record *domain.ChangeRecord) ChangeResponse {
	return ChangeResponse{
		ID:                 record.ID,
		MerchantID:         record.MerchantID,
		ActionType:         record.ActionType,
		EntityType:         record.EntityType,
		EntityID:           record.EntityID,
		Status:             record.Status,
		DecisionReason:     record.DecisionReason,
		Payload:            record.Payload,
		Result:             record.Result,
		EstimatedImpact:    record.EstimatedImpact,
		ActualImpact:       record.ActualImpact,
		ExecutedBy:         record.ExecutedBy,
		DryRun:             record.DryRun,
		PublishedToShopify: record.PublishedToShopify,
		CreatedAt:          record.CreatedAt,
		CompletedAt:        record.CompletedAt,
		RolledBackAt:       record.RolledBackAt,
	}
}

type ListChangesResponse struct {
	Changes []ChangeResponse `json:"changes"`
	Total   int64            `json:"total"`
	Page    int64            `json:"page"`
	Limit   int64            `json:"limit"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
