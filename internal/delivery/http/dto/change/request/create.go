package request

import "github.com/zyra-app/zyra-change-service/internal/domain"

type CreateChangeRequest struct {
	MerchantID      string               `json:"merchant_id" binding:"required"`
	ActionType      domain.ActionType    `json:"action_type" binding:"required"`
	EntityType      string               `json:"entity_type"`
	EntityID        string               `json:"entity_id"`
	DecisionReason  string               `json:"decision_reason"`
	Payload         domain.ChangePayload `json:"payload" binding:"required"`
	EstimatedImpact *domain.Impact       `json:"estimated_impact"`
	ExecutedBy      domain.ExecutedBy    `json:"executed_by"`
	DryRun          bool                 `json:"dry_run"`
	StartRunning    bool                 `json:"start_running"`
}

type RejectChangeRequest struct {
	Reason string `json:"reason"`
}
