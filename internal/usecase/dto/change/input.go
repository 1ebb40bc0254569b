package changedto

import "github.com/zyra-app/zyra-change-service/internal/domain"

type CreateChangeInput struct {
	MerchantID      string
	ActionType      domain.ActionType
	EntityType      string
	EntityID        string
	DecisionReason  string
	Payload         domain.ChangePayload
	EstimatedImpact *domain.Impact
	ExecutedBy      domain.ExecutedBy
	DryRun          bool

	// StartRunning requests creation directly in running, bypassing the
	// approval gate. Agent callers only, and only when policy admits.
	StartRunning bool
}
