package domain

import "time"

type ChangeStatus string

const (
	StatusPending    ChangeStatus = "pending"
	StatusRunning    ChangeStatus = "running"
	StatusCompleted  ChangeStatus = "completed"
	StatusFailed     ChangeStatus = "failed"
	StatusRejected   ChangeStatus = "rejected"
	StatusRolledBack ChangeStatus = "rolled_back"
	StatusDryRun     ChangeStatus = "dry_run"
)

type ActionType string

const (
	ActionOptimizeSEO      ActionType = "optimize_seo"
	ActionFixProduct       ActionType = "fix_product"
	ActionSendCartRecovery ActionType = "send_cart_recovery"
	ActionRunABTest        ActionType = "run_ab_test"
	ActionAdjustPrice      ActionType = "adjust_price"
	ActionContentRefresh   ActionType = "content_refresh"
	ActionDiscoverability  ActionType = "discoverability"
)

type ExecutedBy string

const (
	ExecutedByUser  ExecutedBy = "user"
	ExecutedByAgent ExecutedBy = "agent"
)

// allowedTransitions is the authoritative edge table of the change lifecycle.
// failed and rejected are terminal; a corrective action is a new record.
var allowedTransitions = map[ChangeStatus][]ChangeStatus{
	StatusPending:   {StatusRunning, StatusRejected},
	StatusRunning:   {StatusCompleted, StatusDryRun, StatusFailed},
	StatusCompleted: {StatusRolledBack},
	StatusDryRun:    {StatusRolledBack},
}

func CanTransition(from, to ChangeStatus) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Rollbackable reports whether a record in this status may be reverted.
func (s ChangeStatus) Rollbackable() bool {
	return s == StatusCompleted || s == StatusDryRun
}

func (s ChangeStatus) Terminal() bool {
	return s == StatusFailed || s == StatusRejected || s == StatusRolledBack
}

// ExecutionResult is populated once a record leaves pending/running.
type ExecutionResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Impact is a projected or measured revenue delta.
type Impact struct {
	Amount     float64 `json:"amount"`
	Currency   string  `json:"currency"`
	Confidence float64 `json:"confidence"`
	Status     string  `json:"status"` // "estimated", "measured"
}

// ChangeSummary is the derived dashboard aggregate: counts are computed from
// the store, never persisted.
type ChangeSummary struct {
	Pending int64 `json:"pending"`
	Applied int64 `json:"applied"`
}

type ChangeRecord struct {
	ID                 string
	MerchantID         string
	ActionType         ActionType
	EntityType         string
	EntityID           string
	Status             ChangeStatus
	DecisionReason     string
	Payload            ChangePayload
	Result             *ExecutionResult
	EstimatedImpact    *Impact
	ActualImpact       *Impact
	ExecutedBy         ExecutedBy
	DryRun             bool
	PublishedToShopify bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
	CompletedAt        *time.Time
	RolledBackAt       *time.Time
}
