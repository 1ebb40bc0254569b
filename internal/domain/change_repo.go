package domain

import "time"

// ChangeFilter narrows List results for the dashboard.
type ChangeFilter struct {
	MerchantID string
	Statuses   []ChangeStatus
	ActionType ActionType
	EntityType string
	EntityID   string
	ExecutedBy ExecutedBy
	DateFrom   time.Time
	DateTo     time.Time
}

// TransitionFields are the columns written together with a status flip. Nil
// pointers leave the stored value untouched; Payload is never writable here.
type TransitionFields struct {
	Result             *ExecutionResult
	DecisionReason     *string
	PublishedToShopify *bool
	DryRun             *bool
	CompletedAt        *time.Time
	RolledBackAt       *time.Time
}

type ChangeRepository interface {
	Create(record *ChangeRecord) (string, error)
	GetByID(id string) (*ChangeRecord, error)
	List(filter ChangeFilter, page, limit int64) ([]*ChangeRecord, int64, error)

	// TransitionStatus flips status from -> to atomically: the write succeeds
	// only if the stored status still equals from. Returns ErrNotFound for an
	// unknown id and ErrInvalidTransition when the guard does not match.
	TransitionStatus(id string, from, to ChangeStatus, fields TransitionFields) error

	ListRollbackable(merchantID string) ([]*ChangeRecord, error)
	FindAutopilotCandidates(merchantID string, limit int) ([]*ChangeRecord, error)
	FindExpiredPending(olderThan time.Time) ([]*ChangeRecord, error)
	SetActualImpact(id string, impact Impact) error
	CountByStatuses(merchantID string, statuses []ChangeStatus) (int64, error)
}
