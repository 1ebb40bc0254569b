package publisher

import "time"

// ChangeEvent is the fire-and-forget notification published on every status
// transition. Consumers (notification system, dashboards) are out of scope.
type ChangeEvent struct {
	EventID    string    `json:"event_id"`
	ChangeID   string    `json:"change_id"`
	MerchantID string    `json:"merchant_id"`
	ActionType string    `json:"action_type"`
	EntityID   string    `json:"entity_id,omitempty"`
	OldStatus  string    `json:"old_status"`
	NewStatus  string    `json:"new_status"`
	Reason     string    `json:"reason,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// ImpactMeasurement is produced by the analytics process once the real effect
// of an applied change has been measured.
type ImpactMeasurement struct {
	ChangeID   string  `json:"change_id"`
	Amount     float64 `json:"amount"`
	Currency   string  `json:"currency"`
	Confidence float64 `json:"confidence"`
	MeasuredAt int64   `json:"measured_at"`
}
