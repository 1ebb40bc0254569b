package domain

import "time"

type AutopilotMode string

const (
	ModeSafe       AutopilotMode = "safe"
	ModeBalanced   AutopilotMode = "balanced"
	ModeAggressive AutopilotMode = "aggressive"
)

// AutomationSettings is the per-merchant autopilot configuration. Read by the
// execution engine before every automatic action, mutated only by the user.
type AutomationSettings struct {
	MerchantID             string
	GlobalAutopilotEnabled bool
	AutopilotEnabled       bool
	AutopilotMode          AutopilotMode
	DryRunMode             bool
	AutoPublishEnabled     bool
	MaxDailyActions        int
	UpdatedAt              time.Time
}

// SettingsPatch carries partial updates; nil fields are left unchanged.
type SettingsPatch struct {
	GlobalAutopilotEnabled *bool
	AutopilotEnabled       *bool
	AutopilotMode          *AutopilotMode
	DryRunMode             *bool
	AutoPublishEnabled     *bool
	MaxDailyActions        *int
}

type SettingsRepository interface {
	Get(merchantID string) (*AutomationSettings, error)
	Patch(merchantID string, patch SettingsPatch) (*AutomationSettings, error)

	// ReserveDailyAction atomically checks the merchant's action count for the
	// current UTC day against max and increments it. Returns ErrPolicyDenied
	// when the cap is already reached; the check and the increment happen under
	// one row lock so two concurrent reservations cannot both pass.
	ReserveDailyAction(merchantID string, max int) error
}
