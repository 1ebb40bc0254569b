package request

import "github.com/zyra-app/zyra-change-service/internal/domain"

type PatchSettingsRequest struct {
	GlobalAutopilotEnabled *bool                 `json:"global_autopilot_enabled"`
	AutopilotEnabled       *bool                 `json:"autopilot_enabled"`
	AutopilotMode          *domain.AutopilotMode `json:"autopilot_mode"`
	DryRunMode             *bool                 `json:"dry_run_mode"`
	AutoPublishEnabled     *bool                 `json:"auto_publish_enabled"`
	MaxDailyActions        *int                  `json:"max_daily_actions"`
}
