package response

import (
	"time"

	"github.com/zyra-app/zyra-change-service/internal/domain"
)

type SettingsResponse struct {
	MerchantID             string               `json:"merchant_id"`
	GlobalAutopilotEnabled bool                 `json:"global_autopilot_enabled"`
	AutopilotEnabled       bool                 `json:"autopilot_enabled"`
	AutopilotMode          domain.AutopilotMode `json:"autopilot_mode"`
	DryRunMode             bool                 `json:"dry_run_mode"`
	AutoPublishEnabled     bool                 `json:"auto_publish_enabled"`
	MaxDailyActions        int                  `json:"max_daily_actions"`
	UpdatedAt              time.Time            `json:"updated_at"`
}

func FromDomain(settings *domain.AutomationSettings) SettingsResponse {
	return SettingsResponse{
		MerchantID:             settings.MerchantID,
		GlobalAutopilotEnabled: settings.GlobalAutopilotEnabled,
		AutopilotEnabled:       settings.AutopilotEnabled,
		AutopilotMode:          settings.AutopilotMode,
		DryRunMode:             settings.DryRunMode,
		AutoPublishEnabled:     settings.AutoPublishEnabled,
		MaxDailyActions:        settings.MaxDailyActions,
		UpdatedAt:              settings.UpdatedAt,
	}
}
