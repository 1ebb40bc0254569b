package models

import (
	"time"

	"github.com/zyra-app/zyra-change-service/internal/domain"
)

type AutomationSettingsModel struct {
	MerchantID             string               `gorm:"primaryKey"`
	GlobalAutopilotEnabled bool                 `gorm:"default:true"`
	AutopilotEnabled       bool                 `gorm:"default:false"`
	AutopilotMode          domain.AutopilotMode `gorm:"default:safe"`
	DryRunMode             bool                 `gorm:"default:false"`
	AutoPublishEnabled     bool                 `gorm:"default:true"`
	MaxDailyActions        int                  `gorm:"default:10"`
	UpdatedAt              time.Time
}

func (AutomationSettingsModel) TableName() string {
	return "automation_settings"
}

// DailyActionWindowModel counts automatic executions per merchant per UTC day.
// Check-and-increment runs under a row lock, see SettingsRepository.
type DailyActionWindowModel struct {
	MerchantID string `gorm:"primaryKey"`
	Day        string `gorm:"primaryKey"` // YYYY-MM-DD, UTC
	Count      int    `gorm:"not null;default:0"`
	UpdatedAt  time.Time
}

func (DailyActionWindowModel) TableName() string {
	return "daily_action_windows"
}
