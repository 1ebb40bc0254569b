package repository

import (
	"errors"
	"time"

	"github.com/zyra-app/zyra-change-service/internal/domain"
	"github.com/zyra-app/zyra-change-service/internal/infrastructure/postgres/mappers"
	"github.com/zyra-app/zyra-change-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DefaultSettingsRepository struct {
	DB *gorm.DB
}

func NewDefaultSettingsRepository(db *gorm.DB) *DefaultSettingsRepository {
	return &DefaultSettingsRepository{DB: db}
}

func (r *DefaultSettingsRepository) Get(merchantID string) (*domain.AutomationSettings, error) {
	var model models.AutomationSettingsModel
	if err := r.DB.First(&model, "merchant_id = ?", merchantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// First read for a merchant seeds the defaults row.
			model = models.AutomationSettingsModel{
				MerchantID:             merchantID,
				GlobalAutopilotEnabled: true,
				AutopilotEnabled:       false,
				AutopilotMode:          domain.ModeSafe,
				AutoPublishEnabled:     true,
				MaxDailyActions:        10,
				UpdatedAt:              time.Now(),
			}
			if err := r.DB.Create(&model).Error; err != nil {
				return nil, err
			}
			return mappers.ToDomainSettings(&model), nil
		}
		return nil, err
	}

	return mappers.ToDomainSettings(&model), nil
}

func (r *DefaultSettingsRepository) Patch(merchantID string, patch domain.SettingsPatch) (*domain.AutomationSettings, error) {
	if _, err := r.Get(merchantID); err != nil {
		return nil, err
	}

	updates := map[string]any{"updated_at": time.Now()}
	if patch.GlobalAutopilotEnabled != nil {
		updates["global_autopilot_enabled"] = *patch.GlobalAutopilotEnabled
	}
	if patch.AutopilotEnabled != nil {
		updates["autopilot_enabled"] = *patch.AutopilotEnabled
	}
	if patch.AutopilotMode != nil {
		updates["autopilot_mode"] = *patch.AutopilotMode
	}
	if patch.DryRunMode != nil {
		updates["dry_run_mode"] = *patch.DryRunMode
	}
	if patch.AutoPublishEnabled != nil {
		updates["auto_publish_enabled"] = *patch.AutoPublishEnabled
	}
	if patch.MaxDailyActions != nil {
		updates["max_daily_actions"] = *patch.MaxDailyActions
	}

	if err := r.DB.Model(&models.AutomationSettingsModel{}).
		Where("merchant_id = ?", merchantID).
		Updates(updates).Error; err != nil {
		return nil, err
	}

	return r.Get(merchantID)
}

// ReserveDailyAction locks the merchant's counter row for the current UTC day
// and increments it only while below max. Two concurrent reservations serialize
// on the row lock, so the cap cannot be exceeded by a race.
func (r *DefaultSettingsRepository) ReserveDailyAction(merchantID string, max int) error {
	day := time.Now().UTC().Format("2006-01-02")

	return r.DB.Transaction(func(tx *gorm.DB) error {
		var window models.DailyActionWindowModel
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&window, "merchant_id = ? AND day = ?", merchantID, day).Error
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			window = models.DailyActionWindowModel{
				MerchantID: merchantID,
				Day:        day,
				Count:      0,
				UpdatedAt:  time.Now(),
			}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&window).Error; err != nil {
				return err
			}
			// Re-read under lock; a concurrent creator may have won the insert.
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&window, "merchant_id = ? AND day = ?", merchantID, day).Error; err != nil {
				return err
			}
		}

		if window.Count >= max {
			return domain.ErrPolicyDenied
		}

		return tx.Model(&models.DailyActionWindowModel{}).
			Where("merchant_id = ? AND day = ?", merchantID, day).
			Updates(map[string]any{
				"count":      window.Count + 1,
				"updated_at": time.Now(),
			}).Error
	})
}
