package usecase

import "github.com/zyra-app/zyra-change-service/internal/domain"

type SettingsUsecase interface {
	GetSettings(merchantID string) (*domain.AutomationSettings, error)
	PatchSettings(merchantID string, patch domain.SettingsPatch) (*domain.AutomationSettings, error)
}

type DefaultSettingsUsecase struct {
	SettingsRepo domain.SettingsRepository
}

func NewDefaultSettingsUsecase(settingsRepo domain.SettingsRepository) *DefaultSettingsUsecase {
	return &DefaultSettingsUsecase{SettingsRepo: settingsRepo}
}

func (uc *DefaultSettingsUsecase) GetSettings(merchantID string) (*domain.AutomationSettings, error) {
	return uc.SettingsRepo.Get(merchantID)
}

func (uc *DefaultSettingsUsecase) PatchSettings(merchantID string, patch domain.SettingsPatch) (*domain.AutomationSettings, error) {
	if patch.MaxDailyActions != nil && *patch.MaxDailyActions < 0 {
		return nil, domain.ErrPolicyDenied
	}
	if patch.AutopilotMode != nil {
		switch *patch.AutopilotMode {
		case domain.ModeSafe, domain.ModeBalanced, domain.ModeAggressive:
		default:
			return nil, domain.ErrPolicyDenied
		}
	}
	return uc.SettingsRepo.Patch(merchantID, patch)
}
