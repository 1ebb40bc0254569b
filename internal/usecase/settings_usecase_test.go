package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zyra-app/zyra-change-service/internal/domain"
)

type stubSettingsRepo struct {
	settings domain.AutomationSettings
}

func (r *stubSettingsRepo) Get(merchantID string) (*domain.AutomationSettings, error) {
	copied := r.settings
	copied.MerchantID = merchantID
	return &copied, nil
}

func (r *stubSettingsRepo) Patch(merchantID string, patch domain.SettingsPatch) (*domain.AutomationSettings, error) {
	if patch.AutopilotMode != nil {
		r.settings.AutopilotMode = *patch.AutopilotMode
	}
	if patch.MaxDailyActions != nil {
		r.settings.MaxDailyActions = *patch.MaxDailyActions
	}
	if patch.DryRunMode != nil {
		r.settings.DryRunMode = *patch.DryRunMode
	}
	copied := r.settings
	return &copied, nil
}

func (r *stubSettingsRepo) ReserveDailyAction(merchantID string, max int) error {
	return nil
}

func TestPatchSettingsValidation(t *testing.T) {
	uc := NewDefaultSettingsUsecase(&stubSettingsRepo{})

	negative := -1
	_, err := uc.PatchSettings("merchant-1", domain.SettingsPatch{MaxDailyActions: &negative})
	assert.ErrorIs(t, err, domain.ErrPolicyDenied)

	bogus := domain.AutopilotMode("yolo")
	_, err = uc.PatchSettings("merchant-1", domain.SettingsPatch{AutopilotMode: &bogus})
	assert.ErrorIs(t, err, domain.ErrPolicyDenied)

	mode := domain.ModeAggressive
	maxActions := 25
	settings, err := uc.PatchSettings("merchant-1", domain.SettingsPatch{
		AutopilotMode:   &mode,
		MaxDailyActions: &maxActions,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ModeAggressive, settings.AutopilotMode)
	assert.Equal(t, 25, settings.MaxDailyActions)
}
