package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	settingsRequest "github.com/zyra-app/zyra-change-service/internal/delivery/http/dto/settings/request"
	settingsResponse "github.com/zyra-app/zyra-change-service/internal/delivery/http/dto/settings/response"
	"github.com/zyra-app/zyra-change-service/internal/domain"
	"github.com/zyra-app/zyra-change-service/internal/usecase"
)

type SettingsHandler struct {
	SettingsUsecase usecase.SettingsUsecase
}

func NewSettingsHandler(settingsUsecase usecase.SettingsUsecase) *SettingsHandler {
	return &SettingsHandler{SettingsUsecase: settingsUsecase}
}

// GET /api/automation/settings
func (h *SettingsHandler) Get(c *gin.Context) {
	merchantID := c.Query("merchant_id")
	if merchantID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "merchant_id is required"})
		return
	}

	settings, err := h.SettingsUsecase.GetSettings(merchantID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, settingsResponse.FromDomain(settings))
}

// PATCH /api/automation/settings
func (h *SettingsHandler) Patch(c *gin.Context) {
	merchantID := c.Query("merchant_id")
	if merchantID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "merchant_id is required"})
		return
	}

	var req settingsRequest.PatchSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	settings, err := h.SettingsUsecase.PatchSettings(merchantID, domain.SettingsPatch{
		GlobalAutopilotEnabled: req.GlobalAutopilotEnabled,
		AutopilotEnabled:       req.AutopilotEnabled,
		AutopilotMode:          req.AutopilotMode,
		DryRunMode:             req.DryRunMode,
		AutoPublishEnabled:     req.AutoPublishEnabled,
		MaxDailyActions:        req.MaxDailyActions,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, settingsResponse.FromDomain(settings))
}
