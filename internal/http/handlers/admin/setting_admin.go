package admin

import (
	"strings"

	"github.com/storefront-next/internal/constants"
	"github.com/storefront-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

var allowedSettingKeys = map[string]bool{
	constants.SettingKeySiteConfig:     true,
	constants.SettingKeyOrderConfig:    true,
	constants.SettingKeyShippingConfig: true,
	constants.SettingKeyPointsConfig:   true,
}

// GetAdminSetting 获取设置项 (Admin)
func (h *Handler) GetAdminSetting(c *gin.Context) {
	key := strings.TrimSpace(c.Param("key"))
	if !allowedSettingKeys[key] {
		respondError(c, response.CodeBadRequest, "error.setting_invalid", nil)
		return
	}
	value, err := h.SettingService.GetByKey(key)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, gin.H{"key": key, "value": value})
}

// UpdateAdminSetting 更新设置项 (Admin)
func (h *Handler) UpdateAdminSetting(c *gin.Context) {
	key := strings.TrimSpace(c.Param("key"))
	if !allowedSettingKeys[key] {
		respondError(c, response.CodeBadRequest, "error.setting_invalid", nil)
		return
	}
	var value map[string]interface{}
	if err := c.ShouldBindJSON(&value); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	updated, err := h.SettingService.Update(key, value)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	requestLog(c).Infow("setting_updated", "key", key)
	response.Success(c, gin.H{"key": key, "value": updated})
}
