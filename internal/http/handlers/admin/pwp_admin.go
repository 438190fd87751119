package admin

import (
	"strconv"
	"time"

	"github.com/storefront-next/internal/http/response"
	"github.com/storefront-next/internal/models"
	"github.com/storefront-next/internal/repository"

	"github.com/gin-gonic/gin"
)

// PwpRuleRequest 加购规则保存请求
type PwpRuleRequest struct {
	ID               uint         `json:"id"`
	Name             string       `json:"name" binding:"required"`
	TriggerType      string       `json:"trigger_type" binding:"required,oneof=cart_value product"`
	TriggerAmount    models.Money `json:"trigger_amount"`
	TriggerProductID *uint        `json:"trigger_product_id"`
	RewardVariantID  uint         `json:"reward_variant_id" binding:"required"`
	DiscountType     string       `json:"discount_type" binding:"required,oneof=percentage fixed"`
	DiscountValue    int64        `json:"discount_value" binding:"required,min=1"`
	StartsAt         *time.Time   `json:"starts_at"`
	EndsAt           *time.Time   `json:"ends_at"`
	IsActive         bool         `json:"is_active"`
}

// GetAdminPwpRules 获取加购规则列表 (Admin)
func (h *Handler) GetAdminPwpRules(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	filter := repository.PwpRuleListFilter{Page: page, PageSize: pageSize}
	if raw := c.Query("is_active"); raw != "" {
		active := raw == "true" || raw == "1"
		filter.IsActive = &active
	}

	rules, total, err := h.PwpService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}

	response.SuccessWithPage(c, gin.H{"items": rules}, response.NewPagination(page, pageSize, total))
}

// SaveAdminPwpRule 创建或更新加购规则 (Admin)
func (h *Handler) SaveAdminPwpRule(c *gin.Context) {
	var req PwpRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	rule := &models.PwpRule{
		ID:               req.ID,
		Name:             req.Name,
		TriggerType:      req.TriggerType,
		TriggerAmount:    req.TriggerAmount,
		TriggerProductID: req.TriggerProductID,
		RewardVariantID:  req.RewardVariantID,
		DiscountType:     req.DiscountType,
		DiscountValue:    req.DiscountValue,
		StartsAt:         req.StartsAt,
		EndsAt:           req.EndsAt,
		IsActive:         req.IsActive,
	}
	if err := h.PwpService.Save(rule); err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, rule)
}

// DeleteAdminPwpRule 删除加购规则 (Admin)
func (h *Handler) DeleteAdminPwpRule(c *gin.Context) {
	id, ok := parsePathID(c, "id")
	if !ok {
		return
	}
	if err := h.PwpService.Delete(id); err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
