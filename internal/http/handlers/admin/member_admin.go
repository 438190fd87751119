package admin

import (
	"time"

	"github.com/storefront-next/internal/http/response"
	"github.com/storefront-next/internal/models"

	"github.com/gin-gonic/gin"
)

// MemberTierRequest 会员等级保存请求
type MemberTierRequest struct {
	ID              uint         `json:"id"`
	Slug            string       `json:"slug" binding:"required"`
	Name            models.JSON  `json:"name" binding:"required"`
	DiscountPercent int64        `json:"discount_percent" binding:"min=0,max=100"`
	MinSpend        models.Money `json:"min_spend" binding:"min=0"`
	SortOrder       int          `json:"sort_order"`
}

// MemberPromoRequest 会员活动保存请求
type MemberPromoRequest struct {
	ID        uint         `json:"id"`
	Name      string       `json:"name" binding:"required"`
	Amount    models.Money `json:"amount" binding:"required,min=1"`
	MinAmount models.Money `json:"min_amount"`
	StartsAt  *time.Time   `json:"starts_at"`
	EndsAt    *time.Time   `json:"ends_at"`
	IsActive  bool         `json:"is_active"`
}

// GetAdminMemberTiers 获取会员等级列表 (Admin)
func (h *Handler) GetAdminMemberTiers(c *gin.Context) {
	tiers, err := h.MembershipService.ListTiers()
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, gin.H{"tiers": tiers})
}

// SaveAdminMemberTier 创建或更新会员等级 (Admin)
func (h *Handler) SaveAdminMemberTier(c *gin.Context) {
	var req MemberTierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	tier := &models.MemberTier{
		ID:              req.ID,
		Slug:            req.Slug,
		NameJSON:        req.Name,
		DiscountPercent: req.DiscountPercent,
		MinSpend:        req.MinSpend,
		SortOrder:       req.SortOrder,
	}
	if err := h.MembershipService.SaveTier(tier); err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, tier)
}

// DeleteAdminMemberTier 删除会员等级 (Admin)
func (h *Handler) DeleteAdminMemberTier(c *gin.Context) {
	id, ok := parsePathID(c, "id")
	if !ok {
		return
	}
	if err := h.MemberRepo.DeleteTier(id); err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// GetAdminMemberPromos 获取会员活动列表 (Admin)
func (h *Handler) GetAdminMemberPromos(c *gin.Context) {
	promos, err := h.MembershipService.ListPromos()
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, gin.H{"promos": promos})
}

// SaveAdminMemberPromo 创建或更新会员活动 (Admin)
func (h *Handler) SaveAdminMemberPromo(c *gin.Context) {
	var req MemberPromoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	promo := &models.MemberPromo{
		ID:        req.ID,
		Name:      req.Name,
		Amount:    req.Amount,
		MinAmount: req.MinAmount,
		StartsAt:  req.StartsAt,
		EndsAt:    req.EndsAt,
		IsActive:  req.IsActive,
	}
	if err := h.MembershipService.SavePromo(promo); err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, promo)
}

// DeleteAdminMemberPromo 删除会员活动 (Admin)
func (h *Handler) DeleteAdminMemberPromo(c *gin.Context) {
	id, ok := parsePathID(c, "id")
	if !ok {
		return
	}
	if err := h.MemberRepo.DeletePromo(id); err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
