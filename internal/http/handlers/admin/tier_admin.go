package admin

import (
	"errors"

	"github.com/storefront-next/internal/http/response"
	"github.com/storefront-next/internal/models"
	"github.com/storefront-next/internal/pricing"
	"github.com/storefront-next/internal/service"

	"github.com/gin-gonic/gin"
)

// TierRequest 阶梯价行请求
type TierRequest struct {
	MinQuantity int          `json:"min_quantity" binding:"required,min=1"`
	MaxQuantity *int         `json:"max_quantity"`
	UnitPrice   models.Money `json:"unit_price" binding:"min=0"`
}

// ReplaceTiersRequest 整表替换阶梯价请求
type ReplaceTiersRequest struct {
	Tiers []TierRequest `json:"tiers"`
}

// VariantDiscountRequest 规格折扣请求
type VariantDiscountRequest struct {
	DiscountAmount models.Money `json:"discount_amount"`
}

// GetAdminTiers 获取规格阶梯价 (Admin)
func (h *Handler) GetAdminTiers(c *gin.Context) {
	variantID, ok := parsePathID(c, "variant_id")
	if !ok {
		return
	}
	tiers, err := h.TierAdminService.ListTiers(variantID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, gin.H{"tiers": tiers})
}

// ReplaceAdminTiers 整表替换规格阶梯价 (Admin)
// 区间重叠或区间非法会整体拒绝，不做部分写入。
func (h *Handler) ReplaceAdminTiers(c *gin.Context) {
	variantID, ok := parsePathID(c, "variant_id")
	if !ok {
		return
	}
	var req ReplaceTiersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	inputs := make([]service.TierInput, 0, len(req.Tiers))
	for _, tier := range req.Tiers {
		inputs = append(inputs, service.TierInput{
			MinQuantity: tier.MinQuantity,
			MaxQuantity: tier.MaxQuantity,
			UnitPrice:   tier.UnitPrice,
		})
	}

	tiers, err := h.TierAdminService.ReplaceTiers(variantID, inputs)
	if err != nil {
		switch {
		case errors.Is(err, pricing.ErrScheduleOverlap):
			respondError(c, response.CodeBadRequest, "error.tier_overlap", nil)
		case errors.Is(err, pricing.ErrTierRange):
			respondError(c, response.CodeBadRequest, "error.tier_range_invalid", nil)
		case errors.Is(err, service.ErrVariantNotFound):
			respondError(c, response.CodeNotFound, "error.variant_not_found", nil)
		default:
			respondError(c, response.CodeInternal, "error.internal", err)
		}
		return
	}
	requestLog(c).Infow("price_tiers_replaced", "variant_id", variantID, "tier_count", len(tiers))
	response.Success(c, gin.H{"tiers": tiers})
}

// UpdateAdminVariantDiscount 更新规格折扣 (Admin)
func (h *Handler) UpdateAdminVariantDiscount(c *gin.Context) {
	variantID, ok := parsePathID(c, "variant_id")
	if !ok {
		return
	}
	var req VariantDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	if err := h.TierAdminService.UpdateVariantDiscount(variantID, req.DiscountAmount); err != nil {
		switch {
		case errors.Is(err, service.ErrVariantNotFound):
			respondError(c, response.CodeNotFound, "error.variant_not_found", nil)
		case errors.Is(err, service.ErrInvalidOrderItem):
			respondError(c, response.CodeBadRequest, "error.discount_invalid", nil)
		default:
			respondError(c, response.CodeInternal, "error.internal", err)
		}
		return
	}
	response.Success(c, gin.H{"updated": true})
}

// InvalidatePricingCache 失效价格配置缓存 (Admin)
func (h *Handler) InvalidatePricingCache(c *gin.Context) {
	h.ScheduleCache.InvalidateAll()
	response.Success(c, gin.H{"invalidated": true})
}
