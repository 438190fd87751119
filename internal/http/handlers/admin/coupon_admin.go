package admin

import (
	"strconv"
	"time"

	"github.com/storefront-next/internal/http/response"
	"github.com/storefront-next/internal/models"
	"github.com/storefront-next/internal/repository"

	"github.com/gin-gonic/gin"
)

// CouponRequest 优惠券保存请求
type CouponRequest struct {
	ID           uint         `json:"id"`
	Code         string       `json:"code" binding:"required"`
	Type         string       `json:"type" binding:"required,oneof=fixed percent"`
	Value        int64        `json:"value" binding:"required,min=1"`
	MinAmount    models.Money `json:"min_amount"`
	MaxDiscount  models.Money `json:"max_discount"`
	UsageLimit   int          `json:"usage_limit"`
	PerUserLimit int          `json:"per_user_limit"`
	StartsAt     *time.Time   `json:"starts_at"`
	EndsAt       *time.Time   `json:"ends_at"`
	IsActive     bool         `json:"is_active"`
}

// GetAdminCoupons 获取优惠券列表 (Admin)
func (h *Handler) GetAdminCoupons(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	filter := repository.CouponListFilter{
		Page:     page,
		PageSize: pageSize,
		Code:     c.Query("code"),
	}
	if raw := c.Query("is_active"); raw != "" {
		active := raw == "true" || raw == "1"
		filter.IsActive = &active
	}

	coupons, total, err := h.CouponRepo.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}

	response.SuccessWithPage(c, gin.H{"items": coupons}, response.NewPagination(page, pageSize, total))
}

// SaveAdminCoupon 创建或更新优惠券 (Admin)
func (h *Handler) SaveAdminCoupon(c *gin.Context) {
	var req CouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	coupon := &models.Coupon{
		ID:           req.ID,
		Code:         req.Code,
		Type:         req.Type,
		Value:        req.Value,
		MinAmount:    req.MinAmount,
		MaxDiscount:  req.MaxDiscount,
		UsageLimit:   req.UsageLimit,
		PerUserLimit: req.PerUserLimit,
		StartsAt:     req.StartsAt,
		EndsAt:       req.EndsAt,
		IsActive:     req.IsActive,
	}
	var err error
	if coupon.ID == 0 {
		err = h.CouponRepo.Create(coupon)
	} else {
		err = h.CouponRepo.Update(coupon)
	}
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, coupon)
}

// DeleteAdminCoupon 删除优惠券 (Admin)
func (h *Handler) DeleteAdminCoupon(c *gin.Context) {
	id, ok := parsePathID(c, "id")
	if !ok {
		return
	}
	if err := h.CouponRepo.Delete(id); err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
