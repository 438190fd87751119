package public

import (
	"strconv"
	"time"

	"github.com/storefront-next/internal/http/response"
	"github.com/storefront-next/internal/models"
	"github.com/storefront-next/internal/service"

	"github.com/gin-gonic/gin"
)

// AddCartItemRequest 加入购物车请求
type AddCartItemRequest struct {
	VariantID uint `json:"variant_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
	PwpRuleID uint `json:"pwp_rule_id"`
}

// UpdateCartItemRequest 修改购物车项数量请求
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

// GetCart 获取购物车（条目含冻结的价格快照与折扣注解）
func (h *Handler) GetCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	view, err := h.CartService.View(uid)
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, view)
}

// AddCartItem 加入购物车；pwp_rule_id 非 0 时按加购奖励价加入
func (h *Handler) AddCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	item, err := h.CartService.AddItem(service.AddCartItemInput{
		UserID:    uid,
		VariantID: req.VariantID,
		Quantity:  req.Quantity,
		PwpRuleID: req.PwpRuleID,
	}, time.Now())
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "error.order_update_failed")
		return
	}
	response.Success(c, gin.H{"item": item})
}

// UpdateCartItem 修改购物车项数量（重新按现行配置定价）
func (h *Handler) UpdateCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	itemID, ok := parseCartItemID(c)
	if !ok {
		return
	}
	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	item, err := h.CartService.UpdateQuantity(uid, itemID, req.Quantity)
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "error.order_update_failed")
		return
	}
	response.Success(c, gin.H{"item": item})
}

// DeleteCartItem 删除购物车项
func (h *Handler) DeleteCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	itemID, ok := parseCartItemID(c)
	if !ok {
		return
	}
	if err := h.CartService.RemoveItem(uid, itemID); err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "error.order_update_failed")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// RepriceCart 按现行配置重新定价整个购物车（价格漂移后的恢复入口）
func (h *Handler) RepriceCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	view, err := h.CartService.Reprice(uid)
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "error.order_update_failed")
		return
	}
	response.Success(c, view)
}

// GetPwpOffers 获取当前购物车可用的加购优惠
func (h *Handler) GetPwpOffers(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	items, err := h.CartRepo.ListByUser(uid)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	rules, err := h.PwpService.EligibleRules(items, time.Now())
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	if rules == nil {
		rules = make([]models.PwpRule, 0)
	}
	response.Success(c, gin.H{"offers": rules})
}

func parseCartItemID(c *gin.Context) (uint, bool) {
	raw := c.Param("item_id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.cart_item_not_found", nil)
		return 0, false
	}
	return uint(id), true
}
