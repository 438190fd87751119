package public

import (
	"errors"
	"strconv"
	"time"

	handlershared "github.com/storefront-next/internal/http/handlers/shared"
	"github.com/storefront-next/internal/http/response"
	"github.com/storefront-next/internal/repository"
	"github.com/storefront-next/internal/service"

	"github.com/gin-gonic/gin"
)

// CheckoutRequest 结账请求
type CheckoutRequest struct {
	CouponCode     string `json:"coupon_code"`
	PointsToRedeem int64  `json:"points_to_redeem"`
}

func (h *Handler) checkoutInput(c *gin.Context, uid uint, req CheckoutRequest) service.CheckoutInput {
	return service.CheckoutInput{
		UserID:         uid,
		CouponCode:     req.CouponCode,
		PointsToRedeem: req.PointsToRedeem,
		ClientIP:       c.ClientIP(),
	}
}

// PreviewCheckout 结账预览；价格漂移时返回漂移报告并拒绝
func (h *Handler) PreviewCheckout(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	quote, err := h.OrderService.Preview(h.checkoutInput(c, uid, req))
	if err != nil {
		if errors.Is(err, service.ErrPriceDrift) && quote != nil {
			respondErrorWithData(c, response.CodeBadRequest, "error.price_drift", gin.H{"drift": quote.Drift})
			return
		}
		respondWithMappedError(c, err, checkoutErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, quote)
}

// CreateOrder 从购物车创建订单
func (h *Handler) CreateOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	order, err := h.OrderService.Create(h.checkoutInput(c, uid, req))
	if err != nil {
		if errors.Is(err, service.ErrPriceDrift) {
			respondError(c, response.CodeBadRequest, "error.price_drift", nil)
			return
		}
		respondWithMappedError(c, err, checkoutErrorRules, response.CodeInternal, "error.order_create_failed")
		return
	}
	response.Success(c, gin.H{"order": order})
}

// ListOrders 获取当前用户订单列表
func (h *Handler) ListOrders(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	orders, total, err := h.OrderService.List(repository.OrderListFilter{
		Page:     page,
		PageSize: pageSize,
		UserID:   uid,
		Status:   c.Query("status"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.order_fetch_failed", err)
		return
	}

	response.SuccessWithPage(c, gin.H{"items": orders}, response.NewPagination(page, pageSize, total))
}

// GetOrderByNo 按订单编号获取当前用户订单详情
func (h *Handler) GetOrderByNo(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	orderNo := c.Param("order_no")
	order, err := h.OrderService.GetByOrderNo(uid, orderNo)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			respondError(c, response.CodeNotFound, "error.order_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.order_fetch_failed", err)
		return
	}
	response.Success(c, gin.H{"order": order})
}

// CancelOrder 取消当前用户的待支付订单
func (h *Handler) CancelOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	orderNo := c.Param("order_no")
	order, err := h.OrderService.GetByOrderNo(uid, orderNo)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			respondError(c, response.CodeNotFound, "error.order_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.order_fetch_failed", err)
		return
	}
	if err := h.OrderService.Cancel(order.ID, time.Now()); err != nil {
		if errors.Is(err, service.ErrOrderStatusInvalid) {
			respondError(c, response.CodeBadRequest, "error.order_status_invalid", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.order_update_failed", err)
		return
	}
	response.Success(c, gin.H{"canceled": true})
}
