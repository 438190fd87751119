package admin

import (
	"errors"
	"strconv"
	"time"

	"github.com/storefront-next/internal/http/response"
	"github.com/storefront-next/internal/repository"
	"github.com/storefront-next/internal/service"

	"github.com/gin-gonic/gin"
)

// RefundReviewRequest 退款审核请求
type RefundReviewRequest struct {
	Approve bool `json:"approve"`
}

// GetAdminRefunds 获取退款列表 (Admin)
func (h *Handler) GetAdminRefunds(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	filter := repository.RefundListFilter{
		Page:     page,
		PageSize: pageSize,
		Status:   c.Query("status"),
	}
	if raw := c.Query("order_id"); raw != "" {
		if orderID, err := strconv.ParseUint(raw, 10, 64); err == nil {
			filter.OrderID = uint(orderID)
		}
	}

	refunds, total, err := h.RefundService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}

	response.SuccessWithPage(c, gin.H{"items": refunds}, response.NewPagination(page, pageSize, total))
}

// ReviewAdminRefund 审核退款；驳回会回滚订单项的已退数量
func (h *Handler) ReviewAdminRefund(c *gin.Context) {
	id, ok := parsePathID(c, "id")
	if !ok {
		return
	}
	var req RefundReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	refund, err := h.RefundService.Review(id, req.Approve, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRefundNotFound):
			respondError(c, response.CodeNotFound, "error.refund_not_found", nil)
		case errors.Is(err, service.ErrRefundStatusInvalid):
			respondError(c, response.CodeBadRequest, "error.refund_status_invalid", nil)
		default:
			respondError(c, response.CodeInternal, "error.internal", err)
		}
		return
	}
	requestLog(c).Infow("refund_reviewed", "refund_id", id, "approved", req.Approve)
	response.Success(c, refund)
}
