package public

import (
	"errors"

	"github.com/storefront-next/internal/http/response"
	"github.com/storefront-next/internal/service"

	"github.com/gin-gonic/gin"
)

// ReturnLineRequest 退货行请求
type ReturnLineRequest struct {
	OrderItemID uint `json:"order_item_id" binding:"required"`
	Quantity    int  `json:"quantity" binding:"required,min=1"`
}

// ReturnRequest 退货申请请求
type ReturnRequest struct {
	Lines  []ReturnLineRequest `json:"lines" binding:"required,min=1"`
	Reason string              `json:"reason"`
}

// RequestReturn 申请退货；退款额按冻结注解比例分摊计算
func (h *Handler) RequestReturn(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	orderNo := c.Param("order_no")
	var req ReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	lines := make([]service.ReturnRequestLine, 0, len(req.Lines))
	for _, line := range req.Lines {
		lines = append(lines, service.ReturnRequestLine{
			OrderItemID: line.OrderItemID,
			Quantity:    line.Quantity,
		})
	}

	refunds, err := h.RefundService.RequestReturn(service.ReturnRequestInput{
		UserID:  uid,
		OrderNo: orderNo,
		Lines:   lines,
		Reason:  req.Reason,
	})
	if err != nil {
		respondWithMappedError(c, err, returnErrorRules, response.CodeInternal, "error.order_update_failed")
		return
	}
	response.Success(c, gin.H{"refunds": refunds})
}

// ListOrderRefunds 获取当前用户某订单的退款记录
func (h *Handler) ListOrderRefunds(c *gin.Context) {
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
	refunds, err := h.RefundService.ListByOrder(order.ID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, gin.H{"refunds": refunds})
}
