package admin

import (
	"time"

	"github.com/storefront-next/internal/http/response"
	"github.com/storefront-next/internal/queue"

	"github.com/gin-gonic/gin"
)

// GetAdminRevenueReport 获取净收入报表 (Admin)
// 金额全部由订单冻结注解复原重算，不读现行价格配置。
func (h *Handler) GetAdminRevenueReport(c *gin.Context) {
	from, ok := parseDateQuery(c, "from")
	if !ok {
		return
	}
	to, ok := parseDateQuery(c, "to")
	if !ok {
		return
	}
	if !to.After(from) {
		respondError(c, response.CodeBadRequest, "error.date_invalid", nil)
		return
	}

	report, err := h.AnalyticsService.NetRevenue(from, to)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, report)
}

// GetAdminDailyRevenue 获取单日净收入报表 (Admin)
func (h *Handler) GetAdminDailyRevenue(c *gin.Context) {
	date := c.Param("date")
	report, err := h.AnalyticsService.DailyRevenue(date)
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.date_invalid", err)
		return
	}
	response.Success(c, report)
}

// EnqueueAdminRevenueRollup 推送异步净收入汇总任务 (Admin)
func (h *Handler) EnqueueAdminRevenueRollup(c *gin.Context) {
	date := c.Param("date")
	if _, err := time.Parse("2006-01-02", date); err != nil {
		respondError(c, response.CodeBadRequest, "error.date_invalid", nil)
		return
	}
	if h.QueueClient == nil || !h.QueueClient.Enabled() {
		respondError(c, response.CodeInternal, "error.internal", nil)
		return
	}
	if err := h.QueueClient.EnqueueRevenueRollup(queue.RevenueRollupPayload{Date: date}); err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, gin.H{"enqueued": true})
}

// 日期查询参数统一用 2006-01-02 格式，to 为闭区间当天的次日零点
func parseDateQuery(c *gin.Context, name string) (time.Time, bool) {
	raw := c.Query(name)
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.date_invalid", nil)
		return time.Time{}, false
	}
	if name == "to" {
		t = t.AddDate(0, 0, 1)
	}
	return t, true
}
