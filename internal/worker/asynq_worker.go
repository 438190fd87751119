package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/storefront-next/internal/logger"
	"github.com/storefront-next/internal/provider"
	"github.com/storefront-next/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskOrderTimeoutCancel, c.handleOrderTimeoutCancel)
	mux.HandleFunc(queue.TaskRevenueRollup, c.handleRevenueRollup)
}

func (c *Consumer) handleOrderTimeoutCancel(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_order_timeout_cancel_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.OrderTimeoutCancelPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_order_timeout_cancel_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == 0 {
		logger.Debugw("worker_order_timeout_cancel_skip_invalid_payload", "order_id", payload.OrderID)
		return nil
	}
	if c.OrderService == nil {
		logger.Warnw("worker_order_timeout_cancel_skip_order_service_nil", "order_id", payload.OrderID)
		return nil
	}
	if err := c.OrderService.CancelIfExpired(payload.OrderID, time.Now()); err != nil {
		logger.Warnw("worker_order_timeout_cancel_failed", "order_id", payload.OrderID, "error", err)
		return err
	}
	return nil
}

func (c *Consumer) handleRevenueRollup(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_revenue_rollup_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.RevenueRollupPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_revenue_rollup_unmarshal_failed", "error", err)
		return err
	}
	if payload.Date == "" {
		logger.Debugw("worker_revenue_rollup_skip_empty_date")
		return nil
	}
	if c.AnalyticsService == nil {
		logger.Warnw("worker_revenue_rollup_skip_analytics_service_nil", "date", payload.Date)
		return nil
	}
	report, err := c.AnalyticsService.DailyRevenue(payload.Date)
	if err != nil {
		logger.Warnw("worker_revenue_rollup_failed", "date", payload.Date, "error", err)
		return err
	}
	logger.Infow("worker_revenue_rollup_done",
		"date", payload.Date,
		"order_count", report.OrderCount,
		"gross", report.Gross,
		"item_discounts", report.ItemDiscounts,
		"order_discounts", report.OrderDiscounts,
		"shipping", report.Shipping,
		"net", report.Net,
		"skipped_count", report.SkippedCount,
	)
	return nil
}
