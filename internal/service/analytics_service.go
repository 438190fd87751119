package service

import (
	"time"

	"github.com/storefront-next/internal/constants"
	"github.com/storefront-next/internal/logger"
	"github.com/storefront-next/internal/models"
	"github.com/storefront-next/internal/pricing"
	"github.com/storefront-next/internal/repository"
)

// RevenueReport 净收入报表：按冻结注解重算每单净额后汇总
type RevenueReport struct {
	From           time.Time    `json:"from"`
	To             time.Time    `json:"to"`
	OrderCount     int          `json:"order_count"`
	Gross          models.Money `json:"gross"`
	ItemDiscounts  models.Money `json:"item_discounts"`
	OrderDiscounts models.Money `json:"order_discounts"`
	Shipping       models.Money `json:"shipping"`
	Net            models.Money `json:"net"`
	SkippedCount   int          `json:"skipped_count"` // 注解不完整被跳过的订单数
}

// AnalyticsService 报表服务。逐单走与退款一致的聚合实现，
// 历史订单以冻结时的价格参与统计，与现行定价无关。
type AnalyticsService struct {
	orderRepo repository.OrderRepository
}

// NewAnalyticsService 创建报表服务
func NewAnalyticsService(orderRepo repository.OrderRepository) *AnalyticsService {
	return &AnalyticsService{orderRepo: orderRepo}
}

// NetRevenue 统计时间段内已支付订单的净收入；
// 注解不完整的订单记录日志后跳过，不让单笔坏数据毁掉整张报表。
func (s *AnalyticsService) NetRevenue(from, to time.Time) (RevenueReport, error) {
	report := RevenueReport{From: from, To: to}

	orders, err := s.orderRepo.ListPaidBetween(from, to)
	if err != nil {
		return report, err
	}

	for _, order := range orders {
		if order.Status == constants.OrderStatusCanceled {
			continue
		}
		totals, err := pricing.Aggregate(orderViewFromModel(&order))
		if err != nil {
			logger.Warnw("revenue_order_skipped",
				"order_id", order.ID,
				"order_no", order.OrderNo,
				"error", err,
			)
			report.SkippedCount++
			continue
		}
		report.OrderCount++
		report.Gross += totals.Gross
		report.ItemDiscounts += totals.ItemDiscounts
		report.OrderDiscounts += totals.OrderDiscounts
		report.Shipping += totals.Shipping
		report.Net += totals.Net
	}
	return report, nil
}

// DailyRevenue 按日粒度统计（worker 的汇总任务入口）
func (s *AnalyticsService) DailyRevenue(date string) (RevenueReport, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return RevenueReport{}, err
	}
	return s.NetRevenue(day, day.AddDate(0, 0, 1))
}
