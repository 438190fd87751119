package service

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/storefront-next/internal/constants"
	"github.com/storefront-next/internal/logger"
	"github.com/storefront-next/internal/models"
	"github.com/storefront-next/internal/pricing"
	"github.com/storefront-next/internal/queue"
	"github.com/storefront-next/internal/repository"

	"gorm.io/gorm"
)

// CheckoutInput 结账输入
type CheckoutInput struct {
	UserID         uint
	CouponCode     string
	PointsToRedeem int64
	ClientIP       string
}

// CheckoutQuote 结账报价：聚合结果 + 各单级折扣明细。
// 预览与下单共用同一计算；存在价格漂移时 Drift 非空且下单被拒绝。
type CheckoutQuote struct {
	Items          []models.CartItem   `json:"items"`
	Totals         pricing.Totals      `json:"totals"`
	Currency       string              `json:"currency"`
	Coupon         *models.Coupon      `json:"coupon,omitempty"`
	CouponAmount   models.Money        `json:"coupon_amount"`
	PointsRedeemed int64               `json:"points_redeemed"`
	PointsAmount   models.Money        `json:"points_amount"`
	Member         MemberDiscounts     `json:"member"`
	ShippingAmount models.Money        `json:"shipping_amount"`
	FreeShipping   bool                `json:"free_shipping"`
	Drift          *pricing.SyncReport `json:"drift,omitempty"`
}

// OrderService 订单服务
type OrderService struct {
	orderRepo     repository.OrderRepository
	cartRepo      repository.CartRepository
	couponSvc     *CouponService
	pointsSvc     *PointsService
	membershipSvc *MembershipService
	settingSvc    *SettingService
	syncSvc       *PriceSyncService
	memberRepo    repository.MemberRepository
	queueClient   *queue.Client
	expireMinutes int
}

// NewOrderService 创建订单服务
func NewOrderService(
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	couponSvc *CouponService,
	pointsSvc *PointsService,
	membershipSvc *MembershipService,
	settingSvc *SettingService,
	syncSvc *PriceSyncService,
	memberRepo repository.MemberRepository,
	queueClient *queue.Client,
	expireMinutes int,
) *OrderService {
	if expireMinutes <= 0 {
		expireMinutes = 15
	}
	return &OrderService{
		orderRepo:     orderRepo,
		cartRepo:      cartRepo,
		couponSvc:     couponSvc,
		pointsSvc:     pointsSvc,
		membershipSvc: membershipSvc,
		settingSvc:    settingSvc,
		syncSvc:       syncSvc,
		memberRepo:    memberRepo,
		queueClient:   queueClient,
		expireMinutes: expireMinutes,
	}
}

// Preview 结账预览；漂移时返回带 Drift 报告的报价与 ErrPriceDrift
func (s *OrderService) Preview(input CheckoutInput) (*CheckoutQuote, error) {
	return s.buildQuote(input, time.Now())
}

// buildQuote 组装报价：行级注解已冻结在购物车，此处只计算单级折扣与合计
func (s *OrderService) buildQuote(input CheckoutInput, now time.Time) (*CheckoutQuote, error) {
	items, err := s.cartRepo.ListByUser(input.UserID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrCartEmpty
	}

	quote := &CheckoutQuote{Items: items}

	report, err := s.syncSvc.CheckCart(items)
	if err != nil {
		return nil, err
	}
	if report.NeedsSync {
		quote.Drift = &report
		return quote, ErrPriceDrift
	}

	currency, err := s.settingSvc.GetSiteCurrency()
	if err != nil {
		return nil, err
	}
	quote.Currency = currency

	// 折后小计是优惠券/会员折扣与免邮门槛的共同基数
	var subtotal models.Money
	for _, item := range items {
		subtotal += item.UnitPrice.Mul(item.Quantity)
	}

	shippingCfg, err := s.settingSvc.GetShippingConfig()
	if err != nil {
		return nil, err
	}
	quote.ShippingAmount = shippingCfg.FlatAmount
	if shippingCfg.FreeShippingMinAmount > 0 && subtotal >= shippingCfg.FreeShippingMinAmount {
		quote.FreeShipping = true
	}

	if strings.TrimSpace(input.CouponCode) != "" {
		amount, coupon, err := s.couponSvc.ApplyCoupon(subtotal, input.CouponCode, input.UserID, now)
		if err != nil {
			return nil, err
		}
		quote.Coupon = coupon
		quote.CouponAmount = amount
	}

	member, err := s.membershipSvc.ResolveDiscounts(input.UserID, subtotal, now)
	if err != nil {
		return nil, err
	}
	quote.Member = member

	if input.PointsToRedeem > 0 {
		remaining := subtotal - quote.CouponAmount - member.TierAmount - member.PromoAmount
		if !quote.FreeShipping {
			remaining += quote.ShippingAmount
		}
		if remaining < 0 {
			remaining = 0
		}
		amount, err := s.pointsSvc.QuoteRedemption(input.UserID, input.PointsToRedeem, remaining)
		if err != nil {
			return nil, err
		}
		quote.PointsRedeemed = input.PointsToRedeem
		quote.PointsAmount = amount
	}

	totals, err := pricing.Aggregate(pricing.OrderView{
		Items:             cartItemViews(items),
		CouponAmount:      quote.CouponAmount,
		PointsAmount:      quote.PointsAmount,
		MemberPromoAmount: member.PromoAmount,
		MemberTierAmount:  member.TierAmount,
		ShippingAmount:    quote.ShippingAmount,
		FreeShipping:      quote.FreeShipping,
	})
	if err != nil {
		return nil, err
	}
	quote.Totals = totals
	return quote, nil
}

// Create 从购物车创建订单：冻结折扣注解、占用库存、记账优惠券与积分，
// 全部在一个事务内完成，最后推送超时取消任务。
func (s *OrderService) Create(input CheckoutInput) (*models.Order, error) {
	now := time.Now()
	quote, err := s.buildQuote(input, now)
	if err != nil {
		return nil, err
	}

	expiresAt := now.Add(time.Duration(s.expireMinutes) * time.Minute)
	order := &models.Order{
		OrderNo:             generateOrderNo(),
		UserID:              input.UserID,
		Status:              constants.OrderStatusPendingPayment,
		Currency:            quote.Currency,
		GrossAmount:         quote.Totals.Gross,
		ItemDiscountAmount:  quote.Totals.ItemDiscounts,
		OrderDiscountAmount: quote.Totals.OrderDiscounts,
		ShippingAmount:      quote.ShippingAmount,
		FreeShipping:        quote.FreeShipping,
		NetAmount:           quote.Totals.Net,
		CouponAmount:        quote.CouponAmount,
		PointsRedeemed:      quote.PointsRedeemed,
		PointsAmount:        quote.PointsAmount,
		MemberPromoID:       quote.Member.PromoID,
		MemberPromoAmount:   quote.Member.PromoAmount,
		MemberTierSlug:      quote.Member.TierSlug,
		MemberTierAmount:    quote.Member.TierAmount,
		ClientIP:            strings.TrimSpace(input.ClientIP),
		ExpiresAt:           &expiresAt,
	}
	if quote.Coupon != nil {
		order.CouponID = &quote.Coupon.ID
		order.CouponCode = quote.Coupon.Code
	}

	order.Items = buildOrderItems(quote.Items)
	shares := s.couponSvc.AllocateShares(order.Items, quote.CouponAmount)
	for i := range order.Items {
		order.Items[i].CouponShare = shares[i]
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		for _, item := range quote.Items {
			if err := reserveStock(tx, item.VariantID, item.Quantity); err != nil {
				return err
			}
		}

		if err := s.orderRepo.WithTx(tx).Create(order); err != nil {
			return err
		}

		if quote.Coupon != nil && quote.CouponAmount > 0 {
			couponSvc := &CouponService{couponRepo: s.couponSvc.couponRepo.WithTx(tx)}
			if err := couponSvc.RecordUsage(quote.Coupon.ID, input.UserID, order.ID, quote.CouponAmount); err != nil {
				return err
			}
		}

		if quote.PointsRedeemed > 0 {
			if err := s.pointsSvc.Redeem(s.memberRepo.WithTx(tx), input.UserID, quote.PointsRedeemed); err != nil {
				return err
			}
		}

		return s.cartRepo.WithTx(tx).ClearByUser(input.UserID)
	})
	if err != nil {
		return nil, err
	}

	if err := s.queueClient.EnqueueOrderTimeoutCancel(queue.OrderTimeoutCancelPayload{
		OrderID: order.ID,
	}, time.Duration(s.expireMinutes)*time.Minute); err != nil {
		logger.Errorw("order_enqueue_timeout_cancel_failed",
			"order_id", order.ID,
			"order_no", order.OrderNo,
			"error", err,
		)
	}

	logger.Infow("order_created",
		"order_id", order.ID,
		"order_no", order.OrderNo,
		"user_id", order.UserID,
		"net_amount", order.NetAmount,
	)
	return order, nil
}

// MarkPaid 标记支付成功：库存占用转已售，累计积分与会员晋级
func (s *OrderService) MarkPaid(orderID uint, now time.Time) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.Status != constants.OrderStatusPendingPayment {
		return nil, ErrOrderStatusInvalid
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		for _, item := range order.Items {
			if err := commitStock(tx, item.VariantID, item.Quantity); err != nil {
				return err
			}
		}
		return s.orderRepo.WithTx(tx).UpdateStatus(order.ID, constants.OrderStatusPaid, map[string]interface{}{
			"paid_at": now,
		})
	})
	if err != nil {
		return nil, err
	}

	if err := s.pointsSvc.Accrue(order.UserID, order.NetAmount); err != nil {
		logger.Errorw("order_points_accrue_failed", "order_id", order.ID, "error", err)
	}
	if err := s.membershipSvc.PromoteBySpend(order.UserID, order.NetAmount); err != nil {
		logger.Errorw("order_member_promote_failed", "order_id", order.ID, "error", err)
	}

	order.Status = constants.OrderStatusPaid
	order.PaidAt = &now
	return order, nil
}

// Cancel 取消待支付订单并释放占用库存
func (s *OrderService) Cancel(orderID uint, now time.Time) error {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return ErrOrderNotFound
	}
	if order.Status != constants.OrderStatusPendingPayment {
		return ErrOrderStatusInvalid
	}

	return models.DB.Transaction(func(tx *gorm.DB) error {
		for _, item := range order.Items {
			if err := releaseStock(tx, item.VariantID, item.Quantity); err != nil {
				return err
			}
		}
		return s.orderRepo.WithTx(tx).UpdateStatus(order.ID, constants.OrderStatusCanceled, map[string]interface{}{
			"canceled_at": now,
		})
	})
}

// CancelIfExpired 超时取消（worker 回调）；订单已不在待支付态时静默跳过
func (s *OrderService) CancelIfExpired(orderID uint, now time.Time) error {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return err
	}
	if order == nil || order.Status != constants.OrderStatusPendingPayment {
		return nil
	}
	if order.ExpiresAt == nil || order.ExpiresAt.After(now) {
		return nil
	}
	if err := s.Cancel(orderID, now); err != nil {
		if errors.Is(err, ErrOrderStatusInvalid) {
			return nil
		}
		return err
	}
	logger.Infow("order_timeout_canceled", "order_id", orderID)
	return nil
}

// GetByOrderNo 按编号查询订单
func (s *OrderService) GetByOrderNo(userID uint, orderNo string) (*models.Order, error) {
	order, err := s.orderRepo.GetByOrderNo(orderNo)
	if err != nil {
		return nil, err
	}
	if order == nil || (userID != 0 && order.UserID != userID) {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// List 分页查询订单
func (s *OrderService) List(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.orderRepo.List(filter)
}

// buildOrderItems 把购物车快照冻结为订单项注解
func buildOrderItems(items []models.CartItem) []models.OrderItem {
	result := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		orderItem := models.OrderItem{
			VariantID:         item.VariantID,
			Quantity:          item.Quantity,
			UnitPrice:         item.UnitPrice,
			TotalPrice:        item.UnitPrice.Mul(item.Quantity),
			DiscountSource:    item.DiscountSource,
			OriginalUnitPrice: item.OriginalUnitPrice,
			DiscountAmount:    item.DiscountAmount,
			PwpRuleID:         item.PwpRuleID,
			IsBulkPrice:       item.IsBulkPrice,
		}
		if item.Variant != nil {
			orderItem.ProductID = item.Variant.ProductID
			orderItem.SKUCode = item.Variant.SKUCode
			if item.Variant.Product != nil {
				orderItem.TitleJSON = item.Variant.Product.TitleJSON
			}
		}
		if orderItem.TitleJSON == nil {
			orderItem.TitleJSON = models.JSON{}
		}
		result = append(result, orderItem)
	}
	return result
}

// reserveStock 占用库存；StockTotal 为 0 的规格不做库存控制
func reserveStock(tx *gorm.DB, variantID uint, quantity int) error {
	result := tx.Model(&models.ProductVariant{}).
		Where("id = ? AND (stock_total = 0 OR stock_total - stock_locked - stock_sold >= ?)", variantID, quantity).
		UpdateColumn("stock_locked", gorm.Expr("stock_locked + ?", quantity))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrStockInsufficient
	}
	return nil
}

// commitStock 支付成功后占用转已售
func commitStock(tx *gorm.DB, variantID uint, quantity int) error {
	return tx.Model(&models.ProductVariant{}).
		Where("id = ?", variantID).
		UpdateColumns(map[string]interface{}{
			"stock_locked": gorm.Expr("stock_locked - ?", quantity),
			"stock_sold":   gorm.Expr("stock_sold + ?", quantity),
		}).Error
}

// releaseStock 取消订单时释放占用
func releaseStock(tx *gorm.DB, variantID uint, quantity int) error {
	return tx.Model(&models.ProductVariant{}).
		Where("id = ?", variantID).
		UpdateColumn("stock_locked", gorm.Expr("stock_locked - ?", quantity)).Error
}

func generateOrderNo() string {
	now := time.Now().Format("20060102150405")
	return fmt.Sprintf("SF%s%s", now, randNumeric(6))
}

func randNumeric(length int) string {
	var b strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			b.WriteString("0")
			continue
		}
		b.WriteString(n.String())
	}
	return b.String()
}
