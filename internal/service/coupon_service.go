package service

import (
	"strings"
	"time"

	"github.com/storefront-next/internal/constants"
	"github.com/storefront-next/internal/models"
	"github.com/storefront-next/internal/repository"

	"github.com/shopspring/decimal"
)

// CouponService 优惠券服务
type CouponService struct {
	couponRepo repository.CouponRepository
}

// NewCouponService 创建优惠券服务
func NewCouponService(couponRepo repository.CouponRepository) *CouponService {
	return &CouponService{couponRepo: couponRepo}
}

// ApplyCoupon 校验优惠码并计算抵扣金额（不落使用记录，下单成功后才记账）
func (s *CouponService) ApplyCoupon(subtotal models.Money, code string, userID uint, now time.Time) (models.Money, *models.Coupon, error) {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return 0, nil, ErrCouponInvalid
	}

	coupon, err := s.couponRepo.GetByCode(trimmed)
	if err != nil {
		return 0, nil, err
	}
	if coupon == nil || !coupon.IsActive {
		return 0, nil, ErrCouponInvalid
	}

	if coupon.StartsAt != nil && now.Before(*coupon.StartsAt) {
		return 0, coupon, ErrCouponExpired
	}
	if coupon.EndsAt != nil && now.After(*coupon.EndsAt) {
		return 0, coupon, ErrCouponExpired
	}

	if coupon.UsageLimit > 0 && coupon.UsedCount >= coupon.UsageLimit {
		return 0, coupon, ErrCouponUsageLimit
	}
	if coupon.PerUserLimit > 0 && userID != 0 {
		count, err := s.couponRepo.CountUsageByUser(coupon.ID, userID)
		if err != nil {
			return 0, coupon, err
		}
		if int(count) >= coupon.PerUserLimit {
			return 0, coupon, ErrCouponUsageLimit
		}
	}

	if subtotal < coupon.MinAmount {
		return 0, coupon, ErrCouponMinAmount
	}

	discount, err := s.calculateDiscount(coupon, subtotal)
	if err != nil {
		return 0, coupon, err
	}
	if coupon.MaxDiscount > 0 && discount > coupon.MaxDiscount {
		discount = coupon.MaxDiscount
	}
	if discount > subtotal {
		discount = subtotal
	}
	return discount, coupon, nil
}

// RecordUsage 下单成功后记录使用并累加计数（与订单同事务调用）
func (s *CouponService) RecordUsage(couponID, userID, orderID uint, amount models.Money) error {
	if err := s.couponRepo.CreateUsage(&models.CouponUsage{
		CouponID: couponID,
		UserID:   userID,
		OrderID:  orderID,
		Amount:   amount,
	}); err != nil {
		return err
	}
	return s.couponRepo.IncrementUsedCount(couponID)
}

// AllocateShares 将优惠券总额按行小计比例分摊到各订单项，末行吸收舍入残差
func (s *CouponService) AllocateShares(items []models.OrderItem, total models.Money) []models.Money {
	shares := make([]models.Money, len(items))
	if total <= 0 || len(items) == 0 {
		return shares
	}

	var subtotal models.Money
	for _, item := range items {
		subtotal += item.TotalPrice
	}
	if subtotal <= 0 {
		return shares
	}

	var allocated models.Money
	for i, item := range items {
		if i == len(items)-1 {
			shares[i] = total - allocated
			break
		}
		share := models.Money(total.Decimal().
			Mul(item.TotalPrice.Decimal()).
			DivRound(subtotal.Decimal(), 0).
			IntPart())
		shares[i] = share
		allocated += share
	}
	return shares
}

func (s *CouponService) calculateDiscount(coupon *models.Coupon, subtotal models.Money) (models.Money, error) {
	switch strings.ToLower(strings.TrimSpace(coupon.Type)) {
	case constants.CouponTypeFixed:
		if coupon.Value <= 0 {
			return 0, ErrCouponInvalid
		}
		return models.Money(coupon.Value), nil
	case constants.CouponTypePercent:
		if coupon.Value <= 0 || coupon.Value > 100 {
			return 0, ErrCouponInvalid
		}
		percent := decimal.NewFromInt(coupon.Value).Div(decimal.NewFromInt(100))
		discount := subtotal.Decimal().Mul(percent).Round(0).IntPart()
		return models.Money(discount), nil
	default:
		return 0, ErrCouponInvalid
	}
}
