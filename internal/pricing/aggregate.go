package pricing

import "github.com/storefront-next/internal/models"

// ItemView 行项视图（购物车或已落库订单项的统一输入）
type ItemView struct {
	ID                uint
	VariantID         uint
	Quantity          int
	UnitPrice         models.Money
	Source            string
	OriginalUnitPrice models.Money
	DiscountAmount    models.Money
	IsBulkPrice       bool
	CouponShare       models.Money // 优惠券行级分摊（存在时优先于单级缓存）
}

// OrderView 订单视图；单级折扣金额均为各自引擎预先算好的不透明输入
type OrderView struct {
	Items             []ItemView
	CouponAmount      models.Money
	PointsAmount      models.Money
	MemberPromoAmount models.Money
	MemberTierAmount  models.Money
	ShippingAmount    models.Money
	FreeShipping      bool
	// BasePrices 历史数据兜底：bulk_tier 注解缺少折前价时按规格ID查基础价快照
	BasePrices map[uint]models.Money
}

// Totals 聚合结果
type Totals struct {
	Gross          models.Money `json:"gross"`
	ItemDiscounts  models.Money `json:"item_discounts"`
	OrderDiscounts models.Money `json:"order_discounts"`
	Shipping       models.Money `json:"shipping"`
	Net            models.Money `json:"net"`
}

// ReconstructOriginalPrice 从存储注解复原折前单价；注解数据不足返回
// ErrAnnotationIncomplete，绝不回查现行配置。
func ReconstructOriginalPrice(item ItemView, basePrices map[uint]models.Money) (models.Money, error) {
	switch item.Source {
	case models.DiscountSourceNone:
		return item.UnitPrice, nil
	case models.DiscountSourcePwp, models.DiscountSourceVariantDiscount:
		if item.OriginalUnitPrice > 0 {
			return item.OriginalUnitPrice, nil
		}
		// 这两类注解总是同时落 DiscountAmount，0 即真实无减免，
		// 折前价由实付价与减免额回推；零基础价的免费奖励同样可复原
		return item.UnitPrice + item.DiscountAmount, nil
	case models.DiscountSourceBulkTier:
		if item.OriginalUnitPrice > 0 {
			return item.OriginalUnitPrice, nil
		}
		// 历史订单未落折前价时只认调用方提供的基础价快照
		if base, ok := basePrices[item.VariantID]; ok {
			return base, nil
		}
		return 0, ErrAnnotationIncomplete
	default:
		return 0, ErrAnnotationIncomplete
	}
}

// Aggregate 订单折扣聚合：折前总额、行级/单级折扣、有效运费与净额。
// 无副作用且幂等，购物车实时合计与历史报表共用同一实现。
func Aggregate(order OrderView) (Totals, error) {
	var totals Totals
	var couponShares models.Money

	for _, item := range order.Items {
		original, err := ReconstructOriginalPrice(item, order.BasePrices)
		if err != nil {
			return Totals{}, err
		}
		totals.Gross += original.Mul(item.Quantity)
		if item.Source != models.DiscountSourceNone {
			totals.ItemDiscounts += (original - item.UnitPrice).Mul(item.Quantity)
		}
		couponShares += item.CouponShare
	}

	// 行级分摊记录与单级缓存是同一笔优惠的两种记法，只取其一，绝不相加
	coupon := order.CouponAmount
	if couponShares > 0 {
		coupon = couponShares
	}
	totals.OrderDiscounts = coupon + order.PointsAmount + order.MemberPromoAmount + order.MemberTierAmount

	if !order.FreeShipping {
		totals.Shipping = order.ShippingAmount
	}

	net := totals.Gross + totals.Shipping - totals.ItemDiscounts - totals.OrderDiscounts
	if net < 0 {
		net = 0
	}
	totals.Net = net
	return totals, nil
}
