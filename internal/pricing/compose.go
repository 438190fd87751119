package pricing

import "github.com/storefront-next/internal/models"

// PwpOverride 加购奖励项的规则定价（original − discount，封底 0）
type PwpOverride struct {
	RuleID         uint
	OriginalPrice  models.Money
	DiscountAmount models.Money
}

// ComposeInput 行级折扣合成输入
type ComposeInput struct {
	BasePrice       models.Money
	Quantity        int
	Schedule        PriceSchedule
	Pwp             *PwpOverride
	VariantDiscount models.Money // 管理员规格折扣（每单位固定减免，0 表示无）
}

// ComposeResult 合成结果：实收单价 + 恰好一种折扣注解
type ComposeResult struct {
	UnitPrice         models.Money
	Source            string
	OriginalUnitPrice models.Money
	DiscountAmount    models.Money
	PwpRuleID         uint
	IsBulkPrice       bool
	Clamped           bool // 折扣超过原价被封底到 0（不报错，由调用方记录）
}

// ComposeItem 行级折扣合成：加购覆盖价 > 阶梯价 > 规格折扣 > 基础价，
// 每项最多产生一种注解。
func ComposeItem(in ComposeInput) (ComposeResult, error) {
	// 加购奖励项价格完全由规则决定，阶梯价与规格折扣均不再参与
	if in.Pwp != nil {
		unit := in.Pwp.OriginalPrice - in.Pwp.DiscountAmount
		clamped := false
		if unit < 0 {
			unit = 0
			clamped = true
		}
		return ComposeResult{
			UnitPrice:         unit,
			Source:            models.DiscountSourcePwp,
			OriginalUnitPrice: in.Pwp.OriginalPrice,
			DiscountAmount:    in.Pwp.OriginalPrice - unit,
			PwpRuleID:         in.Pwp.RuleID,
			Clamped:           clamped,
		}, nil
	}

	resolved, err := ResolveTier(in.Schedule, in.Quantity)
	if err != nil {
		return ComposeResult{}, err
	}
	if resolved.Tier != nil {
		// 命中档位时阶梯价优先于规格折扣
		return ComposeResult{
			UnitPrice:         resolved.UnitPrice,
			Source:            models.DiscountSourceBulkTier,
			OriginalUnitPrice: in.BasePrice,
			DiscountAmount:    in.BasePrice - resolved.UnitPrice,
			IsBulkPrice:       true,
		}, nil
	}

	if in.VariantDiscount > 0 {
		unit := in.BasePrice - in.VariantDiscount
		clamped := false
		if unit < 0 {
			unit = 0
			clamped = true
		}
		return ComposeResult{
			UnitPrice:         unit,
			Source:            models.DiscountSourceVariantDiscount,
			OriginalUnitPrice: in.BasePrice,
			DiscountAmount:    in.BasePrice - unit,
			Clamped:           clamped,
		}, nil
	}

	return ComposeResult{
		UnitPrice:         in.BasePrice,
		Source:            models.DiscountSourceNone,
		OriginalUnitPrice: in.BasePrice,
	}, nil
}
