package pricing

import (
	"sort"

	"github.com/storefront-next/internal/models"
)

// PriceTier 阶梯价档位（min/max 闭区间，max 为空表示无上限）
type PriceTier struct {
	MinQuantity int
	MaxQuantity *int
	UnitPrice   models.Money
}

// PriceSchedule 规格价格表：基础价 + 阶梯档位集合
type PriceSchedule struct {
	BasePrice models.Money
	Tiers     []PriceTier
}

// TierResult 阶梯价解析结果；Tier 为空表示未命中任何档位，回落基础价
type TierResult struct {
	UnitPrice models.Money
	Tier      *PriceTier
}

// ValidateSchedule 校验阶梯档位：区间合法、互不重叠、无上限档位只允许最高档
func ValidateSchedule(schedule PriceSchedule) error {
	tiers := make([]PriceTier, len(schedule.Tiers))
	copy(tiers, schedule.Tiers)
	sort.SliceStable(tiers, func(i, j int) bool {
		return tiers[i].MinQuantity < tiers[j].MinQuantity
	})

	for i, tier := range tiers {
		if tier.MinQuantity < 1 {
			return ErrTierRange
		}
		if tier.MaxQuantity != nil && *tier.MaxQuantity < tier.MinQuantity {
			return ErrTierRange
		}
		if i == len(tiers)-1 {
			continue
		}
		next := tiers[i+1]
		if tier.MinQuantity == next.MinQuantity {
			return ErrScheduleOverlap
		}
		// 非最高档必须有上限，且不得越过下一档的下界
		if tier.MaxQuantity == nil || *tier.MaxQuantity >= next.MinQuantity {
			return ErrScheduleOverlap
		}
	}
	return nil
}

// ResolveTier 解析数量对应的阶梯单价；未命中任何档位时回落基础价
func ResolveTier(schedule PriceSchedule, quantity int) (TierResult, error) {
	if err := ValidateSchedule(schedule); err != nil {
		return TierResult{}, err
	}

	tiers := make([]PriceTier, len(schedule.Tiers))
	copy(tiers, schedule.Tiers)
	sort.SliceStable(tiers, func(i, j int) bool {
		return tiers[i].MinQuantity > tiers[j].MinQuantity
	})

	for i := range tiers {
		tier := tiers[i]
		if quantity < tier.MinQuantity {
			continue
		}
		if tier.MaxQuantity != nil && quantity > *tier.MaxQuantity {
			continue
		}
		return TierResult{UnitPrice: tier.UnitPrice, Tier: &tier}, nil
	}
	return TierResult{UnitPrice: schedule.BasePrice, Tier: nil}, nil
}
