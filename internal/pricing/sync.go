package pricing

import "github.com/storefront-next/internal/models"

// 价格漂移原因
const (
	DiffReasonPriceChanged    = "price_changed"    // 现行配置算得的单价与快照不一致
	DiffReasonScheduleMissing = "schedule_missing" // 现行配置中已无该规格
)

// LiveConfig 规格的现行定价配置
type LiveConfig struct {
	Schedule        PriceSchedule
	VariantDiscount models.Money
}

// PriceDiff 单行价格漂移
type PriceDiff struct {
	ItemID       uint         `json:"item_id"`
	VariantID    uint         `json:"variant_id"`
	OldUnitPrice models.Money `json:"old_unit_price"`
	NewUnitPrice models.Money `json:"new_unit_price"`
	Reason       string       `json:"reason"`
}

// SyncReport 漂移检查报告；只报告差异，从不代为改价（fail-closed）
type SyncReport struct {
	NeedsSync bool        `json:"needs_sync"`
	Diffs     []PriceDiff `json:"diffs,omitempty"`
}

// CheckSync 用现行配置重算每个非加购行的单价并与快照对比，
// 结账前调用以强制显式重新定价，避免按过期价格收款。
func CheckSync(cart OrderView, live map[uint]LiveConfig) (SyncReport, error) {
	var report SyncReport
	for _, item := range cart.Items {
		// 加购奖励价由规则决定，不随价格表漂移
		if item.Source == models.DiscountSourcePwp {
			continue
		}
		cfg, ok := live[item.VariantID]
		if !ok {
			report.Diffs = append(report.Diffs, PriceDiff{
				ItemID:       item.ID,
				VariantID:    item.VariantID,
				OldUnitPrice: item.UnitPrice,
				NewUnitPrice: item.UnitPrice,
				Reason:       DiffReasonScheduleMissing,
			})
			continue
		}
		composed, err := ComposeItem(ComposeInput{
			BasePrice:       cfg.Schedule.BasePrice,
			Quantity:        item.Quantity,
			Schedule:        cfg.Schedule,
			VariantDiscount: cfg.VariantDiscount,
		})
		if err != nil {
			return SyncReport{}, err
		}
		if composed.UnitPrice != item.UnitPrice {
			report.Diffs = append(report.Diffs, PriceDiff{
				ItemID:       item.ID,
				VariantID:    item.VariantID,
				OldUnitPrice: item.UnitPrice,
				NewUnitPrice: composed.UnitPrice,
				Reason:       DiffReasonPriceChanged,
			})
		}
	}
	report.NeedsSync = len(report.Diffs) > 0
	return report, nil
}
