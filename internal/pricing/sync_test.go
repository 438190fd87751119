package pricing

import (
	"errors"
	"testing"

	"github.com/storefront-next/internal/models"
)

func TestCheckSyncDetectsTierEdit(t *testing.T) {
	cart := OrderView{
		Items: []ItemView{
			{ID: 1, VariantID: 1, Quantity: 12, UnitPrice: models.Money(800),
				Source: models.DiscountSourceBulkTier, OriginalUnitPrice: models.Money(1000),
				DiscountAmount: models.Money(200), IsBulkPrice: true},
		},
	}
	live := map[uint]LiveConfig{
		1: {Schedule: PriceSchedule{
			BasePrice: models.Money(1000),
			Tiers:     []PriceTier{{MinQuantity: 10, UnitPrice: models.Money(750)}},
		}},
	}
	report, err := CheckSync(cart, live)
	if err != nil {
		t.Fatalf("CheckSync error: %v", err)
	}
	if !report.NeedsSync || len(report.Diffs) != 1 {
		t.Fatalf("expected one diff, got %+v", report)
	}
	diff := report.Diffs[0]
	if diff.OldUnitPrice != models.Money(800) || diff.NewUnitPrice != models.Money(750) {
		t.Fatalf("unexpected diff prices: %+v", diff)
	}
	if diff.Reason != DiffReasonPriceChanged {
		t.Fatalf("unexpected diff reason: %s", diff.Reason)
	}
}

func TestCheckSyncNoDriftNoDiffs(t *testing.T) {
	cart := OrderView{
		Items: []ItemView{
			{ID: 1, VariantID: 1, Quantity: 2, UnitPrice: models.Money(1000)},
		},
	}
	live := map[uint]LiveConfig{
		1: {Schedule: PriceSchedule{BasePrice: models.Money(1000)}},
	}
	report, err := CheckSync(cart, live)
	if err != nil {
		t.Fatalf("CheckSync error: %v", err)
	}
	if report.NeedsSync || len(report.Diffs) != 0 {
		t.Fatalf("expected no drift, got %+v", report)
	}
}

func TestCheckSyncSkipsPwpItems(t *testing.T) {
	cart := OrderView{
		Items: []ItemView{
			{ID: 1, VariantID: 1, Quantity: 1, UnitPrice: models.Money(0),
				Source: models.DiscountSourcePwp, OriginalUnitPrice: models.Money(500),
				DiscountAmount: models.Money(500)},
		},
	}
	// 规则价不随价格表漂移，现行配置缺失也不算差异
	report, err := CheckSync(cart, map[uint]LiveConfig{})
	if err != nil {
		t.Fatalf("CheckSync error: %v", err)
	}
	if report.NeedsSync {
		t.Fatalf("expected pwp item skipped, got %+v", report)
	}
}

func TestCheckSyncMissingSchedule(t *testing.T) {
	cart := OrderView{
		Items: []ItemView{
			{ID: 1, VariantID: 5, Quantity: 1, UnitPrice: models.Money(1000)},
		},
	}
	report, err := CheckSync(cart, map[uint]LiveConfig{})
	if err != nil {
		t.Fatalf("CheckSync error: %v", err)
	}
	if !report.NeedsSync || len(report.Diffs) != 1 || report.Diffs[0].Reason != DiffReasonScheduleMissing {
		t.Fatalf("expected schedule_missing diff, got %+v", report)
	}
}

func TestCheckSyncPropagatesConfigurationError(t *testing.T) {
	cart := OrderView{
		Items: []ItemView{{ID: 1, VariantID: 1, Quantity: 9, UnitPrice: models.Money(900)}},
	}
	live := map[uint]LiveConfig{
		1: {Schedule: PriceSchedule{
			BasePrice: models.Money(1000),
			Tiers: []PriceTier{
				{MinQuantity: 5, MaxQuantity: intPtr(10), UnitPrice: models.Money(900)},
				{MinQuantity: 8, MaxQuantity: intPtr(20), UnitPrice: models.Money(850)},
			},
		}},
	}
	if _, err := CheckSync(cart, live); !errors.Is(err, ErrScheduleOverlap) {
		t.Fatalf("expected ErrScheduleOverlap, got %v", err)
	}
}
