package pricing

import (
	"errors"
	"testing"

	"github.com/storefront-next/internal/models"
)

func TestComposeItemPwpFreeReward(t *testing.T) {
	result, err := ComposeItem(ComposeInput{
		BasePrice: models.Money(500),
		Quantity:  1,
		Pwp: &PwpOverride{
			RuleID:         7,
			OriginalPrice:  models.Money(500),
			DiscountAmount: models.Money(500),
		},
	})
	if err != nil {
		t.Fatalf("ComposeItem error: %v", err)
	}
	if result.UnitPrice != 0 {
		t.Fatalf("expected free reward unit price 0, got %d", result.UnitPrice)
	}
	if result.Source != models.DiscountSourcePwp {
		t.Fatalf("expected pwp annotation, got %q", result.Source)
	}
	if result.OriginalUnitPrice != models.Money(500) || result.DiscountAmount != models.Money(500) {
		t.Fatalf("unexpected pwp annotation data: %+v", result)
	}
	if result.PwpRuleID != 7 {
		t.Fatalf("expected rule id 7, got %d", result.PwpRuleID)
	}
}

func TestComposeItemPwpIgnoresTierAndVariantDiscount(t *testing.T) {
	// 加购奖励价完全由规则决定，阶梯价与规格折扣不得再参与
	result, err := ComposeItem(ComposeInput{
		BasePrice: models.Money(1000),
		Quantity:  50,
		Schedule: PriceSchedule{
			BasePrice: models.Money(1000),
			Tiers:     []PriceTier{{MinQuantity: 10, UnitPrice: models.Money(100)}},
		},
		Pwp: &PwpOverride{
			RuleID:         3,
			OriginalPrice:  models.Money(1000),
			DiscountAmount: models.Money(200),
		},
		VariantDiscount: models.Money(900),
	})
	if err != nil {
		t.Fatalf("ComposeItem error: %v", err)
	}
	if result.UnitPrice != models.Money(800) {
		t.Fatalf("expected rule-determined price 800, got %d", result.UnitPrice)
	}
	if result.Source != models.DiscountSourcePwp || result.IsBulkPrice {
		t.Fatalf("expected single pwp annotation, got %+v", result)
	}
}

func TestComposeItemTierBeatsVariantDiscount(t *testing.T) {
	result, err := ComposeItem(ComposeInput{
		BasePrice: models.Money(1000),
		Quantity:  12,
		Schedule: PriceSchedule{
			BasePrice: models.Money(1000),
			Tiers:     []PriceTier{{MinQuantity: 10, UnitPrice: models.Money(800)}},
		},
		// 规格折扣幅度更大也不影响阶梯价优先
		VariantDiscount: models.Money(500),
	})
	if err != nil {
		t.Fatalf("ComposeItem error: %v", err)
	}
	if result.UnitPrice != models.Money(800) {
		t.Fatalf("expected tier price 800, got %d", result.UnitPrice)
	}
	if result.Source != models.DiscountSourceBulkTier || !result.IsBulkPrice {
		t.Fatalf("expected bulk_tier annotation, got %+v", result)
	}
	if result.OriginalUnitPrice != models.Money(1000) || result.DiscountAmount != models.Money(200) {
		t.Fatalf("unexpected bulk_tier annotation data: %+v", result)
	}
}

func TestComposeItemVariantDiscountWhenNoTierMatches(t *testing.T) {
	result, err := ComposeItem(ComposeInput{
		BasePrice: models.Money(1000),
		Quantity:  3,
		Schedule: PriceSchedule{
			BasePrice: models.Money(1000),
			Tiers:     []PriceTier{{MinQuantity: 10, UnitPrice: models.Money(800)}},
		},
		VariantDiscount: models.Money(150),
	})
	if err != nil {
		t.Fatalf("ComposeItem error: %v", err)
	}
	if result.UnitPrice != models.Money(850) || result.Source != models.DiscountSourceVariantDiscount {
		t.Fatalf("expected variant discount price 850, got %+v", result)
	}
}

func TestComposeItemClampsNegativePrice(t *testing.T) {
	result, err := ComposeItem(ComposeInput{
		BasePrice:       models.Money(300),
		Quantity:        1,
		VariantDiscount: models.Money(500),
	})
	if err != nil {
		t.Fatalf("ComposeItem error: %v", err)
	}
	if result.UnitPrice != 0 || !result.Clamped {
		t.Fatalf("expected clamped zero price, got %+v", result)
	}
	if result.DiscountAmount != models.Money(300) {
		t.Fatalf("expected effective discount 300 after clamp, got %d", result.DiscountAmount)
	}
}

func TestComposeItemBasePriceNoAnnotation(t *testing.T) {
	result, err := ComposeItem(ComposeInput{BasePrice: models.Money(1000), Quantity: 2})
	if err != nil {
		t.Fatalf("ComposeItem error: %v", err)
	}
	if result.UnitPrice != models.Money(1000) || result.Source != models.DiscountSourceNone {
		t.Fatalf("expected undiscounted base price, got %+v", result)
	}
}

func TestComposeItemPropagatesScheduleError(t *testing.T) {
	_, err := ComposeItem(ComposeInput{
		BasePrice: models.Money(1000),
		Quantity:  9,
		Schedule: PriceSchedule{
			BasePrice: models.Money(1000),
			Tiers: []PriceTier{
				{MinQuantity: 5, MaxQuantity: intPtr(10), UnitPrice: models.Money(900)},
				{MinQuantity: 8, MaxQuantity: intPtr(20), UnitPrice: models.Money(850)},
			},
		},
	})
	if !errors.Is(err, ErrScheduleOverlap) {
		t.Fatalf("expected ErrScheduleOverlap, got %v", err)
	}
}
