package pricing

import (
	"errors"
	"testing"

	"github.com/storefront-next/internal/models"
)

func TestAggregateOrderDiscounts(t *testing.T) {
	order := OrderView{
		Items: []ItemView{
			{ID: 1, VariantID: 1, Quantity: 10, UnitPrice: models.Money(1000)},
		},
		CouponAmount:     models.Money(1000),
		PointsAmount:     models.Money(500),
		MemberTierAmount: models.Money(300),
	}
	totals, err := Aggregate(order)
	if err != nil {
		t.Fatalf("Aggregate error: %v", err)
	}
	if totals.Gross != models.Money(10000) {
		t.Fatalf("expected gross 10000, got %d", totals.Gross)
	}
	if totals.OrderDiscounts != models.Money(1800) {
		t.Fatalf("expected order discounts 1800, got %d", totals.OrderDiscounts)
	}
	if totals.Net != models.Money(8200) {
		t.Fatalf("expected net 8200, got %d", totals.Net)
	}
}

func TestAggregateGrossUsesOriginalPrice(t *testing.T) {
	order := OrderView{
		Items: []ItemView{
			{
				ID: 1, VariantID: 1, Quantity: 12,
				UnitPrice:         models.Money(800),
				Source:            models.DiscountSourceBulkTier,
				OriginalUnitPrice: models.Money(1000),
				DiscountAmount:    models.Money(200),
				IsBulkPrice:       true,
			},
		},
	}
	totals, err := Aggregate(order)
	if err != nil {
		t.Fatalf("Aggregate error: %v", err)
	}
	if totals.Gross != models.Money(12000) {
		t.Fatalf("expected gross from original price 12000, got %d", totals.Gross)
	}
	if totals.ItemDiscounts != models.Money(2400) {
		t.Fatalf("expected item discounts 2400, got %d", totals.ItemDiscounts)
	}
	if totals.Net != models.Money(9600) {
		t.Fatalf("expected net 9600, got %d", totals.Net)
	}
}

func TestAggregateIdempotent(t *testing.T) {
	order := OrderView{
		Items: []ItemView{
			{ID: 1, VariantID: 1, Quantity: 3, UnitPrice: models.Money(850),
				Source: models.DiscountSourceVariantDiscount, OriginalUnitPrice: models.Money(1000), DiscountAmount: models.Money(150)},
			{ID: 2, VariantID: 2, Quantity: 1, UnitPrice: models.Money(0),
				Source: models.DiscountSourcePwp, OriginalUnitPrice: models.Money(500), DiscountAmount: models.Money(500)},
		},
		CouponAmount:   models.Money(200),
		ShippingAmount: models.Money(600),
	}
	first, err := Aggregate(order)
	if err != nil {
		t.Fatalf("Aggregate error: %v", err)
	}
	second, err := Aggregate(order)
	if err != nil {
		t.Fatalf("Aggregate error: %v", err)
	}
	if first != second {
		t.Fatalf("aggregate not idempotent: %+v vs %+v", first, second)
	}
}

func TestAggregateCouponShareTakesPrecedence(t *testing.T) {
	order := OrderView{
		Items: []ItemView{
			{ID: 1, VariantID: 1, Quantity: 1, UnitPrice: models.Money(6000), CouponShare: models.Money(600)},
			{ID: 2, VariantID: 2, Quantity: 1, UnitPrice: models.Money(4000), CouponShare: models.Money(400)},
		},
		// 单级缓存与行级分摊并存时只取行级，避免同一笔优惠重复计入
		CouponAmount: models.Money(1000),
	}
	totals, err := Aggregate(order)
	if err != nil {
		t.Fatalf("Aggregate error: %v", err)
	}
	if totals.OrderDiscounts != models.Money(1000) {
		t.Fatalf("expected coupon counted once (1000), got %d", totals.OrderDiscounts)
	}
	if totals.Net != models.Money(9000) {
		t.Fatalf("expected net 9000, got %d", totals.Net)
	}
}

func TestAggregateFreeShippingZeroesShipping(t *testing.T) {
	order := OrderView{
		Items:          []ItemView{{ID: 1, VariantID: 1, Quantity: 1, UnitPrice: models.Money(5000)}},
		ShippingAmount: models.Money(800),
		FreeShipping:   true,
	}
	totals, err := Aggregate(order)
	if err != nil {
		t.Fatalf("Aggregate error: %v", err)
	}
	if totals.Shipping != 0 || totals.Net != models.Money(5000) {
		t.Fatalf("expected free shipping, got %+v", totals)
	}
}

func TestAggregateNetNeverNegative(t *testing.T) {
	order := OrderView{
		Items:        []ItemView{{ID: 1, VariantID: 1, Quantity: 1, UnitPrice: models.Money(1000)}},
		CouponAmount: models.Money(5000),
	}
	totals, err := Aggregate(order)
	if err != nil {
		t.Fatalf("Aggregate error: %v", err)
	}
	if totals.Net != 0 {
		t.Fatalf("expected net clamped to 0, got %d", totals.Net)
	}
}

func TestReconstructOriginalPriceLegacyBulkTier(t *testing.T) {
	item := ItemView{
		ID: 1, VariantID: 9, Quantity: 5,
		UnitPrice:   models.Money(800),
		Source:      models.DiscountSourceBulkTier,
		IsBulkPrice: true,
	}
	if _, err := ReconstructOriginalPrice(item, nil); !errors.Is(err, ErrAnnotationIncomplete) {
		t.Fatalf("expected ErrAnnotationIncomplete without snapshot, got %v", err)
	}
	original, err := ReconstructOriginalPrice(item, map[uint]models.Money{9: models.Money(1000)})
	if err != nil {
		t.Fatalf("ReconstructOriginalPrice error: %v", err)
	}
	if original != models.Money(1000) {
		t.Fatalf("expected snapshot base price 1000, got %d", original)
	}
}

func TestAggregateIncompleteAnnotation(t *testing.T) {
	order := OrderView{
		Items: []ItemView{
			{ID: 1, VariantID: 1, Quantity: 1, UnitPrice: models.Money(100), Source: models.DiscountSourceBulkTier, IsBulkPrice: true},
		},
	}
	if _, err := Aggregate(order); !errors.Is(err, ErrAnnotationIncomplete) {
		t.Fatalf("expected ErrAnnotationIncomplete, got %v", err)
	}
}

func TestReconstructOriginalPriceZeroPricedReward(t *testing.T) {
	item := ItemView{
		ID: 2, VariantID: 3, Quantity: 1,
		UnitPrice:      models.Money(0),
		DiscountAmount: models.Money(0),
		Source:         models.DiscountSourcePwp,
	}
	original, err := ReconstructOriginalPrice(item, nil)
	if err != nil {
		t.Fatalf("ReconstructOriginalPrice error: %v", err)
	}
	if original != 0 {
		t.Fatalf("expected zero original price for free reward, got %d", original)
	}
	order := OrderView{Items: []ItemView{
		{ID: 1, VariantID: 1, Quantity: 1, UnitPrice: models.Money(2000), Source: models.DiscountSourceNone},
		item,
	}}
	totals, err := Aggregate(order)
	if err != nil {
		t.Fatalf("Aggregate error: %v", err)
	}
	if totals.Gross != models.Money(2000) || totals.ItemDiscounts != 0 {
		t.Fatalf("unexpected totals for zero-priced reward: %+v", totals)
	}
}
