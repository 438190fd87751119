package pricing

import (
	"errors"
	"testing"

	"github.com/storefront-next/internal/models"
)

func intPtr(v int) *int {
	return &v
}

func TestResolveTierBulkQuantity(t *testing.T) {
	schedule := PriceSchedule{
		BasePrice: models.Money(1000),
		Tiers: []PriceTier{
			{MinQuantity: 10, MaxQuantity: nil, UnitPrice: models.Money(800)},
		},
	}
	result, err := ResolveTier(schedule, 12)
	if err != nil {
		t.Fatalf("ResolveTier error: %v", err)
	}
	if result.UnitPrice != models.Money(800) {
		t.Fatalf("expected unit price 800, got %d", result.UnitPrice)
	}
	if result.Tier == nil || result.Tier.MinQuantity != 10 {
		t.Fatalf("expected matched tier min_quantity=10, got %+v", result.Tier)
	}
}

func TestResolveTierFallbackBasePrice(t *testing.T) {
	schedule := PriceSchedule{
		BasePrice: models.Money(1000),
		Tiers: []PriceTier{
			{MinQuantity: 10, MaxQuantity: nil, UnitPrice: models.Money(800)},
		},
	}
	result, err := ResolveTier(schedule, 3)
	if err != nil {
		t.Fatalf("ResolveTier error: %v", err)
	}
	if result.UnitPrice != models.Money(1000) || result.Tier != nil {
		t.Fatalf("expected base price fallback, got %+v", result)
	}
}

func TestResolveTierOverlapSurfacesError(t *testing.T) {
	schedule := PriceSchedule{
		BasePrice: models.Money(1000),
		Tiers: []PriceTier{
			{MinQuantity: 5, MaxQuantity: intPtr(10), UnitPrice: models.Money(900)},
			{MinQuantity: 8, MaxQuantity: intPtr(20), UnitPrice: models.Money(850)},
		},
	}
	if _, err := ResolveTier(schedule, 9); !errors.Is(err, ErrScheduleOverlap) {
		t.Fatalf("expected ErrScheduleOverlap, got %v", err)
	}
}

func TestValidateScheduleUnboundedMustBeHighest(t *testing.T) {
	schedule := PriceSchedule{
		BasePrice: models.Money(1000),
		Tiers: []PriceTier{
			{MinQuantity: 5, MaxQuantity: nil, UnitPrice: models.Money(900)},
			{MinQuantity: 20, MaxQuantity: intPtr(50), UnitPrice: models.Money(800)},
		},
	}
	if err := ValidateSchedule(schedule); !errors.Is(err, ErrScheduleOverlap) {
		t.Fatalf("expected ErrScheduleOverlap for non-highest unbounded tier, got %v", err)
	}
}

func TestValidateScheduleRejectsInvalidRange(t *testing.T) {
	schedule := PriceSchedule{
		BasePrice: models.Money(1000),
		Tiers: []PriceTier{
			{MinQuantity: 10, MaxQuantity: intPtr(5), UnitPrice: models.Money(900)},
		},
	}
	if err := ValidateSchedule(schedule); !errors.Is(err, ErrTierRange) {
		t.Fatalf("expected ErrTierRange, got %v", err)
	}
	schedule.Tiers = []PriceTier{{MinQuantity: 0, MaxQuantity: nil, UnitPrice: models.Money(900)}}
	if err := ValidateSchedule(schedule); !errors.Is(err, ErrTierRange) {
		t.Fatalf("expected ErrTierRange for min_quantity 0, got %v", err)
	}
}

func TestResolveTierMonotonicUnitPrice(t *testing.T) {
	schedule := PriceSchedule{
		BasePrice: models.Money(1000),
		Tiers: []PriceTier{
			{MinQuantity: 5, MaxQuantity: intPtr(9), UnitPrice: models.Money(900)},
			{MinQuantity: 10, MaxQuantity: intPtr(49), UnitPrice: models.Money(800)},
			{MinQuantity: 50, MaxQuantity: nil, UnitPrice: models.Money(700)},
		},
	}
	prev := models.Money(1 << 40)
	for quantity := 1; quantity <= 200; quantity++ {
		result, err := ResolveTier(schedule, quantity)
		if err != nil {
			t.Fatalf("ResolveTier(%d) error: %v", quantity, err)
		}
		if result.UnitPrice > prev {
			t.Fatalf("unit price increased at quantity %d: %d > %d", quantity, result.UnitPrice, prev)
		}
		prev = result.UnitPrice
	}
}
