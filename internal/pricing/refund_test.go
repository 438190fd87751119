package pricing

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/storefront-next/internal/models"
)

func TestAllocateRefundRemainderFollowsLastUnit(t *testing.T) {
	// 单行：折前 1500，优惠券 500，实付 1000，数量 3 → 333/333/334
	order := OrderView{
		Items: []ItemView{
			{ID: 1, VariantID: 1, Quantity: 3, UnitPrice: models.Money(500)},
		},
		CouponAmount: models.Money(500),
	}

	var refunded models.Money
	for returned := 0; returned < 3; returned++ {
		allocations, err := AllocateRefund(order, []ReturnLine{
			{ItemID: 1, Quantity: 1, AlreadyReturned: returned},
		})
		if err != nil {
			t.Fatalf("AllocateRefund error: %v", err)
		}
		if len(allocations) != 1 {
			t.Fatalf("expected 1 allocation, got %d", len(allocations))
		}
		alloc := allocations[0]
		if alloc.PerUnit != models.Money(333) {
			t.Fatalf("expected per-unit 333, got %d", alloc.PerUnit)
		}
		if returned == 2 {
			if alloc.Remainder != models.Money(1) || alloc.Total != models.Money(334) {
				t.Fatalf("expected last unit to carry remainder, got %+v", alloc)
			}
		} else if alloc.Total != models.Money(333) {
			t.Fatalf("expected total 333 before last unit, got %+v", alloc)
		}
		refunded += alloc.Total
	}

	totals, err := Aggregate(order)
	if err != nil {
		t.Fatalf("Aggregate error: %v", err)
	}
	if refunded != totals.Net {
		t.Fatalf("unit-by-unit refunds %d do not sum to net %d", refunded, totals.Net)
	}
}

func TestAllocateRefundFullReturnEqualsNet(t *testing.T) {
	order := OrderView{
		Items: []ItemView{
			{ID: 1, VariantID: 1, Quantity: 7, UnitPrice: models.Money(800),
				Source: models.DiscountSourceBulkTier, OriginalUnitPrice: models.Money(1000),
				DiscountAmount: models.Money(200), IsBulkPrice: true},
			{ID: 2, VariantID: 2, Quantity: 3, UnitPrice: models.Money(450),
				Source: models.DiscountSourceVariantDiscount, OriginalUnitPrice: models.Money(500),
				DiscountAmount: models.Money(50)},
			{ID: 3, VariantID: 3, Quantity: 1, UnitPrice: models.Money(0),
				Source: models.DiscountSourcePwp, OriginalUnitPrice: models.Money(500),
				DiscountAmount: models.Money(500)},
			{ID: 4, VariantID: 4, Quantity: 11, UnitPrice: models.Money(333)},
		},
		CouponAmount:   models.Money(777),
		PointsAmount:   models.Money(123),
		ShippingAmount: models.Money(650),
	}
	totals, err := Aggregate(order)
	if err != nil {
		t.Fatalf("Aggregate error: %v", err)
	}

	returns := make([]ReturnLine, 0, len(order.Items))
	for _, item := range order.Items {
		returns = append(returns, ReturnLine{ItemID: item.ID, Quantity: item.Quantity})
	}
	allocations, err := AllocateRefund(order, returns)
	if err != nil {
		t.Fatalf("AllocateRefund error: %v", err)
	}

	var refunded models.Money
	for _, alloc := range allocations {
		refunded += alloc.Total
	}
	if refunded != totals.Net {
		t.Fatalf("full return refunds %d != net %d", refunded, totals.Net)
	}
}

func randomRefundOrder(r *rand.Rand) OrderView {
	lineCount := 1 + r.Intn(50)
	order := OrderView{}
	var gross models.Money
	for i := 0; i < lineCount; i++ {
		quantity := 1 + r.Intn(10000)
		original := models.Money(200 + r.Intn(100000))
		item := ItemView{
			ID:        uint(i + 1),
			VariantID: uint(i + 1),
			Quantity:  quantity,
		}
		switch r.Intn(4) {
		case 0:
			item.UnitPrice = original
		case 1:
			discount := models.Money(r.Int63n(int64(original) / 2))
			item.Source = models.DiscountSourceBulkTier
			item.OriginalUnitPrice = original
			item.UnitPrice = original - discount
			item.DiscountAmount = discount
			item.IsBulkPrice = true
		case 2:
			discount := models.Money(r.Int63n(int64(original) / 2))
			item.Source = models.DiscountSourceVariantDiscount
			item.OriginalUnitPrice = original
			item.UnitPrice = original - discount
			item.DiscountAmount = discount
		case 3:
			discount := models.Money(r.Int63n(int64(original) / 2))
			item.Source = models.DiscountSourcePwp
			item.OriginalUnitPrice = original
			item.UnitPrice = original - discount
			item.DiscountAmount = discount
		}
		order.Items = append(order.Items, item)
		gross += original.Mul(quantity)
	}
	order.CouponAmount = models.Money(r.Int63n(int64(gross)/16 + 1))
	order.PointsAmount = models.Money(r.Int63n(int64(gross)/16 + 1))
	order.MemberPromoAmount = models.Money(r.Int63n(int64(gross)/16 + 1))
	order.MemberTierAmount = models.Money(r.Int63n(int64(gross)/16 + 1))
	order.ShippingAmount = models.Money(r.Int63n(200000))
	order.FreeShipping = r.Intn(2) == 0
	return order
}

func TestAllocateRefundConservationRandomized(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for round := 0; round < 300; round++ {
		order := randomRefundOrder(r)
		totals, err := Aggregate(order)
		if err != nil {
			t.Fatalf("round %d: Aggregate error: %v", round, err)
		}
		returns := make([]ReturnLine, 0, len(order.Items))
		for _, item := range order.Items {
			returns = append(returns, ReturnLine{ItemID: item.ID, Quantity: item.Quantity})
		}
		allocations, err := AllocateRefund(order, returns)
		if err != nil {
			t.Fatalf("round %d: AllocateRefund error: %v", round, err)
		}
		var refunded models.Money
		for _, alloc := range allocations {
			refunded += alloc.Total
		}
		if refunded != totals.Net {
			t.Fatalf("round %d: refunds %d != net %d (lines=%d)", round, refunded, totals.Net, len(order.Items))
		}
	}
}

func TestAllocateRefundQuantityValidation(t *testing.T) {
	order := OrderView{
		Items: []ItemView{{ID: 1, VariantID: 1, Quantity: 2, UnitPrice: models.Money(100)}},
	}
	if _, err := AllocateRefund(order, []ReturnLine{{ItemID: 1, Quantity: 0}}); !errors.Is(err, ErrReturnQuantity) {
		t.Fatalf("expected ErrReturnQuantity for zero quantity, got %v", err)
	}
	if _, err := AllocateRefund(order, []ReturnLine{{ItemID: 1, Quantity: 2, AlreadyReturned: 1}}); !errors.Is(err, ErrReturnQuantity) {
		t.Fatalf("expected ErrReturnQuantity for over-return, got %v", err)
	}
	if _, err := AllocateRefund(order, []ReturnLine{{ItemID: 99, Quantity: 1}}); !errors.Is(err, ErrReturnItemNotFound) {
		t.Fatalf("expected ErrReturnItemNotFound, got %v", err)
	}
}

func TestAllocateRefundRepeatedLinesAccumulate(t *testing.T) {
	order := OrderView{
		Items: []ItemView{
			{ID: 1, VariantID: 1, Quantity: 3, UnitPrice: models.Money(1000)},
		},
	}

	// 同一行在一次请求中重复出现，累计超过可退数量必须整体拒绝
	if _, err := AllocateRefund(order, []ReturnLine{
		{ItemID: 1, Quantity: 2},
		{ItemID: 1, Quantity: 2},
	}); !errors.Is(err, ErrReturnQuantity) {
		t.Fatalf("expected ErrReturnQuantity for duplicated over-return, got %v", err)
	}

	// 累计仍在可退范围内时允许，余数归属最后退出的批次
	discounted := OrderView{
		Items: []ItemView{
			{ID: 1, VariantID: 1, Quantity: 3, UnitPrice: models.Money(500)},
		},
		CouponAmount: models.Money(500),
	}
	totals, err := Aggregate(discounted)
	if err != nil {
		t.Fatalf("Aggregate error: %v", err)
	}
	allocations, err := AllocateRefund(discounted, []ReturnLine{
		{ItemID: 1, Quantity: 1},
		{ItemID: 1, Quantity: 2},
	})
	if err != nil {
		t.Fatalf("AllocateRefund error: %v", err)
	}
	if len(allocations) != 2 {
		t.Fatalf("expected 2 allocations, got %d", len(allocations))
	}
	if allocations[0].Remainder != 0 {
		t.Fatalf("first batch must not carry the remainder: %+v", allocations[0])
	}
	if allocations[1].Remainder != models.Money(1) {
		t.Fatalf("final batch must carry the remainder: %+v", allocations[1])
	}
	if got := allocations[0].Total + allocations[1].Total; got != totals.Net {
		t.Fatalf("repeated-line full return refunds %d != net %d", got, totals.Net)
	}
}

func TestAllocateRefundPartialSubset(t *testing.T) {
	order := OrderView{
		Items: []ItemView{
			{ID: 1, VariantID: 1, Quantity: 4, UnitPrice: models.Money(2500)},
			{ID: 2, VariantID: 2, Quantity: 2, UnitPrice: models.Money(1000)},
		},
		CouponAmount: models.Money(600),
	}
	allocations, err := AllocateRefund(order, []ReturnLine{{ItemID: 2, Quantity: 1}})
	if err != nil {
		t.Fatalf("AllocateRefund error: %v", err)
	}
	if len(allocations) != 1 {
		t.Fatalf("expected 1 allocation, got %d", len(allocations))
	}
	alloc := allocations[0]
	if alloc.LinePaidTotal != models.Money(1900) {
		t.Fatalf("expected line paid 1900 after proportional coupon share, got %d", alloc.LinePaidTotal)
	}
	if alloc.PerUnit != models.Money(950) || alloc.Total != models.Money(950) || alloc.Remainder != 0 {
		t.Fatalf("unexpected partial allocation: %+v", alloc)
	}
}
