package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/storefront-next/internal/cache"
	"github.com/storefront-next/internal/constants"
	"github.com/storefront-next/internal/models"
	"github.com/storefront-next/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

type orderServiceFixture struct {
	db       *gorm.DB
	orderSvc *OrderService
	cartSvc  *CartService
	syncSvc  *PriceSyncService
	tierSvc  *TierAdminService
	user     models.User
	variantA models.ProductVariant
	variantB models.ProductVariant
}

func setupOrderServiceTest(t *testing.T) *orderServiceFixture {
	t.Helper()
	dsn := fmt.Sprintf("file:order_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{}, &models.MemberTier{}, &models.MemberPromo{}, &models.PointsAccount{},
		&models.Product{}, &models.ProductVariant{}, &models.PriceTier{}, &models.PwpRule{},
		&models.CartItem{}, &models.Order{}, &models.OrderItem{}, &models.Refund{},
		&models.Coupon{}, &models.CouponUsage{}, &models.Setting{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	user := models.User{
		Email:        "buyer@example.com",
		PasswordHash: "hash",
		Status:       constants.UserStatusActive,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}

	product := models.Product{
		Slug:      "widget",
		TitleJSON: models.JSON{"en-US": "Widget"},
		IsActive:  true,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	variantA := models.ProductVariant{
		ProductID: product.ID,
		SKUCode:   "WIDGET-A",
		BasePrice: 1000,
		IsActive:  true,
	}
	if err := db.Create(&variantA).Error; err != nil {
		t.Fatalf("create variant a failed: %v", err)
	}
	if err := db.Create(&models.PriceTier{
		VariantID:   variantA.ID,
		MinQuantity: 10,
		UnitPrice:   800,
	}).Error; err != nil {
		t.Fatalf("create tier failed: %v", err)
	}

	variantB := models.ProductVariant{
		ProductID:      product.ID,
		SKUCode:        "WIDGET-B",
		BasePrice:      500,
		DiscountAmount: 50,
		IsActive:       true,
	}
	if err := db.Create(&variantB).Error; err != nil {
		t.Fatalf("create variant b failed: %v", err)
	}

	orderRepo := repository.NewOrderRepository(db)
	cartRepo := repository.NewCartRepository(db)
	variantRepo := repository.NewVariantRepository(db)
	tierRepo := repository.NewPriceTierRepository(db)
	memberRepo := repository.NewMemberRepository(db)
	userRepo := repository.NewUserRepository(db)

	settingSvc := NewSettingService(repository.NewSettingRepository(db))
	couponSvc := NewCouponService(repository.NewCouponRepository(db))
	pointsSvc := NewPointsService(memberRepo, settingSvc)
	membershipSvc := NewMembershipService(memberRepo, userRepo)
	syncSvc := NewPriceSyncService(variantRepo, cache.NewScheduleCache(time.Minute, nil))
	pwpSvc := NewPwpService(repository.NewPwpRuleRepository(db), variantRepo)
	cartSvc := NewCartService(cartRepo, variantRepo, pwpSvc, syncSvc)
	tierSvc := NewTierAdminService(variantRepo, tierRepo, syncSvc)
	orderSvc := NewOrderService(orderRepo, cartRepo, couponSvc, pointsSvc, membershipSvc,
		settingSvc, syncSvc, memberRepo, nil, 15)

	return &orderServiceFixture{
		db:       db,
		orderSvc: orderSvc,
		cartSvc:  cartSvc,
		syncSvc:  syncSvc,
		tierSvc:  tierSvc,
		user:     user,
		variantA: variantA,
		variantB: variantB,
	}
}

func (f *orderServiceFixture) fillCart(t *testing.T) {
	t.Helper()
	now := time.Now()
	if _, err := f.cartSvc.AddItem(AddCartItemInput{
		UserID: f.user.ID, VariantID: f.variantA.ID, Quantity: 12,
	}, now); err != nil {
		t.Fatalf("add variant a failed: %v", err)
	}
	if _, err := f.cartSvc.AddItem(AddCartItemInput{
		UserID: f.user.ID, VariantID: f.variantB.ID, Quantity: 2,
	}, now); err != nil {
		t.Fatalf("add variant b failed: %v", err)
	}
}

func TestCheckoutCreatesFrozenOrder(t *testing.T) {
	f := setupOrderServiceTest(t)
	f.fillCart(t)

	settingSvc := f.orderSvc.settingSvc
	if _, err := settingSvc.Update(constants.SettingKeyShippingConfig, map[string]interface{}{
		constants.SettingFieldShippingFlatAmount: 500,
		constants.SettingFieldFreeShippingMin:    20000,
	}); err != nil {
		t.Fatalf("update shipping config failed: %v", err)
	}
	if err := f.db.Create(&models.Coupon{
		Code:      "SAVE10",
		Type:      constants.CouponTypeFixed,
		Value:     1000,
		MinAmount: 5000,
		IsActive:  true,
	}).Error; err != nil {
		t.Fatalf("create coupon failed: %v", err)
	}

	order, err := f.orderSvc.Create(CheckoutInput{
		UserID:     f.user.ID,
		CouponCode: "SAVE10",
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	// 折前 12×1000 + 2×500，行级折扣 12×200 + 2×50，单级折扣 1000，运费 500
	if order.GrossAmount != 13000 {
		t.Fatalf("expected gross 13000, got %d", order.GrossAmount)
	}
	if order.ItemDiscountAmount != 2500 {
		t.Fatalf("expected item discounts 2500, got %d", order.ItemDiscountAmount)
	}
	if order.OrderDiscountAmount != 1000 {
		t.Fatalf("expected order discounts 1000, got %d", order.OrderDiscountAmount)
	}
	if order.NetAmount != 10000 {
		t.Fatalf("expected net 10000, got %d", order.NetAmount)
	}
	if order.FreeShipping {
		t.Fatalf("expected shipping to apply")
	}

	stored, err := f.orderSvc.orderRepo.GetByID(order.ID)
	if err != nil || stored == nil {
		t.Fatalf("load order failed: %v", err)
	}
	if len(stored.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(stored.Items))
	}
	var shareSum models.Money
	for _, item := range stored.Items {
		if item.OriginalUnitPrice == 0 {
			t.Fatalf("expected frozen original price on item %d", item.ID)
		}
		shareSum += item.CouponShare
	}
	if shareSum != 1000 {
		t.Fatalf("expected coupon shares to sum to 1000, got %d", shareSum)
	}

	var cartCount int64
	if err := f.db.Model(&models.CartItem{}).Where("user_id = ?", f.user.ID).Count(&cartCount).Error; err != nil {
		t.Fatalf("count cart failed: %v", err)
	}
	if cartCount != 0 {
		t.Fatalf("expected cart cleared, got %d items", cartCount)
	}
}

func TestCheckoutRejectedOnPriceDrift(t *testing.T) {
	f := setupOrderServiceTest(t)
	f.fillCart(t)

	// 改档后缓存失效，快照价与现行价不再一致
	if _, err := f.tierSvc.ReplaceTiers(f.variantA.ID, []TierInput{
		{MinQuantity: 10, UnitPrice: 750},
	}); err != nil {
		t.Fatalf("replace tiers failed: %v", err)
	}

	quote, err := f.orderSvc.Preview(CheckoutInput{UserID: f.user.ID})
	if !errors.Is(err, ErrPriceDrift) {
		t.Fatalf("expected price drift, got: %v", err)
	}
	if quote == nil || quote.Drift == nil || !quote.Drift.NeedsSync {
		t.Fatalf("expected drift report, got: %+v", quote)
	}

	if _, err := f.orderSvc.Create(CheckoutInput{UserID: f.user.ID}); !errors.Is(err, ErrPriceDrift) {
		t.Fatalf("expected create rejected on drift, got: %v", err)
	}

	// 显式重新定价后按新价结算
	if _, err := f.cartSvc.Reprice(f.user.ID); err != nil {
		t.Fatalf("reprice failed: %v", err)
	}
	order, err := f.orderSvc.Create(CheckoutInput{UserID: f.user.ID})
	if err != nil {
		t.Fatalf("create after reprice failed: %v", err)
	}
	// 12×(1000−750) + 2×50 行级折扣
	if order.ItemDiscountAmount != 3100 {
		t.Fatalf("expected item discounts 3100, got %d", order.ItemDiscountAmount)
	}
}

func TestCheckoutStockInsufficient(t *testing.T) {
	f := setupOrderServiceTest(t)
	if err := f.db.Model(&models.ProductVariant{}).Where("id = ?", f.variantA.ID).
		Update("stock_total", 5).Error; err != nil {
		t.Fatalf("set stock failed: %v", err)
	}
	f.fillCart(t)

	_, err := f.orderSvc.Create(CheckoutInput{UserID: f.user.ID})
	if !errors.Is(err, ErrStockInsufficient) {
		t.Fatalf("expected stock insufficient, got: %v", err)
	}
}

func TestMarkPaidAndTimeoutCancel(t *testing.T) {
	f := setupOrderServiceTest(t)
	f.fillCart(t)

	order, err := f.orderSvc.Create(CheckoutInput{UserID: f.user.ID})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	now := time.Now()
	paid, err := f.orderSvc.MarkPaid(order.ID, now)
	if err != nil {
		t.Fatalf("mark paid failed: %v", err)
	}
	if paid.Status != constants.OrderStatusPaid || paid.PaidAt == nil {
		t.Fatalf("unexpected paid order: %+v", paid)
	}
	if _, err := f.orderSvc.MarkPaid(order.ID, now); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("expected double pay rejected, got: %v", err)
	}

	// 已支付订单不被超时取消触碰
	if err := f.orderSvc.CancelIfExpired(order.ID, now.Add(time.Hour)); err != nil {
		t.Fatalf("cancel if expired failed: %v", err)
	}
	stored, _ := f.orderSvc.orderRepo.GetByID(order.ID)
	if stored.Status != constants.OrderStatusPaid {
		t.Fatalf("expected order to stay paid, got %s", stored.Status)
	}
}

func TestCancelExpiredPendingOrder(t *testing.T) {
	f := setupOrderServiceTest(t)
	f.fillCart(t)

	order, err := f.orderSvc.Create(CheckoutInput{UserID: f.user.ID})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	if err := f.orderSvc.CancelIfExpired(order.ID, time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("cancel if expired failed: %v", err)
	}
	stored, _ := f.orderSvc.orderRepo.GetByID(order.ID)
	if stored.Status != constants.OrderStatusCanceled {
		t.Fatalf("expected canceled, got %s", stored.Status)
	}

	var variant models.ProductVariant
	if err := f.db.First(&variant, f.variantA.ID).Error; err != nil {
		t.Fatalf("load variant failed: %v", err)
	}
	if variant.StockLocked != 0 {
		t.Fatalf("expected stock released, got locked=%d", variant.StockLocked)
	}
}
