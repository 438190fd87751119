package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/storefront-next/internal/constants"
	"github.com/storefront-next/internal/models"
	"github.com/storefront-next/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupCouponServiceTest(t *testing.T) (*CouponService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:coupon_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Coupon{}, &models.CouponUsage{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewCouponService(repository.NewCouponRepository(db)), db
}

func TestApplyCouponFixed(t *testing.T) {
	svc, db := setupCouponServiceTest(t)
	if err := db.Create(&models.Coupon{
		Code: "FLAT500", Type: constants.CouponTypeFixed, Value: 500,
		MinAmount: 2000, IsActive: true,
	}).Error; err != nil {
		t.Fatalf("create coupon failed: %v", err)
	}

	amount, coupon, err := svc.ApplyCoupon(3000, "FLAT500", 1, time.Now())
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if amount != 500 || coupon == nil {
		t.Fatalf("expected 500 discount, got %d", amount)
	}

	if _, _, err := svc.ApplyCoupon(1000, "FLAT500", 1, time.Now()); !errors.Is(err, ErrCouponMinAmount) {
		t.Fatalf("expected min amount error, got: %v", err)
	}
}

func TestApplyCouponPercentWithCap(t *testing.T) {
	svc, db := setupCouponServiceTest(t)
	if err := db.Create(&models.Coupon{
		Code: "TEN", Type: constants.CouponTypePercent, Value: 10,
		MaxDiscount: 300, IsActive: true,
	}).Error; err != nil {
		t.Fatalf("create coupon failed: %v", err)
	}

	amount, _, err := svc.ApplyCoupon(2000, "TEN", 1, time.Now())
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if amount != 200 {
		t.Fatalf("expected 200, got %d", amount)
	}

	amount, _, err = svc.ApplyCoupon(10000, "TEN", 1, time.Now())
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if amount != 300 {
		t.Fatalf("expected cap at 300, got %d", amount)
	}
}

func TestApplyCouponExpiredAndLimits(t *testing.T) {
	svc, db := setupCouponServiceTest(t)
	past := time.Now().Add(-time.Hour)
	if err := db.Create(&models.Coupon{
		Code: "OLD", Type: constants.CouponTypeFixed, Value: 100,
		EndsAt: &past, IsActive: true,
	}).Error; err != nil {
		t.Fatalf("create coupon failed: %v", err)
	}
	if _, _, err := svc.ApplyCoupon(1000, "OLD", 1, time.Now()); !errors.Is(err, ErrCouponExpired) {
		t.Fatalf("expected expired, got: %v", err)
	}

	if err := db.Create(&models.Coupon{
		Code: "ONCE", Type: constants.CouponTypeFixed, Value: 100,
		UsageLimit: 1, UsedCount: 1, IsActive: true,
	}).Error; err != nil {
		t.Fatalf("create coupon failed: %v", err)
	}
	if _, _, err := svc.ApplyCoupon(1000, "ONCE", 1, time.Now()); !errors.Is(err, ErrCouponUsageLimit) {
		t.Fatalf("expected usage limit, got: %v", err)
	}

	if _, _, err := svc.ApplyCoupon(1000, "MISSING", 1, time.Now()); !errors.Is(err, ErrCouponInvalid) {
		t.Fatalf("expected invalid, got: %v", err)
	}
}

func TestApplyCouponPerUserLimit(t *testing.T) {
	svc, db := setupCouponServiceTest(t)
	coupon := models.Coupon{
		Code: "PERUSER", Type: constants.CouponTypeFixed, Value: 100,
		PerUserLimit: 1, IsActive: true,
	}
	if err := db.Create(&coupon).Error; err != nil {
		t.Fatalf("create coupon failed: %v", err)
	}
	if err := db.Create(&models.CouponUsage{
		CouponID: coupon.ID, UserID: 9, OrderID: 1, Amount: 100,
	}).Error; err != nil {
		t.Fatalf("create usage failed: %v", err)
	}

	if _, _, err := svc.ApplyCoupon(1000, "PERUSER", 9, time.Now()); !errors.Is(err, ErrCouponUsageLimit) {
		t.Fatalf("expected per-user limit, got: %v", err)
	}
	if _, _, err := svc.ApplyCoupon(1000, "PERUSER", 10, time.Now()); err != nil {
		t.Fatalf("expected other user allowed, got: %v", err)
	}
}

func TestAllocateSharesConserveTotal(t *testing.T) {
	svc, _ := setupCouponServiceTest(t)
	items := []models.OrderItem{
		{TotalPrice: 9600},
		{TotalPrice: 900},
		{TotalPrice: 501},
	}
	shares := svc.AllocateShares(items, 1000)
	if len(shares) != 3 {
		t.Fatalf("expected 3 shares, got %d", len(shares))
	}
	var sum models.Money
	for _, share := range shares {
		sum += share
	}
	if sum != 1000 {
		t.Fatalf("expected shares to sum to 1000, got %d", sum)
	}
	if shares[0] <= shares[1] {
		t.Fatalf("expected proportional allocation, got %+v", shares)
	}
}

func TestRecordUsageIncrementsCount(t *testing.T) {
	svc, db := setupCouponServiceTest(t)
	coupon := models.Coupon{
		Code: "TRACK", Type: constants.CouponTypeFixed, Value: 100, IsActive: true,
	}
	if err := db.Create(&coupon).Error; err != nil {
		t.Fatalf("create coupon failed: %v", err)
	}

	if err := svc.RecordUsage(coupon.ID, 5, 42, 100); err != nil {
		t.Fatalf("record usage failed: %v", err)
	}

	var stored models.Coupon
	if err := db.First(&stored, coupon.ID).Error; err != nil {
		t.Fatalf("load coupon failed: %v", err)
	}
	if stored.UsedCount != 1 {
		t.Fatalf("expected used count 1, got %d", stored.UsedCount)
	}
	var usageCount int64
	if err := db.Model(&models.CouponUsage{}).Where("coupon_id = ?", coupon.ID).Count(&usageCount).Error; err != nil {
		t.Fatalf("count usage failed: %v", err)
	}
	if usageCount != 1 {
		t.Fatalf("expected 1 usage row, got %d", usageCount)
	}
}
