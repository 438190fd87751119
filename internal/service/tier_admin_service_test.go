package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/storefront-next/internal/cache"
	"github.com/storefront-next/internal/models"
	"github.com/storefront-next/internal/pricing"
	"github.com/storefront-next/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupTierAdminServiceTest(t *testing.T) (*TierAdminService, *PriceSyncService, models.ProductVariant) {
	t.Helper()
	dsn := fmt.Sprintf("file:tier_admin_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}, &models.ProductVariant{}, &models.PriceTier{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	product := models.Product{Slug: "thing", TitleJSON: models.JSON{}, IsActive: true}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	variant := models.ProductVariant{
		ProductID: product.ID,
		SKUCode:   "THING-STD",
		BasePrice: 1000,
		IsActive:  true,
	}
	if err := db.Create(&variant).Error; err != nil {
		t.Fatalf("create variant failed: %v", err)
	}

	variantRepo := repository.NewVariantRepository(db)
	syncSvc := NewPriceSyncService(variantRepo, cache.NewScheduleCache(time.Minute, nil))
	tierSvc := NewTierAdminService(variantRepo, repository.NewPriceTierRepository(db), syncSvc)
	return tierSvc, syncSvc, variant
}

func TestReplaceTiersRejectsOverlap(t *testing.T) {
	tierSvc, _, variant := setupTierAdminServiceTest(t)
	maxTwelve := 12

	_, err := tierSvc.ReplaceTiers(variant.ID, []TierInput{
		{MinQuantity: 5, MaxQuantity: &maxTwelve, UnitPrice: 900},
		{MinQuantity: 10, UnitPrice: 800},
	})
	if !errors.Is(err, pricing.ErrScheduleOverlap) {
		t.Fatalf("expected overlap rejection, got: %v", err)
	}
}

func TestReplaceTiersRejectsUnboundedMiddleTier(t *testing.T) {
	tierSvc, _, variant := setupTierAdminServiceTest(t)

	_, err := tierSvc.ReplaceTiers(variant.ID, []TierInput{
		{MinQuantity: 5, UnitPrice: 900},
		{MinQuantity: 10, UnitPrice: 800},
	})
	if !errors.Is(err, pricing.ErrScheduleOverlap) {
		t.Fatalf("expected unbounded middle tier rejected, got: %v", err)
	}
}

func TestReplaceTiersInvalidatesScheduleCache(t *testing.T) {
	tierSvc, syncSvc, variant := setupTierAdminServiceTest(t)

	// 预热缓存
	if _, ok, err := syncSvc.LiveConfig(variant.ID); err != nil || !ok {
		t.Fatalf("live config failed: ok=%v err=%v", ok, err)
	}

	maxNine := 9
	tiers, err := tierSvc.ReplaceTiers(variant.ID, []TierInput{
		{MinQuantity: 5, MaxQuantity: &maxNine, UnitPrice: 900},
		{MinQuantity: 10, UnitPrice: 800},
	})
	if err != nil {
		t.Fatalf("replace tiers failed: %v", err)
	}
	if len(tiers) != 2 {
		t.Fatalf("expected 2 tiers, got %d", len(tiers))
	}

	cfg, ok, err := syncSvc.LiveConfig(variant.ID)
	if err != nil || !ok {
		t.Fatalf("live config after replace failed: ok=%v err=%v", ok, err)
	}
	if len(cfg.Schedule.Tiers) != 2 {
		t.Fatalf("expected cache refreshed with 2 tiers, got %d", len(cfg.Schedule.Tiers))
	}
}

func TestUpdateVariantDiscount(t *testing.T) {
	tierSvc, syncSvc, variant := setupTierAdminServiceTest(t)

	if err := tierSvc.UpdateVariantDiscount(variant.ID, 150); err != nil {
		t.Fatalf("update discount failed: %v", err)
	}

	cfg, ok, err := syncSvc.LiveConfig(variant.ID)
	if err != nil || !ok {
		t.Fatalf("live config failed: ok=%v err=%v", ok, err)
	}
	if cfg.VariantDiscount != 150 {
		t.Fatalf("expected discount 150, got %d", cfg.VariantDiscount)
	}

	if err := tierSvc.UpdateVariantDiscount(variant.ID, -1); err == nil {
		t.Fatalf("expected negative discount rejected")
	}
	if err := tierSvc.UpdateVariantDiscount(9999, 10); !errors.Is(err, ErrVariantNotFound) {
		t.Fatalf("expected variant not found, got: %v", err)
	}
}
