package service

import (
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

func setupCartServiceTest(t *testing.T) (*CartService, *gorm.DB, models.ProductVariant) {
	t.Helper()
	dsn := fmt.Sprintf("file:cart_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Product{}, &models.ProductVariant{}, &models.PriceTier{},
		&models.PwpRule{}, &models.CartItem{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	product := models.Product{
		Slug:      "gadget",
		TitleJSON: models.JSON{"en-US": "Gadget"},
		IsActive:  true,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	variant := models.ProductVariant{
		ProductID: product.ID,
		SKUCode:   "GADGET-STD",
		BasePrice: 1000,
		IsActive:  true,
	}
	if err := db.Create(&variant).Error; err != nil {
		t.Fatalf("create variant failed: %v", err)
	}
	maxNine := 9
	tiers := []models.PriceTier{
		{VariantID: variant.ID, MinQuantity: 5, MaxQuantity: &maxNine, UnitPrice: 900},
		{VariantID: variant.ID, MinQuantity: 10, UnitPrice: 800},
	}
	if err := db.Create(&tiers).Error; err != nil {
		t.Fatalf("create tiers failed: %v", err)
	}

	variantRepo := repository.NewVariantRepository(db)
	syncSvc := NewPriceSyncService(variantRepo, cache.NewScheduleCache(time.Minute, nil))
	pwpSvc := NewPwpService(repository.NewPwpRuleRepository(db), variantRepo)
	cartSvc := NewCartService(repository.NewCartRepository(db), variantRepo, pwpSvc, syncSvc)
	return cartSvc, db, variant
}

func TestAddItemFreezesTierAnnotation(t *testing.T) {
	cartSvc, _, variant := setupCartServiceTest(t)

	item, err := cartSvc.AddItem(AddCartItemInput{UserID: 1, VariantID: variant.ID, Quantity: 6}, time.Now())
	if err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	if item.UnitPrice != 900 || item.DiscountSource != models.DiscountSourceBulkTier {
		t.Fatalf("expected tier price 900, got %d source %q", item.UnitPrice, item.DiscountSource)
	}
	if item.OriginalUnitPrice != 1000 || item.DiscountAmount != 100 || !item.IsBulkPrice {
		t.Fatalf("unexpected annotation: %+v", item)
	}
}

func TestAddItemBelowTierKeepsBasePrice(t *testing.T) {
	cartSvc, _, variant := setupCartServiceTest(t)

	item, err := cartSvc.AddItem(AddCartItemInput{UserID: 1, VariantID: variant.ID, Quantity: 3}, time.Now())
	if err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	if item.UnitPrice != 1000 || item.DiscountSource != models.DiscountSourceNone {
		t.Fatalf("expected base price without annotation, got %d source %q", item.UnitPrice, item.DiscountSource)
	}
}

func TestUpdateQuantityRecomposesAcrossTierBoundary(t *testing.T) {
	cartSvc, _, variant := setupCartServiceTest(t)

	item, err := cartSvc.AddItem(AddCartItemInput{UserID: 1, VariantID: variant.ID, Quantity: 6}, time.Now())
	if err != nil {
		t.Fatalf("add item failed: %v", err)
	}

	updated, err := cartSvc.UpdateQuantity(1, item.ID, 12)
	if err != nil {
		t.Fatalf("update quantity failed: %v", err)
	}
	if updated.UnitPrice != 800 {
		t.Fatalf("expected top tier price 800, got %d", updated.UnitPrice)
	}

	updated, err = cartSvc.UpdateQuantity(1, item.ID, 2)
	if err != nil {
		t.Fatalf("update quantity failed: %v", err)
	}
	if updated.UnitPrice != 1000 || updated.DiscountSource != models.DiscountSourceNone {
		t.Fatalf("expected fallback to base price, got %+v", updated)
	}
}

func TestAddPwpRewardItem(t *testing.T) {
	cartSvc, db, variant := setupCartServiceTest(t)

	reward := models.ProductVariant{
		ProductID: variant.ProductID,
		SKUCode:   "GADGET-MINI",
		BasePrice: 400,
		IsActive:  true,
	}
	if err := db.Create(&reward).Error; err != nil {
		t.Fatalf("create reward variant failed: %v", err)
	}
	rule := models.PwpRule{
		Name:            "spend-and-save",
		TriggerType:     constants.PwpTriggerCartValue,
		TriggerAmount:   5000,
		RewardVariantID: reward.ID,
		DiscountType:    constants.PwpDiscountPercentage,
		DiscountValue:   100,
		IsActive:        true,
	}
	if err := db.Create(&rule).Error; err != nil {
		t.Fatalf("create rule failed: %v", err)
	}

	now := time.Now()
	if _, err := cartSvc.AddItem(AddCartItemInput{UserID: 1, VariantID: variant.ID, Quantity: 6}, now); err != nil {
		t.Fatalf("add trigger item failed: %v", err)
	}

	item, err := cartSvc.AddItem(AddCartItemInput{
		UserID: 1, VariantID: reward.ID, Quantity: 1, PwpRuleID: rule.ID,
	}, now)
	if err != nil {
		t.Fatalf("add reward item failed: %v", err)
	}
	if item.UnitPrice != 0 || item.DiscountSource != models.DiscountSourcePwp {
		t.Fatalf("expected free pwp item, got %+v", item)
	}
	if item.OriginalUnitPrice != 400 || item.PwpRuleID == nil || *item.PwpRuleID != rule.ID {
		t.Fatalf("unexpected pwp annotation: %+v", item)
	}
}

func TestAddPwpRewardRejectedBelowThreshold(t *testing.T) {
	cartSvc, db, variant := setupCartServiceTest(t)

	rule := models.PwpRule{
		Name:            "spend-and-save",
		TriggerType:     constants.PwpTriggerCartValue,
		TriggerAmount:   100000,
		RewardVariantID: variant.ID,
		DiscountType:    constants.PwpDiscountFixed,
		DiscountValue:   200,
		IsActive:        true,
	}
	if err := db.Create(&rule).Error; err != nil {
		t.Fatalf("create rule failed: %v", err)
	}

	_, err := cartSvc.AddItem(AddCartItemInput{
		UserID: 1, VariantID: variant.ID, Quantity: 1, PwpRuleID: rule.ID,
	}, time.Now())
	if err != ErrPwpNotEligible {
		t.Fatalf("expected not eligible, got: %v", err)
	}
}

func TestCartViewTotalsMatchAggregator(t *testing.T) {
	cartSvc, _, variant := setupCartServiceTest(t)

	if _, err := cartSvc.AddItem(AddCartItemInput{UserID: 1, VariantID: variant.ID, Quantity: 6}, time.Now()); err != nil {
		t.Fatalf("add item failed: %v", err)
	}

	view, err := cartSvc.View(1)
	if err != nil {
		t.Fatalf("view failed: %v", err)
	}
	if view.Totals.Gross != 6000 || view.Totals.ItemDiscounts != 600 || view.Totals.Net != 5400 {
		t.Fatalf("unexpected totals: %+v", view.Totals)
	}
}
