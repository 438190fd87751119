package main

import (
	"time"

	"github.com/storefront-next/internal/config"
	"github.com/storefront-next/internal/constants"
	"github.com/storefront-next/internal/logger"
	"github.com/storefront-next/internal/models"

	"github.com/shopspring/decimal"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 添加商品
	products := []models.Product{
		{
			TitleJSON: models.JSON(map[string]interface{}{
				"zh-CN": "无线蓝牙耳机",
				"en-US": "Wireless Bluetooth Earphones",
			}),
			Slug: "wireless-earphones",
			DescriptionJSON: models.JSON(map[string]interface{}{
				"zh-CN": "高品质音质，长续航，舒适佩戴",
				"en-US": "High quality sound, long battery life, comfortable to wear",
			}),
			Images: models.StringArray([]string{
				"https://images.unsplash.com/photo-1590658268037-6bf12165a8df?w=800",
			}),
			Tags:     models.StringArray([]string{"Audio", "Wireless"}),
			IsActive: true,
		},
		{
			TitleJSON: models.JSON(map[string]interface{}{
				"zh-CN": "智能手表",
				"en-US": "Smart Watch",
			}),
			Slug: "smart-watch",
			DescriptionJSON: models.JSON(map[string]interface{}{
				"zh-CN": "健康监测，运动追踪，消息提醒",
				"en-US": "Health monitoring, fitness tracking, message notifications",
			}),
			Images: models.StringArray([]string{
				"https://images.unsplash.com/photo-1579586337278-3befd40fd17a?w=800",
			}),
			Tags:     models.StringArray([]string{"Wearable", "Smart"}),
			IsActive: true,
		},
		{
			TitleJSON: models.JSON(map[string]interface{}{
				"zh-CN": "数据线三件套",
				"en-US": "Charging Cable Bundle",
			}),
			Slug: "cable-bundle",
			DescriptionJSON: models.JSON(map[string]interface{}{
				"zh-CN": "快充数据线，三种接口",
				"en-US": "Fast charging cables with three connector types",
			}),
			Images: models.StringArray([]string{
				"https://images.unsplash.com/photo-1609091839311-d5365f9ff1c5?w=800",
			}),
			Tags:     models.StringArray([]string{"Accessories"}),
			IsActive: true,
		},
	}

	for _, product := range products {
		var existing models.Product
		if err := models.DB.Where("slug = ?", product.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&product).Error; err != nil {
				stdLog.Printf("Failed to create product %s: %v", product.Slug, err)
			} else {
				stdLog.Printf("Created product: %s", product.Slug)
			}
		} else {
			stdLog.Printf("Product already exists: %s", product.Slug)
		}
	}

	// 获取商品ID
	productIDs := map[string]uint{}
	var productList []models.Product
	if err := models.DB.Where("slug IN ?", []string{"wireless-earphones", "smart-watch", "cable-bundle"}).Find(&productList).Error; err != nil {
		stdLog.Printf("Failed to load products: %v", err)
	}
	for _, product := range productList {
		productIDs[product.Slug] = product.ID
	}

	// 添加规格
	variants := []models.ProductVariant{
		{
			ProductID: productIDs["wireless-earphones"],
			SKUCode:   "EAR-BLACK",
			SpecValuesJSON: models.JSON(map[string]interface{}{
				"color": "black",
			}),
			BasePrice:  models.NewMoneyFromDecimal(decimal.NewFromFloat(99.99)),
			StockTotal: 500,
			IsActive:   true,
		},
		{
			ProductID: productIDs["wireless-earphones"],
			SKUCode:   "EAR-WHITE",
			SpecValuesJSON: models.JSON(map[string]interface{}{
				"color": "white",
			}),
			BasePrice:      models.NewMoneyFromDecimal(decimal.NewFromFloat(99.99)),
			DiscountAmount: models.NewMoneyFromDecimal(decimal.NewFromFloat(5.00)),
			StockTotal:     300,
			IsActive:       true,
		},
		{
			ProductID:  productIDs["smart-watch"],
			SKUCode:    "WATCH-STD",
			BasePrice:  models.NewMoneyFromDecimal(decimal.NewFromFloat(199.99)),
			StockTotal: 200,
			IsActive:   true,
		},
		{
			ProductID:  productIDs["cable-bundle"],
			SKUCode:    "CABLE-3IN1",
			BasePrice:  models.NewMoneyFromDecimal(decimal.NewFromFloat(19.99)),
			StockTotal: 0,
			IsActive:   true,
		},
	}

	variantIDs := map[string]uint{}
	for _, variant := range variants {
		if variant.ProductID == 0 {
			continue
		}
		var existing models.ProductVariant
		if err := models.DB.Where("product_id = ? AND sku_code = ?", variant.ProductID, variant.SKUCode).First(&existing).Error; err != nil {
			if err := models.DB.Create(&variant).Error; err != nil {
				stdLog.Printf("Failed to create variant %s: %v", variant.SKUCode, err)
				continue
			}
			stdLog.Printf("Created variant: %s", variant.SKUCode)
			variantIDs[variant.SKUCode] = variant.ID
		} else {
			stdLog.Printf("Variant already exists: %s", variant.SKUCode)
			variantIDs[variant.SKUCode] = existing.ID
		}
	}

	// 耳机批量阶梯价：1-9 原价、10-49 九折、50+ 八折
	if earID := variantIDs["EAR-BLACK"]; earID != 0 {
		seedTiers(earID, []models.PriceTier{
			{MinQuantity: 1, MaxQuantity: intPtr(9), UnitPrice: models.NewMoneyFromDecimal(decimal.NewFromFloat(99.99))},
			{MinQuantity: 10, MaxQuantity: intPtr(49), UnitPrice: models.NewMoneyFromDecimal(decimal.NewFromFloat(89.99))},
			{MinQuantity: 50, MaxQuantity: nil, UnitPrice: models.NewMoneyFromDecimal(decimal.NewFromFloat(79.99))},
		})
	}

	// 加价购规则：购买智能手表可优惠换购数据线
	if watchID := productIDs["smart-watch"]; watchID != 0 {
		if cableID := variantIDs["CABLE-3IN1"]; cableID != 0 {
			rule := models.PwpRule{
				Name:             "Watch cable add-on",
				TriggerType:      constants.PwpTriggerProduct,
				TriggerProductID: &watchID,
				RewardVariantID:  cableID,
				DiscountType:     constants.PwpDiscountPercentage,
				DiscountValue:    50,
				IsActive:         true,
			}
			var existing models.PwpRule
			if err := models.DB.Where("name = ?", rule.Name).First(&existing).Error; err != nil {
				if err := models.DB.Create(&rule).Error; err != nil {
					stdLog.Printf("Failed to create pwp rule: %v", err)
				} else {
					stdLog.Printf("Created pwp rule: %s", rule.Name)
				}
			} else {
				stdLog.Printf("Pwp rule already exists: %s", rule.Name)
			}
		}
	}

	// 添加优惠券
	endsAt := time.Now().AddDate(0, 3, 0)
	coupons := []models.Coupon{
		{
			Code:      "WELCOME10",
			Type:      constants.CouponTypeFixed,
			Value:     1000,
			MinAmount: models.NewMoneyFromDecimal(decimal.NewFromFloat(50.00)),
			EndsAt:    &endsAt,
			IsActive:  true,
		},
		{
			Code:         "SAVE15",
			Type:         constants.CouponTypePercent,
			Value:        15,
			MinAmount:    models.NewMoneyFromDecimal(decimal.NewFromFloat(100.00)),
			MaxDiscount:  models.NewMoneyFromDecimal(decimal.NewFromFloat(30.00)),
			UsageLimit:   1000,
			PerUserLimit: 1,
			EndsAt:       &endsAt,
			IsActive:     true,
		},
	}
	for _, coupon := range coupons {
		var existing models.Coupon
		if err := models.DB.Where("code = ?", coupon.Code).First(&existing).Error; err != nil {
			if err := models.DB.Create(&coupon).Error; err != nil {
				stdLog.Printf("Failed to create coupon %s: %v", coupon.Code, err)
			} else {
				stdLog.Printf("Created coupon: %s", coupon.Code)
			}
		} else {
			stdLog.Printf("Coupon already exists: %s", coupon.Code)
		}
	}

	// 添加会员等级
	memberTiers := []models.MemberTier{
		{
			Slug: "silver",
			NameJSON: models.JSON(map[string]interface{}{
				"zh-CN": "白银会员",
				"en-US": "Silver",
			}),
			DiscountPercent: 3,
			MinSpend:        models.NewMoneyFromDecimal(decimal.NewFromFloat(500.00)),
			SortOrder:       1,
		},
		{
			Slug: "gold",
			NameJSON: models.JSON(map[string]interface{}{
				"zh-CN": "黄金会员",
				"en-US": "Gold",
			}),
			DiscountPercent: 5,
			MinSpend:        models.NewMoneyFromDecimal(decimal.NewFromFloat(2000.00)),
			SortOrder:       2,
		},
	}
	for _, tier := range memberTiers {
		var existing models.MemberTier
		if err := models.DB.Where("slug = ?", tier.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&tier).Error; err != nil {
				stdLog.Printf("Failed to create member tier %s: %v", tier.Slug, err)
			} else {
				stdLog.Printf("Created member tier: %s", tier.Slug)
			}
		} else {
			stdLog.Printf("Member tier already exists: %s", tier.Slug)
		}
	}

	// 添加运费与积分配置
	settings := []models.Setting{
		{
			Key: constants.SettingKeyShippingConfig,
			ValueJSON: models.JSON(map[string]interface{}{
				"flat_amount":              500,
				"free_shipping_min_amount": 10000,
			}),
		},
		{
			Key: constants.SettingKeyPointsConfig,
			ValueJSON: models.JSON(map[string]interface{}{
				"points_per_unit": 1,
			}),
		},
	}
	for _, setting := range settings {
		var existing models.Setting
		if err := models.DB.Where("key = ?", setting.Key).First(&existing).Error; err != nil {
			if err := models.DB.Create(&setting).Error; err != nil {
				stdLog.Printf("Failed to create setting %s: %v", setting.Key, err)
			} else {
				stdLog.Printf("Created setting: %s", setting.Key)
			}
		} else {
			stdLog.Printf("Setting already exists: %s", setting.Key)
		}
	}

	stdLog.Println("Seed completed")
}

func seedTiers(variantID uint, tiers []models.PriceTier) {
	stdLog := logger.StdLogger()
	var count int64
	if err := models.DB.Model(&models.PriceTier{}).Where("variant_id = ?", variantID).Count(&count).Error; err != nil {
		stdLog.Printf("Failed to count tiers for variant %d: %v", variantID, err)
		return
	}
	if count > 0 {
		stdLog.Printf("Tiers already exist for variant %d", variantID)
		return
	}
	for i := range tiers {
		tiers[i].VariantID = variantID
	}
	if err := models.DB.Create(&tiers).Error; err != nil {
		stdLog.Printf("Failed to create tiers for variant %d: %v", variantID, err)
		return
	}
	stdLog.Printf("Created %d tiers for variant %d", len(tiers), variantID)
}

func intPtr(v int) *int {
	return &v
}
