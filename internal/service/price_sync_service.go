package service

import (
	"github.com/storefront-next/internal/cache"
	"github.com/storefront-next/internal/models"
	"github.com/storefront-next/internal/pricing"
	"github.com/storefront-next/internal/repository"
)

// PriceSyncService 定价同步检查服务。
// 用现行配置重算购物车快照价并报告漂移；存在漂移时结账必须被拒绝，
// 由用户显式重新定价后再试（fail-closed）。
type PriceSyncService struct {
	variantRepo   repository.VariantRepository
	scheduleCache *cache.ScheduleCache
}

// NewPriceSyncService 创建定价同步检查服务
func NewPriceSyncService(variantRepo repository.VariantRepository, scheduleCache *cache.ScheduleCache) *PriceSyncService {
	return &PriceSyncService{
		variantRepo:   variantRepo,
		scheduleCache: scheduleCache,
	}
}

// LiveConfig 获取规格的现行定价配置（优先读缓存）；规格已下架返回 false
func (s *PriceSyncService) LiveConfig(variantID uint) (pricing.LiveConfig, bool, error) {
	if cfg, ok := s.scheduleCache.Get(variantID); ok {
		return cfg, true, nil
	}

	variant, err := s.variantRepo.GetByID(variantID)
	if err != nil {
		return pricing.LiveConfig{}, false, err
	}
	if variant == nil || !variant.IsActive {
		return pricing.LiveConfig{}, false, nil
	}

	cfg := liveConfigFromVariant(variant)
	s.scheduleCache.Set(variantID, cfg)
	return cfg, true, nil
}

// Invalidate 管理员改价/改档后显式失效缓存
func (s *PriceSyncService) Invalidate(variantID uint) {
	s.scheduleCache.Invalidate(variantID)
}

// CheckCart 对购物车条目做漂移检查
func (s *PriceSyncService) CheckCart(items []models.CartItem) (pricing.SyncReport, error) {
	view := pricing.OrderView{Items: cartItemViews(items)}

	live := make(map[uint]pricing.LiveConfig, len(items))
	for _, item := range items {
		if item.DiscountSource == models.DiscountSourcePwp {
			continue
		}
		if _, ok := live[item.VariantID]; ok {
			continue
		}
		cfg, ok, err := s.LiveConfig(item.VariantID)
		if err != nil {
			return pricing.SyncReport{}, err
		}
		if ok {
			live[item.VariantID] = cfg
		}
	}
	return pricing.CheckSync(view, live)
}

func liveConfigFromVariant(variant *models.ProductVariant) pricing.LiveConfig {
	tiers := make([]pricing.PriceTier, 0, len(variant.Tiers))
	for _, tier := range variant.Tiers {
		tiers = append(tiers, pricing.PriceTier{
			MinQuantity: tier.MinQuantity,
			MaxQuantity: tier.MaxQuantity,
			UnitPrice:   tier.UnitPrice,
		})
	}
	return pricing.LiveConfig{
		Schedule: pricing.PriceSchedule{
			BasePrice: variant.BasePrice,
			Tiers:     tiers,
		},
		VariantDiscount: variant.DiscountAmount,
	}
}

func cartItemViews(items []models.CartItem) []pricing.ItemView {
	views := make([]pricing.ItemView, 0, len(items))
	for _, item := range items {
		views = append(views, pricing.ItemView{
			ID:                item.ID,
			VariantID:         item.VariantID,
			Quantity:          item.Quantity,
			UnitPrice:         item.UnitPrice,
			Source:            item.DiscountSource,
			OriginalUnitPrice: item.OriginalUnitPrice,
			DiscountAmount:    item.DiscountAmount,
			IsBulkPrice:       item.IsBulkPrice,
		})
	}
	return views
}
