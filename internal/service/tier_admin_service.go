package service

import (
	"github.com/storefront-next/internal/logger"
	"github.com/storefront-next/internal/models"
	"github.com/storefront-next/internal/pricing"
	"github.com/storefront-next/internal/repository"
)

// TierInput 阶梯价档位输入
type TierInput struct {
	MinQuantity int          `json:"min_quantity"`
	MaxQuantity *int         `json:"max_quantity"`
	UnitPrice   models.Money `json:"unit_price"`
}

// TierAdminService 阶梯价与规格折扣管理服务。
// 所有改动先过区间校验再落库，成功后显式失效定价缓存。
type TierAdminService struct {
	variantRepo repository.VariantRepository
	tierRepo    repository.PriceTierRepository
	syncSvc     *PriceSyncService
}

// NewTierAdminService 创建阶梯价管理服务
func NewTierAdminService(variantRepo repository.VariantRepository, tierRepo repository.PriceTierRepository, syncSvc *PriceSyncService) *TierAdminService {
	return &TierAdminService{
		variantRepo: variantRepo,
		tierRepo:    tierRepo,
		syncSvc:     syncSvc,
	}
}

// ReplaceTiers 整表替换规格的阶梯档位；区间非法或互相重叠时拒绝保存
func (s *TierAdminService) ReplaceTiers(variantID uint, inputs []TierInput) ([]models.PriceTier, error) {
	variant, err := s.variantRepo.GetByID(variantID)
	if err != nil {
		return nil, err
	}
	if variant == nil {
		return nil, ErrVariantNotFound
	}

	schedule := pricing.PriceSchedule{BasePrice: variant.BasePrice}
	tiers := make([]models.PriceTier, 0, len(inputs))
	for _, in := range inputs {
		schedule.Tiers = append(schedule.Tiers, pricing.PriceTier{
			MinQuantity: in.MinQuantity,
			MaxQuantity: in.MaxQuantity,
			UnitPrice:   in.UnitPrice,
		})
		tiers = append(tiers, models.PriceTier{
			VariantID:   variantID,
			MinQuantity: in.MinQuantity,
			MaxQuantity: in.MaxQuantity,
			UnitPrice:   in.UnitPrice,
		})
	}
	if err := pricing.ValidateSchedule(schedule); err != nil {
		return nil, err
	}

	if err := s.tierRepo.ReplaceForVariant(variantID, tiers); err != nil {
		return nil, err
	}
	s.syncSvc.Invalidate(variantID)

	logger.Infow("price_tiers_replaced",
		"variant_id", variantID,
		"tier_count", len(tiers),
	)
	return s.tierRepo.ListByVariant(variantID)
}

// ListTiers 查询规格的阶梯档位
func (s *TierAdminService) ListTiers(variantID uint) ([]models.PriceTier, error) {
	return s.tierRepo.ListByVariant(variantID)
}

// UpdateVariantDiscount 设置管理员规格折扣（每单位固定减免，0 表示清除）
func (s *TierAdminService) UpdateVariantDiscount(variantID uint, discount models.Money) error {
	if discount < 0 {
		return ErrInvalidOrderItem
	}
	variant, err := s.variantRepo.GetByID(variantID)
	if err != nil {
		return err
	}
	if variant == nil {
		return ErrVariantNotFound
	}

	if err := s.variantRepo.UpdateDiscount(variantID, discount); err != nil {
		return err
	}
	s.syncSvc.Invalidate(variantID)

	logger.Infow("variant_discount_updated",
		"variant_id", variantID,
		"discount_amount", discount,
	)
	return nil
}
