package repository

import (
	"errors"

	"github.com/storefront-next/internal/models"

	"gorm.io/gorm"
)

// PriceTierRepository 阶梯价数据访问接口
type PriceTierRepository interface {
	GetByID(id uint) (*models.PriceTier, error)
	ListByVariant(variantID uint) ([]models.PriceTier, error)
	ReplaceForVariant(variantID uint, tiers []models.PriceTier) error
	Delete(id uint) error
	WithTx(tx *gorm.DB) *GormPriceTierRepository
}

// GormPriceTierRepository GORM 实现
type GormPriceTierRepository struct {
	db *gorm.DB
}

// NewPriceTierRepository 创建阶梯价仓库
func NewPriceTierRepository(db *gorm.DB) *GormPriceTierRepository {
	return &GormPriceTierRepository{db: db}
}

// WithTx 绑定事务
func (r *GormPriceTierRepository) WithTx(tx *gorm.DB) *GormPriceTierRepository {
	if tx == nil {
		return r
	}
	return &GormPriceTierRepository{db: tx}
}

// GetByID 根据ID获取阶梯价
func (r *GormPriceTierRepository) GetByID(id uint) (*models.PriceTier, error) {
	var tier models.PriceTier
	if err := r.db.First(&tier, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &tier, nil
}

// ListByVariant 获取规格全部阶梯价（按下界升序）
func (r *GormPriceTierRepository) ListByVariant(variantID uint) ([]models.PriceTier, error) {
	var tiers []models.PriceTier
	if err := r.db.Where("variant_id = ?", variantID).
		Order("min_quantity asc").Find(&tiers).Error; err != nil {
		return nil, err
	}
	return tiers, nil
}

// ReplaceForVariant 整表替换规格的阶梯价档位
func (r *GormPriceTierRepository) ReplaceForVariant(variantID uint, tiers []models.PriceTier) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("variant_id = ?", variantID).Delete(&models.PriceTier{}).Error; err != nil {
			return err
		}
		for i := range tiers {
			tiers[i].ID = 0
			tiers[i].VariantID = variantID
		}
		if len(tiers) == 0 {
			return nil
		}
		return tx.Create(&tiers).Error
	})
}

// Delete 删除阶梯价
func (r *GormPriceTierRepository) Delete(id uint) error {
	return r.db.Delete(&models.PriceTier{}, id).Error
}
