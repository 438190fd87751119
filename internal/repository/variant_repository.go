package repository

import (
	"errors"

	"github.com/storefront-next/internal/models"

	"gorm.io/gorm"
)

// VariantRepository 商品规格数据访问接口
type VariantRepository interface {
	GetByID(id uint) (*models.ProductVariant, error)
	GetByIDs(ids []uint) ([]models.ProductVariant, error)
	Create(variant *models.ProductVariant) error
	Update(variant *models.ProductVariant) error
	UpdateDiscount(id uint, discount models.Money) error
	Delete(id uint) error
	ListByProduct(productID uint) ([]models.ProductVariant, error)
	WithTx(tx *gorm.DB) *GormVariantRepository
}

// GormVariantRepository GORM 实现
type GormVariantRepository struct {
	db *gorm.DB
}

// NewVariantRepository 创建规格仓库
func NewVariantRepository(db *gorm.DB) *GormVariantRepository {
	return &GormVariantRepository{db: db}
}

// WithTx 绑定事务
func (r *GormVariantRepository) WithTx(tx *gorm.DB) *GormVariantRepository {
	if tx == nil {
		return r
	}
	return &GormVariantRepository{db: tx}
}

// GetByID 根据ID获取规格（含阶梯价）
func (r *GormVariantRepository) GetByID(id uint) (*models.ProductVariant, error) {
	var variant models.ProductVariant
	if err := r.db.Preload("Tiers").First(&variant, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &variant, nil
}

// GetByIDs 批量获取规格（含阶梯价）
func (r *GormVariantRepository) GetByIDs(ids []uint) ([]models.ProductVariant, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var variants []models.ProductVariant
	if err := r.db.Preload("Tiers").Where("id IN ?", ids).Find(&variants).Error; err != nil {
		return nil, err
	}
	return variants, nil
}

// Create 创建规格
func (r *GormVariantRepository) Create(variant *models.ProductVariant) error {
	return r.db.Create(variant).Error
}

// Update 更新规格
func (r *GormVariantRepository) Update(variant *models.ProductVariant) error {
	return r.db.Save(variant).Error
}

// UpdateDiscount 更新管理员规格折扣
func (r *GormVariantRepository) UpdateDiscount(id uint, discount models.Money) error {
	return r.db.Model(&models.ProductVariant{}).Where("id = ?", id).
		Update("discount_amount", discount).Error
}

// Delete 删除规格
func (r *GormVariantRepository) Delete(id uint) error {
	return r.db.Delete(&models.ProductVariant{}, id).Error
}

// ListByProduct 获取商品全部规格
func (r *GormVariantRepository) ListByProduct(productID uint) ([]models.ProductVariant, error) {
	var variants []models.ProductVariant
	if err := r.db.Preload("Tiers").Where("product_id = ?", productID).
		Order("sort_order desc, id asc").Find(&variants).Error; err != nil {
		return nil, err
	}
	return variants, nil
}
