package repository

import (
	"errors"
	"time"

	"github.com/storefront-next/internal/models"

	"gorm.io/gorm"
)

// PwpRuleRepository 加购规则数据访问接口
type PwpRuleRepository interface {
	GetByID(id uint) (*models.PwpRule, error)
	ListActive(now time.Time) ([]models.PwpRule, error)
	Create(rule *models.PwpRule) error
	Update(rule *models.PwpRule) error
	Delete(id uint) error
	List(filter PwpRuleListFilter) ([]models.PwpRule, int64, error)
	WithTx(tx *gorm.DB) *GormPwpRuleRepository
}

// GormPwpRuleRepository GORM 实现
type GormPwpRuleRepository struct {
	db *gorm.DB
}

// NewPwpRuleRepository 创建加购规则仓库
func NewPwpRuleRepository(db *gorm.DB) *GormPwpRuleRepository {
	return &GormPwpRuleRepository{db: db}
}

// WithTx 绑定事务
func (r *GormPwpRuleRepository) WithTx(tx *gorm.DB) *GormPwpRuleRepository {
	if tx == nil {
		return r
	}
	return &GormPwpRuleRepository{db: tx}
}

// GetByID 根据ID获取加购规则
func (r *GormPwpRuleRepository) GetByID(id uint) (*models.PwpRule, error) {
	var rule models.PwpRule
	if err := r.db.First(&rule, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rule, nil
}

// ListActive 获取当前生效的加购规则
func (r *GormPwpRuleRepository) ListActive(now time.Time) ([]models.PwpRule, error) {
	var rules []models.PwpRule
	query := r.db.Where("is_active = ?", true)
	query = query.Where("(starts_at IS NULL OR starts_at <= ?)", now)
	query = query.Where("(ends_at IS NULL OR ends_at >= ?)", now)
	if err := query.Order("id asc").Find(&rules).Error; err != nil {
		return nil, err
	}
	return rules, nil
}

// Create 创建加购规则
func (r *GormPwpRuleRepository) Create(rule *models.PwpRule) error {
	return r.db.Create(rule).Error
}

// Update 更新加购规则
func (r *GormPwpRuleRepository) Update(rule *models.PwpRule) error {
	return r.db.Save(rule).Error
}

// Delete 删除加购规则
func (r *GormPwpRuleRepository) Delete(id uint) error {
	return r.db.Delete(&models.PwpRule{}, id).Error
}

// List 获取加购规则列表
func (r *GormPwpRuleRepository) List(filter PwpRuleListFilter) ([]models.PwpRule, int64, error) {
	var rules []models.PwpRule
	query := r.db.Model(&models.PwpRule{})
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Order("id desc").Find(&rules).Error; err != nil {
		return nil, 0, err
	}
	return rules, total, nil
}
