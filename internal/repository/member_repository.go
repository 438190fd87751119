package repository

import (
	"errors"
	"time"

	"github.com/storefront-next/internal/models"

	"gorm.io/gorm"
)

// MemberRepository 会员等级/活动/积分数据访问接口
type MemberRepository interface {
	GetTierByID(id uint) (*models.MemberTier, error)
	GetTierBySlug(slug string) (*models.MemberTier, error)
	ListTiers() ([]models.MemberTier, error)
	CreateTier(tier *models.MemberTier) error
	UpdateTier(tier *models.MemberTier) error
	DeleteTier(id uint) error
	GetActivePromo(now time.Time) (*models.MemberPromo, error)
	ListPromos() ([]models.MemberPromo, error)
	CreatePromo(promo *models.MemberPromo) error
	UpdatePromo(promo *models.MemberPromo) error
	DeletePromo(id uint) error
	GetPointsAccount(userID uint) (*models.PointsAccount, error)
	SavePointsAccount(account *models.PointsAccount) error
	WithTx(tx *gorm.DB) *GormMemberRepository
}

// GormMemberRepository GORM 实现
type GormMemberRepository struct {
	db *gorm.DB
}

// NewMemberRepository 创建会员仓库
func NewMemberRepository(db *gorm.DB) *GormMemberRepository {
	return &GormMemberRepository{db: db}
}

// WithTx 绑定事务
func (r *GormMemberRepository) WithTx(tx *gorm.DB) *GormMemberRepository {
	if tx == nil {
		return r
	}
	return &GormMemberRepository{db: tx}
}

// GetTierByID 根据ID获取会员等级
func (r *GormMemberRepository) GetTierByID(id uint) (*models.MemberTier, error) {
	var tier models.MemberTier
	if err := r.db.First(&tier, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &tier, nil
}

// GetTierBySlug 根据 slug 获取会员等级
func (r *GormMemberRepository) GetTierBySlug(slug string) (*models.MemberTier, error) {
	var tier models.MemberTier
	if err := r.db.Where("slug = ?", slug).First(&tier).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &tier, nil
}

// ListTiers 获取会员等级列表
func (r *GormMemberRepository) ListTiers() ([]models.MemberTier, error) {
	var tiers []models.MemberTier
	if err := r.db.Order("sort_order asc, id asc").Find(&tiers).Error; err != nil {
		return nil, err
	}
	return tiers, nil
}

// CreateTier 创建会员等级
func (r *GormMemberRepository) CreateTier(tier *models.MemberTier) error {
	return r.db.Create(tier).Error
}

// UpdateTier 更新会员等级
func (r *GormMemberRepository) UpdateTier(tier *models.MemberTier) error {
	return r.db.Save(tier).Error
}

// DeleteTier 删除会员等级
func (r *GormMemberRepository) DeleteTier(id uint) error {
	return r.db.Delete(&models.MemberTier{}, id).Error
}

// GetActivePromo 获取当前生效的会员活动（取最新一条）
func (r *GormMemberRepository) GetActivePromo(now time.Time) (*models.MemberPromo, error) {
	var promo models.MemberPromo
	query := r.db.Where("is_active = ?", true)
	query = query.Where("(starts_at IS NULL OR starts_at <= ?)", now)
	query = query.Where("(ends_at IS NULL OR ends_at >= ?)", now)
	if err := query.Order("id desc").First(&promo).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &promo, nil
}

// ListPromos 获取会员活动列表
func (r *GormMemberRepository) ListPromos() ([]models.MemberPromo, error) {
	var promos []models.MemberPromo
	if err := r.db.Order("id desc").Find(&promos).Error; err != nil {
		return nil, err
	}
	return promos, nil
}

// CreatePromo 创建会员活动
func (r *GormMemberRepository) CreatePromo(promo *models.MemberPromo) error {
	return r.db.Create(promo).Error
}

// UpdatePromo 更新会员活动
func (r *GormMemberRepository) UpdatePromo(promo *models.MemberPromo) error {
	return r.db.Save(promo).Error
}

// DeletePromo 删除会员活动
func (r *GormMemberRepository) DeletePromo(id uint) error {
	return r.db.Delete(&models.MemberPromo{}, id).Error
}

// GetPointsAccount 获取用户积分账户
func (r *GormMemberRepository) GetPointsAccount(userID uint) (*models.PointsAccount, error) {
	var account models.PointsAccount
	if err := r.db.Where("user_id = ?", userID).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

// SavePointsAccount 保存用户积分账户
func (r *GormMemberRepository) SavePointsAccount(account *models.PointsAccount) error {
	return r.db.Save(account).Error
}
