package repository

import (
	"errors"

	"github.com/storefront-next/internal/models"

	"gorm.io/gorm"
)

// RefundRepository 退款数据访问接口
type RefundRepository interface {
	GetByID(id uint) (*models.Refund, error)
	Create(refund *models.Refund) error
	Update(refund *models.Refund) error
	List(filter RefundListFilter) ([]models.Refund, int64, error)
	ListByOrder(orderID uint) ([]models.Refund, error)
	UpdateItemReturnedQuantity(itemID uint, returned int) error
	WithTx(tx *gorm.DB) *GormRefundRepository
}

// GormRefundRepository GORM 实现
type GormRefundRepository struct {
	db *gorm.DB
}

// NewRefundRepository 创建退款仓库
func NewRefundRepository(db *gorm.DB) *GormRefundRepository {
	return &GormRefundRepository{db: db}
}

// WithTx 绑定事务
func (r *GormRefundRepository) WithTx(tx *gorm.DB) *GormRefundRepository {
	if tx == nil {
		return r
	}
	return &GormRefundRepository{db: tx}
}

// GetByID 根据ID获取退款记录
func (r *GormRefundRepository) GetByID(id uint) (*models.Refund, error) {
	var refund models.Refund
	if err := r.db.First(&refund, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &refund, nil
}

// Create 创建退款记录
func (r *GormRefundRepository) Create(refund *models.Refund) error {
	return r.db.Create(refund).Error
}

// Update 更新退款记录
func (r *GormRefundRepository) Update(refund *models.Refund) error {
	return r.db.Save(refund).Error
}

// List 获取退款列表
func (r *GormRefundRepository) List(filter RefundListFilter) ([]models.Refund, int64, error) {
	var refunds []models.Refund
	query := r.db.Model(&models.Refund{})
	if filter.OrderID != 0 {
		query = query.Where("order_id = ?", filter.OrderID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Order("id desc").Find(&refunds).Error; err != nil {
		return nil, 0, err
	}
	return refunds, total, nil
}

// ListByOrder 获取订单全部退款记录
func (r *GormRefundRepository) ListByOrder(orderID uint) ([]models.Refund, error) {
	var refunds []models.Refund
	if err := r.db.Where("order_id = ?", orderID).Order("id asc").Find(&refunds).Error; err != nil {
		return nil, err
	}
	return refunds, nil
}

// UpdateItemReturnedQuantity 更新订单项已退数量
func (r *GormRefundRepository) UpdateItemReturnedQuantity(itemID uint, returned int) error {
	return r.db.Model(&models.OrderItem{}).Where("id = ?", itemID).
		Update("returned_quantity", returned).Error
}
