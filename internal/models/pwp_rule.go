package models

import (
	"time"

	"gorm.io/gorm"
)

// PwpRule 加购优惠规则表（满足触发条件后按规则价加购指定商品）
type PwpRule struct {
	ID               uint           `gorm:"primarykey" json:"id"`                                  // 主键
	Name             string         `gorm:"not null" json:"name"`                                  // 名称
	TriggerType      string         `gorm:"type:varchar(20);not null" json:"trigger_type"`         // 触发类型（cart_value/product）
	TriggerAmount    Money          `gorm:"type:bigint;not null;default:0" json:"trigger_amount"`  // 触发金额门槛（cart_value 使用）
	TriggerProductID *uint          `gorm:"index" json:"trigger_product_id,omitempty"`             // 触发商品ID（product 使用）
	RewardVariantID  uint           `gorm:"not null;index" json:"reward_variant_id"`               // 奖励规格ID
	DiscountType     string         `gorm:"type:varchar(20);not null" json:"discount_type"`        // 折扣类型（percentage/fixed）
	DiscountValue    int64          `gorm:"not null;default:0" json:"discount_value"`              // 折扣数值（百分比或固定金额最小单位）
	StartsAt         *time.Time     `gorm:"index" json:"starts_at"`                                // 生效时间
	EndsAt           *time.Time     `gorm:"index" json:"ends_at"`                                  // 失效时间
	IsActive         bool           `gorm:"not null;default:true" json:"is_active"`                // 是否启用
	CreatedAt        time.Time      `gorm:"index" json:"created_at"`                               // 创建时间
	UpdatedAt        time.Time      `gorm:"index" json:"updated_at"`                               // 更新时间
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`                                        // 软删除时间
}

// TableName 指定表名
func (PwpRule) TableName() string {
	return "pwp_rules"
}
