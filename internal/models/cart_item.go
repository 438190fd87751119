package models

import (
	"time"

	"gorm.io/gorm"
)

// 折扣注解来源（每项最多一种）
const (
	DiscountSourceNone            = ""                 // 无折扣
	DiscountSourcePwp             = "pwp"              // 加购优惠覆盖价
	DiscountSourceVariantDiscount = "variant_discount" // 管理员规格折扣
	DiscountSourceBulkTier        = "bulk_tier"        // 阶梯价
)

// CartItem 购物车项（加入时依据当时配置写入价格快照与折扣注解）
type CartItem struct {
	ID                uint           `gorm:"primarykey" json:"id"`                                        // 主键
	UserID            uint           `gorm:"not null;uniqueIndex:idx_cart_user_variant" json:"user_id"`   // 用户ID
	VariantID         uint           `gorm:"not null;uniqueIndex:idx_cart_user_variant" json:"variant_id"` // 规格ID
	Quantity          int            `gorm:"not null" json:"quantity"`                                    // 数量
	UnitPrice         Money          `gorm:"type:bigint;not null;default:0" json:"unit_price"`            // 实收单价快照
	DiscountSource    string         `gorm:"type:varchar(20);not null;default:''" json:"discount_source"` // 折扣注解来源
	OriginalUnitPrice Money          `gorm:"type:bigint;not null;default:0" json:"original_unit_price"`   // 折前单价
	DiscountAmount    Money          `gorm:"type:bigint;not null;default:0" json:"discount_amount"`       // 每单位折扣金额
	PwpRuleID         *uint          `gorm:"index" json:"pwp_rule_id,omitempty"`                          // 加购规则ID（pwp 注解）
	IsBulkPrice       bool           `gorm:"not null;default:false" json:"is_bulk_price"`                 // 是否阶梯价
	CreatedAt         time.Time      `gorm:"index" json:"created_at"`                                     // 创建时间
	UpdatedAt         time.Time      `gorm:"index" json:"updated_at"`                                     // 更新时间
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`                                              // 软删除时间

	Variant *ProductVariant `gorm:"foreignKey:VariantID" json:"variant,omitempty"` // 关联规格
}

// TableName 指定表名
func (CartItem) TableName() string {
	return "cart_items"
}
