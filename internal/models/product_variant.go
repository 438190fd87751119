package models

import (
	"time"

	"gorm.io/gorm"
)

// ProductVariant 商品规格表（价格与折扣的载体）
type ProductVariant struct {
	ID             uint           `gorm:"primarykey" json:"id"`                                                             // 主键
	ProductID      uint           `gorm:"not null;index;uniqueIndex:idx_variant_product_sku" json:"product_id"`            // 商品ID
	SKUCode        string         `gorm:"column:sku_code;type:varchar(64);not null;uniqueIndex:idx_variant_product_sku" json:"sku_code"` // 规格编码（同商品内唯一）
	SpecValuesJSON JSON           `gorm:"type:json" json:"spec_values"`                                                     // 规格值（如颜色/版本）
	BasePrice      Money          `gorm:"type:bigint;not null;default:0" json:"base_price"`                                 // 基础单价（最小货币单位）
	DiscountAmount Money          `gorm:"type:bigint;not null;default:0" json:"discount_amount"`                            // 管理员规格折扣（每单位固定减免，0 表示无）
	StockTotal     int            `gorm:"not null;default:0" json:"stock_total"`                                            // 库存总量（0 表示不启用库存控制）
	StockLocked    int            `gorm:"not null;default:0" json:"stock_locked"`                                           // 库存占用量（待支付）
	StockSold      int            `gorm:"not null;default:0" json:"stock_sold"`                                             // 已售量
	IsActive       bool           `gorm:"default:true;index" json:"is_active"`                                              // 是否启用
	SortOrder      int            `gorm:"default:0;index" json:"sort_order"`                                                // 排序权重
	CreatedAt      time.Time      `gorm:"index" json:"created_at"`                                                          // 创建时间
	UpdatedAt      time.Time      `gorm:"index" json:"updated_at"`                                                          // 更新时间
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`                                                                   // 软删除时间

	Product *Product    `gorm:"foreignKey:ProductID" json:"product,omitempty"` // 关联商品
	Tiers   []PriceTier `gorm:"foreignKey:VariantID" json:"tiers,omitempty"`   // 阶梯价列表
}

// TableName 指定表名
func (ProductVariant) TableName() string {
	return "product_variants"
}
