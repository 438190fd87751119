package models

import (
	"time"

	"gorm.io/gorm"
)

// PriceTier 阶梯价表（批发/数量折扣价）
type PriceTier struct {
	ID          uint           `gorm:"primarykey" json:"id"`                             // 主键
	VariantID   uint           `gorm:"not null;index" json:"variant_id"`                 // 规格ID
	MinQuantity int            `gorm:"not null" json:"min_quantity"`                     // 最小数量（含）
	MaxQuantity *int           `gorm:"" json:"max_quantity"`                             // 最大数量（含；空表示无上限，仅最高档允许）
	UnitPrice   Money          `gorm:"type:bigint;not null;default:0" json:"unit_price"` // 档位单价（最小货币单位）
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                          // 创建时间
	UpdatedAt   time.Time      `gorm:"index" json:"updated_at"`                          // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                                   // 软删除时间
}

// TableName 指定表名
func (PriceTier) TableName() string {
	return "price_tiers"
}
