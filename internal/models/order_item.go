package models

import (
	"time"

	"gorm.io/gorm"
)

// OrderItem 订单项表（折扣注解在下单冻结，退款复原只读这些列）
type OrderItem struct {
	ID                uint           `gorm:"primarykey" json:"id"`                                        // 主键
	OrderID           uint           `gorm:"index;not null" json:"order_id"`                              // 订单ID
	ProductID         uint           `gorm:"index;not null" json:"product_id"`                            // 商品ID
	VariantID         uint           `gorm:"index;not null" json:"variant_id"`                            // 规格ID
	TitleJSON         JSON           `gorm:"type:json;not null" json:"title"`                             // 商品标题快照
	SKUCode           string         `gorm:"column:sku_code;type:varchar(64)" json:"sku_code"`            // 规格编码快照
	UnitPrice         Money          `gorm:"type:bigint;not null;default:0" json:"unit_price"`            // 实收单价
	Quantity          int            `gorm:"not null" json:"quantity"`                                    // 数量
	TotalPrice        Money          `gorm:"type:bigint;not null;default:0" json:"total_price"`           // 小计（实收单价×数量）
	DiscountSource    string         `gorm:"type:varchar(20);not null;default:''" json:"discount_source"` // 折扣注解来源
	OriginalUnitPrice Money          `gorm:"type:bigint;not null;default:0" json:"original_unit_price"`   // 折前单价（下单时落库，复原不依赖现行配置）
	DiscountAmount    Money          `gorm:"type:bigint;not null;default:0" json:"discount_amount"`       // 每单位折扣金额
	PwpRuleID         *uint          `gorm:"index" json:"pwp_rule_id,omitempty"`                          // 加购规则ID
	IsBulkPrice       bool           `gorm:"not null;default:false" json:"is_bulk_price"`                 // 是否阶梯价
	CouponShare       Money          `gorm:"type:bigint;not null;default:0" json:"coupon_share"`          // 优惠券行级分摊金额
	ReturnedQuantity  int            `gorm:"not null;default:0" json:"returned_quantity"`                 // 已退数量
	CreatedAt         time.Time      `gorm:"index" json:"created_at"`                                     // 创建时间
	UpdatedAt         time.Time      `gorm:"index" json:"updated_at"`                                     // 更新时间
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`                                              // 软删除时间
}

// TableName 指定表名
func (OrderItem) TableName() string {
	return "order_items"
}
