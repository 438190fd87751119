package models

import (
	"time"

	"gorm.io/gorm"
)

// Refund 退款记录表（按行分摊结果落库，交由支付层执行）
type Refund struct {
	ID              uint           `gorm:"primarykey" json:"id"`                                  // 主键
	RefundNo        string         `gorm:"uniqueIndex;not null" json:"refund_no"`                 // 退款编号
	OrderID         uint           `gorm:"index;not null" json:"order_id"`                        // 订单ID
	OrderItemID     uint           `gorm:"index;not null" json:"order_item_id"`                   // 订单项ID
	Quantity        int            `gorm:"not null" json:"quantity"`                              // 本次退货数量
	PerUnitAmount   Money          `gorm:"type:bigint;not null;default:0" json:"per_unit_amount"` // 每单位退款金额
	RemainderAmount Money          `gorm:"type:bigint;not null;default:0" json:"remainder_amount"` // 末件补足的舍入余数
	TotalAmount     Money          `gorm:"type:bigint;not null;default:0" json:"total_amount"`    // 本次退款合计
	Status          string         `gorm:"index;not null" json:"status"`                          // 状态（pending/approved/rejected）
	Reason          string         `gorm:"type:varchar(500)" json:"reason"`                       // 退货原因
	ReviewedAt      *time.Time     `gorm:"index" json:"reviewed_at"`                              // 审核时间
	CreatedAt       time.Time      `gorm:"index" json:"created_at"`                               // 创建时间
	UpdatedAt       time.Time      `gorm:"index" json:"updated_at"`                               // 更新时间
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`                                        // 软删除时间
}

// TableName 指定表名
func (Refund) TableName() string {
	return "refunds"
}
