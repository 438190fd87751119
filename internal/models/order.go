package models

import (
	"time"

	"gorm.io/gorm"
)

// Order 订单表（完成后折扣字段冻结，仅凭存储注解即可复原）
type Order struct {
	ID                  uint           `gorm:"primarykey" json:"id"`                                        // 主键
	OrderNo             string         `gorm:"uniqueIndex;not null" json:"order_no"`                        // 订单编号
	UserID              uint           `gorm:"index;not null" json:"user_id"`                               // 用户ID
	Status              string         `gorm:"index;not null" json:"status"`                                // 订单状态
	Currency            string         `gorm:"not null" json:"currency"`                                    // 币种
	GrossAmount         Money          `gorm:"type:bigint;not null;default:0" json:"gross_amount"`          // 折前总额
	ItemDiscountAmount  Money          `gorm:"type:bigint;not null;default:0" json:"item_discount_amount"`  // 行级折扣合计
	OrderDiscountAmount Money          `gorm:"type:bigint;not null;default:0" json:"order_discount_amount"` // 单级折扣合计
	ShippingAmount      Money          `gorm:"type:bigint;not null;default:0" json:"shipping_amount"`       // 运费原始金额
	FreeShipping        bool           `gorm:"not null;default:false" json:"free_shipping"`                 // 是否免运费
	NetAmount           Money          `gorm:"type:bigint;not null;default:0" json:"net_amount"`            // 实付净额
	CouponID            *uint          `gorm:"index" json:"coupon_id,omitempty"`                            // 优惠券ID
	CouponCode          string         `gorm:"type:varchar(64)" json:"coupon_code,omitempty"`               // 优惠码快照
	CouponAmount        Money          `gorm:"type:bigint;not null;default:0" json:"coupon_amount"`         // 优惠券金额（单级缓存，行级分摊优先）
	PointsRedeemed      int64          `gorm:"not null;default:0" json:"points_redeemed"`                   // 抵扣积分数
	PointsAmount        Money          `gorm:"type:bigint;not null;default:0" json:"points_amount"`         // 积分抵扣金额
	MemberPromoID       *uint          `gorm:"index" json:"member_promo_id,omitempty"`                      // 会员活动ID
	MemberPromoAmount   Money          `gorm:"type:bigint;not null;default:0" json:"member_promo_amount"`   // 会员活动优惠金额
	MemberTierSlug      string         `gorm:"type:varchar(64)" json:"member_tier_slug,omitempty"`          // 会员等级标识快照
	MemberTierAmount    Money          `gorm:"type:bigint;not null;default:0" json:"member_tier_amount"`    // 会员等级优惠金额
	ClientIP            string         `gorm:"type:varchar(64)" json:"client_ip,omitempty"`                 // 下单客户端IP
	ExpiresAt           *time.Time     `gorm:"index" json:"expires_at"`                                     // 过期时间
	PaidAt              *time.Time     `gorm:"index" json:"paid_at"`                                        // 支付时间
	CanceledAt          *time.Time     `gorm:"index" json:"canceled_at"`                                    // 取消时间
	CreatedAt           time.Time      `gorm:"index" json:"created_at"`                                     // 创建时间
	UpdatedAt           time.Time      `gorm:"index" json:"updated_at"`                                     // 更新时间
	DeletedAt           gorm.DeletedAt `gorm:"index" json:"-"`                                              // 软删除时间

	Items   []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`   // 订单项
	Refunds []Refund    `gorm:"foreignKey:OrderID" json:"refunds,omitempty"` // 退款记录
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}
