package models

import (
	"time"

	"gorm.io/gorm"
)

// MemberTier 会员等级表（按等级自动折扣）
type MemberTier struct {
	ID              uint           `gorm:"primarykey" json:"id"`                               // 主键
	Slug            string         `gorm:"uniqueIndex;not null" json:"slug"`                   // 唯一标识
	NameJSON        JSON           `gorm:"type:json;not null" json:"name"`                     // 多语言名称
	DiscountPercent int64          `gorm:"not null;default:0" json:"discount_percent"`         // 折扣百分比（0-100）
	MinSpend        Money          `gorm:"type:bigint;not null;default:0" json:"min_spend"`    // 晋级累计消费门槛
	SortOrder       int            `gorm:"default:0;index" json:"sort_order"`                  // 排序权重
	CreatedAt       time.Time      `gorm:"index" json:"created_at"`                            // 创建时间
	UpdatedAt       time.Time      `gorm:"index" json:"updated_at"`                            // 更新时间
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`                                     // 软删除时间
}

// TableName 指定表名
func (MemberTier) TableName() string {
	return "member_tiers"
}

// MemberPromo 会员活动表（固定金额优惠）
type MemberPromo struct {
	ID        uint           `gorm:"primarykey" json:"id"`                            // 主键
	Name      string         `gorm:"not null" json:"name"`                            // 名称
	Amount    Money          `gorm:"type:bigint;not null;default:0" json:"amount"`    // 优惠金额
	MinAmount Money          `gorm:"type:bigint;not null;default:0" json:"min_amount"` // 使用门槛
	StartsAt  *time.Time     `gorm:"index" json:"starts_at"`                          // 生效时间
	EndsAt    *time.Time     `gorm:"index" json:"ends_at"`                            // 失效时间
	IsActive  bool           `gorm:"not null;default:true" json:"is_active"`          // 是否启用
	CreatedAt time.Time      `gorm:"index" json:"created_at"`                         // 创建时间
	UpdatedAt time.Time      `gorm:"index" json:"updated_at"`                         // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                                  // 软删除时间
}

// TableName 指定表名
func (MemberPromo) TableName() string {
	return "member_promos"
}

// PointsAccount 积分账户表（简单累加器，抵扣时扣减）
type PointsAccount struct {
	ID        uint      `gorm:"primarykey" json:"id"`                  // 主键
	UserID    uint      `gorm:"uniqueIndex;not null" json:"user_id"`   // 用户ID
	Balance   int64     `gorm:"not null;default:0" json:"balance"`     // 积分余额
	CreatedAt time.Time `gorm:"index" json:"created_at"`               // 创建时间
	UpdatedAt time.Time `gorm:"index" json:"updated_at"`               // 更新时间
}

// TableName 指定表名
func (PointsAccount) TableName() string {
	return "points_accounts"
}
