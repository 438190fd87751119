package repository

import "time"

// ProductListFilter 查询商品列表的过滤条件
type ProductListFilter struct {
	Page         int
	PageSize     int
	Search       string
	OnlyActive   bool
	WithVariants bool
}

// OrderListFilter 查询订单列表的过滤条件
type OrderListFilter struct {
	Page        int
	PageSize    int
	UserID      uint
	Status      string
	OrderNo     string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// RefundListFilter 查询退款列表的过滤条件
type RefundListFilter struct {
	Page     int
	PageSize int
	OrderID  uint
	Status   string
}

// PwpRuleListFilter 查询加购规则列表的过滤条件
type PwpRuleListFilter struct {
	Page     int
	PageSize int
	IsActive *bool
}

// CouponListFilter 查询优惠券列表的过滤条件
type CouponListFilter struct {
	Page     int
	PageSize int
	Code     string
	IsActive *bool
}

// UserListFilter 查询用户列表的过滤条件
type UserListFilter struct {
	Page     int
	PageSize int
	Keyword  string
	Status   string
}
