package service

import "errors"

// 服务层统一错误；HTTP 层据此映射错误码与多语言文案
var (
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrUserDisabled        = errors.New("user disabled")
	ErrUserExists          = errors.New("user already exists")
	ErrUserNotFound        = errors.New("user not found")
	ErrTokenInvalid        = errors.New("token invalid")
	ErrProductNotAvailable = errors.New("product not available")
	ErrVariantNotFound     = errors.New("variant not found")
	ErrStockInsufficient   = errors.New("stock insufficient")
	ErrCartEmpty           = errors.New("cart is empty")
	ErrCartItemNotFound    = errors.New("cart item not found")
	ErrInvalidOrderItem    = errors.New("invalid order item")
	ErrOrderNotFound       = errors.New("order not found")
	ErrOrderStatusInvalid  = errors.New("order status invalid")
	ErrCouponInvalid       = errors.New("coupon invalid")
	ErrCouponExpired       = errors.New("coupon expired")
	ErrCouponMinAmount     = errors.New("coupon min amount not met")
	ErrCouponUsageLimit    = errors.New("coupon usage limit reached")
	ErrPointsInsufficient  = errors.New("points insufficient")
	ErrPwpNotEligible      = errors.New("pwp rule not eligible")
	ErrPwpRuleNotFound     = errors.New("pwp rule not found")
	ErrPriceDrift          = errors.New("price drift detected")
	ErrRefundNotFound      = errors.New("refund not found")
	ErrRefundStatusInvalid = errors.New("refund status invalid")
	ErrTierNotFound        = errors.New("member tier not found")
)
