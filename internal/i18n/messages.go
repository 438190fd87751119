package i18n

import "github.com/storefront-next/internal/constants"

var messages = map[string]map[string]string{
	constants.LocaleEnUS: {
		"error.bad_request":             "invalid request",
		"error.unauthorized":            "unauthorized",
		"error.forbidden":               "forbidden",
		"error.not_found":               "not found",
		"error.internal":                "internal error",
		"error.too_many_requests":       "too many requests, please try again later",
		"error.rate_limited":            "too many attempts, please retry in %d seconds",
		"error.login_too_many":          "too many login attempts, please retry in %d seconds",
		"error.rate_limit_unavailable":  "rate limiter unavailable",
		"error.user_id_invalid":         "invalid user id",
		"error.user_id_type_invalid":    "invalid user id type",
		"error.admin_id_invalid":        "invalid admin id",
		"error.admin_id_type_invalid":   "invalid admin id type",
		"error.login_failed":            "invalid username or password",
		"error.user_disabled":           "account disabled",
		"error.user_exists":             "account already exists",
		"error.user_not_found":          "account not found",
		"error.password_invalid":        "invalid password",
		"error.token_invalid":           "invalid or expired token",
		"error.product_not_available":   "product not available",
		"error.variant_not_found":       "product variant not found",
		"error.stock_insufficient":      "insufficient stock",
		"error.cart_empty":              "cart is empty",
		"error.cart_item_not_found":     "cart item not found",
		"error.order_item_invalid":      "invalid order item",
		"error.order_not_found":         "order not found",
		"error.order_status_invalid":    "invalid order status",
		"error.order_fetch_failed":      "failed to fetch order",
		"error.order_create_failed":     "failed to create order",
		"error.order_update_failed":     "failed to update order",
		"error.coupon_invalid":          "invalid coupon",
		"error.coupon_expired":          "coupon expired",
		"error.coupon_min_amount":       "order amount below coupon threshold",
		"error.coupon_usage_limit":      "coupon usage limit reached",
		"error.points_insufficient":     "insufficient points balance",
		"error.pwp_not_eligible":        "cart not eligible for this offer",
		"error.pwp_rule_not_found":      "offer not found",
		"error.price_drift":             "prices changed, please refresh your cart",
		"error.refund_not_found":        "refund not found",
		"error.refund_status_invalid":   "invalid refund status",
		"error.return_quantity_invalid": "invalid return quantity",
		"error.return_item_not_found":   "return item not found on order",
		"error.tier_not_found":          "price tier not found",
		"error.tier_range_invalid":      "invalid tier quantity range",
		"error.tier_overlap":            "tier quantity ranges overlap",
		"error.discount_invalid":        "invalid discount amount",
		"error.date_invalid":            "invalid date",
		"error.setting_invalid":         "invalid setting value",
	},
	constants.LocaleZhCN: {
		"error.bad_request":             "请求参数错误",
		"error.unauthorized":            "未登录或登录已过期",
		"error.forbidden":               "没有权限",
		"error.not_found":               "资源不存在",
		"error.internal":                "服务器内部错误",
		"error.too_many_requests":       "请求过于频繁，请稍后再试",
		"error.rate_limited":            "尝试过于频繁，请在 %d 秒后重试",
		"error.login_too_many":          "登录尝试过于频繁，请在 %d 秒后重试",
		"error.rate_limit_unavailable":  "限流服务不可用",
		"error.user_id_invalid":         "用户标识无效",
		"error.user_id_type_invalid":    "用户标识类型无效",
		"error.admin_id_invalid":        "管理员标识无效",
		"error.admin_id_type_invalid":   "管理员标识类型无效",
		"error.login_failed":            "用户名或密码错误",
		"error.user_disabled":           "账号已被禁用",
		"error.user_exists":             "账号已存在",
		"error.user_not_found":          "账号不存在",
		"error.password_invalid":        "密码不正确",
		"error.token_invalid":           "登录凭证无效或已过期",
		"error.product_not_available":   "商品不可购买",
		"error.variant_not_found":       "商品规格不存在",
		"error.stock_insufficient":      "库存不足",
		"error.cart_empty":              "购物车为空",
		"error.cart_item_not_found":     "购物车项不存在",
		"error.order_item_invalid":      "订单项无效",
		"error.order_not_found":         "订单不存在",
		"error.order_status_invalid":    "订单状态不允许该操作",
		"error.order_fetch_failed":      "获取订单失败",
		"error.order_create_failed":     "创建订单失败",
		"error.order_update_failed":     "更新订单失败",
		"error.coupon_invalid":          "优惠券无效",
		"error.coupon_expired":          "优惠券已过期",
		"error.coupon_min_amount":       "订单金额未达到优惠券门槛",
		"error.coupon_usage_limit":      "优惠券使用次数已达上限",
		"error.points_insufficient":     "积分余额不足",
		"error.pwp_not_eligible":        "购物车不满足换购条件",
		"error.pwp_rule_not_found":      "换购活动不存在",
		"error.price_drift":             "价格已变动，请刷新购物车",
		"error.refund_not_found":        "退款单不存在",
		"error.refund_status_invalid":   "退款单状态不允许该操作",
		"error.return_quantity_invalid": "退货数量无效",
		"error.return_item_not_found":   "订单中不存在该退货项",
		"error.tier_not_found":          "价格阶梯不存在",
		"error.tier_range_invalid":      "阶梯数量区间无效",
		"error.tier_overlap":            "阶梯数量区间重叠",
		"error.discount_invalid":        "折扣金额无效",
		"error.date_invalid":            "日期格式无效",
		"error.setting_invalid":         "设置值无效",
	},
}
