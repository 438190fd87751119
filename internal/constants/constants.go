package constants

// 订单状态常量
const (
	OrderStatusPendingPayment = "pending_payment"
	OrderStatusPaid           = "paid"
	OrderStatusCompleted      = "completed"
	OrderStatusCanceled       = "canceled"
)

// 退款状态常量
const (
	RefundStatusPending  = "pending"
	RefundStatusApproved = "approved"
	RefundStatusRejected = "rejected"
)

// 优惠券类型常量
const (
	CouponTypeFixed   = "fixed"
	CouponTypePercent = "percent"
)

// 加购规则触发类型常量
const (
	PwpTriggerCartValue = "cart_value"
	PwpTriggerProduct   = "product"
)

// 加购规则折扣类型常量
const (
	PwpDiscountPercentage = "percentage"
	PwpDiscountFixed      = "fixed"
)

// 用户状态常量
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// 队列常量
const (
	QueueDefault           = "default"
	TaskOrderTimeoutCancel = "order:timeout_cancel"
	TaskRevenueRollup      = "revenue:rollup"
)

// 缓存默认配置常量
const (
	RedisPrefixDefault = "sf"
)

// 设置键常量
const (
	SettingKeySiteConfig             = "site_config"
	SettingKeyOrderConfig            = "order_config"
	SettingKeyShippingConfig         = "shipping_config"
	SettingKeyPointsConfig           = "points_config"
	SettingFieldSiteCurrency         = "currency"
	SettingFieldPaymentExpireMinutes = "payment_expire_minutes"
	SettingFieldShippingFlatAmount   = "flat_amount"
	SettingFieldFreeShippingMin      = "free_shipping_min_amount"
	SettingFieldPointsPerUnit        = "points_per_unit"
)

// 币种常量
const (
	SiteCurrencyDefault = "USD"
)

// Redis 键前缀默认值
const RedisKeyPrefixDefault = "sf"

// 站点语言常量
const (
	LocaleEnUS = "en-US"
	LocaleZhCN = "zh-CN"
)

// 支持的站点语言顺序（含回退顺序）
var SupportedLocales = []string{LocaleEnUS, LocaleZhCN}
