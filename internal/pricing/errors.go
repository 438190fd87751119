package pricing

import "errors"

// 定价引擎错误定义
var (
	ErrScheduleOverlap      = errors.New("price schedule tiers overlap")              // 阶梯区间重叠（配置错误，需管理员修正）
	ErrTierRange            = errors.New("price tier range invalid")                  // 阶梯区间上下界非法
	ErrAnnotationIncomplete = errors.New("discount annotation incomplete")            // 存储注解不足以复原折前价
	ErrRoundingInvariant    = errors.New("refund rounding invariant violated")        // 全额退款分摊与净额不一致（逻辑缺陷，必须抛出）
	ErrReturnQuantity       = errors.New("return quantity invalid")                   // 退货数量非法
	ErrReturnItemNotFound   = errors.New("return item not found in order")            // 退货行不在订单内
)
