package pricing

import "github.com/storefront-next/internal/models"

// ReturnLine 退货请求行
type ReturnLine struct {
	ItemID          uint
	Quantity        int
	AlreadyReturned int // 此前已退数量（末件余数归属判断依据）
}

// RefundAllocation 单行退款分摊结果
type RefundAllocation struct {
	ItemID        uint
	Quantity      int
	PerUnit       models.Money // 每单位退款额（向下取整）
	Remainder     models.Money // 末件补足的舍入余数（仅含末件的批次携带）
	Total         models.Money // 本批次退款合计
	LinePaidTotal models.Money // 该行实付总额
}

// lineActualPaid 计算每行实付总额：按行折前额比例分摊（行级+单级折扣−有效运费），
// 最后一行吸收舍入残差，保证全行合计与净额严格相等。
func lineActualPaid(order OrderView, totals Totals) ([]models.Money, error) {
	paid := make([]models.Money, len(order.Items))
	if len(order.Items) == 0 {
		return paid, nil
	}

	adjustment := totals.ItemDiscounts + totals.OrderDiscounts - totals.Shipping

	var allocated models.Money
	for i, item := range order.Items {
		if i == len(order.Items)-1 {
			last := totals.Net - allocated
			if last < 0 {
				last = 0
			}
			paid[i] = last
			break
		}
		original, err := ReconstructOriginalPrice(item, order.BasePrices)
		if err != nil {
			return nil, err
		}
		lineGross := original.Mul(item.Quantity)
		var share models.Money
		if totals.Gross > 0 {
			// decimal 中转避免 adjustment×lineGross 的 int64 溢出
			share = models.Money(adjustment.Decimal().
				Mul(lineGross.Decimal()).
				DivRound(totals.Gross.Decimal(), 0).
				IntPart())
		}
		linePaid := lineGross - share
		if linePaid < 0 {
			linePaid = 0
		}
		paid[i] = linePaid
		allocated += linePaid
	}

	// 自检：全行合计必须与净额一致，否则属于逻辑缺陷
	var sum models.Money
	for _, p := range paid {
		sum += p
	}
	if sum != totals.Net {
		return nil, ErrRoundingInvariant
	}
	return paid, nil
}

// AllocateRefund 针对冻结订单快照计算退货退款分摊。
// 每单位退款额 = floor(行实付总额/数量)，余数只随该行最后一件退出，
// 全量退货时各行合计与订单净额严格相等。
func AllocateRefund(order OrderView, returns []ReturnLine) ([]RefundAllocation, error) {
	totals, err := Aggregate(order)
	if err != nil {
		return nil, err
	}
	paid, err := lineActualPaid(order, totals)
	if err != nil {
		return nil, err
	}

	itemIndex := make(map[uint]int, len(order.Items))
	for i, item := range order.Items {
		itemIndex[item.ID] = i
	}

	allocations := make([]RefundAllocation, 0, len(returns))
	requested := make(map[uint]int, len(returns))
	for _, line := range returns {
		idx, ok := itemIndex[line.ItemID]
		if !ok {
			return nil, ErrReturnItemNotFound
		}
		item := order.Items[idx]
		// 同一请求内重复出现的行按累计口径校验，避免叠加超退
		position := line.AlreadyReturned + requested[line.ItemID]
		if line.Quantity < 1 || line.AlreadyReturned < 0 ||
			position+line.Quantity > item.Quantity {
			return nil, ErrReturnQuantity
		}

		linePaid := paid[idx]
		perUnit := linePaid / models.Money(item.Quantity)
		remainder := linePaid - perUnit.Mul(item.Quantity)

		alloc := RefundAllocation{
			ItemID:        line.ItemID,
			Quantity:      line.Quantity,
			PerUnit:       perUnit,
			Total:         perUnit.Mul(line.Quantity),
			LinePaidTotal: linePaid,
		}
		// 余数归属该行退出的最后一件
		if position+line.Quantity == item.Quantity {
			alloc.Remainder = remainder
			alloc.Total += remainder
		}
		requested[line.ItemID] += line.Quantity
		allocations = append(allocations, alloc)
	}
	return allocations, nil
}
