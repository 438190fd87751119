package service

import (
	"fmt"
	"time"

	"github.com/storefront-next/internal/constants"
	"github.com/storefront-next/internal/logger"
	"github.com/storefront-next/internal/models"
	"github.com/storefront-next/internal/pricing"
	"github.com/storefront-next/internal/repository"

	"gorm.io/gorm"
)

// ReturnRequestLine 退货申请行
type ReturnRequestLine struct {
	OrderItemID uint `json:"order_item_id"`
	Quantity    int  `json:"quantity"`
}

// ReturnRequestInput 退货申请
type ReturnRequestInput struct {
	UserID  uint
	OrderNo string
	Lines   []ReturnRequestLine
	Reason  string
}

// RefundService 退款服务。分摊只读订单冻结快照，
// 与现行商品定价完全无关。
type RefundService struct {
	orderRepo  repository.OrderRepository
	refundRepo repository.RefundRepository
}

// NewRefundService 创建退款服务
func NewRefundService(orderRepo repository.OrderRepository, refundRepo repository.RefundRepository) *RefundService {
	return &RefundService{
		orderRepo:  orderRepo,
		refundRepo: refundRepo,
	}
}

// RequestReturn 受理退货申请：按实付比例分摊退款并落库待审核记录
func (s *RefundService) RequestReturn(input ReturnRequestInput) ([]models.Refund, error) {
	if len(input.Lines) == 0 {
		return nil, ErrInvalidOrderItem
	}

	order, err := s.orderRepo.GetByOrderNo(input.OrderNo)
	if err != nil {
		return nil, err
	}
	if order == nil || (input.UserID != 0 && order.UserID != input.UserID) {
		return nil, ErrOrderNotFound
	}
	if order.Status != constants.OrderStatusPaid && order.Status != constants.OrderStatusCompleted {
		return nil, ErrOrderStatusInvalid
	}

	view := orderViewFromModel(order)

	returns := make([]pricing.ReturnLine, 0, len(input.Lines))
	itemsByID := make(map[uint]*models.OrderItem, len(order.Items))
	for i := range order.Items {
		itemsByID[order.Items[i].ID] = &order.Items[i]
	}
	for _, line := range input.Lines {
		item, ok := itemsByID[line.OrderItemID]
		if !ok {
			return nil, pricing.ErrReturnItemNotFound
		}
		returns = append(returns, pricing.ReturnLine{
			ItemID:          line.OrderItemID,
			Quantity:        line.Quantity,
			AlreadyReturned: item.ReturnedQuantity,
		})
	}

	allocations, err := pricing.AllocateRefund(view, returns)
	if err != nil {
		return nil, err
	}

	refunds := make([]models.Refund, 0, len(allocations))
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		refundRepo := s.refundRepo.WithTx(tx)
		pending := make(map[uint]int, len(allocations))
		for _, alloc := range allocations {
			refund := models.Refund{
				RefundNo:        generateRefundNo(),
				OrderID:         order.ID,
				OrderItemID:     alloc.ItemID,
				Quantity:        alloc.Quantity,
				PerUnitAmount:   alloc.PerUnit,
				RemainderAmount: alloc.Remainder,
				TotalAmount:     alloc.Total,
				Status:          constants.RefundStatusPending,
				Reason:          input.Reason,
			}
			if err := refundRepo.Create(&refund); err != nil {
				return err
			}
			item := itemsByID[alloc.ItemID]
			pending[alloc.ItemID] += alloc.Quantity
			if err := refundRepo.UpdateItemReturnedQuantity(alloc.ItemID, item.ReturnedQuantity+pending[alloc.ItemID]); err != nil {
				return err
			}
			refunds = append(refunds, refund)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Infow("refund_requested",
		"order_id", order.ID,
		"order_no", order.OrderNo,
		"lines", len(refunds),
	)
	return refunds, nil
}

// Review 审核退款；驳回时回滚订单项已退数量
func (s *RefundService) Review(refundID uint, approve bool, now time.Time) (*models.Refund, error) {
	refund, err := s.refundRepo.GetByID(refundID)
	if err != nil {
		return nil, err
	}
	if refund == nil {
		return nil, ErrRefundNotFound
	}
	if refund.Status != constants.RefundStatusPending {
		return nil, ErrRefundStatusInvalid
	}

	status := constants.RefundStatusApproved
	if !approve {
		status = constants.RefundStatusRejected
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		refundRepo := s.refundRepo.WithTx(tx)
		refund.Status = status
		refund.ReviewedAt = &now
		if err := refundRepo.Update(refund); err != nil {
			return err
		}
		if approve {
			return nil
		}
		var item models.OrderItem
		if err := tx.First(&item, refund.OrderItemID).Error; err != nil {
			return err
		}
		returned := item.ReturnedQuantity - refund.Quantity
		if returned < 0 {
			returned = 0
		}
		return refundRepo.UpdateItemReturnedQuantity(refund.OrderItemID, returned)
	})
	if err != nil {
		return nil, err
	}

	logger.Infow("refund_reviewed",
		"refund_id", refund.ID,
		"refund_no", refund.RefundNo,
		"status", status,
	)
	return refund, nil
}

// ListByOrder 查询订单退款记录
func (s *RefundService) ListByOrder(orderID uint) ([]models.Refund, error) {
	return s.refundRepo.ListByOrder(orderID)
}

// List 分页查询退款记录
func (s *RefundService) List(filter repository.RefundListFilter) ([]models.Refund, int64, error) {
	return s.refundRepo.List(filter)
}

// orderViewFromModel 把冻结订单转为聚合引擎输入
func orderViewFromModel(order *models.Order) pricing.OrderView {
	items := make([]pricing.ItemView, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, pricing.ItemView{
			ID:                item.ID,
			VariantID:         item.VariantID,
			Quantity:          item.Quantity,
			UnitPrice:         item.UnitPrice,
			Source:            item.DiscountSource,
			OriginalUnitPrice: item.OriginalUnitPrice,
			DiscountAmount:    item.DiscountAmount,
			IsBulkPrice:       item.IsBulkPrice,
			CouponShare:       item.CouponShare,
		})
	}
	return pricing.OrderView{
		Items:             items,
		CouponAmount:      order.CouponAmount,
		PointsAmount:      order.PointsAmount,
		MemberPromoAmount: order.MemberPromoAmount,
		MemberTierAmount:  order.MemberTierAmount,
		ShippingAmount:    order.ShippingAmount,
		FreeShipping:      order.FreeShipping,
	}
}

func generateRefundNo() string {
	now := time.Now().Format("20060102150405")
	return fmt.Sprintf("RF%s%s", now, randNumeric(6))
}
