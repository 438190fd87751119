package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/storefront-next/internal/constants"
	"github.com/storefront-next/internal/models"
	"github.com/storefront-next/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupRefundServiceTest(t *testing.T) (*RefundService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:refund_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Order{}, &models.OrderItem{}, &models.Refund{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db
	return NewRefundService(repository.NewOrderRepository(db), repository.NewRefundRepository(db)), db
}

// 单行订单：实付 1000 / 3 件，逐件退时余数只随最后一件退出
func createThreeUnitOrder(t *testing.T, db *gorm.DB) models.Order {
	t.Helper()
	paidAt := time.Now()
	order := models.Order{
		OrderNo:             "SF20260901000001",
		UserID:              7,
		Status:              constants.OrderStatusPaid,
		Currency:            constants.SiteCurrencyDefault,
		GrossAmount:         3000,
		OrderDiscountAmount: 2000,
		CouponAmount:        2000,
		NetAmount:           1000,
		PaidAt:              &paidAt,
		Items: []models.OrderItem{
			{
				VariantID:   1,
				TitleJSON:   models.JSON{"en-US": "Widget"},
				UnitPrice:   1000,
				Quantity:    3,
				TotalPrice:  3000,
				CouponShare: 2000,
			},
		},
	}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	return order
}

func TestReturnUnitByUnitRemainderOnLastUnit(t *testing.T) {
	svc, db := setupRefundServiceTest(t)
	order := createThreeUnitOrder(t, db)
	itemID := order.Items[0].ID

	var total models.Money
	for i := 0; i < 3; i++ {
		refunds, err := svc.RequestReturn(ReturnRequestInput{
			UserID:  order.UserID,
			OrderNo: order.OrderNo,
			Lines:   []ReturnRequestLine{{OrderItemID: itemID, Quantity: 1}},
			Reason:  "damaged",
		})
		if err != nil {
			t.Fatalf("return %d failed: %v", i+1, err)
		}
		if len(refunds) != 1 {
			t.Fatalf("expected single refund row, got %d", len(refunds))
		}
		total += refunds[0].TotalAmount

		expected := models.Money(333)
		if i == 2 {
			expected = 334 // 末件携带余数
		}
		if refunds[0].TotalAmount != expected {
			t.Fatalf("return %d: expected %d, got %d", i+1, expected, refunds[0].TotalAmount)
		}
	}
	if total != 1000 {
		t.Fatalf("expected full return to equal net 1000, got %d", total)
	}

	var item models.OrderItem
	if err := db.First(&item, itemID).Error; err != nil {
		t.Fatalf("load item failed: %v", err)
	}
	if item.ReturnedQuantity != 3 {
		t.Fatalf("expected returned quantity 3, got %d", item.ReturnedQuantity)
	}
}

func TestReturnRejectsOverQuantity(t *testing.T) {
	svc, db := setupRefundServiceTest(t)
	order := createThreeUnitOrder(t, db)
	itemID := order.Items[0].ID

	_, err := svc.RequestReturn(ReturnRequestInput{
		UserID:  order.UserID,
		OrderNo: order.OrderNo,
		Lines:   []ReturnRequestLine{{OrderItemID: itemID, Quantity: 4}},
	})
	if err == nil {
		t.Fatalf("expected over-quantity return to fail")
	}
}

func TestReturnRepeatedLinesInOneRequest(t *testing.T) {
	svc, db := setupRefundServiceTest(t)
	order := createThreeUnitOrder(t, db)
	itemID := order.Items[0].ID

	// 同一行重复出现且累计超过可退数量时整体拒绝，不落任何退款记录
	_, err := svc.RequestReturn(ReturnRequestInput{
		UserID:  order.UserID,
		OrderNo: order.OrderNo,
		Lines: []ReturnRequestLine{
			{OrderItemID: itemID, Quantity: 2},
			{OrderItemID: itemID, Quantity: 2},
		},
	})
	if err == nil {
		t.Fatalf("expected duplicated over-quantity return to fail")
	}
	var count int64
	if err := db.Model(&models.Refund{}).Count(&count).Error; err != nil {
		t.Fatalf("count refunds failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected no refund rows after rejection, got %d", count)
	}

	// 累计在范围内时允许，退款合计与净额一致且已退数量按累计更新
	refunds, err := svc.RequestReturn(ReturnRequestInput{
		UserID:  order.UserID,
		OrderNo: order.OrderNo,
		Lines: []ReturnRequestLine{
			{OrderItemID: itemID, Quantity: 1},
			{OrderItemID: itemID, Quantity: 2},
		},
	})
	if err != nil {
		t.Fatalf("request return failed: %v", err)
	}
	if len(refunds) != 2 {
		t.Fatalf("expected 2 refund rows, got %d", len(refunds))
	}
	if total := refunds[0].TotalAmount + refunds[1].TotalAmount; total != 1000 {
		t.Fatalf("expected repeated-line full return to equal net 1000, got %d", total)
	}

	var item models.OrderItem
	if err := db.First(&item, itemID).Error; err != nil {
		t.Fatalf("load item failed: %v", err)
	}
	if item.ReturnedQuantity != 3 {
		t.Fatalf("expected returned quantity 3, got %d", item.ReturnedQuantity)
	}
}

func TestReturnRejectsUnpaidOrder(t *testing.T) {
	svc, db := setupRefundServiceTest(t)
	order := models.Order{
		OrderNo:   "SF20260901000002",
		UserID:    7,
		Status:    constants.OrderStatusPendingPayment,
		NetAmount: 1000,
		Items: []models.OrderItem{
			{VariantID: 1, TitleJSON: models.JSON{}, UnitPrice: 1000, Quantity: 1, TotalPrice: 1000},
		},
	}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	_, err := svc.RequestReturn(ReturnRequestInput{
		UserID:  order.UserID,
		OrderNo: order.OrderNo,
		Lines:   []ReturnRequestLine{{OrderItemID: order.Items[0].ID, Quantity: 1}},
	})
	if err != ErrOrderStatusInvalid {
		t.Fatalf("expected status invalid, got: %v", err)
	}
}

func TestReviewRejectRestoresReturnedQuantity(t *testing.T) {
	svc, db := setupRefundServiceTest(t)
	order := createThreeUnitOrder(t, db)
	itemID := order.Items[0].ID

	refunds, err := svc.RequestReturn(ReturnRequestInput{
		UserID:  order.UserID,
		OrderNo: order.OrderNo,
		Lines:   []ReturnRequestLine{{OrderItemID: itemID, Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("request return failed: %v", err)
	}

	reviewed, err := svc.Review(refunds[0].ID, false, time.Now())
	if err != nil {
		t.Fatalf("review failed: %v", err)
	}
	if reviewed.Status != constants.RefundStatusRejected || reviewed.ReviewedAt == nil {
		t.Fatalf("unexpected reviewed refund: %+v", reviewed)
	}

	var item models.OrderItem
	if err := db.First(&item, itemID).Error; err != nil {
		t.Fatalf("load item failed: %v", err)
	}
	if item.ReturnedQuantity != 0 {
		t.Fatalf("expected returned quantity restored to 0, got %d", item.ReturnedQuantity)
	}

	if _, err := svc.Review(refunds[0].ID, true, time.Now()); err != ErrRefundStatusInvalid {
		t.Fatalf("expected double review rejected, got: %v", err)
	}
}

func TestReviewApproveKeepsReturnedQuantity(t *testing.T) {
	svc, db := setupRefundServiceTest(t)
	order := createThreeUnitOrder(t, db)
	itemID := order.Items[0].ID

	refunds, err := svc.RequestReturn(ReturnRequestInput{
		UserID:  order.UserID,
		OrderNo: order.OrderNo,
		Lines:   []ReturnRequestLine{{OrderItemID: itemID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("request return failed: %v", err)
	}

	reviewed, err := svc.Review(refunds[0].ID, true, time.Now())
	if err != nil {
		t.Fatalf("review failed: %v", err)
	}
	if reviewed.Status != constants.RefundStatusApproved {
		t.Fatalf("expected approved, got %s", reviewed.Status)
	}

	var item models.OrderItem
	if err := db.First(&item, itemID).Error; err != nil {
		t.Fatalf("load item failed: %v", err)
	}
	if item.ReturnedQuantity != 1 {
		t.Fatalf("expected returned quantity 1, got %d", item.ReturnedQuantity)
	}
}
