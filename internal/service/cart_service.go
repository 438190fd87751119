package service

import (
	"time"

	"github.com/storefront-next/internal/models"
	"github.com/storefront-next/internal/pricing"
	"github.com/storefront-next/internal/repository"
)

// CartView 购物车视图（条目 + 实时合计）
type CartView struct {
	Items  []models.CartItem `json:"items"`
	Totals pricing.Totals    `json:"totals"`
}

// AddCartItemInput 加入购物车输入
type AddCartItemInput struct {
	UserID    uint
	VariantID uint
	Quantity  int
	PwpRuleID uint // 非 0 表示以加购奖励价加入
}

// CartService 购物车服务。条目加入时按当时配置冻结单价与折扣注解，
// 此后读取只认快照；改价通过重新定价接口显式同步。
type CartService struct {
	cartRepo    repository.CartRepository
	variantRepo repository.VariantRepository
	pwpSvc      *PwpService
	syncSvc     *PriceSyncService
}

// NewCartService 创建购物车服务
func NewCartService(cartRepo repository.CartRepository, variantRepo repository.VariantRepository, pwpSvc *PwpService, syncSvc *PriceSyncService) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		variantRepo: variantRepo,
		pwpSvc:      pwpSvc,
		syncSvc:     syncSvc,
	}
}

// View 获取用户购物车及实时合计（未施加任何单级折扣）
func (s *CartService) View(userID uint) (CartView, error) {
	items, err := s.cartRepo.ListByUser(userID)
	if err != nil {
		return CartView{}, err
	}
	totals, err := pricing.Aggregate(pricing.OrderView{Items: cartItemViews(items)})
	if err != nil {
		return CartView{}, err
	}
	return CartView{Items: items, Totals: totals}, nil
}

// AddItem 加入购物车：现行配置合成单价并冻结折扣注解
func (s *CartService) AddItem(input AddCartItemInput, now time.Time) (*models.CartItem, error) {
	if input.UserID == 0 || input.VariantID == 0 || input.Quantity < 1 {
		return nil, ErrInvalidOrderItem
	}

	variant, err := s.variantRepo.GetByID(input.VariantID)
	if err != nil {
		return nil, err
	}
	if variant == nil || !variant.IsActive {
		return nil, ErrVariantNotFound
	}

	existing, err := s.cartRepo.GetByUserAndVariant(input.UserID, input.VariantID)
	if err != nil {
		return nil, err
	}
	quantity := input.Quantity
	if existing != nil {
		quantity += existing.Quantity
	}

	var pwp *pricing.PwpOverride
	if input.PwpRuleID != 0 {
		items, err := s.cartRepo.ListByUser(input.UserID)
		if err != nil {
			return nil, err
		}
		pwp, err = s.pwpSvc.ResolveOverride(input.PwpRuleID, items, now)
		if err != nil {
			return nil, err
		}
	}

	composed, err := s.composeFor(variant, quantity, pwp)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		existing.Quantity = quantity
		applyComposed(existing, composed)
		if err := s.cartRepo.Update(existing); err != nil {
			return nil, err
		}
		return existing, nil
	}

	item := &models.CartItem{
		UserID:    input.UserID,
		VariantID: input.VariantID,
		Quantity:  quantity,
	}
	applyComposed(item, composed)
	if err := s.cartRepo.Create(item); err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateQuantity 修改数量；数量跨档会改变阶梯价，因此重新合成注解
func (s *CartService) UpdateQuantity(userID, itemID uint, quantity int) (*models.CartItem, error) {
	if quantity < 1 {
		return nil, ErrInvalidOrderItem
	}
	item, err := s.cartRepo.GetByID(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil || item.UserID != userID {
		return nil, ErrCartItemNotFound
	}

	// 加购奖励项价格由规则决定，数量变化不触发重算
	if item.DiscountSource != models.DiscountSourcePwp {
		variant := item.Variant
		if variant == nil {
			variant, err = s.variantRepo.GetByID(item.VariantID)
			if err != nil {
				return nil, err
			}
			if variant == nil {
				return nil, ErrVariantNotFound
			}
		}
		composed, err := s.composeFor(variant, quantity, nil)
		if err != nil {
			return nil, err
		}
		applyComposed(item, composed)
	}

	item.Quantity = quantity
	if err := s.cartRepo.Update(item); err != nil {
		return nil, err
	}
	return item, nil
}

// RemoveItem 移除购物车项
func (s *CartService) RemoveItem(userID, itemID uint) error {
	item, err := s.cartRepo.GetByID(itemID)
	if err != nil {
		return err
	}
	if item == nil || item.UserID != userID {
		return ErrCartItemNotFound
	}
	return s.cartRepo.Delete(itemID)
}

// Clear 清空购物车
func (s *CartService) Clear(userID uint) error {
	return s.cartRepo.ClearByUser(userID)
}

// Reprice 按现行配置重新合成所有非加购条目的单价与注解，
// 漂移检查拒绝结账后由用户显式触发。
func (s *CartService) Reprice(userID uint) (CartView, error) {
	items, err := s.cartRepo.ListByUser(userID)
	if err != nil {
		return CartView{}, err
	}
	for i := range items {
		item := &items[i]
		if item.DiscountSource == models.DiscountSourcePwp {
			continue
		}
		variant := item.Variant
		if variant == nil {
			variant, err = s.variantRepo.GetByID(item.VariantID)
			if err != nil {
				return CartView{}, err
			}
		}
		if variant == nil || !variant.IsActive {
			if err := s.cartRepo.Delete(item.ID); err != nil {
				return CartView{}, err
			}
			continue
		}
		composed, err := s.composeFor(variant, item.Quantity, nil)
		if err != nil {
			return CartView{}, err
		}
		applyComposed(item, composed)
		if err := s.cartRepo.Update(item); err != nil {
			return CartView{}, err
		}
	}
	return s.View(userID)
}

func (s *CartService) composeFor(variant *models.ProductVariant, quantity int, pwp *pricing.PwpOverride) (pricing.ComposeResult, error) {
	cfg := liveConfigFromVariant(variant)
	return pricing.ComposeItem(pricing.ComposeInput{
		BasePrice:       cfg.Schedule.BasePrice,
		Quantity:        quantity,
		Schedule:        cfg.Schedule,
		Pwp:             pwp,
		VariantDiscount: cfg.VariantDiscount,
	})
}

func applyComposed(item *models.CartItem, composed pricing.ComposeResult) {
	item.UnitPrice = composed.UnitPrice
	item.DiscountSource = composed.Source
	item.OriginalUnitPrice = composed.OriginalUnitPrice
	item.DiscountAmount = composed.DiscountAmount
	item.IsBulkPrice = composed.IsBulkPrice
	if composed.PwpRuleID != 0 {
		id := composed.PwpRuleID
		item.PwpRuleID = &id
	} else {
		item.PwpRuleID = nil
	}
}
