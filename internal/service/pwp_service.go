package service

import (
	"strings"
	"time"

	"github.com/storefront-next/internal/constants"
	"github.com/storefront-next/internal/models"
	"github.com/storefront-next/internal/pricing"
	"github.com/storefront-next/internal/repository"

	"github.com/shopspring/decimal"
)

// PwpService 加购优惠服务
type PwpService struct {
	ruleRepo    repository.PwpRuleRepository
	variantRepo repository.VariantRepository
}

// NewPwpService 创建加购优惠服务
func NewPwpService(ruleRepo repository.PwpRuleRepository, variantRepo repository.VariantRepository) *PwpService {
	return &PwpService{
		ruleRepo:    ruleRepo,
		variantRepo: variantRepo,
	}
}

// EligibleRules 筛选用户购物车当前满足触发条件的加购规则
func (s *PwpService) EligibleRules(items []models.CartItem, now time.Time) ([]models.PwpRule, error) {
	rules, err := s.ruleRepo.ListActive(now)
	if err != nil {
		return nil, err
	}

	var subtotal models.Money
	productIDs := make(map[uint]struct{}, len(items))
	for _, item := range items {
		subtotal += item.UnitPrice.Mul(item.Quantity)
		if item.Variant != nil {
			productIDs[item.Variant.ProductID] = struct{}{}
		}
	}

	eligible := make([]models.PwpRule, 0, len(rules))
	for _, rule := range rules {
		if s.triggered(rule, subtotal, productIDs) {
			eligible = append(eligible, rule)
		}
	}
	return eligible, nil
}

// ResolveOverride 校验规则对用户购物车生效并给出奖励项的规则定价
func (s *PwpService) ResolveOverride(ruleID uint, items []models.CartItem, now time.Time) (*pricing.PwpOverride, error) {
	rule, err := s.ruleRepo.GetByID(ruleID)
	if err != nil {
		return nil, err
	}
	if rule == nil || !rule.IsActive {
		return nil, ErrPwpRuleNotFound
	}
	if rule.StartsAt != nil && now.Before(*rule.StartsAt) {
		return nil, ErrPwpRuleNotFound
	}
	if rule.EndsAt != nil && now.After(*rule.EndsAt) {
		return nil, ErrPwpRuleNotFound
	}

	var subtotal models.Money
	productIDs := make(map[uint]struct{}, len(items))
	for _, item := range items {
		subtotal += item.UnitPrice.Mul(item.Quantity)
		if item.Variant != nil {
			productIDs[item.Variant.ProductID] = struct{}{}
		}
	}
	if !s.triggered(*rule, subtotal, productIDs) {
		return nil, ErrPwpNotEligible
	}

	variant, err := s.variantRepo.GetByID(rule.RewardVariantID)
	if err != nil {
		return nil, err
	}
	if variant == nil || !variant.IsActive {
		return nil, ErrVariantNotFound
	}

	discount, err := s.rewardDiscount(*rule, variant.BasePrice)
	if err != nil {
		return nil, err
	}
	return &pricing.PwpOverride{
		RuleID:         rule.ID,
		OriginalPrice:  variant.BasePrice,
		DiscountAmount: discount,
	}, nil
}

func (s *PwpService) triggered(rule models.PwpRule, subtotal models.Money, productIDs map[uint]struct{}) bool {
	switch rule.TriggerType {
	case constants.PwpTriggerCartValue:
		return subtotal >= rule.TriggerAmount
	case constants.PwpTriggerProduct:
		if rule.TriggerProductID == nil {
			return false
		}
		_, ok := productIDs[*rule.TriggerProductID]
		return ok
	default:
		return false
	}
}

func (s *PwpService) rewardDiscount(rule models.PwpRule, basePrice models.Money) (models.Money, error) {
	switch strings.ToLower(strings.TrimSpace(rule.DiscountType)) {
	case constants.PwpDiscountPercentage:
		if rule.DiscountValue <= 0 || rule.DiscountValue > 100 {
			return 0, ErrPwpRuleNotFound
		}
		percent := decimal.NewFromInt(rule.DiscountValue).Div(decimal.NewFromInt(100))
		discount := basePrice.Decimal().Mul(percent).Round(0).IntPart()
		return models.Money(discount), nil
	case constants.PwpDiscountFixed:
		if rule.DiscountValue < 0 {
			return 0, ErrPwpRuleNotFound
		}
		return models.Money(rule.DiscountValue), nil
	default:
		return 0, ErrPwpRuleNotFound
	}
}

// Save 创建或更新规则
func (s *PwpService) Save(rule *models.PwpRule) error {
	if rule.ID == 0 {
		return s.ruleRepo.Create(rule)
	}
	return s.ruleRepo.Update(rule)
}

// Delete 删除规则
func (s *PwpService) Delete(id uint) error {
	return s.ruleRepo.Delete(id)
}

// List 分页获取规则列表
func (s *PwpService) List(filter repository.PwpRuleListFilter) ([]models.PwpRule, int64, error) {
	return s.ruleRepo.List(filter)
}
