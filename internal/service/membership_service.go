package service

import (
	"time"

	"github.com/storefront-next/internal/models"
	"github.com/storefront-next/internal/repository"

	"github.com/shopspring/decimal"
)

// MemberDiscounts 会员侧单级折扣（等级百分比 + 活动固定额）
type MemberDiscounts struct {
	TierSlug    string
	TierAmount  models.Money
	PromoID     *uint
	PromoAmount models.Money
}

// MembershipService 会员服务
type MembershipService struct {
	memberRepo repository.MemberRepository
	userRepo   repository.UserRepository
}

// NewMembershipService 创建会员服务
func NewMembershipService(memberRepo repository.MemberRepository, userRepo repository.UserRepository) *MembershipService {
	return &MembershipService{
		memberRepo: memberRepo,
		userRepo:   userRepo,
	}
}

// ResolveDiscounts 计算用户当前可享的会员折扣；
// 等级折扣按折后小计的百分比，活动优惠为满足门槛时的固定金额。
func (s *MembershipService) ResolveDiscounts(userID uint, subtotal models.Money, now time.Time) (MemberDiscounts, error) {
	var result MemberDiscounts

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return result, err
	}
	if user == nil {
		return result, ErrUserNotFound
	}

	if user.MemberTier != nil && user.MemberTier.DiscountPercent > 0 {
		percent := decimal.NewFromInt(user.MemberTier.DiscountPercent).
			Div(decimal.NewFromInt(100))
		amount := subtotal.Decimal().Mul(percent).Round(0).IntPart()
		result.TierSlug = user.MemberTier.Slug
		result.TierAmount = models.Money(amount)
	}

	promo, err := s.memberRepo.GetActivePromo(now)
	if err != nil {
		return result, err
	}
	if promo != nil && subtotal >= promo.MinAmount {
		id := promo.ID
		result.PromoID = &id
		result.PromoAmount = promo.Amount
	}

	return result, nil
}

// PromoteBySpend 按累计消费晋级用户等级（支付完成后调用）
func (s *MembershipService) PromoteBySpend(userID uint, paid models.Money) error {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	user.TotalSpend += paid

	tiers, err := s.memberRepo.ListTiers()
	if err != nil {
		return err
	}
	// 取累计消费够得着的最高门槛等级
	var target *models.MemberTier
	for i := range tiers {
		tier := tiers[i]
		if user.TotalSpend < tier.MinSpend {
			continue
		}
		if target == nil || tier.MinSpend > target.MinSpend {
			target = &tiers[i]
		}
	}
	if target != nil {
		id := target.ID
		user.MemberTierID = &id
	}
	return s.userRepo.Update(user)
}

// ListTiers 获取等级列表
func (s *MembershipService) ListTiers() ([]models.MemberTier, error) {
	return s.memberRepo.ListTiers()
}

// SaveTier 创建或更新等级
func (s *MembershipService) SaveTier(tier *models.MemberTier) error {
	if tier.ID == 0 {
		return s.memberRepo.CreateTier(tier)
	}
	return s.memberRepo.UpdateTier(tier)
}

// ListPromos 获取活动列表
func (s *MembershipService) ListPromos() ([]models.MemberPromo, error) {
	return s.memberRepo.ListPromos()
}

// SavePromo 创建或更新活动
func (s *MembershipService) SavePromo(promo *models.MemberPromo) error {
	if promo.ID == 0 {
		return s.memberRepo.CreatePromo(promo)
	}
	return s.memberRepo.UpdatePromo(promo)
}
