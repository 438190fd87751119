package service

import (
	"github.com/storefront-next/internal/models"
	"github.com/storefront-next/internal/repository"
)

// PointsService 积分服务
type PointsService struct {
	memberRepo  repository.MemberRepository
	settingsSvc *SettingService
}

// NewPointsService 创建积分服务
func NewPointsService(memberRepo repository.MemberRepository, settingsSvc *SettingService) *PointsService {
	return &PointsService{
		memberRepo:  memberRepo,
		settingsSvc: settingsSvc,
	}
}

// Balance 查询用户积分余额
func (s *PointsService) Balance(userID uint) (int64, error) {
	account, err := s.memberRepo.GetPointsAccount(userID)
	if err != nil {
		return 0, err
	}
	if account == nil {
		return 0, nil
	}
	return account.Balance, nil
}

// QuoteRedemption 计算抵扣金额：points × points_per_unit，封顶不超过 limit。
// 配置未启用或积分不足时报错，调用方据此拒绝下单。
func (s *PointsService) QuoteRedemption(userID uint, points int64, limit models.Money) (models.Money, error) {
	if points <= 0 {
		return 0, nil
	}
	cfg, err := s.settingsSvc.GetPointsConfig()
	if err != nil {
		return 0, err
	}
	if cfg.PointsPerUnit <= 0 {
		return 0, ErrPointsInsufficient
	}

	balance, err := s.Balance(userID)
	if err != nil {
		return 0, err
	}
	if points > balance {
		return 0, ErrPointsInsufficient
	}

	amount := models.Money(points * cfg.PointsPerUnit)
	if amount > limit {
		amount = limit
	}
	return amount, nil
}

// Redeem 扣减用户积分（下单事务内调用）
func (s *PointsService) Redeem(repo repository.MemberRepository, userID uint, points int64) error {
	if points <= 0 {
		return nil
	}
	account, err := repo.GetPointsAccount(userID)
	if err != nil {
		return err
	}
	if account == nil || account.Balance < points {
		return ErrPointsInsufficient
	}
	account.Balance -= points
	return repo.SavePointsAccount(account)
}

// Accrue 订单支付后按净额累计积分（1 最小货币单位 : 1 积分的缩减比由配置决定）
func (s *PointsService) Accrue(userID uint, net models.Money) error {
	cfg, err := s.settingsSvc.GetPointsConfig()
	if err != nil {
		return err
	}
	if cfg.PointsPerUnit <= 0 || net <= 0 {
		return nil
	}
	earned := int64(net) / cfg.PointsPerUnit

	account, err := s.memberRepo.GetPointsAccount(userID)
	if err != nil {
		return err
	}
	if account == nil {
		account = &models.PointsAccount{UserID: userID}
	}
	account.Balance += earned
	return s.memberRepo.SavePointsAccount(account)
}
