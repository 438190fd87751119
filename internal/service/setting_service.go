package service

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/storefront-next/internal/constants"
	"github.com/storefront-next/internal/models"
	"github.com/storefront-next/internal/repository"
)

// ShippingConfig 运费配置（单一平邮费率 + 免邮门槛）
type ShippingConfig struct {
	FlatAmount            models.Money `json:"flat_amount"`
	FreeShippingMinAmount models.Money `json:"free_shipping_min_amount"`
}

// PointsConfig 积分配置（每积分抵扣的最小货币单位数）
type PointsConfig struct {
	PointsPerUnit int64 `json:"points_per_unit"`
}

// SettingService 设置业务服务
type SettingService struct {
	repo repository.SettingRepository
}

// NewSettingService 创建设置服务
func NewSettingService(repo repository.SettingRepository) *SettingService {
	return &SettingService{repo: repo}
}

// GetConfig 获取站点配置（合并默认值）
func (s *SettingService) GetConfig(defaults map[string]interface{}) (map[string]interface{}, error) {
	data := make(map[string]interface{})
	for k, v := range defaults {
		data[k] = v
	}

	setting, err := s.repo.GetByKey(constants.SettingKeySiteConfig)
	if err != nil {
		return nil, err
	}
	if setting == nil {
		return data, nil
	}

	for k, v := range setting.ValueJSON {
		data[k] = v
	}
	return data, nil
}

// GetByKey 获取设置
func (s *SettingService) GetByKey(key string) (models.JSON, error) {
	setting, err := s.repo.GetByKey(key)
	if err != nil {
		return nil, err
	}
	if setting == nil {
		return nil, nil
	}
	return setting.ValueJSON, nil
}

// Update 设置值
func (s *SettingService) Update(key string, value map[string]interface{}) (models.JSON, error) {
	setting, err := s.repo.Upsert(key, models.JSON(value))
	if err != nil {
		return nil, err
	}
	return setting.ValueJSON, nil
}

// GetSiteCurrency 获取站点币种
func (s *SettingService) GetSiteCurrency() (string, error) {
	value, err := s.GetByKey(constants.SettingKeySiteConfig)
	if err != nil {
		return constants.SiteCurrencyDefault, err
	}
	if value == nil {
		return constants.SiteCurrencyDefault, nil
	}
	raw, ok := value[constants.SettingFieldSiteCurrency]
	if !ok {
		return constants.SiteCurrencyDefault, nil
	}
	currency, ok := raw.(string)
	if !ok || strings.TrimSpace(currency) == "" {
		return constants.SiteCurrencyDefault, nil
	}
	return strings.ToUpper(strings.TrimSpace(currency)), nil
}

// GetOrderPaymentExpireMinutes 获取订单超时分钟配置
func (s *SettingService) GetOrderPaymentExpireMinutes(defaultValue int) (int, error) {
	if s == nil {
		return defaultValue, nil
	}
	value, err := s.GetByKey(constants.SettingKeyOrderConfig)
	if err != nil {
		return defaultValue, err
	}
	if value == nil {
		return defaultValue, nil
	}
	raw, ok := value[constants.SettingFieldPaymentExpireMinutes]
	if !ok {
		return defaultValue, nil
	}
	minutes, err := parseSettingInt(raw)
	if err != nil || minutes <= 0 {
		return defaultValue, nil
	}
	return minutes, nil
}

// GetShippingConfig 获取运费配置；未配置时运费为 0 且永不免邮门槛
func (s *SettingService) GetShippingConfig() (ShippingConfig, error) {
	var cfg ShippingConfig
	value, err := s.GetByKey(constants.SettingKeyShippingConfig)
	if err != nil {
		return cfg, err
	}
	if value == nil {
		return cfg, nil
	}
	if raw, ok := value[constants.SettingFieldShippingFlatAmount]; ok {
		if amount, err := parseSettingInt64(raw); err == nil && amount >= 0 {
			cfg.FlatAmount = models.Money(amount)
		}
	}
	if raw, ok := value[constants.SettingFieldFreeShippingMin]; ok {
		if amount, err := parseSettingInt64(raw); err == nil && amount >= 0 {
			cfg.FreeShippingMinAmount = models.Money(amount)
		}
	}
	return cfg, nil
}

// GetPointsConfig 获取积分配置；未配置时积分抵扣停用
func (s *SettingService) GetPointsConfig() (PointsConfig, error) {
	var cfg PointsConfig
	value, err := s.GetByKey(constants.SettingKeyPointsConfig)
	if err != nil {
		return cfg, err
	}
	if value == nil {
		return cfg, nil
	}
	if raw, ok := value[constants.SettingFieldPointsPerUnit]; ok {
		if per, err := parseSettingInt64(raw); err == nil && per > 0 {
			cfg.PointsPerUnit = per
		}
	}
	return cfg, nil
}

func parseSettingInt(value interface{}) (int, error) {
	parsed, err := parseSettingInt64(value)
	if err != nil {
		return 0, err
	}
	return int(parsed), nil
}

func parseSettingInt64(value interface{}) (int64, error) {
	switch v := value.(type) {
	case int:
		return int64(v), nil
	case int64:
		return v, nil
	case float64:
		return int64(v), nil
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i, nil
		}
		if f, err := v.Float64(); err == nil {
			return int64(f), nil
		}
		return 0, fmt.Errorf("invalid json number")
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return 0, fmt.Errorf("empty string")
		}
		return strconv.ParseInt(trimmed, 10, 64)
	default:
		return 0, fmt.Errorf("unsupported setting value type: %T", value)
	}
}
