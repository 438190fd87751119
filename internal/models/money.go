package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Money 统一金额类型（最小货币单位整数，如分；全程无浮点）
type Money int64

// NewMoneyFromDecimal 从主单位 decimal 创建金额（四舍五入到最小单位）
func NewMoneyFromDecimal(amount decimal.Decimal) Money {
	return Money(amount.Shift(2).Round(0).IntPart())
}

// Decimal 返回最小单位的 decimal 表示（用于比例/百分比运算）
func (m Money) Decimal() decimal.Decimal {
	return decimal.NewFromInt(int64(m))
}

// Mul 数量乘法
func (m Money) Mul(quantity int) Money {
	return m * Money(quantity)
}

// Value 用于数据库写入
func (m Money) Value() (driver.Value, error) {
	return int64(m), nil
}

// Scan 用于数据库读取
func (m *Money) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*m = 0
	case int64:
		*m = Money(v)
	case []byte:
		d, err := decimal.NewFromString(string(v))
		if err != nil {
			return err
		}
		*m = Money(d.Round(0).IntPart())
	case string:
		d, err := decimal.NewFromString(v)
		if err != nil {
			return err
		}
		*m = Money(d.Round(0).IntPart())
	default:
		return fmt.Errorf("unsupported money source: %T", value)
	}
	return nil
}

// UnmarshalJSON 解析金额（整数或整数字符串）
func (m *Money) UnmarshalJSON(b []byte) error {
	if len(b) == 0 {
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return err
		}
		*m = Money(d.Round(0).IntPart())
		return nil
	}
	var v int64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*m = Money(v)
	return nil
}

// DisplayMajor 返回主单位 2 位小数字符串（仅展示边界使用）
func (m Money) DisplayMajor() string {
	return decimal.New(int64(m), -2).StringFixed(2)
}
