package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Decimal3Places CC 与重量统一保留的小数位
const Decimal3Places = 3

// Decimal3 三位小数定点数（CC、重量）
type Decimal3 struct {
	decimal.Decimal
}

// NewDecimal3 从 decimal 创建，四舍五入到 3 位
func NewDecimal3(d decimal.Decimal) Decimal3 {
	return Decimal3{Decimal: d.Round(Decimal3Places)}
}

// ParseDecimal3 从字符串解析
func ParseDecimal3(raw string) (Decimal3, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return Decimal3{}, fmt.Errorf("invalid decimal %q: %w", raw, err)
	}
	return NewDecimal3(d), nil
}

// MustDecimal3 解析常量字符串，失败时 panic（仅用于种子数据与测试）
func MustDecimal3(raw string) Decimal3 {
	d, err := ParseDecimal3(raw)
	if err != nil {
		panic(err)
	}
	return d
}

// MarshalJSON 输出固定 3 位小数的字符串
func (d Decimal3) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON 解析字符串或数字
func (d *Decimal3) UnmarshalJSON(b []byte) error {
	if len(b) == 0 || string(b) == "null" {
		d.Decimal = decimal.Zero
		return nil
	}
	raw := string(b)
	if b[0] == '"' {
		if err := json.Unmarshal(b, &raw); err != nil {
			return err
		}
	}
	parsed, err := ParseDecimal3(raw)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value 用于数据库写入
func (d Decimal3) Value() (driver.Value, error) {
	return d.Decimal.Round(Decimal3Places).StringFixed(Decimal3Places), nil
}

// Scan 用于数据库读取
func (d *Decimal3) Scan(value interface{}) error {
	if err := d.Decimal.Scan(value); err != nil {
		return err
	}
	d.Decimal = d.Decimal.Round(Decimal3Places)
	return nil
}

// String 返回 3 位小数格式
func (d Decimal3) String() string {
	return d.Decimal.Round(Decimal3Places).StringFixed(Decimal3Places)
}
