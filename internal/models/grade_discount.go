package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// GradeDiscount 等级折扣配置
type GradeDiscount struct {
	ID              uint            `gorm:"primarykey" json:"id"`                                         // 主键
	Grade           string          `gorm:"type:varchar(64);uniqueIndex;not null" json:"grade"`           // 等级
	DiscountPercent decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0" json:"discount_percent"` // 折扣百分比（0-100）
	CreatedAt       time.Time       `json:"created_at"`                                                   // 创建时间
	UpdatedAt       time.Time       `json:"updated_at"`                                                   // 更新时间
}

// TableName 指定表名
func (GradeDiscount) TableName() string {
	return "grade_discounts"
}
