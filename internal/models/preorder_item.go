package models

import (
	"time"
)

// PreorderItem 预订单明细，单价与小计在提交前为零占位
type PreorderItem struct {
	ID                uint      `gorm:"primarykey" json:"id"`                                                               // 主键
	PreorderID        string    `gorm:"type:varchar(26);not null;uniqueIndex:idx_preorder_product" json:"preorder_id"`      // 预订单ID
	ProductID         string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_preorder_product;index" json:"product_id"` // 商品ID
	Qty               int       `gorm:"not null" json:"qty"`                                                                // 数量
	UnitPrice         int64     `gorm:"not null;default:0" json:"unit_price"`                                               // 冻结折后单价
	UnitCC            Decimal3  `gorm:"type:decimal(12,3);not null;default:0" json:"unit_cc"`                               // 冻结单位 CC
	UnitWeightKg      Decimal3  `gorm:"type:decimal(12,3);not null;default:0" json:"unit_weight_kg"`                        // 冻结单位重量
	LineTotal         int64     `gorm:"not null;default:0" json:"line_total"`                                               // 冻结行金额
	LineTotalCC       Decimal3  `gorm:"type:decimal(14,3);not null;default:0" json:"line_total_cc"`                         // 冻结行 CC
	LineTotalWeightKg Decimal3  `gorm:"type:decimal(14,3);not null;default:0" json:"line_total_weight_kg"`                  // 冻结行重量
	CreatedAt         time.Time `gorm:"index" json:"created_at"`                                                            // 创建时间
	UpdatedAt         time.Time `json:"updated_at"`                                                                         // 更新时间

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"` // 商品
}

// TableName 指定表名
func (PreorderItem) TableName() string {
	return "preorder_items"
}
