package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product 商品表
type Product struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`                  // 主键（UUID）
	SKU       string    `gorm:"uniqueIndex;not null" json:"sku"`                        // 唯一 SKU
	Name      string    `gorm:"not null;index" json:"name"`                             // 商品名称
	BasePrice int64     `gorm:"not null;default:0" json:"base_price"`                   // 基础单价（FCFA）
	CC        Decimal3  `gorm:"type:decimal(12,3);not null;default:0" json:"cc"`        // 单位 CC
	WeightKg  Decimal3  `gorm:"type:decimal(12,3);not null;default:0" json:"weight_kg"` // 单位重量（kg）
	Active    bool      `gorm:"not null;index" json:"active"`                           // 是否上架
	ImageURL  string    `gorm:"type:varchar(512)" json:"image_url"`                     // 图片地址
	Category  string    `gorm:"type:varchar(120);index" json:"category"`                // 分类
	Details   string    `gorm:"type:text" json:"details"`                               // 详情（已净化 HTML）
	StockQty  int       `gorm:"not null;default:0" json:"stock_qty"`                    // 展示库存
	CreatedAt time.Time `gorm:"index" json:"created_at"`                                // 创建时间
	UpdatedAt time.Time `json:"updated_at"`                                             // 更新时间
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}

// BeforeCreate 补全主键
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
