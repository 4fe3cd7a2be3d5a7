package models

import (
	"time"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

// Preorder 预订单（聚合根）
type Preorder struct {
	ID               string     `gorm:"primaryKey;type:varchar(26)" json:"id"`                        // 主键（ULID）
	FboID            string     `gorm:"type:varchar(36);index;not null" json:"fbo_id"`                // FBO ID
	FboNumber        string     `gorm:"index;not null" json:"fbo_number"`                             // FBO 编号快照
	FboFullName      string     `gorm:"not null" json:"fbo_full_name"`                                // 姓名快照
	FboGrade         string     `gorm:"type:varchar(64);not null" json:"fbo_grade"`                   // 等级快照
	PointOfSale      string     `gorm:"not null" json:"point_of_sale"`                                // 门店快照
	PaymentMode      string     `gorm:"type:varchar(64);not null" json:"payment_mode"`                // 支付方式
	DeliveryMode     string     `gorm:"type:varchar(64);not null" json:"delivery_mode"`               // 配送方式
	Status           string     `gorm:"type:varchar(32);index;not null" json:"status"`                // 状态
	TotalCC          Decimal3   `gorm:"type:decimal(14,3);not null;default:0" json:"total_cc"`        // 冻结总 CC
	TotalWeightKg    Decimal3   `gorm:"type:decimal(14,3);not null;default:0" json:"total_weight_kg"` // 冻结总重量
	TotalProducts    int64      `gorm:"not null;default:0" json:"total_products"`                     // 冻结商品金额
	DeliveryFee      int64      `gorm:"not null;default:0" json:"delivery_fee"`                       // 冻结配送费
	Total            int64      `gorm:"not null;default:0;index" json:"total"`                        // 冻结总金额
	InvoiceReference string     `gorm:"type:varchar(64)" json:"invoice_reference,omitempty"`          // 发票号
	WhatsappMessage  string     `gorm:"type:text" json:"whatsapp_message,omitempty"`                  // 开票消息
	WhatsappTo       string     `gorm:"type:varchar(32)" json:"whatsapp_to,omitempty"`                // 开票接收号码
	SubmittedAt      *time.Time `gorm:"index" json:"submitted_at"`                                    // 提交时间
	PaidAt           *time.Time `gorm:"index" json:"paid_at"`                                         // 付款时间
	CreatedAt        time.Time  `gorm:"index" json:"created_at"`                                      // 创建时间
	UpdatedAt        time.Time  `json:"updated_at"`                                                   // 更新时间

	Items []PreorderItem `gorm:"foreignKey:PreorderID" json:"items,omitempty"` // 明细
	Fbo   *Fbo           `gorm:"foreignKey:FboID" json:"fbo,omitempty"`        // FBO 档案
}

// TableName 指定表名
func (Preorder) TableName() string {
	return "preorders"
}

// BeforeCreate 补全主键
func (p *Preorder) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = ulid.Make().String()
	}
	return nil
}
