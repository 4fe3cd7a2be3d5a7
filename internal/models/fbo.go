package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Fbo 分销商（下单人）档案
type Fbo struct {
	ID          string    `gorm:"primaryKey;type:varchar(36)" json:"id"`        // 主键（UUID）
	Number      string    `gorm:"uniqueIndex;not null" json:"number"`           // FBO 编号
	FullName    string    `gorm:"not null" json:"full_name"`                    // 姓名
	Grade       string    `gorm:"type:varchar(64);not null;index" json:"grade"` // 等级
	PointOfSale string    `gorm:"not null" json:"point_of_sale"`                // 所属门店
	CreatedAt   time.Time `gorm:"index" json:"created_at"`                      // 创建时间
	UpdatedAt   time.Time `json:"updated_at"`                                   // 更新时间
}

// TableName 指定表名
func (Fbo) TableName() string {
	return "fbos"
}

// BeforeCreate 补全主键
func (f *Fbo) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}
