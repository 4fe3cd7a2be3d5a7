package models

import "time"

// AdminAuditLog 后台操作审计日志
// 说明：记录预订单状态变更与角色分配，支持按操作人、动作与目标检索。
type AdminAuditLog struct {
	ID               uint      `gorm:"primarykey" json:"id"`
	OperatorAdminID  uint      `gorm:"index;not null" json:"operator_admin_id"`
	OperatorUsername string    `gorm:"type:varchar(100);index;not null;default:''" json:"operator_username"`
	Action           string    `gorm:"type:varchar(100);index;not null" json:"action"`
	TargetType       string    `gorm:"type:varchar(32);index;not null;default:''" json:"target_type"`
	TargetID         string    `gorm:"type:varchar(64);index;not null;default:''" json:"target_id"`
	FromStatus       string    `gorm:"type:varchar(32);not null;default:''" json:"from_status"`
	ToStatus         string    `gorm:"type:varchar(32);not null;default:''" json:"to_status"`
	RequestID        string    `gorm:"type:varchar(64);index;not null;default:''" json:"request_id"`
	DetailJSON       JSON      `gorm:"type:json" json:"detail"`
	CreatedAt        time.Time `gorm:"index" json:"created_at"`
}

// TableName 指定表名
func (AdminAuditLog) TableName() string {
	return "admin_audit_logs"
}
