package repository

import (
	"time"

	"github.com/akoudje/appfbo-backend/internal/models"
)

// ProductPublicFilter 公共商品目录过滤条件
type ProductPublicFilter struct {
	Page     int
	PageSize int
	Search   string
	Category string
	InStock  *bool
}

// ProductAdminFilter 后台商品列表过滤条件
type ProductAdminFilter struct {
	Search string
	Active *bool
	Take   int
}

// PreorderListFilter 后台预订单列表过滤条件
type PreorderListFilter struct {
	Page        int
	PageSize    int
	Status      string
	Keyword     string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	SortBy      string
	SortDir     string
}

// StatsFilter 统计时间范围
type StatsFilter struct {
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// PreorderListRow 后台列表行（含明细数量）
type PreorderListRow struct {
	ID          string    `json:"id"`
	Status      string    `json:"status"`
	Total       int64     `json:"total"`
	FboGrade    string    `json:"fbo_grade"`
	FboNumber   string    `json:"fbo_number"`
	FboFullName string    `json:"fbo_full_name"`
	PointOfSale string    `json:"point_of_sale"`
	CreatedAt   time.Time `json:"created_at"`
	ItemCount   int64     `json:"item_count"`
}

// FrozenLine 提交时写入明细的冻结值
type FrozenLine struct {
	ProductID         string
	UnitPrice         int64
	UnitCC            models.Decimal3
	UnitWeightKg      models.Decimal3
	LineTotal         int64
	LineTotalCC       models.Decimal3
	LineTotalWeightKg models.Decimal3
}

// FrozenSubmission 提交时写入预订单的冻结值
type FrozenSubmission struct {
	Lines           []FrozenLine
	TotalCC         models.Decimal3
	TotalWeightKg   models.Decimal3
	TotalProducts   int64
	DeliveryFee     int64
	Total           int64
	WhatsappMessage string
	WhatsappTo      string
	SubmittedAt     time.Time
}

// StatusCount 按状态汇总
type StatusCount struct {
	Status  string `json:"status"`
	Count   int64  `json:"count"`
	Revenue int64  `json:"revenue"`
}

// TopProductRow 热销商品行
type TopProductRow struct {
	ProductID string `json:"product_id"`
	SKU       string `json:"sku"`
	Name      string `json:"name"`
	Qty       int64  `json:"qty"`
	Revenue   int64  `json:"revenue"`
}

// AdminAuditLogListFilter 审计日志查询条件
type AdminAuditLogListFilter struct {
	Page            int
	PageSize        int
	OperatorAdminID uint
	Action          string
	TargetType      string
	TargetID        string
	CreatedFrom     *time.Time
	CreatedTo       *time.Time
}
