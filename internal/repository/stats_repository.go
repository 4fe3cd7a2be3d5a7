package repository

import (
	"github.com/akoudje/appfbo-backend/internal/models"

	"gorm.io/gorm"
)

// StatsRepository 后台统计聚合查询接口
// 说明：仅聚合统计数据，不承载业务规则。
type StatsRepository interface {
	GetOverview(filter StatsFilter) (StatsOverviewRow, error)
	CountByStatus(filter StatsFilter) ([]StatusCount, error)
	GetTopProducts(filter StatsFilter, limit int) ([]TopProductRow, error)
}

// StatsOverviewRow 总览统计
type StatsOverviewRow struct {
	TotalOrders  int64
	TotalRevenue int64
}

// GormStatsRepository GORM 统计实现
type GormStatsRepository struct {
	db *gorm.DB
}

// NewStatsRepository 创建统计仓库
func NewStatsRepository(db *gorm.DB) *GormStatsRepository {
	return &GormStatsRepository{db: db}
}

func applyCreatedRange(query *gorm.DB, column string, filter StatsFilter) *gorm.DB {
	if filter.CreatedFrom != nil {
		query = query.Where(column+" >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where(column+" <= ?", *filter.CreatedTo)
	}
	return query
}

// GetOverview 订单数与营收合计
func (r *GormStatsRepository) GetOverview(filter StatsFilter) (StatsOverviewRow, error) {
	var row StatsOverviewRow
	query := applyCreatedRange(r.db.Model(&models.Preorder{}), "created_at", filter)
	err := query.
		Select("COUNT(*) AS total_orders, COALESCE(SUM(total), 0) AS total_revenue").
		Scan(&row).Error
	return row, err
}

// CountByStatus 按状态分组统计
func (r *GormStatsRepository) CountByStatus(filter StatsFilter) ([]StatusCount, error) {
	rows := make([]StatusCount, 0)
	query := applyCreatedRange(r.db.Model(&models.Preorder{}), "created_at", filter)
	err := query.
		Select("status, COUNT(*) AS count, COALESCE(SUM(total), 0) AS revenue").
		Group("status").
		Order("status asc").
		Scan(&rows).Error
	return rows, err
}

// GetTopProducts 按行金额排序的热销商品
func (r *GormStatsRepository) GetTopProducts(filter StatsFilter, limit int) ([]TopProductRow, error) {
	if limit <= 0 {
		limit = 5
	}
	rows := make([]TopProductRow, 0)
	query := r.db.Table("preorder_items").
		Joins("JOIN preorders ON preorders.id = preorder_items.preorder_id").
		Joins("LEFT JOIN products ON products.id = preorder_items.product_id")
	query = applyCreatedRange(query, "preorders.created_at", filter)
	err := query.
		Select("preorder_items.product_id AS product_id, " +
			"COALESCE(MAX(products.sku), '') AS sku, " +
			"COALESCE(MAX(products.name), '') AS name, " +
			"COALESCE(SUM(preorder_items.qty), 0) AS qty, " +
			"COALESCE(SUM(preorder_items.line_total), 0) AS revenue").
		Group("preorder_items.product_id").
		Order("revenue desc").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}
