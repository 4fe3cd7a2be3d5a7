package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/akoudje/appfbo-backend/internal/constants"
	"github.com/akoudje/appfbo-backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PreorderRepository 预订单数据访问接口
type PreorderRepository interface {
	Create(preorder *models.Preorder) error
	GetByID(id string) (*models.Preorder, error)
	GetByIDForUpdate(id string) (*models.Preorder, error)
	GetDetail(id string) (*models.Preorder, error)
	ReplaceItems(preorderID string, items []models.PreorderItem) error
	FreezeSubmission(preorderID string, frozen FrozenSubmission) (bool, error)
	UpdateStatus(id string, status string, updates map[string]interface{}) error
	UpdateStatusFrom(id string, from string, status string, updates map[string]interface{}) (bool, error)
	ListAdmin(filter PreorderListFilter) ([]PreorderListRow, int64, error)
	ListStaleDraftIDs(before time.Time, limit int) ([]string, error)
	CancelDrafts(ids []string, status string) (int64, error)
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) PreorderRepository
}

// GormPreorderRepository GORM 实现
type GormPreorderRepository struct {
	db *gorm.DB
}

// NewPreorderRepository 创建预订单仓库
func NewPreorderRepository(db *gorm.DB) *GormPreorderRepository {
	return &GormPreorderRepository{db: db}
}

// WithTx 绑定事务
func (r *GormPreorderRepository) WithTx(tx *gorm.DB) PreorderRepository {
	if tx == nil {
		return r
	}
	return &GormPreorderRepository{db: tx}
}

// Transaction 执行事务
func (r *GormPreorderRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

func withItems(query *gorm.DB) *gorm.DB {
	return query.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at asc, id asc")
	}).Preload("Items.Product")
}

// Create 创建预订单
func (r *GormPreorderRepository) Create(preorder *models.Preorder) error {
	return r.db.Create(preorder).Error
}

// GetByID 获取预订单（含明细与商品），不存在返回 nil
func (r *GormPreorderRepository) GetByID(id string) (*models.Preorder, error) {
	return r.first(withItems(r.db), id)
}

// GetByIDForUpdate 加锁获取预订单，需在事务内调用
func (r *GormPreorderRepository) GetByIDForUpdate(id string) (*models.Preorder, error) {
	return r.first(withItems(r.db.Clauses(clause.Locking{Strength: "UPDATE"})), id)
}

// GetDetail 后台详情（含 FBO 档案）
func (r *GormPreorderRepository) GetDetail(id string) (*models.Preorder, error) {
	return r.first(withItems(r.db).Preload("Fbo"), id)
}

func (r *GormPreorderRepository) first(query *gorm.DB, id string) (*models.Preorder, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, nil
	}
	var preorder models.Preorder
	if err := query.Where("id = ?", id).First(&preorder).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &preorder, nil
}

// ReplaceItems 整体替换明细（先删后插，原子执行）
func (r *GormPreorderRepository) ReplaceItems(preorderID string, items []models.PreorderItem) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("preorder_id = ?", preorderID).Delete(&models.PreorderItem{}).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		for i := range items {
			items[i].ID = 0
			items[i].PreorderID = preorderID
		}
		return tx.Omit(clause.Associations).Create(&items).Error
	})
}

// FreezeSubmission 冻结明细与合计并推进为已提交。
// 仅当当前状态仍为草稿时生效，返回 false 表示状态已被并发修改。
func (r *GormPreorderRepository) FreezeSubmission(preorderID string, frozen FrozenSubmission) (bool, error) {
	applied := false
	err := r.db.Transaction(func(tx *gorm.DB) error {
		submittedAt := frozen.SubmittedAt
		result := tx.Model(&models.Preorder{}).
			Where("id = ? AND status = ?", preorderID, constants.PreorderStatusDraft).
			Updates(map[string]interface{}{
				"status":           constants.PreorderStatusSubmitted,
				"total_cc":         frozen.TotalCC,
				"total_weight_kg":  frozen.TotalWeightKg,
				"total_products":   frozen.TotalProducts,
				"delivery_fee":     frozen.DeliveryFee,
				"total":            frozen.Total,
				"whatsapp_message": frozen.WhatsappMessage,
				"whatsapp_to":      frozen.WhatsappTo,
				"submitted_at":     &submittedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}

		for _, line := range frozen.Lines {
			if err := tx.Model(&models.PreorderItem{}).
				Where("preorder_id = ? AND product_id = ?", preorderID, line.ProductID).
				Updates(map[string]interface{}{
					"unit_price":           line.UnitPrice,
					"unit_cc":              line.UnitCC,
					"unit_weight_kg":       line.UnitWeightKg,
					"line_total":           line.LineTotal,
					"line_total_cc":        line.LineTotalCC,
					"line_total_weight_kg": line.LineTotalWeightKg,
				}).Error; err != nil {
				return err
			}
		}
		applied = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return applied, nil
}

// UpdateStatus 更新状态及附加字段，不触碰合计与明细
func (r *GormPreorderRepository) UpdateStatus(id string, status string, updates map[string]interface{}) error {
	if updates == nil {
		updates = map[string]interface{}{}
	}
	updates["status"] = status
	return r.db.Model(&models.Preorder{}).Where("id = ?", id).Updates(updates).Error
}

// UpdateStatusFrom 仅当当前状态仍为 from 时更新，返回 false 表示状态已被并发修改
func (r *GormPreorderRepository) UpdateStatusFrom(id string, from string, status string, updates map[string]interface{}) (bool, error) {
	if updates == nil {
		updates = map[string]interface{}{}
	}
	updates["status"] = status
	result := r.db.Model(&models.Preorder{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ListAdmin 后台分页列表
func (r *GormPreorderRepository) ListAdmin(filter PreorderListFilter) ([]PreorderListRow, int64, error) {
	query := r.db.Model(&models.Preorder{})
	if status := strings.TrimSpace(filter.Status); status != "" {
		query = query.Where("status = ?", status)
	}
	query = applyKeywordSearch(query, filter.Keyword, "fbo_number", "fbo_full_name")
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at <= ?", *filter.CreatedTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortColumn := "created_at"
	if filter.SortBy == constants.OrderSortTotal {
		sortColumn = "total"
	}
	desc := filter.SortDir != constants.SortDirAsc

	rows := make([]PreorderListRow, 0)
	query = applyPagination(query, filter.Page, filter.PageSize)
	err := query.
		Select("preorders.id, preorders.status, preorders.total, preorders.fbo_grade, preorders.fbo_number, " +
			"preorders.fbo_full_name, preorders.point_of_sale, preorders.created_at, " +
			"(SELECT COUNT(*) FROM preorder_items WHERE preorder_items.preorder_id = preorders.id) AS item_count").
		Order(clause.OrderByColumn{Column: clause.Column{Name: sortColumn}, Desc: desc}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}, Desc: desc}).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// ListStaleDraftIDs 查询创建时间早于 before 的草稿
func (r *GormPreorderRepository) ListStaleDraftIDs(before time.Time, limit int) ([]string, error) {
	query := r.db.Model(&models.Preorder{}).
		Where("status = ? AND created_at < ?", constants.PreorderStatusDraft, before).
		Order("created_at asc")
	if limit > 0 {
		query = query.Limit(limit)
	}
	var ids []string
	if err := query.Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// CancelDrafts 将仍处于草稿的预订单批量改为指定状态
func (r *GormPreorderRepository) CancelDrafts(ids []string, status string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.Model(&models.Preorder{}).
		Where("id IN ? AND status = ?", ids, constants.PreorderStatusDraft).
		Update("status", status)
	return result.RowsAffected, result.Error
}
