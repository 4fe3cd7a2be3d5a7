package repository

import (
	"errors"
	"strings"

	"github.com/akoudje/appfbo-backend/internal/models"

	"gorm.io/gorm"
)

// ProductRepository 商品数据访问接口
type ProductRepository interface {
	GetByID(id string) (*models.Product, error)
	GetBySKU(sku string) (*models.Product, error)
	ListByIDs(ids []string) ([]models.Product, error)
	ListPublic(filter ProductPublicFilter) ([]models.Product, int64, error)
	ListAdmin(filter ProductAdminFilter) ([]models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id string) error
	CountBySKU(sku string, excludeID string) (int64, error)
	CountPreorderReferences(id string) (int64, error)
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) ProductRepository
}

// GormProductRepository GORM 实现
type GormProductRepository struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓库
func NewProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// WithTx 绑定事务
func (r *GormProductRepository) WithTx(tx *gorm.DB) ProductRepository {
	if tx == nil {
		return r
	}
	return &GormProductRepository{db: tx}
}

// Transaction 执行事务
func (r *GormProductRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// GetByID 根据 ID 获取商品，不存在返回 nil
func (r *GormProductRepository) GetByID(id string) (*models.Product, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, nil
	}
	var product models.Product
	if err := r.db.Where("id = ?", id).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// GetBySKU 根据 SKU 获取商品
func (r *GormProductRepository) GetBySKU(sku string) (*models.Product, error) {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return nil, nil
	}
	var product models.Product
	if err := r.db.Where("sku = ?", sku).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// ListByIDs 批量获取商品
func (r *GormProductRepository) ListByIDs(ids []string) ([]models.Product, error) {
	if len(ids) == 0 {
		return []models.Product{}, nil
	}
	var products []models.Product
	if err := r.db.Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// ListPublic 公共目录：仅上架商品，按名称排序
func (r *GormProductRepository) ListPublic(filter ProductPublicFilter) ([]models.Product, int64, error) {
	query := r.db.Model(&models.Product{}).Where("active = ?", true)
	query = applyKeywordSearch(query, filter.Search, "name", "sku")
	if category := strings.TrimSpace(filter.Category); category != "" {
		query = query.Where("category = ?", category)
	}
	if filter.InStock != nil {
		if *filter.InStock {
			query = query.Where("stock_qty > 0")
		} else {
			query = query.Where("stock_qty <= 0")
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var products []models.Product
	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Order("name asc").Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// ListAdmin 后台列表：上架优先，其次按名称
func (r *GormProductRepository) ListAdmin(filter ProductAdminFilter) ([]models.Product, error) {
	query := r.db.Model(&models.Product{})
	query = applyKeywordSearch(query, filter.Search, "name", "sku")
	if filter.Active != nil {
		query = query.Where("active = ?", *filter.Active)
	}
	if filter.Take > 0 {
		query = query.Limit(filter.Take)
	}

	var products []models.Product
	if err := query.Order("active desc").Order("name asc").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// Create 创建商品
func (r *GormProductRepository) Create(product *models.Product) error {
	return r.db.Create(product).Error
}

// Update 更新商品（含零值字段）
func (r *GormProductRepository) Update(product *models.Product) error {
	return r.db.Save(product).Error
}

// Delete 物理删除商品
func (r *GormProductRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&models.Product{}).Error
}

// CountBySKU 统计 SKU 占用数量，可排除指定商品
func (r *GormProductRepository) CountBySKU(sku string, excludeID string) (int64, error) {
	var count int64
	query := r.db.Model(&models.Product{}).Where("sku = ?", strings.TrimSpace(sku))
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountPreorderReferences 统计引用该商品的预订单明细
func (r *GormProductRepository) CountPreorderReferences(id string) (int64, error) {
	var count int64
	if err := r.db.Model(&models.PreorderItem{}).Where("product_id = ?", id).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
