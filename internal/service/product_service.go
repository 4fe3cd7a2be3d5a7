package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/akoudje/appfbo-backend/internal/cache"
	"github.com/akoudje/appfbo-backend/internal/constants"
	"github.com/akoudje/appfbo-backend/internal/logger"
	"github.com/akoudje/appfbo-backend/internal/models"
	"github.com/akoudje/appfbo-backend/internal/repository"
)

var decimalLikePattern = regexp.MustCompile(`^-?\d+(\.\d+)?$`)

// ProductService 商品业务服务
type ProductService struct {
	repo     repository.ProductRepository
	cacheTTL time.Duration
}

// NewProductService 创建商品服务
func NewProductService(repo repository.ProductRepository, cacheTTLSeconds int) *ProductService {
	return &ProductService{
		repo:     repo,
		cacheTTL: time.Duration(cacheTTLSeconds) * time.Second,
	}
}

// ProductInput 创建/更新商品输入，nil 字段在更新时保持不变
type ProductInput struct {
	SKU       *string
	Name      *string
	BasePrice *int64
	CC        *string
	WeightKg  *string
	Active    *bool
	ImageURL  *string
	Category  *string
	Details   *string
	StockQty  *int
}

// PublicProductListInput 公共目录查询
type PublicProductListInput struct {
	Page     int
	PageSize int
	Search   string
	Category string
	InStock  string
}

// PublicProductPage 公共目录分页结果
type PublicProductPage struct {
	Items    []models.Product `json:"items"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
}

// IsDecimalLike 判断是否为十进制数字字符串
func IsDecimalLike(raw string) bool {
	return decimalLikePattern.MatchString(strings.TrimSpace(raw))
}

// ListPublic 公共目录：仅上架商品，结果短时缓存
func (s *ProductService) ListPublic(ctx context.Context, input PublicProductListInput) (*PublicProductPage, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	pageSize := clampPageSize(input.PageSize, constants.CatalogDefaultPageSize, 1, constants.CatalogMaxPageSize)
	search := strings.TrimSpace(input.Search)
	category := strings.TrimSpace(input.Category)
	inStockRaw := strings.TrimSpace(input.InStock)
	var inStock *bool
	switch inStockRaw {
	case "true":
		v := true
		inStock = &v
	case "false":
		v := false
		inStock = &v
	default:
		inStockRaw = ""
	}

	version, err := cache.CatalogVersion(ctx)
	if err != nil {
		logger.Warnw("catalog_cache_version_failed", "error", err)
	}
	key := cache.CatalogListKey(version, page, pageSize, strings.ToLower(search), category, inStockRaw)
	var cached PublicProductPage
	if hit, err := cache.GetCatalogJSON(ctx, key, &cached); err != nil {
		logger.Warnw("catalog_cache_read_failed", "key", key, "error", err)
	} else if hit {
		return &cached, nil
	}

	items, total, err := s.repo.ListPublic(repository.ProductPublicFilter{
		Page:     page,
		PageSize: pageSize,
		Search:   search,
		Category: category,
		InStock:  inStock,
	})
	if err != nil {
		return nil, err
	}
	result := &PublicProductPage{Items: items, Total: total, Page: page, PageSize: pageSize}
	if err := cache.SetCatalogJSON(ctx, key, result, s.cacheTTL); err != nil {
		logger.Warnw("catalog_cache_write_failed", "key", key, "error", err)
	}
	return result, nil
}

// GetPublic 公共商品详情，下架商品视为不存在
func (s *ProductService) GetPublic(id string) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.Active {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// ListAdmin 后台商品列表
func (s *ProductService) ListAdmin(search string, active *bool, take int) ([]models.Product, error) {
	take = clampPageSize(take, constants.AdminProductDefaultTake, constants.AdminProductMinTake, constants.AdminProductMaxTake)
	return s.repo.ListAdmin(repository.ProductAdminFilter{
		Search: strings.TrimSpace(search),
		Active: active,
		Take:   take,
	})
}

// GetAdminByID 后台商品详情
func (s *ProductService) GetAdminByID(id string) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// Create 创建商品
func (s *ProductService) Create(ctx context.Context, input ProductInput) (*models.Product, error) {
	if input.SKU == nil || strings.TrimSpace(*input.SKU) == "" {
		return nil, fmt.Errorf("%w: sku required", ErrProductInvalid)
	}
	if input.Name == nil || strings.TrimSpace(*input.Name) == "" {
		return nil, fmt.Errorf("%w: name required", ErrProductInvalid)
	}
	if input.BasePrice == nil {
		return nil, fmt.Errorf("%w: base_price required", ErrProductInvalid)
	}
	if input.CC == nil {
		return nil, fmt.Errorf("%w: cc required", ErrProductInvalid)
	}
	if input.WeightKg == nil {
		return nil, fmt.Errorf("%w: weight_kg required", ErrProductInvalid)
	}

	product := &models.Product{Active: true}
	if err := applyProductInput(product, input); err != nil {
		return nil, err
	}
	if err := s.ensureSKUFree(product.SKU, ""); err != nil {
		return nil, err
	}
	if err := s.repo.Create(product); err != nil {
		return nil, err
	}
	s.invalidateCatalog(ctx)
	return product, nil
}

// Update 部分更新商品
func (s *ProductService) Update(ctx context.Context, id string, input ProductInput) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	if err := applyProductInput(product, input); err != nil {
		return nil, err
	}
	if input.SKU != nil {
		if err := s.ensureSKUFree(product.SKU, product.ID); err != nil {
			return nil, err
		}
	}
	if err := s.repo.Update(product); err != nil {
		return nil, err
	}
	s.invalidateCatalog(ctx)
	return product, nil
}

// Delete 删除商品；已被预订单引用时拒绝
func (s *ProductService) Delete(ctx context.Context, id string) error {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrProductNotFound
	}
	refs, err := s.repo.CountPreorderReferences(product.ID)
	if err != nil {
		return err
	}
	if refs > 0 {
		return ErrProductInUse
	}
	if err := s.repo.Delete(product.ID); err != nil {
		return err
	}
	s.invalidateCatalog(ctx)
	return nil
}

// SetImageURL 更新商品图片地址
func (s *ProductService) SetImageURL(ctx context.Context, id string, imageURL string) (*models.Product, error) {
	return s.Update(ctx, id, ProductInput{ImageURL: &imageURL})
}

func (s *ProductService) ensureSKUFree(sku, excludeID string) error {
	count, err := s.repo.CountBySKU(sku, excludeID)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrProductSKUConflict
	}
	return nil
}

func (s *ProductService) invalidateCatalog(ctx context.Context) {
	if err := cache.BumpCatalogVersion(ctx); err != nil {
		logger.Warnw("catalog_cache_invalidate_failed", "error", err)
	}
}

// applyProductInput 校验并写入非 nil 字段
func applyProductInput(product *models.Product, input ProductInput) error {
	if input.SKU != nil {
		sku := strings.TrimSpace(*input.SKU)
		if sku == "" {
			return fmt.Errorf("%w: sku invalid", ErrProductInvalid)
		}
		product.SKU = sku
	}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return fmt.Errorf("%w: name invalid", ErrProductInvalid)
		}
		product.Name = name
	}
	if input.BasePrice != nil {
		if *input.BasePrice < 0 {
			return fmt.Errorf("%w: base_price invalid", ErrProductInvalid)
		}
		product.BasePrice = *input.BasePrice
	}
	if input.CC != nil {
		cc, err := parseDecimalField("cc", *input.CC)
		if err != nil {
			return err
		}
		product.CC = cc
	}
	if input.WeightKg != nil {
		weight, err := parseDecimalField("weight_kg", *input.WeightKg)
		if err != nil {
			return err
		}
		product.WeightKg = weight
	}
	if input.Active != nil {
		product.Active = *input.Active
	}
	if input.ImageURL != nil {
		product.ImageURL = strings.TrimSpace(*input.ImageURL)
	}
	if input.Category != nil {
		product.Category = strings.TrimSpace(*input.Category)
	}
	if input.Details != nil {
		details, err := RenderProductDetails(*input.Details)
		if err != nil {
			return fmt.Errorf("%w: details invalid", ErrProductInvalid)
		}
		product.Details = details
	}
	if input.StockQty != nil {
		if *input.StockQty < 0 {
			return fmt.Errorf("%w: stock_qty invalid", ErrProductInvalid)
		}
		product.StockQty = *input.StockQty
	}
	return nil
}

func parseDecimalField(field, raw string) (models.Decimal3, error) {
	raw = strings.TrimSpace(raw)
	if !IsDecimalLike(raw) {
		return models.Decimal3{}, fmt.Errorf("%w: %s invalid", ErrProductInvalid, field)
	}
	value, err := models.ParseDecimal3(raw)
	if err != nil {
		return models.Decimal3{}, fmt.Errorf("%w: %s invalid", ErrProductInvalid, field)
	}
	return value, nil
}
