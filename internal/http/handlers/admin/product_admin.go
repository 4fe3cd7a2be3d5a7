package admin

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	handlershared "github.com/akoudje/appfbo-backend/internal/http/handlers/shared"
	"github.com/akoudje/appfbo-backend/internal/http/response"
	"github.com/akoudje/appfbo-backend/internal/i18n"
	"github.com/akoudje/appfbo-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// decimalField 兼容数字与字符串两种写法的小数字段
type decimalField string

func (d *decimalField) UnmarshalJSON(b []byte) error {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*d = decimalField(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return err
	}
	*d = decimalField(n.String())
	return nil
}

func (d *decimalField) ptr() *string {
	if d == nil {
		return nil
	}
	s := string(*d)
	return &s
}

// ProductRequest 商品创建/更新请求，更新时缺省字段保持不变
type ProductRequest struct {
	SKU       *string       `json:"sku"`
	Name      *string       `json:"name"`
	BasePrice *int64        `json:"base_price"`
	CC        *decimalField `json:"cc"`
	WeightKg  *decimalField `json:"weight_kg"`
	Active    *bool         `json:"active"`
	ImageURL  *string       `json:"image_url"`
	Category  *string       `json:"category"`
	Details   *string       `json:"details"`
	StockQty  *int          `json:"stock_qty"`
}

func (r ProductRequest) toInput() service.ProductInput {
	return service.ProductInput{
		SKU:       r.SKU,
		Name:      r.Name,
		BasePrice: r.BasePrice,
		CC:        r.CC.ptr(),
		WeightKg:  r.WeightKg.ptr(),
		Active:    r.Active,
		ImageURL:  r.ImageURL,
		Category:  r.Category,
		Details:   r.Details,
		StockQty:  r.StockQty,
	}
}

func respondProductError(c *gin.Context, err error, fallbackKey string) {
	respondWithMappedError(c, err, handlershared.ProductErrorRules, response.CodeInternal, fallbackKey)
}

// GetAdminProducts 后台商品列表
func (h *Handler) GetAdminProducts(c *gin.Context) {
	var active *bool
	if raw := strings.TrimSpace(c.Query("active")); raw != "" {
		if parsed, err := strconv.ParseBool(raw); err == nil {
			active = &parsed
		}
	}

	products, err := h.ProductService.ListAdmin(c.Query("q"), active, handlershared.QueryInt(c.Query("take"), 0))
	if err != nil {
		respondProductError(c, err, "error.product_fetch_failed")
		return
	}
	response.Success(c, products)
}

// GetAdminProduct 后台商品详情
func (h *Handler) GetAdminProduct(c *gin.Context) {
	product, err := h.ProductService.GetAdminByID(strings.TrimSpace(c.Param("id")))
	if err != nil {
		respondProductError(c, err, "error.product_fetch_failed")
		return
	}
	response.Success(c, product)
}

// CreateProduct 创建商品
func (h *Handler) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.product_invalid", err)
		return
	}

	product, err := h.ProductService.Create(c.Request.Context(), req.toInput())
	if err != nil {
		respondProductError(c, err, "error.product_save_failed")
		return
	}
	response.Success(c, product)
}

// UpdateProduct 部分更新商品
func (h *Handler) UpdateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.product_invalid", err)
		return
	}

	product, err := h.ProductService.Update(c.Request.Context(), strings.TrimSpace(c.Param("id")), req.toInput())
	if err != nil {
		respondProductError(c, err, "error.product_save_failed")
		return
	}
	response.Success(c, product)
}

// DeleteProduct 删除商品，被预订单引用时拒绝
func (h *Handler) DeleteProduct(c *gin.Context) {
	if err := h.ProductService.Delete(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
		respondProductError(c, err, "error.product_save_failed")
		return
	}
	response.Success(c, nil)
}

// ImportProducts 批量导入商品，支持 JSON 行数组或 multipart CSV 文件
func (h *Handler) ImportProducts(c *gin.Context) {
	rows, err := h.readImportRows(c)
	if err != nil {
		respondProductError(c, err, "error.product_import_invalid")
		return
	}

	result, err := h.ProductService.Import(c.Request.Context(), rows)
	if err != nil {
		if errors.Is(err, service.ErrProductImportEmpty) && result != nil {
			response.ErrorWithData(c, response.CodeBadRequest, i18n.T(i18n.ResolveLocale(c), "error.product_import_empty"), result)
			return
		}
		respondProductError(c, err, "error.product_save_failed")
		return
	}

	requestLog(c).Infow("admin_products_imported",
		"received", result.TotalReceived,
		"created", result.Created,
		"updated", result.Updated,
		"rejected", len(result.Errors),
	)
	response.Success(c, result)
}

func (h *Handler) readImportRows(c *gin.Context) ([]service.ProductImportRow, error) {
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			return nil, service.ErrUploadEmpty
		}
		file, err := fileHeader.Open()
		if err != nil {
			return nil, err
		}
		defer file.Close()
		return service.ParseProductCSV(file)
	}

	var payload interface{}
	if err := c.ShouldBindJSON(&payload); err != nil {
		return nil, service.ErrProductImportInvalid
	}
	var rawRows []interface{}
	switch v := payload.(type) {
	case []interface{}:
		rawRows = v
	case map[string]interface{}:
		items, ok := v["items"].([]interface{})
		if !ok {
			items, ok = v["rows"].([]interface{})
		}
		if !ok {
			return nil, service.ErrProductImportInvalid
		}
		rawRows = items
	default:
		return nil, service.ErrProductImportInvalid
	}

	rows := make([]service.ProductImportRow, 0, len(rawRows))
	for _, raw := range rawRows {
		obj, ok := raw.(map[string]interface{})
		if !ok {
			rows = append(rows, service.ProductImportRow{})
			continue
		}
		rows = append(rows, service.ImportRowFromMap(obj))
	}
	return rows, nil
}

// UploadProductImage 上传商品图片并更新 image_url
func (h *Handler) UploadProductImage(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	product, err := h.ProductService.GetAdminByID(id)
	if err != nil {
		respondProductError(c, err, "error.product_fetch_failed")
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.upload_empty", nil)
		return
	}

	url, err := h.UploadService.SaveProductImage(file, product.SKU)
	if err != nil {
		respondProductError(c, err, "error.upload_failed")
		return
	}

	updated, err := h.ProductService.SetImageURL(c.Request.Context(), id, url)
	if err != nil {
		respondProductError(c, err, "error.product_save_failed")
		return
	}
	response.Success(c, gin.H{
		"url":     url,
		"product": updated,
	})
}
