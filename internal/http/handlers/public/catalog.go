package public

import (
	"strings"

	handlershared "github.com/akoudje/appfbo-backend/internal/http/handlers/shared"
	"github.com/akoudje/appfbo-backend/internal/http/response"
	"github.com/akoudje/appfbo-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// ListProducts 公共商品目录（仅上架商品）
func (h *Handler) ListProducts(c *gin.Context) {
	search := strings.TrimSpace(c.Query("q"))
	if search == "" {
		search = strings.TrimSpace(c.Query("search"))
	}

	result, err := h.ProductService.ListPublic(c.Request.Context(), service.PublicProductListInput{
		Page:     handlershared.QueryInt(c.Query("page"), 1),
		PageSize: handlershared.QueryInt(c.Query("page_size"), 0),
		Search:   search,
		Category: c.Query("category"),
		InStock:  c.Query("in_stock"),
	})
	if err != nil {
		respondCatalogError(c, err)
		return
	}

	response.SuccessWithPage(c, result.Items, handlershared.BuildPagination(result.Page, result.PageSize, result.Total))
}

// GetProduct 公共商品详情，下架商品返回 404
func (h *Handler) GetProduct(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	product, err := h.ProductService.GetPublic(id)
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	response.Success(c, product)
}
