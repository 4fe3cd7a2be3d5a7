package admin

import (
	"strings"

	handlershared "github.com/akoudje/appfbo-backend/internal/http/handlers/shared"
	"github.com/akoudje/appfbo-backend/internal/http/response"
	"github.com/akoudje/appfbo-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// GradeDiscountRequest 等级折扣写入请求
type GradeDiscountRequest struct {
	DiscountPercent *decimalField `json:"discount_percent"`
}

var gradeDiscountErrorRules = []handlershared.MappedError{
	{Target: service.ErrGradeDiscountInvalid, Code: response.CodeBadRequest, Key: "error.grade_discount_invalid"},
	{Target: service.ErrGradeDiscountNotFound, Code: response.CodeNotFound, Key: "error.grade_discount_not_found"},
}

// ListGradeDiscounts 等级折扣列表
func (h *Handler) ListGradeDiscounts(c *gin.Context) {
	rows, err := h.DiscountService.List()
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, rows)
}

// UpsertGradeDiscount 新增或更新等级折扣
func (h *Handler) UpsertGradeDiscount(c *gin.Context) {
	var req GradeDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.DiscountPercent == nil {
		respondError(c, response.CodeBadRequest, "error.grade_discount_invalid", err)
		return
	}
	percent, err := decimal.NewFromString(strings.TrimSpace(string(*req.DiscountPercent)))
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.grade_discount_invalid", nil)
		return
	}

	row, err := h.DiscountService.Upsert(c.Param("grade"), percent)
	if err != nil {
		respondWithMappedError(c, err, gradeDiscountErrorRules, response.CodeInternal, "error.internal")
		return
	}
	requestLog(c).Infow("admin_grade_discount_saved", "grade", row.Grade, "discount_percent", row.DiscountPercent.String())
	response.Success(c, row)
}

// DeleteGradeDiscount 删除等级折扣
func (h *Handler) DeleteGradeDiscount(c *gin.Context) {
	if err := h.DiscountService.Delete(c.Param("grade")); err != nil {
		respondWithMappedError(c, err, gradeDiscountErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, nil)
}
