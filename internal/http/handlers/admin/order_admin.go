package admin

import (
	"strings"

	"github.com/akoudje/appfbo-backend/internal/constants"
	handlershared "github.com/akoudje/appfbo-backend/internal/http/handlers/shared"
	"github.com/akoudje/appfbo-backend/internal/http/response"
	"github.com/akoudje/appfbo-backend/internal/models"
	"github.com/akoudje/appfbo-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// UpdateOrderStatusRequest 后台状态覆盖请求
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// AdminListOrders 后台预订单列表
func (h *Handler) AdminListOrders(c *gin.Context) {
	rows, total, page, pageSize, err := h.PreorderService.ListForAdmin(service.AdminPreorderListInput{
		Page:     handlershared.QueryInt(c.Query("page"), 1),
		PageSize: handlershared.QueryInt(c.Query("page_size"), 0),
		Status:   c.Query("status"),
		Keyword:  strings.TrimSpace(c.Query("q")),
		DateFrom: c.Query("date_from"),
		DateTo:   c.Query("date_to"),
		SortBy:   c.Query("sort_by"),
		SortDir:  c.Query("sort_dir"),
	})
	if err != nil {
		respondWithMappedError(c, err, handlershared.PreorderErrorRules, response.CodeInternal, "error.preorder_fetch_failed")
		return
	}

	response.SuccessWithPage(c, rows, handlershared.BuildPagination(page, pageSize, total))
}

// AdminGetOrder 后台预订单详情
func (h *Handler) AdminGetOrder(c *gin.Context) {
	preorder, err := h.PreorderService.GetAdminDetail(strings.TrimSpace(c.Param("id")))
	if err != nil {
		respondWithMappedError(c, err, handlershared.PreorderErrorRules, response.CodeInternal, "error.preorder_fetch_failed")
		return
	}
	response.Success(c, preorder)
}

// AdminUpdateOrderStatus 后台覆盖预订单状态
func (h *Handler) AdminUpdateOrderStatus(c *gin.Context) {
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	h.respondStatusChange(c, constants.AuditActionPreorderStatusPatch, func(id string) (*models.Preorder, error) {
		return h.PreorderService.PatchStatus(id, req.Status)
	})
}

// AdminInvoiceOrder 开票
func (h *Handler) AdminInvoiceOrder(c *gin.Context) {
	h.respondStatusChange(c, constants.AuditActionPreorderInvoice, h.PreorderService.Invoice)
}

// AdminPayOrder 标记已付款
func (h *Handler) AdminPayOrder(c *gin.Context) {
	h.respondStatusChange(c, constants.AuditActionPreorderPay, h.PreorderService.Pay)
}

func (h *Handler) respondStatusChange(c *gin.Context, action string, apply func(id string) (*models.Preorder, error)) {
	id := strings.TrimSpace(c.Param("id"))
	fromStatus := ""
	if h.PreorderRepo != nil {
		if before, err := h.PreorderRepo.GetByID(id); err == nil && before != nil {
			fromStatus = before.Status
		}
	}
	preorder, err := apply(id)
	if err != nil {
		respondWithMappedError(c, err, handlershared.PreorderErrorRules, response.CodeInternal, "error.preorder_update_failed")
		return
	}

	adminID := handlershared.CurrentAdmin(c).ID
	requestLog(c).Infow("admin_preorder_status_changed",
		"action", action,
		"preorder_id", preorder.ID,
		"from_status", fromStatus,
		"status", preorder.Status,
		"invoice_reference", preorder.InvoiceReference,
		"admin_id", adminID,
	)
	h.recordAudit(c, service.AuditRecordInput{
		Action:     action,
		TargetType: constants.AuditTargetPreorder,
		TargetID:   preorder.ID,
		FromStatus: fromStatus,
		ToStatus:   preorder.Status,
		Detail:     models.JSON{"invoice_reference": preorder.InvoiceReference, "total": preorder.Total},
	})
	response.Success(c, preorder)
}
