package admin

import (
	"strconv"
	"strings"

	handlershared "github.com/akoudje/appfbo-backend/internal/http/handlers/shared"
	"github.com/akoudje/appfbo-backend/internal/http/response"
	"github.com/akoudje/appfbo-backend/internal/service"

	"github.com/gin-gonic/gin"
)

var auditErrorRules = []handlershared.MappedError{
	{Target: service.ErrDateRangeInvalid, Code: response.CodeBadRequest, Key: "error.date_range_invalid"},
}

// ListAuditLogs 后台操作审计日志
func (h *Handler) ListAuditLogs(c *gin.Context) {
	var operatorID uint
	if raw := strings.TrimSpace(c.Query("operator_admin_id")); raw != "" {
		if parsed, err := strconv.ParseUint(raw, 10, 64); err == nil {
			operatorID = uint(parsed)
		}
	}

	rows, total, page, pageSize, err := h.AuditService.ListForAdmin(service.AuditLogListInput{
		Page:            handlershared.QueryInt(c.Query("page"), 1),
		PageSize:        handlershared.QueryInt(c.Query("page_size"), 0),
		OperatorAdminID: operatorID,
		Action:          c.Query("action"),
		TargetType:      c.Query("target_type"),
		TargetID:        c.Query("target_id"),
		DateFrom:        c.Query("date_from"),
		DateTo:          c.Query("date_to"),
	})
	if err != nil {
		respondWithMappedError(c, err, auditErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.SuccessWithPage(c, rows, handlershared.BuildPagination(page, pageSize, total))
}

// recordAudit 写入审计日志，失败只记录警告
func (h *Handler) recordAudit(c *gin.Context, input service.AuditRecordInput) {
	if h.AuditService == nil {
		return
	}
	identity := handlershared.CurrentAdmin(c)
	input.OperatorAdminID = identity.ID
	input.OperatorUsername = identity.Username
	input.RequestID = response.RequestID(c)
	if err := h.AuditService.Record(input); err != nil {
		requestLog(c).Warnw("admin_audit_record_failed", "action", input.Action, "target_id", input.TargetID, "error", err)
	}
}
