package admin

import (
	"errors"
	"net/url"
	"strconv"
	"strings"

	"github.com/akoudje/appfbo-backend/internal/authz"
	"github.com/akoudje/appfbo-backend/internal/constants"
	handlershared "github.com/akoudje/appfbo-backend/internal/http/handlers/shared"
	"github.com/akoudje/appfbo-backend/internal/http/response"
	"github.com/akoudje/appfbo-backend/internal/logger"
	"github.com/akoudje/appfbo-backend/internal/models"
	"github.com/akoudje/appfbo-backend/internal/service"

	"github.com/gin-gonic/gin"
)

type authzSetAdminRolesPayload struct {
	Roles []string `json:"roles"`
}

// GetAuthzMe 获取当前管理员权限快照
func (h *Handler) GetAuthzMe(c *gin.Context) {
	adminID, ok := handlershared.RequireAdminID(c)
	if !ok {
		return
	}
	identity := handlershared.CurrentAdmin(c)

	roles, err := h.AuthzService.GetAdminRoles(adminID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	policies, err := h.AuthzService.GetAdminPolicies(adminID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}

	response.Success(c, gin.H{
		"admin_id": adminID,
		"username": identity.Username,
		"is_super": identity.IsSuper,
		"roles":    roles,
		"policies": policies,
	})
}

// ListAuthzRoles 获取角色列表
func (h *Handler) ListAuthzRoles(c *gin.Context) {
	roles, err := h.AuthzService.ListRoles()
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, roles)
}

// GetAuthzRolePolicies 获取角色策略
func (h *Handler) GetAuthzRolePolicies(c *gin.Context) {
	role := decodeRoleParam(c.Param("role"))
	if strings.TrimSpace(role) == "" {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	policies, err := h.AuthzService.GetRolePolicies(role)
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	response.Success(c, policies)
}

// GetAuthzAdminRoles 获取指定管理员角色
func (h *Handler) GetAuthzAdminRoles(c *gin.Context) {
	adminID, ok := h.resolveTargetAdmin(c)
	if !ok {
		return
	}
	roles, err := h.AuthzService.GetAdminRoles(adminID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, gin.H{"admin_id": adminID, "roles": roles})
}

// SetAuthzAdminRoles 覆盖设置管理员角色
func (h *Handler) SetAuthzAdminRoles(c *gin.Context) {
	adminID, ok := h.resolveTargetAdmin(c)
	if !ok {
		return
	}

	var req authzSetAdminRolesPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	if err := h.AuthzService.SetAdminRoles(adminID, req.Roles); err != nil {
		if errors.Is(err, authz.ErrRoleNotFound) {
			respondError(c, response.CodeBadRequest, "error.bad_request", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}

	operatorID := handlershared.CurrentAdmin(c).ID
	logger.Infow("admin_authz_roles_assigned",
		"operator_admin_id", operatorID,
		"target_admin_id", adminID,
		"roles", req.Roles,
	)
	h.recordAudit(c, service.AuditRecordInput{
		Action:     constants.AuditActionAdminRolesSet,
		TargetType: constants.AuditTargetAdmin,
		TargetID:   strconv.FormatUint(uint64(adminID), 10),
		Detail:     models.JSON{"roles": req.Roles},
	})

	roles, err := h.AuthzService.GetAdminRoles(adminID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, gin.H{"admin_id": adminID, "roles": roles})
}

func (h *Handler) resolveTargetAdmin(c *gin.Context) (uint, bool) {
	parsed, err := strconv.ParseUint(strings.TrimSpace(c.Param("id")), 10, 64)
	if err != nil || parsed == 0 {
		respondError(c, response.CodeBadRequest, "error.admin_id_invalid", nil)
		return 0, false
	}
	admin, err := h.AdminRepo.GetByID(uint(parsed))
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return 0, false
	}
	if admin == nil {
		respondError(c, response.CodeNotFound, "error.not_found", nil)
		return 0, false
	}
	return admin.ID, true
}

func decodeRoleParam(raw string) string {
	decoded, err := url.PathUnescape(strings.TrimSpace(raw))
	if err != nil {
		return strings.TrimSpace(raw)
	}
	return strings.TrimSpace(decoded)
}
