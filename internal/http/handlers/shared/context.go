package shared

import (
	"github.com/akoudje/appfbo-backend/internal/http/response"

	"github.com/gin-gonic/gin"
)

// 鉴权中间件写入的上下文键
const (
	ContextKeyAdminID      = "admin_id"
	ContextKeyAdminName    = "username"
	ContextKeyAdminIsSuper = "admin_is_super"
)

// AdminIdentity 当前请求的后台管理员
type AdminIdentity struct {
	ID       uint
	Username string
	IsSuper  bool
}

// SetAdminIdentity 鉴权通过后写入上下文。
func SetAdminIdentity(c *gin.Context, identity AdminIdentity) {
	c.Set(ContextKeyAdminID, identity.ID)
	c.Set(ContextKeyAdminName, identity.Username)
	c.Set(ContextKeyAdminIsSuper, identity.IsSuper)
}

// CurrentAdmin 读取管理员身份，未登录或类型不符时 ID 为 0，不写响应。
func CurrentAdmin(c *gin.Context) AdminIdentity {
	identity := AdminIdentity{}
	if id, ok := adminIDFromContext(c); ok {
		identity.ID = id
	}
	if value, ok := c.Get(ContextKeyAdminName); ok {
		identity.Username, _ = value.(string)
	}
	if value, ok := c.Get(ContextKeyAdminIsSuper); ok {
		identity.IsSuper, _ = value.(bool)
	}
	return identity
}

// RequireAdminID 读取管理员 ID，缺失时写 401，类型非法时写 500。
func RequireAdminID(c *gin.Context) (uint, bool) {
	if _, exists := c.Get(ContextKeyAdminID); !exists {
		RespondError(c, response.CodeUnauthorized, "error.unauthorized", nil)
		return 0, false
	}
	id, ok := adminIDFromContext(c)
	if !ok {
		RespondError(c, response.CodeInternal, "error.admin_id_type_invalid", nil)
		return 0, false
	}
	if id == 0 {
		RespondError(c, response.CodeBadRequest, "error.admin_id_invalid", nil)
		return 0, false
	}
	return id, true
}

// adminIDFromContext 兼容 uint、int 与 JSON 解码出的 float64
func adminIDFromContext(c *gin.Context) (uint, bool) {
	value, exists := c.Get(ContextKeyAdminID)
	if !exists {
		return 0, false
	}
	switch v := value.(type) {
	case uint:
		return v, true
	case int:
		if v < 0 {
			return 0, true
		}
		return uint(v), true
	case float64:
		if v < 0 {
			return 0, true
		}
		return uint(v), true
	default:
		return 0, false
	}
}
