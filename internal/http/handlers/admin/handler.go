package admin

import "github.com/akoudje/appfbo-backend/internal/provider"

// Handler 后台接口：预订单开票收款、商品目录、等级折扣、统计与权限
type Handler struct {
	*provider.Container
}

// New 创建后台处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
