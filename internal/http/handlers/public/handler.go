package public

import "github.com/akoudje/appfbo-backend/internal/provider"

// Handler FBO 前台接口：公开商品目录、验证码与预订单草稿流程
type Handler struct {
	*provider.Container
}

// New 创建前台处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
