package shared

import (
	"strings"

	"github.com/akoudje/appfbo-backend/internal/service"
)

// CaptchaPayloadRequest 草稿创建与后台登录共用的验证码字段，必填与否由 CaptchaService 按场景决定。
type CaptchaPayloadRequest struct {
	CaptchaID   string `json:"captcha_id"`
	CaptchaCode string `json:"captcha_code"`
}

// ToServicePayload 去空白后交给 CaptchaService 校验。
func (r CaptchaPayloadRequest) ToServicePayload() service.CaptchaVerifyPayload {
	return service.CaptchaVerifyPayload{
		CaptchaID:   strings.TrimSpace(r.CaptchaID),
		CaptchaCode: strings.TrimSpace(r.CaptchaCode),
	}
}
