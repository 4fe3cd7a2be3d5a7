package shared

import (
	"github.com/akoudje/appfbo-backend/internal/http/response"
	"github.com/akoudje/appfbo-backend/internal/i18n"
	"github.com/akoudje/appfbo-backend/internal/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLog 提供携带 request_id 的日志实例。
func RequestLog(c *gin.Context) *zap.SugaredLogger {
	if id := response.RequestID(c); id != "" {
		return logger.SW("request_id", id)
	}
	return logger.S()
}

// RespondError 按文案 key 返回国际化错误响应。
func RespondError(c *gin.Context, code int, key string, err error) {
	appErr := response.WrapError(code, key, err)
	RespondErrorWithMsg(c, appErr.Code, i18n.T(i18n.ResolveLocale(c), appErr.Key), err)
}

// RespondAppError 错误链中带 AppError 时按其状态码响应，否则按 500 处理。
func RespondAppError(c *gin.Context, err error) {
	if appErr, ok := response.AsAppError(err); ok {
		RespondError(c, appErr.Code, appErr.Key, appErr.Err)
		return
	}
	RespondError(c, response.CodeInternal, "", err)
}

// RespondErrorWithMsg 返回已翻译的错误文案；5xx 记为 error，其余记为 warn。
func RespondErrorWithMsg(c *gin.Context, code int, msg string, err error) {
	if err != nil {
		log := RequestLog(c)
		if code >= response.CodeInternal {
			log.Errorw("handler_error", "code", code, "message", msg, "path", c.FullPath(), "error", err)
		} else {
			log.Warnw("handler_rejected", "code", code, "message", msg, "path", c.FullPath(), "error", err)
		}
	}
	response.Error(c, code, msg)
}
