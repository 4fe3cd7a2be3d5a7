package shared

import (
	"errors"
	"strings"

	"github.com/akoudje/appfbo-backend/internal/http/response"
	"github.com/akoudje/appfbo-backend/internal/i18n"
	"github.com/akoudje/appfbo-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// MappedError 定义业务错误到接口错误响应的映射关系。
type MappedError struct {
	Target error
	Code   int
	Key    string
}

// RespondWithMappedError 按规则顺序匹配错误，未命中时使用兜底响应并记录原始错误。
func RespondWithMappedError(c *gin.Context, err error, rules []MappedError, fallbackCode int, fallbackKey string) {
	if RespondPasswordPolicyError(c, err) {
		return
	}
	var validation *service.PreorderValidationError
	if errors.As(err, &validation) {
		msg := i18n.Sprintf(i18n.ResolveLocale(c), "error.preorder_validation", strings.Join(validation.Fields, ", "))
		RespondErrorWithMsg(c, response.CodeBadRequest, msg, nil)
		return
	}
	for _, rule := range rules {
		if errors.Is(err, rule.Target) {
			RespondError(c, rule.Code, rule.Key, nil)
			return
		}
	}
	RespondError(c, fallbackCode, fallbackKey, err)
}

// ConcatMappedErrors 合并多组映射规则。
func ConcatMappedErrors(groups ...[]MappedError) []MappedError {
	total := 0
	for _, group := range groups {
		total += len(group)
	}
	result := make([]MappedError, 0, total)
	for _, group := range groups {
		result = append(result, group...)
	}
	return result
}

// RespondPasswordPolicyError 密码策略错误按具体规则返回文案。
func RespondPasswordPolicyError(c *gin.Context, err error) bool {
	if err == nil || !errors.Is(err, service.ErrWeakPassword) {
		return false
	}
	if perr, ok := err.(interface {
		Key() string
		Args() []interface{}
	}); ok {
		msg := i18n.Sprintf(i18n.ResolveLocale(c), perr.Key(), perr.Args()...)
		RespondErrorWithMsg(c, response.CodeBadRequest, msg, nil)
		return true
	}
	RespondError(c, response.CodeBadRequest, "error.password_weak", nil)
	return true
}

// CaptchaErrorRules 验证码错误映射。
var CaptchaErrorRules = []MappedError{
	{Target: service.ErrCaptchaRequired, Code: response.CodeBadRequest, Key: "error.captcha_required"},
	{Target: service.ErrCaptchaInvalid, Code: response.CodeBadRequest, Key: "error.captcha_invalid"},
	{Target: service.ErrCaptchaConfigInvalid, Code: response.CodeInternal, Key: "error.captcha_config_invalid"},
}

// PreorderErrorRules 预订单通用错误映射。
var PreorderErrorRules = []MappedError{
	{Target: service.ErrPreorderNotFound, Code: response.CodeNotFound, Key: "error.preorder_not_found"},
	{Target: service.ErrPreorderNotEditable, Code: response.CodeBadRequest, Key: "error.preorder_not_editable"},
	{Target: service.ErrPreorderNotFrozen, Code: response.CodeBadRequest, Key: "error.preorder_not_frozen"},
	{Target: service.ErrPreorderStatusInvalid, Code: response.CodeBadRequest, Key: "error.preorder_status_invalid"},
	{Target: service.ErrPreorderItemsInvalid, Code: response.CodeBadRequest, Key: "error.preorder_items_invalid"},
	{Target: service.ErrCartProductNotFound, Code: response.CodeBadRequest, Key: "error.cart_product_not_found"},
	{Target: service.ErrDeliveryModeInvalid, Code: response.CodeBadRequest, Key: "error.delivery_mode_invalid"},
	{Target: service.ErrDateRangeInvalid, Code: response.CodeBadRequest, Key: "error.date_range_invalid"},
	{Target: service.ErrPreorderUpdateFailed, Code: response.CodeInternal, Key: "error.preorder_update_failed"},
}

// ProductErrorRules 商品错误映射。
var ProductErrorRules = []MappedError{
	{Target: service.ErrProductNotFound, Code: response.CodeNotFound, Key: "error.product_not_found"},
	{Target: service.ErrProductInvalid, Code: response.CodeBadRequest, Key: "error.product_invalid"},
	{Target: service.ErrProductSKUConflict, Code: response.CodeConflict, Key: "error.product_sku_conflict"},
	{Target: service.ErrProductInUse, Code: response.CodeConflict, Key: "error.product_in_use"},
	{Target: service.ErrProductImportEmpty, Code: response.CodeBadRequest, Key: "error.product_import_empty"},
	{Target: service.ErrProductImportInvalid, Code: response.CodeBadRequest, Key: "error.product_import_invalid"},
	{Target: service.ErrUploadEmpty, Code: response.CodeBadRequest, Key: "error.upload_empty"},
	{Target: service.ErrUploadTooLarge, Code: response.CodeBadRequest, Key: "error.upload_too_large"},
	{Target: service.ErrUploadTypeNotAllowed, Code: response.CodeBadRequest, Key: "error.upload_type_not_allowed"},
}
