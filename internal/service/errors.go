package service

import "errors"

// 通用错误
var (
	ErrNotFound         = errors.New("not found")
	ErrConfigInvalid    = errors.New("config invalid")
	ErrDateRangeInvalid = errors.New("date range invalid")
)

// 通知错误
var (
	ErrNotificationDeliveryFailed = errors.New("notification delivery failed")
)

// 预订单错误
var (
	ErrPreorderNotFound      = errors.New("preorder not found")
	ErrPreorderNotEditable   = errors.New("preorder not editable")
	ErrPreorderValidation    = errors.New("preorder validation failed")
	ErrPreorderNotFrozen     = errors.New("preorder has not been submitted")
	ErrPreorderStatusInvalid = errors.New("preorder status invalid")
	ErrPreorderItemsInvalid  = errors.New("preorder items invalid")
	ErrPreorderFetchFailed   = errors.New("preorder fetch failed")
	ErrPreorderUpdateFailed  = errors.New("preorder update failed")
	ErrCartProductNotFound   = errors.New("cart references unknown product")
	ErrDeliveryModeInvalid   = errors.New("delivery mode invalid")
)

// 商品与折扣错误
var (
	ErrProductNotFound       = errors.New("product not found")
	ErrProductInvalid        = errors.New("product invalid")
	ErrProductSKUConflict    = errors.New("product sku already used")
	ErrProductInUse          = errors.New("product referenced by preorders")
	ErrProductImportEmpty    = errors.New("no valid product rows")
	ErrProductImportInvalid  = errors.New("product import payload invalid")
	ErrGradeDiscountInvalid  = errors.New("grade discount invalid")
	ErrGradeDiscountNotFound = errors.New("grade discount not found")
)

// 认证与验证码错误
var (
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrInvalidPassword      = errors.New("invalid password")
	ErrWeakPassword         = errors.New("password does not satisfy policy")
	ErrCaptchaRequired      = errors.New("captcha required")
	ErrCaptchaInvalid       = errors.New("captcha invalid")
	ErrCaptchaConfigInvalid = errors.New("captcha config invalid")
	ErrTokenInvalid         = errors.New("token invalid")
)

// 上传错误
var (
	ErrUploadEmpty          = errors.New("upload file missing")
	ErrUploadTooLarge       = errors.New("upload file too large")
	ErrUploadTypeNotAllowed = errors.New("upload file type not allowed")
)
