package response

// 业务状态码，HTTP 状态恒为 200
const (
	CodeOK              = 0
	CodeBadRequest      = 400
	CodeUnauthorized    = 401
	CodeForbidden       = 403
	CodeNotFound        = 404
	CodeConflict        = 409
	CodeTooManyRequests = 429
	CodeInternal        = 500
)

var defaultMessageKeys = map[int]string{
	CodeBadRequest:      "error.bad_request",
	CodeUnauthorized:    "error.unauthorized",
	CodeForbidden:       "error.forbidden",
	CodeNotFound:        "error.not_found",
	CodeTooManyRequests: "error.rate_limited",
	CodeInternal:        "error.internal",
}

// DefaultMessageKey 状态码对应的兜底文案 key
func DefaultMessageKey(code int) string {
	if key, ok := defaultMessageKeys[code]; ok {
		return key
	}
	if code >= CodeInternal {
		return "error.internal"
	}
	return "error.bad_request"
}
