package response

import "errors"

// AppError 带业务码与文案 key 的错误
type AppError struct {
	Code int
	Key  string
	Err  error
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Key
	}
	return e.Key + ": " + e.Err.Error()
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// WrapError 包装错误，key 为空时按状态码补齐
func WrapError(code int, key string, err error) *AppError {
	if key == "" {
		key = DefaultMessageKey(code)
	}
	return &AppError{Code: code, Key: key, Err: err}
}

// AsAppError 从错误链中取出 AppError
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr != nil {
		return appErr, true
	}
	return nil, false
}
