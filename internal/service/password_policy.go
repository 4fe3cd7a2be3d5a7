package service

import (
	"unicode"

	"github.com/akoudje/appfbo-backend/internal/config"
)

// bcrypt 只使用前 72 字节
const passwordMaxBytes = 72

type passwordPolicyError struct {
	key  string
	args []interface{}
}

func (e passwordPolicyError) Error() string {
	return e.key
}

func (e passwordPolicyError) Is(target error) bool {
	return target == ErrWeakPassword
}

// Key 返回 i18n 文案键
func (e passwordPolicyError) Key() string {
	return e.key
}

// Args 返回文案参数
func (e passwordPolicyError) Args() []interface{} {
	return e.args
}

type passwordClasses struct {
	upper, lower, number, special bool
}

func classifyPassword(password string) passwordClasses {
	var c passwordClasses
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			c.upper = true
		case unicode.IsLower(r):
			c.lower = true
		case unicode.IsDigit(r):
			c.number = true
		default:
			c.special = true
		}
	}
	return c
}

func validatePassword(policy config.PasswordPolicyConfig, password string) error {
	if len(password) > passwordMaxBytes {
		return passwordPolicyError{key: "error.password_too_long", args: []interface{}{passwordMaxBytes}}
	}
	if policy.MinLength > 0 && len([]rune(password)) < policy.MinLength {
		return passwordPolicyError{key: "error.password_min_length", args: []interface{}{policy.MinLength}}
	}

	classes := classifyPassword(password)
	rules := []struct {
		required bool
		present  bool
		key      string
	}{
		{policy.RequireUpper, classes.upper, "error.password_require_upper"},
		{policy.RequireLower, classes.lower, "error.password_require_lower"},
		{policy.RequireNumber, classes.number, "error.password_require_number"},
		{policy.RequireSpecial, classes.special, "error.password_require_special"},
	}
	for _, rule := range rules {
		if rule.required && !rule.present {
			return passwordPolicyError{key: rule.key}
		}
	}
	return nil
}
