package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/akoudje/appfbo-backend/internal/config"
)

func TestValidatePassword(t *testing.T) {
	policy := config.PasswordPolicyConfig{
		MinLength:     8,
		RequireUpper:  true,
		RequireLower:  true,
		RequireNumber: true,
	}
	cases := []struct {
		password string
		key      string
	}{
		{"Short1", "error.password_min_length"},
		{"alllower123", "error.password_require_upper"},
		{"ALLUPPER123", "error.password_require_lower"},
		{"NoDigitsHere", "error.password_require_number"},
		{strings.Repeat("Aa1", 30), "error.password_too_long"},
		{"Valid1234", ""},
	}
	for _, tc := range cases {
		err := validatePassword(policy, tc.password)
		if tc.key == "" {
			if err != nil {
				t.Fatalf("password %q should pass, got %v", tc.password, err)
			}
			continue
		}
		if !errors.Is(err, ErrWeakPassword) {
			t.Fatalf("password %q: expected ErrWeakPassword, got %v", tc.password, err)
		}
		var policyErr passwordPolicyError
		if !errors.As(err, &policyErr) || policyErr.Key() != tc.key {
			t.Fatalf("password %q: expected key %s, got %v", tc.password, tc.key, err)
		}
	}

	policy.RequireSpecial = true
	if err := validatePassword(policy, "Valid1234"); err == nil {
		t.Fatalf("special character should be required")
	}
	if err := validatePassword(policy, "Valid#1234"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
