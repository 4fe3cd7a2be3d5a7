package service

import (
	"errors"
	"testing"

	"github.com/akoudje/appfbo-backend/internal/config"
	"github.com/akoudje/appfbo-backend/internal/constants"
)

func TestCaptchaDisabledByDefault(t *testing.T) {
	svc := NewCaptchaService(config.CaptchaConfig{Provider: "unknown", Scenes: config.CaptchaSceneConfig{CreateDraft: true}})
	if svc.IsSceneEnabled(constants.CaptchaSceneCreateDraft) {
		t.Fatalf("unknown provider must disable captcha")
	}
	if err := svc.Verify(constants.CaptchaSceneCreateDraft, CaptchaVerifyPayload{}); err != nil {
		t.Fatalf("disabled scene should pass, got %v", err)
	}
	if _, err := svc.GenerateImageChallenge(); !errors.Is(err, ErrCaptchaConfigInvalid) {
		t.Fatalf("expected ErrCaptchaConfigInvalid, got %v", err)
	}
	setting := svc.GetPublicSetting()
	if setting.Provider != constants.CaptchaProviderNone {
		t.Fatalf("unexpected provider: %s", setting.Provider)
	}
}

func TestCaptchaImageChallenge(t *testing.T) {
	svc := NewCaptchaService(config.CaptchaConfig{
		Provider: "IMAGE",
		Scenes:   config.CaptchaSceneConfig{AdminLogin: true},
	})
	if svc.IsSceneEnabled(constants.CaptchaSceneCreateDraft) {
		t.Fatalf("create_draft scene should stay disabled")
	}
	if !svc.GetPublicSetting().Scenes[constants.CaptchaSceneAdminLogin] {
		t.Fatalf("admin_login scene should be enabled")
	}

	challenge, err := svc.GenerateImageChallenge()
	if err != nil {
		t.Fatalf("generate challenge failed: %v", err)
	}
	if challenge.CaptchaID == "" || challenge.ImageBase64 == "" {
		t.Fatalf("challenge incomplete: %+v", challenge)
	}

	if err := svc.Verify(constants.CaptchaSceneAdminLogin, CaptchaVerifyPayload{}); !errors.Is(err, ErrCaptchaRequired) {
		t.Fatalf("expected ErrCaptchaRequired, got %v", err)
	}
	answer := svc.ensureImageStore().Get(challenge.CaptchaID, false)
	if err := svc.Verify(constants.CaptchaSceneAdminLogin, CaptchaVerifyPayload{CaptchaID: challenge.CaptchaID, CaptchaCode: "wrong!"}); !errors.Is(err, ErrCaptchaInvalid) {
		t.Fatalf("expected ErrCaptchaInvalid, got %v", err)
	}
	// 校验失败后验证码已被消费
	if err := svc.Verify(constants.CaptchaSceneAdminLogin, CaptchaVerifyPayload{CaptchaID: challenge.CaptchaID, CaptchaCode: answer}); !errors.Is(err, ErrCaptchaInvalid) {
		t.Fatalf("consumed captcha must not verify, got %v", err)
	}
}
