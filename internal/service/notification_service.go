package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/akoudje/appfbo-backend/internal/config"
	"github.com/akoudje/appfbo-backend/internal/constants"
	"github.com/akoudje/appfbo-backend/internal/logger"
	"github.com/akoudje/appfbo-backend/internal/repository"
)

// BillingNotification 开票通知载荷
type BillingNotification struct {
	PreorderID  string        `json:"preorder_id"`
	FboNumber   string        `json:"fbo_number"`
	FboFullName string        `json:"fbo_full_name"`
	Total       int64         `json:"total"`
	SubmittedAt *time.Time    `json:"submitted_at"`
	Recipient   string        `json:"recipient"`
	Message     string        `json:"message"`
	Link        string        `json:"link"`
	Billing     []BillingLink `json:"billing"`
}

// NotificationService 开票通知投递
type NotificationService struct {
	preorderRepo   repository.PreorderRepository
	billingNumbers []string
	webhookURL     string
	httpClient     *http.Client
}

// NewNotificationService 创建通知服务
func NewNotificationService(preorderRepo repository.PreorderRepository, cfg config.NotificationConfig, billingNumbers []string) *NotificationService {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 10
	}
	return &NotificationService{
		preorderRepo:   preorderRepo,
		billingNumbers: billingNumbers,
		webhookURL:     strings.TrimSpace(cfg.WebhookURL),
		httpClient:     &http.Client{Timeout: time.Duration(timeout) * time.Second},
	}
}

// BuildBillingNotification 从已冻结预订单构建通知载荷
func (s *NotificationService) BuildBillingNotification(preorderID string) (*BillingNotification, error) {
	preorder, err := s.preorderRepo.GetByID(preorderID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPreorderFetchFailed, err)
	}
	if preorder == nil {
		return nil, ErrPreorderNotFound
	}
	if preorder.SubmittedAt == nil || preorder.Status == constants.PreorderStatusDraft {
		return nil, ErrPreorderNotFrozen
	}
	notification := &BillingNotification{
		PreorderID:  preorder.ID,
		FboNumber:   preorder.FboNumber,
		FboFullName: preorder.FboFullName,
		Total:       preorder.Total,
		SubmittedAt: preorder.SubmittedAt,
		Recipient:   preorder.WhatsappTo,
		Message:     preorder.WhatsappMessage,
		Billing:     make([]BillingLink, 0, len(s.billingNumbers)),
	}
	if preorder.WhatsappTo != "" {
		notification.Link = BuildWhatsAppLink(preorder.WhatsappTo, preorder.WhatsappMessage)
	}
	for _, phone := range s.billingNumbers {
		notification.Billing = append(notification.Billing, BillingLink{
			Phone: phone,
			Link:  BuildWhatsAppLink(phone, preorder.WhatsappMessage),
		})
	}
	return notification, nil
}

// DispatchBillingNotification 投递开票通知；未配置 Webhook 时仅记录日志
func (s *NotificationService) DispatchBillingNotification(ctx context.Context, preorderID string) error {
	notification, err := s.BuildBillingNotification(preorderID)
	if err != nil {
		return err
	}
	if s.webhookURL == "" {
		logger.Infow("billing_notification_logged",
			"preorder_id", notification.PreorderID,
			"recipient", notification.Recipient,
			"link", notification.Link,
		)
		return nil
	}
	if err := s.postJSON(ctx, notification); err != nil {
		return err
	}
	logger.Infow("billing_notification_delivered",
		"preorder_id", notification.PreorderID,
		"recipient", notification.Recipient,
	)
	return nil
}

func (s *NotificationService) postJSON(ctx context.Context, payload interface{}) error {
	if ctx == nil {
		ctx = context.Background()
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: build request failed", ErrNotificationDeliveryFailed)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNotificationDeliveryFailed, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: status %d", ErrNotificationDeliveryFailed, resp.StatusCode)
	}
	return nil
}
