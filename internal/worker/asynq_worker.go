package worker

import (
	"context"
	"errors"

	"github.com/akoudje/appfbo-backend/internal/logger"
	"github.com/akoudje/appfbo-backend/internal/provider"
	"github.com/akoudje/appfbo-backend/internal/queue"
	"github.com/akoudje/appfbo-backend/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskPreorderBillingNotify, c.handlePreorderBillingNotify)
}

func (c *Consumer) handlePreorderBillingNotify(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_billing_notify_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	payload, err := queue.ParsePreorderBillingNotifyPayload(task)
	if err != nil {
		// 载荷无效时重试无意义
		logger.Warnw("worker_billing_notify_payload_invalid", "error", err)
		return nil
	}
	if c.NotificationService == nil {
		logger.Warnw("worker_billing_notify_skip_service_nil", "preorder_id", payload.PreorderID)
		return nil
	}
	if err := c.NotificationService.DispatchBillingNotification(ctx, payload.PreorderID); err != nil {
		switch {
		case errors.Is(err, service.ErrPreorderNotFound):
			logger.Debugw("worker_billing_notify_skip_not_found", "preorder_id", payload.PreorderID)
			return nil
		case errors.Is(err, service.ErrPreorderNotFrozen):
			logger.Debugw("worker_billing_notify_skip_not_frozen", "preorder_id", payload.PreorderID)
			return nil
		default:
			logger.Warnw("worker_billing_notify_failed", "preorder_id", payload.PreorderID, "error", err)
			return err
		}
	}
	return nil
}
