package queue

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/akoudje/appfbo-backend/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskPreorderBillingNotify 提交后开票通知任务
	TaskPreorderBillingNotify = constants.TaskPreorderBillingNotify
)

// PreorderBillingNotifyPayload 开票通知任务载荷
type PreorderBillingNotifyPayload struct {
	PreorderID string `json:"preorder_id"`
}

// NewPreorderBillingNotifyTask 创建开票通知任务
func NewPreorderBillingNotifyTask(payload PreorderBillingNotifyPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskPreorderBillingNotify, body), nil
}

// ParsePreorderBillingNotifyPayload 解析开票通知任务载荷
func ParsePreorderBillingNotifyPayload(task *asynq.Task) (PreorderBillingNotifyPayload, error) {
	var payload PreorderBillingNotifyPayload
	if task == nil {
		return payload, fmt.Errorf("task is nil")
	}
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return payload, err
	}
	payload.PreorderID = strings.TrimSpace(payload.PreorderID)
	if payload.PreorderID == "" {
		return payload, fmt.Errorf("preorder_id is empty")
	}
	return payload, nil
}

// BillingNotifyTaskID 同一预订单只入队一次
func BillingNotifyTaskID(preorderID string) string {
	return constants.TaskIDPrefixBillingNotify + preorderID
}
