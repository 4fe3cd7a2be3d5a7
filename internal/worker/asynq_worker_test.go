package worker

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/akoudje/appfbo-backend/internal/config"
	"github.com/akoudje/appfbo-backend/internal/constants"
	"github.com/akoudje/appfbo-backend/internal/models"
	"github.com/akoudje/appfbo-backend/internal/provider"
	"github.com/akoudje/appfbo-backend/internal/queue"
	"github.com/akoudje/appfbo-backend/internal/repository"
	"github.com/akoudje/appfbo-backend/internal/service"

	"github.com/glebarez/sqlite"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newWorkerConsumer(t *testing.T) (*Consumer, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:worker_%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	preorderRepo := repository.NewPreorderRepository(db)
	return NewConsumer(&provider.Container{
		PreorderRepo:        preorderRepo,
		NotificationService: service.NewNotificationService(preorderRepo, config.NotificationConfig{}, []string{"+2250506025071"}),
	}), db
}

func billingTask(t *testing.T, preorderID string) *asynq.Task {
	t.Helper()
	task, err := queue.NewPreorderBillingNotifyTask(queue.PreorderBillingNotifyPayload{PreorderID: preorderID})
	require.NoError(t, err)
	return task
}

func TestHandlePreorderBillingNotifySkipsUnknownAndDraft(t *testing.T) {
	consumer, db := newWorkerConsumer(t)

	assert.NoError(t, consumer.handlePreorderBillingNotify(context.Background(), billingTask(t, "missing")))
	assert.NoError(t, consumer.handlePreorderBillingNotify(context.Background(), asynq.NewTask(queue.TaskPreorderBillingNotify, []byte("{"))))

	draft := &models.Preorder{
		ID:           "01JDRAFT0000000000000000AA",
		FboID:        "fbo-1",
		FboNumber:    "225-1",
		FboFullName:  "Awa Kone",
		FboGrade:     "G1",
		PointOfSale:  "Cocody",
		PaymentMode:  "ESPECES",
		DeliveryMode: constants.DeliveryModePickup,
		Status:       constants.PreorderStatusDraft,
	}
	require.NoError(t, db.Create(draft).Error)
	assert.NoError(t, consumer.handlePreorderBillingNotify(context.Background(), billingTask(t, draft.ID)))
}

func TestHandlePreorderBillingNotifySubmitted(t *testing.T) {
	consumer, db := newWorkerConsumer(t)
	submittedAt := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	preorder := &models.Preorder{
		ID:              "01JSUBMIT000000000000000AA",
		FboID:           "fbo-2",
		FboNumber:       "225-2",
		FboFullName:     "Awa Kone",
		FboGrade:        "G1",
		PointOfSale:     "Cocody",
		PaymentMode:     "ESPECES",
		DeliveryMode:    constants.DeliveryModePickup,
		Status:          constants.PreorderStatusSubmitted,
		Total:           12000,
		WhatsappMessage: "Bonjour",
		SubmittedAt:     &submittedAt,
	}
	require.NoError(t, db.Create(preorder).Error)
	assert.NoError(t, consumer.handlePreorderBillingNotify(context.Background(), billingTask(t, preorder.ID)))
}

type stubExpirer struct {
	calls int
	count int64
	err   error
}

func (s *stubExpirer) ExpireStaleDrafts(context.Context) (int64, error) {
	s.calls++
	return s.count, s.err
}

func TestDraftSweeper(t *testing.T) {
	_, err := NewDraftSweeper("not a spec", &stubExpirer{})
	assert.Error(t, err)
	_, err = NewDraftSweeper("", nil)
	assert.Error(t, err)

	expirer := &stubExpirer{count: 2}
	sweeper, err := NewDraftSweeper("", expirer)
	require.NoError(t, err)
	assert.Equal(t, defaultDraftSweepSpec, sweeper.spec)
	assert.Equal(t, constants.WorkerDraftSweepServiceName, sweeper.Name())

	sweeper.RunOnce(context.Background())
	expirer.err = errors.New("db down")
	sweeper.RunOnce(context.Background())
	assert.Equal(t, 2, expirer.calls)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- sweeper.Start(ctx) }()
	cancel()
	require.NoError(t, <-done)
	require.NoError(t, sweeper.Stop(context.Background()))
}

func TestNewServiceRequiresEnabledQueue(t *testing.T) {
	_, err := NewService(&config.QueueConfig{Enabled: false}, &Consumer{})
	assert.Error(t, err)
	_, err = NewService(nil, &Consumer{})
	assert.Error(t, err)
}
