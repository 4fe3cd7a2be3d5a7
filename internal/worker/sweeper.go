package worker

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/akoudje/appfbo-backend/internal/constants"
	"github.com/akoudje/appfbo-backend/internal/logger"

	"github.com/robfig/cron/v3"
)

const defaultDraftSweepSpec = "@every 1h"

// DraftExpirer 过期草稿清理
type DraftExpirer interface {
	ExpireStaleDrafts(ctx context.Context) (int64, error)
}

// DraftSweeper 定时取消过期草稿
type DraftSweeper struct {
	spec    string
	expirer DraftExpirer
	cron    *cron.Cron

	mu      sync.Mutex
	running bool
}

// NewDraftSweeper 创建草稿清理服务，spec 为空时每小时执行
func NewDraftSweeper(spec string, expirer DraftExpirer) (*DraftSweeper, error) {
	if expirer == nil {
		return nil, errors.New("draft expirer is nil")
	}
	spec = strings.TrimSpace(spec)
	if spec == "" {
		spec = defaultDraftSweepSpec
	}
	if _, err := cron.ParseStandard(spec); err != nil {
		return nil, err
	}
	return &DraftSweeper{
		spec:    spec,
		expirer: expirer,
		cron:    cron.New(),
	}, nil
}

// Name 服务名称
func (s *DraftSweeper) Name() string {
	return constants.WorkerDraftSweepServiceName
}

// Start 注册定时任务并阻塞到 ctx 结束
func (s *DraftSweeper) Start(ctx context.Context) error {
	if s == nil || s.cron == nil {
		return errors.New("draft sweeper not initialized")
	}
	if _, err := s.cron.AddFunc(s.spec, func() { s.RunOnce(ctx) }); err != nil {
		return err
	}
	s.cron.Start()
	logger.Infow("draft_sweeper_started", "spec", s.spec)
	<-ctx.Done()
	return nil
}

// Stop 停止调度并等待进行中的任务
func (s *DraftSweeper) Stop(ctx context.Context) error {
	if s == nil || s.cron == nil {
		return nil
	}
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		return ctx.Err()
	}
	return nil
}

// RunOnce 执行一次清理，上一轮未结束时跳过
func (s *DraftSweeper) RunOnce(ctx context.Context) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		logger.Debugw("draft_sweeper_skip_running")
		return
	}
	s.running = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	if ctx == nil {
		ctx = context.Background()
	}
	count, err := s.expirer.ExpireStaleDrafts(ctx)
	if err != nil {
		logger.Warnw("draft_sweeper_failed", "error", err)
		return
	}
	if count > 0 {
		logger.Infow("draft_sweeper_expired", "count", count)
	}
}
