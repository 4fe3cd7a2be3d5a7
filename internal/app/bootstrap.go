package app

import (
	"errors"

	"github.com/akoudje/appfbo-backend/internal/config"
	"github.com/akoudje/appfbo-backend/internal/logger"
	"github.com/akoudje/appfbo-backend/internal/provider"
	"github.com/akoudje/appfbo-backend/internal/router"
	"github.com/akoudje/appfbo-backend/internal/worker"
)

// BuildRunner 按启动模式装配服务
func BuildRunner(opts Options) (*Runner, error) {
	cfg := opts.Config
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	container := provider.NewContainer(cfg)

	var services []Service

	if opts.runsAPI() {
		engine := router.SetupRouter(cfg, container)
		services = append(services, NewHTTPService(cfg.Server, engine))
	}

	if opts.runsWorker() {
		services = append(services, workerServices(cfg, container, opts.Mode)...)
	}

	if len(services) == 0 {
		return nil, errors.New("no services initialized (check mode and config)")
	}
	return NewRunner(services...), nil
}

// workerServices 队列消费者与草稿清理任务；队列未启用时只跑清理
func workerServices(cfg *config.Config, container *provider.Container, mode string) []Service {
	var services []Service
	if cfg.Queue.Enabled {
		consumer := worker.NewConsumer(container)
		queueService, err := worker.NewService(&cfg.Queue, consumer)
		if err != nil {
			logger.Errorw("app_worker_queue_init_failed", "mode", mode, "error", err)
		} else {
			services = append(services, queueService)
		}
	} else {
		logger.Warnw("app_worker_queue_disabled", "mode", mode)
	}

	sweeper, err := worker.NewDraftSweeper(cfg.Preorder.SweepSpec, container.PreorderService)
	if err != nil {
		logger.Errorw("app_draft_sweeper_init_failed", "spec", cfg.Preorder.SweepSpec, "error", err)
		return services
	}
	return append(services, sweeper)
}

// Run 应用启动入口
func Run(opts Options) error {
	opts = normalizeOptions(opts)
	if opts.Config == nil {
		return errors.New("config is nil")
	}
	mode, err := ParseMode(opts.Mode)
	if err != nil {
		return err
	}
	opts.Mode = mode

	runner, err := BuildRunner(opts)
	if err != nil {
		return err
	}

	opts.Logger.Infow("app_start",
		"addr", opts.Config.Server.Addr(),
		"mode", opts.Mode,
		"services", runner.Names(),
	)
	return RunWithOptions(runner, opts)
}
