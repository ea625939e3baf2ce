package app

import (
	"errors"
	"fmt"

	"github.com/blogicum/internal/config"
	"github.com/blogicum/internal/logger"
	"github.com/blogicum/internal/provider"
	"github.com/blogicum/internal/router"
	"github.com/blogicum/internal/worker"
)

// BuildRunner 按启动模式组装 HTTP 与 Worker 服务
func BuildRunner(cfg *config.Config, mode string) (*Runner, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if !validMode(mode) {
		return nil, fmt.Errorf("unknown mode: %s", mode)
	}

	container := provider.NewContainer(cfg)
	return buildServices(cfg, container, mode)
}

func buildServices(cfg *config.Config, container *provider.Container, mode string) (*Runner, error) {
	var services []Service

	if mode == ModeAll || mode == ModeAPI {
		engine := router.SetupRouter(cfg, container)
		services = append(services, NewHTTPService(listenAddr(cfg), engine))
	}

	if mode == ModeAll || mode == ModeWorker {
		switch {
		case cfg.Queue.Enabled:
			workerService, err := worker.NewService(&cfg.Queue, worker.NewConsumer(container))
			if err != nil {
				return nil, err
			}
			services = append(services, workerService)
		case mode == ModeWorker:
			return nil, errors.New("worker mode requires queue.enabled")
		default:
			// 队列关闭时评论通知直接跳过，无需 worker
			logger.Warnw("app_worker_skipped", "reason", "queue_disabled")
		}
	}

	if len(services) == 0 {
		return nil, errors.New("no services initialized (check mode and config)")
	}
	return NewRunner(services...), nil
}

func listenAddr(cfg *config.Config) string {
	return cfg.Server.Host + ":" + cfg.Server.Port
}

// Run 应用启动入口
func Run(opts Options) error {
	opts = normalizeOptions(opts)
	if opts.Config == nil {
		return errors.New("config is nil")
	}

	runner, err := BuildRunner(opts.Config, opts.Mode)
	if err != nil {
		return err
	}

	opts.Logger.Infow("app_start", "addr", listenAddr(opts.Config), "mode", opts.Mode)
	return RunWithOptions(runner, opts)
}
