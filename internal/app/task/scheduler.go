/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2026-02-16 10:22:31
 * @LastEditTime: 2026-03-25 19:11:02
 * @LastEditors: 安知鱼
 */
package task

import (
	"log/slog"
	"os"

	"github.com/robfig/cron/v3"

	"github.com/anzhiyu-c/noteva-pixel-theme/pkg/service/site"
)

// Scheduler 封装了 cron 实例和其依赖。
// 它是整个定时任务模块的核心协调者，负责任务的注册、启动和停止。
type Scheduler struct {
	cron   *cron.Cron
	logger *slog.Logger

	siteSvc *site.Service
}

// NewScheduler 是 Scheduler 的构造函数。
func NewScheduler(siteSvc *site.Service) *Scheduler {
	slogHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	logger := slog.New(slogHandler).With("system", "cron")

	c := cron.New(
		cron.WithSeconds(),
		cron.WithChain(
			NewPanicRecoveryWrapper(logger),
			NewLoggingWrapper(logger),
			cron.DelayIfStillRunning(cron.DefaultLogger),
		),
	)

	return &Scheduler{
		cron:    c,
		logger:  logger,
		siteSvc: siteSvc,
	}
}

// RegisterJobs 在调度器中注册所有定义好的定时任务。
func (s *Scheduler) RegisterJobs() {
	s.logger.Info("Registering all periodic jobs...")

	// 站点信息与导航每 5 分钟从宿主刷新一次，拉取失败保留旧缓存
	refreshJob := NewSiteRefreshJob(s.siteSvc)
	if _, err := s.cron.AddJob("0 */5 * * * *", refreshJob); err != nil {
		s.logger.Error("Failed to add 'SiteRefreshJob'", slog.Any("error", err))
		os.Exit(1)
	}
	s.logger.Info("-> Successfully registered 'SiteRefreshJob'", "schedule", "every 5 minutes")

	s.logger.Info("All periodic jobs registered.")
}

// Start 启动 cron 调度器。
func (s *Scheduler) Start() {
	s.logger.Info("Cron scheduler started.")
	s.cron.Start()
}

// Stop 优雅地停止 cron 调度器。
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping cron scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Cron scheduler gracefully stopped.")
}
