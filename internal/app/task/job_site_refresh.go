/*
 * @Description: 定时刷新站点信息缓存的任务
 * @Author: 安知鱼
 * @Date: 2026-02-16 10:45:09
 * @LastEditTime: 2026-03-25 19:14:38
 * @LastEditors: 安知鱼
 */
package task

import (
	"context"
	"time"

	"github.com/anzhiyu-c/noteva-pixel-theme/pkg/service/site"
)

// SiteRefreshJob 周期性地把站点信息与导航从宿主同步进缓存，
// 让页面侧的站点信息最多落后一个刷新周期。
type SiteRefreshJob struct {
	siteSvc *site.Service
}

func NewSiteRefreshJob(siteSvc *site.Service) *SiteRefreshJob {
	return &SiteRefreshJob{siteSvc: siteSvc}
}

// Name 返回任务名，日志装饰器用。
func (j *SiteRefreshJob) Name() string {
	return "SiteRefreshJob"
}

// Run 执行一次刷新。
func (j *SiteRefreshJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	j.siteSvc.Refresh(ctx)
}
