/*
 * @Description: 站点信息与导航服务：缓存、降级与定时刷新
 * @Author: 安知鱼
 * @Date: 2026-02-12 11:30:44
 * @LastEditTime: 2026-03-24 20:40:51
 * @LastEditors: 安知鱼
 */
package site

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/anzhiyu-c/noteva-pixel-theme/internal/pkg/event"
	"github.com/anzhiyu-c/noteva-pixel-theme/pkg/bridge"
	"github.com/anzhiyu-c/noteva-pixel-theme/pkg/constant"
	"github.com/anzhiyu-c/noteva-pixel-theme/pkg/domain/model"
	"github.com/anzhiyu-c/noteva-pixel-theme/pkg/i18n"
	"github.com/anzhiyu-c/noteva-pixel-theme/pkg/normalize"
	"github.com/anzhiyu-c/noteva-pixel-theme/pkg/service/utility"
)

const (
	infoCacheKey = "theme:site:info"
	navCacheKey  = "theme:site:nav"

	// 站点信息变化很少，缓存周期放宽，定时任务会主动刷新
	siteCacheTTL = 10 * time.Minute
)

// Service 提供站点信息、导航菜单与自定义页面。
// 站点信息缺失不能让页面空白：桥接不可用时返回只含默认站点名的
// 降级对象，导航退回内置菜单。
type Service struct {
	provider *bridge.Provider
	cache    utility.CacheService
	bus      *event.EventBus
	tr       *i18n.Translator
}

func NewService(provider *bridge.Provider, cache utility.CacheService, bus *event.EventBus, tr *i18n.Translator) *Service {
	s := &Service{provider: provider, cache: cache, bus: bus, tr: tr}

	// 握手成功即刻预热一次缓存，不用等第一个定时刷新周期
	bus.Subscribe(event.BridgeReady, func(payload interface{}) {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		s.Refresh(ctx)
	})
	return s
}

// Info 返回站点信息，优先级：缓存 > 宿主 > 降级默认值。
func (s *Service) Info(ctx context.Context) *model.SiteInfo {
	if raw, err := s.cache.Get(ctx, infoCacheKey); err == nil && raw != "" {
		var info model.SiteInfo
		if err := json.Unmarshal([]byte(raw), &info); err == nil {
			return &info
		}
	}

	info, err := s.fetchInfo(ctx)
	if err != nil {
		log.Printf("[SiteService] 警告: 获取站点信息失败，使用降级默认值: %v", err)
		return &model.SiteInfo{Name: constant.DefaultSiteName}
	}

	s.put(ctx, infoCacheKey, info)
	return info
}

// Nav 返回导航菜单：内置菜单（首页/归档/分类/标签）在前，宿主配置的
// 自定义菜单项追加在后。宿主不可用时只有内置菜单。
func (s *Service) Nav(ctx context.Context) []model.NavItem {
	builtin := s.builtinNav()

	if raw, err := s.cache.Get(ctx, navCacheKey); err == nil && raw != "" {
		var custom []model.NavItem
		if err := json.Unmarshal([]byte(raw), &custom); err == nil {
			return append(builtin, custom...)
		}
	}

	custom, err := s.fetchNav(ctx)
	if err != nil {
		log.Printf("[SiteService] 警告: 获取自定义导航失败，仅展示内置菜单: %v", err)
		return builtin
	}

	s.put(ctx, navCacheKey, custom)
	return append(builtin, custom...)
}

// GetPage 按 slug 获取自定义页面，失败折叠为 ErrNotFound。
func (s *Service) GetPage(ctx context.Context, slug string) (*model.Page, error) {
	ref, err := s.provider.WaitUntilReady(ctx, bridge.DefaultReadyCeiling)
	if err != nil {
		return nil, constant.ErrNotFound
	}
	rec, err := ref.Site().GetPage(ctx, slug)
	if err != nil || len(rec) == 0 {
		return nil, constant.ErrNotFound
	}
	p := normalize.PageFromRecord(rec)
	if p == nil || p.Slug == "" {
		return nil, constant.ErrNotFound
	}
	return p, nil
}

// Refresh 主动从宿主拉取站点信息与导航并覆盖缓存，定时任务调用。
// 拉取失败时保留旧缓存不动。
func (s *Service) Refresh(ctx context.Context) {
	info, err := s.fetchInfo(ctx)
	if err != nil {
		log.Printf("[SiteService] 警告: 刷新站点信息失败，保留旧缓存: %v", err)
		return
	}
	s.put(ctx, infoCacheKey, info)

	if nav, err := s.fetchNav(ctx); err == nil {
		s.put(ctx, navCacheKey, nav)
	}

	s.bus.Publish(event.SiteInfoRefreshed, map[string]any{"name": info.Name})
	log.Printf("✅ [SiteService] 站点信息刷新完成: %s", info.Name)
}

func (s *Service) fetchInfo(ctx context.Context) (*model.SiteInfo, error) {
	ref, err := s.provider.WaitUntilReady(ctx, bridge.DefaultReadyCeiling)
	if err != nil {
		return nil, err
	}
	rec, err := ref.Site().GetInfo(ctx)
	if err != nil {
		return nil, err
	}
	info := normalize.SiteInfoFromRecord(rec)
	if info.Name == "" {
		info.Name = constant.DefaultSiteName
	}
	return &info, nil
}

func (s *Service) fetchNav(ctx context.Context) ([]model.NavItem, error) {
	ref, err := s.provider.WaitUntilReady(ctx, bridge.DefaultReadyCeiling)
	if err != nil {
		return nil, err
	}
	records, err := ref.Site().GetNav(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]model.NavItem, 0, len(records))
	for _, rec := range records {
		if item := normalize.NavItemFromRecord(rec); item != nil {
			items = append(items, *item)
		}
	}
	return items, nil
}

func (s *Service) builtinNav() []model.NavItem {
	return []model.NavItem{
		{Title: s.tr.T("nav.home"), URL: "/"},
		{Title: s.tr.T("nav.archive"), URL: "/archives"},
		{Title: s.tr.T("nav.categories"), URL: "/categories"},
		{Title: s.tr.T("nav.tags"), URL: "/tags"},
	}
}

func (s *Service) put(ctx context.Context, key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, string(raw), siteCacheTTL); err != nil {
		log.Printf("[SiteService] 警告: 写入站点缓存失败: %v", err)
	}
}
