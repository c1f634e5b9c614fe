package site

import (
	"context"
	"testing"
	"time"

	"github.com/anzhiyu-c/noteva-pixel-theme/internal/pkg/event"
	"github.com/anzhiyu-c/noteva-pixel-theme/pkg/bridge"
	"github.com/anzhiyu-c/noteva-pixel-theme/pkg/constant"
	"github.com/anzhiyu-c/noteva-pixel-theme/pkg/i18n"
	"github.com/anzhiyu-c/noteva-pixel-theme/pkg/normalize"
	"github.com/anzhiyu-c/noteva-pixel-theme/pkg/service/utility"
)

// fakeRef 是站点服务测试用的宿主桥接替身，只实现站点接口。
type fakeRef struct {
	info normalize.Record
	nav  []normalize.Record
}

func (f *fakeRef) Viewer() bridge.ViewerAPI      { return nil }
func (f *fakeRef) Site() bridge.SiteAPI          { return fakeSiteAPI{f} }
func (f *fakeRef) Articles() bridge.ArticleAPI   { return nil }
func (f *fakeRef) Comments() bridge.CommentAPI   { return nil }
func (f *fakeRef) Reactions() bridge.ReactionAPI { return nil }
func (f *fakeRef) Notify() bridge.NotifyAPI      { return nil }
func (f *fakeRef) UI() bridge.UIAPI              { return nil }

type fakeSiteAPI struct{ f *fakeRef }

func (a fakeSiteAPI) GetInfo(ctx context.Context) (normalize.Record, error) {
	return a.f.info, nil
}

func (a fakeSiteAPI) GetNav(ctx context.Context) ([]normalize.Record, error) {
	return a.f.nav, nil
}

func (a fakeSiteAPI) GetPage(ctx context.Context, slug string) (normalize.Record, error) {
	return nil, constant.ErrNotFound
}

func TestService_桥接就绪事件触发立即刷新(t *testing.T) {
	provider := bridge.NewProvider()
	provider.Register(&fakeRef{info: normalize.Record{"name": "像素博客"}})
	bus := event.NewEventBus()
	t.Cleanup(bus.Shutdown)
	cache := utility.NewMemoryCacheService()

	NewService(provider, cache, bus, i18n.New("zh-CN"))

	// 握手成功后连接器会广播 bridge:ready，站点缓存应随之预热，
	// 而不是等第一个定时刷新周期
	bus.Publish(event.BridgeReady, map[string]any{"attempts": 1})

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if raw, err := cache.Get(context.Background(), infoCacheKey); err == nil && raw != "" {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("bridge:ready 事件后站点信息缓存应被预热")
}

func TestService_桥接缺席时信息降级为默认站点名(t *testing.T) {
	provider := bridge.NewProvider() // 从不注册
	bus := event.NewEventBus()
	t.Cleanup(bus.Shutdown)
	s := NewService(provider, utility.NewMemoryCacheService(), bus, i18n.New("zh-CN"))

	// 缩短等待：用已取消的上下文立刻触发降级
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	info := s.Info(ctx)
	if info == nil || info.Name != constant.DefaultSiteName {
		t.Fatalf("桥接缺席应降级为默认站点名, 得到 %+v", info)
	}
}

func TestService_桥接缺席时导航退回内置菜单(t *testing.T) {
	provider := bridge.NewProvider()
	bus := event.NewEventBus()
	t.Cleanup(bus.Shutdown)
	s := NewService(provider, utility.NewMemoryCacheService(), bus, i18n.New("zh-CN"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	nav := s.Nav(ctx)
	if len(nav) != 4 {
		t.Fatalf("内置菜单应有 4 项, 得到 %d", len(nav))
	}
	if nav[0].URL != "/" || nav[1].URL != "/archives" {
		t.Fatalf("内置菜单顺序错误: %+v", nav)
	}
}
