package comment

import (
	"context"
	"errors"
	"testing"

	"github.com/anzhiyu-c/noteva-pixel-theme/internal/pkg/event"
	"github.com/anzhiyu-c/noteva-pixel-theme/pkg/bridge"
	"github.com/anzhiyu-c/noteva-pixel-theme/pkg/i18n"
	"github.com/anzhiyu-c/noteva-pixel-theme/pkg/normalize"
)

func newTestRegistry(t *testing.T, fake *fakeBridge) *Registry {
	t.Helper()
	provider := bridge.NewProvider()
	provider.Register(fake)
	bus := event.NewEventBus()
	t.Cleanup(bus.Shutdown)
	return NewRegistry(provider, bus, i18n.New("zh-CN"))
}

func TestRegistry_同文章同访客复用控制器(t *testing.T) {
	r := newTestRegistry(t, &fakeBridge{viewerErr: errors.New("未登录")})

	a := r.GetOrCreate(7, "visitor-a")
	b := r.GetOrCreate(7, "visitor-a")
	if a != b {
		t.Fatal("同文章同访客应复用同一个控制器")
	}
	if c := r.GetOrCreate(7, "visitor-b"); c == a {
		t.Fatal("不同访客不应共享控制器")
	}
}

func TestRegistry_不同访客身份互相隔离(t *testing.T) {
	// 宿主只认得管理员访客的登录态
	fake := &fakeBridge{viewerByID: map[string]normalize.Record{
		"visitor-admin": {"role": "admin", "nickname": "站长"},
	}}
	r := newTestRegistry(t, fake)

	adminCtrl := r.GetOrCreate(7, "visitor-admin")
	guestCtrl := r.GetOrCreate(7, "visitor-guest")

	if !adminCtrl.Identity(context.Background()).IsAdmin {
		t.Fatal("管理员访客应解析为管理员")
	}
	guest := guestCtrl.Identity(context.Background())
	if guest.IsAdmin || guest.IsAuthenticated {
		t.Fatalf("匿名访客不能沿用管理员身份: %+v", guest)
	}

	// 身份隔离必须落到提交路径上：匿名访客缺昵称仍然要被拦截
	if err := guestCtrl.Submit(context.Background(), "蹭个管理员通道", nil); !errors.Is(err, ErrNicknameRequired) {
		t.Fatalf("匿名访客不填昵称应被拦截, 得到: %v", err)
	}
	if len(fake.createdInputs()) != 0 {
		t.Fatal("被拦截的提交不应触达宿主")
	}

	// 管理员自己的提交不受影响
	if err := adminCtrl.Submit(context.Background(), "欢迎光临", nil); err != nil {
		t.Fatalf("管理员提交不应失败: %v", err)
	}
}

func TestRegistry_同访客跨文章共享身份会话(t *testing.T) {
	fake := &fakeBridge{viewerByID: map[string]normalize.Record{
		"visitor-admin": {"role": "admin"},
	}}
	r := newTestRegistry(t, fake)

	a := r.GetOrCreate(1, "visitor-admin")
	b := r.GetOrCreate(2, "visitor-admin")
	if a.session != b.session {
		t.Fatal("同一访客在不同文章下应共享身份会话")
	}
}
