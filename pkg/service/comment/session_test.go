package comment

import (
	"context"
	"errors"
	"testing"

	"github.com/anzhiyu-c/noteva-pixel-theme/pkg/bridge"
	"github.com/anzhiyu-c/noteva-pixel-theme/pkg/normalize"
)

func TestSession_管理员身份解析(t *testing.T) {
	fake := &fakeBridge{viewerRec: normalize.Record{"role": "admin", "nickname": "站长"}}
	provider := bridge.NewProvider()
	provider.Register(fake)

	identity := NewSession(provider, "visitor-a").ResolveIdentity(context.Background())
	if !identity.IsAuthenticated || !identity.IsAdmin {
		t.Fatalf("role=admin 应解析为管理员: %+v", identity)
	}
	if identity.DisplayName != "站长" {
		t.Fatalf("显示名应取 nickname, 得到 %q", identity.DisplayName)
	}
}

func TestSession_校验失败降级为匿名并缓存(t *testing.T) {
	fake := &fakeBridge{viewerErr: errors.New("token 失效")}
	provider := bridge.NewProvider()
	provider.Register(fake)
	s := NewSession(provider, "visitor-a")

	identity := s.ResolveIdentity(context.Background())
	if identity.IsAuthenticated || identity.IsAdmin {
		t.Fatalf("校验失败应降级为匿名: %+v", identity)
	}

	// 桥接已给出权威答案，之后切换返回值也不再重新解析
	fake.viewerErr = nil
	fake.viewerRec = normalize.Record{"role": "admin"}
	if again := s.ResolveIdentity(context.Background()); again.IsAdmin {
		t.Fatal("已缓存的身份不应被后续解析覆盖")
	}
}

func TestSession_桥接缺席的匿名降级不缓存(t *testing.T) {
	provider := bridge.NewProvider() // 尚未注册
	s := NewSession(provider, "visitor-a")

	// 缩短等待：用已取消的上下文立刻触发降级
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if identity := s.ResolveIdentity(ctx); identity.IsAuthenticated {
		t.Fatal("桥接缺席应降级为匿名")
	}

	// 桥接出现后身份可以升级
	provider.Register(&fakeBridge{viewerRec: normalize.Record{"role": "admin", "username": "boss"}})
	identity := s.ResolveIdentity(context.Background())
	if !identity.IsAdmin {
		t.Fatal("桥接出现后身份应可升级为管理员")
	}
	if identity.DisplayName != "boss" {
		t.Fatalf("显示名应回退 username, 得到 %q", identity.DisplayName)
	}
}

func TestSession_身份按访客隔离(t *testing.T) {
	// 宿主只认得 visitor-admin 的登录态，其余访客都是匿名
	fake := &fakeBridge{viewerByID: map[string]normalize.Record{
		"visitor-admin": {"role": "admin", "nickname": "站长"},
	}}
	provider := bridge.NewProvider()
	provider.Register(fake)

	admin := NewSession(provider, "visitor-admin").ResolveIdentity(context.Background())
	guest := NewSession(provider, "visitor-guest").ResolveIdentity(context.Background())

	if !admin.IsAdmin {
		t.Fatalf("visitor-admin 应解析为管理员: %+v", admin)
	}
	if guest.IsAuthenticated || guest.IsAdmin {
		t.Fatalf("visitor-guest 必须是匿名, 不能沿用别的访客的身份: %+v", guest)
	}
}
