package comment

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/anzhiyu-c/noteva-pixel-theme/internal/pkg/event"
	"github.com/anzhiyu-c/noteva-pixel-theme/pkg/bridge"
	"github.com/anzhiyu-c/noteva-pixel-theme/pkg/i18n"
	"github.com/anzhiyu-c/noteva-pixel-theme/pkg/normalize"
)

// fakeBridge 是评论子系统测试用的宿主桥接替身。
type fakeBridge struct {
	mu sync.Mutex

	viewerRec normalize.Record
	viewerErr error
	// viewerByID 非空时按访客标识区分身份，未列出的访客视为未登录
	viewerByID map[string]normalize.Record

	comments  []normalize.Record
	listErr   error
	listCalls int

	created   []bridge.CreateCommentInput
	createErr error

	toggleResult *bridge.ToggleResult
	toggleErr    error

	toasts []string
	hooks  []string
	events []string
}

func (f *fakeBridge) Viewer() bridge.ViewerAPI      { return fakeViewer{f} }
func (f *fakeBridge) Site() bridge.SiteAPI          { return nil }
func (f *fakeBridge) Articles() bridge.ArticleAPI   { return nil }
func (f *fakeBridge) Comments() bridge.CommentAPI   { return fakeComments{f} }
func (f *fakeBridge) Reactions() bridge.ReactionAPI { return fakeReactions{f} }
func (f *fakeBridge) Notify() bridge.NotifyAPI      { return fakeNotify{f} }
func (f *fakeBridge) UI() bridge.UIAPI              { return fakeUI{f} }

type fakeViewer struct{ f *fakeBridge }

func (v fakeViewer) Check(ctx context.Context, visitorID string) (normalize.Record, error) {
	v.f.mu.Lock()
	defer v.f.mu.Unlock()
	if v.f.viewerByID != nil {
		if rec, ok := v.f.viewerByID[visitorID]; ok {
			return rec, nil
		}
		return nil, errors.New("未登录")
	}
	return v.f.viewerRec, v.f.viewerErr
}

type fakeComments struct{ f *fakeBridge }

func (c fakeComments) List(ctx context.Context, articleID uint) ([]normalize.Record, error) {
	c.f.mu.Lock()
	defer c.f.mu.Unlock()
	c.f.listCalls++
	return c.f.comments, c.f.listErr
}

func (c fakeComments) Create(ctx context.Context, input bridge.CreateCommentInput) (normalize.Record, error) {
	c.f.mu.Lock()
	defer c.f.mu.Unlock()
	if c.f.createErr != nil {
		return nil, c.f.createErr
	}
	c.f.created = append(c.f.created, input)
	return normalize.Record{"id": float64(100 + len(c.f.created))}, nil
}

type fakeReactions struct{ f *fakeBridge }

func (r fakeReactions) Toggle(ctx context.Context, input bridge.ToggleInput) (*bridge.ToggleResult, error) {
	return r.f.toggleResult, r.f.toggleErr
}

func (r fakeReactions) Check(ctx context.Context, targetType string, targetID uint, visitorID string) (bool, error) {
	return false, nil
}

type fakeNotify struct{ f *fakeBridge }

func (n fakeNotify) Hook(name string, payload map[string]any) {
	n.f.mu.Lock()
	defer n.f.mu.Unlock()
	n.f.hooks = append(n.f.hooks, name)
}

func (n fakeNotify) Event(name string, payload map[string]any) {
	n.f.mu.Lock()
	defer n.f.mu.Unlock()
	n.f.events = append(n.f.events, name)
}

type fakeUI struct{ f *fakeBridge }

func (u fakeUI) Toast(message, kind string) {
	u.f.mu.Lock()
	defer u.f.mu.Unlock()
	u.f.toasts = append(u.f.toasts, kind+": "+message)
}

func (f *fakeBridge) listCallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listCalls
}

func (f *fakeBridge) createdInputs() []bridge.CreateCommentInput {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]bridge.CreateCommentInput(nil), f.created...)
}

// newTestController 组装一个就绪桥接下的控制器。
func newTestController(t *testing.T, fake *fakeBridge) *Controller {
	t.Helper()
	provider := bridge.NewProvider()
	provider.Register(fake)
	bus := event.NewEventBus()
	t.Cleanup(bus.Shutdown)
	return NewController(7, "visitor-a", provider, NewSession(provider, "visitor-a"), bus, i18n.New("zh-CN"))
}

func TestController_提交空内容被本地拦截(t *testing.T) {
	fake := &fakeBridge{viewerErr: errors.New("未登录")}
	ctrl := newTestController(t, fake)

	for _, content := range []string{"", "   ", "\n\t"} {
		err := ctrl.Submit(context.Background(), content, nil)
		if !errors.Is(err, ErrContentRequired) {
			t.Fatalf("空白内容 %q 应返回 ErrContentRequired, 得到: %v", content, err)
		}
	}
	if len(fake.createdInputs()) != 0 {
		t.Fatal("本地校验失败不应触达宿主")
	}
}

func TestController_匿名访客缺昵称被拦截(t *testing.T) {
	fake := &fakeBridge{viewerErr: errors.New("未登录")}
	ctrl := newTestController(t, fake)

	err := ctrl.Submit(context.Background(), "你好", nil)
	if !errors.Is(err, ErrNicknameRequired) {
		t.Fatalf("缺昵称应返回 ErrNicknameRequired, 得到: %v", err)
	}
	if len(fake.createdInputs()) != 0 {
		t.Fatal("本地校验失败不应触达宿主")
	}
	// 内容留在草稿里，补上昵称即可重试
	if ctrl.Draft(nil).Content != "你好" {
		t.Fatal("校验失败后草稿应保留")
	}
}

func TestController_提交成功清草稿并整体重载一次(t *testing.T) {
	fake := &fakeBridge{viewerErr: errors.New("未登录")}
	ctrl := newTestController(t, fake)

	ctrl.UpdateDraft(nil, Draft{Nickname: "鱼鱼", Email: "yu@example.com", Content: "沙发"})
	before := fake.listCallCount()

	if err := ctrl.Submit(context.Background(), "沙发", nil); err != nil {
		t.Fatalf("提交不应失败: %v", err)
	}

	created := fake.createdInputs()
	if len(created) != 1 {
		t.Fatalf("期望恰好一次创建调用, 得到 %d", len(created))
	}
	if created[0].Nickname != "鱼鱼" || created[0].ArticleID != 7 {
		t.Fatalf("创建入参错误: %+v", created[0])
	}

	// 权威刷新：整体重载恰好一次，不做本地乐观插入
	if got := fake.listCallCount() - before; got != 1 {
		t.Fatalf("提交成功应整体重载恰好一次, 实际 %d 次", got)
	}
	if !ctrl.Draft(nil).IsEmpty() {
		t.Fatal("提交成功后草稿应被清空")
	}
	if ctrl.ReplyTarget() != nil {
		t.Fatal("提交成功后回复表单应关闭")
	}
	if ctrl.SubmitState() != SubmitSucceeded {
		t.Fatalf("期望 SubmitSucceeded, 得到 %v", ctrl.SubmitState())
	}

	// 钩子与事件两路通知都要发出
	fake.mu.Lock()
	defer fake.mu.Unlock()
	if len(fake.hooks) != 1 || fake.hooks[0] != "comment_after_create" {
		t.Fatalf("应触发 comment_after_create 钩子: %v", fake.hooks)
	}
	if len(fake.events) != 1 || fake.events[0] != "comment:create" {
		t.Fatalf("应广播 comment:create 事件: %v", fake.events)
	}
}

func TestController_宿主拒绝时保留草稿并透传文案(t *testing.T) {
	fake := &fakeBridge{
		viewerErr: errors.New("未登录"),
		createErr: &bridge.RemoteError{Code: 400, Message: "内容包含敏感词"},
	}
	ctrl := newTestController(t, fake)
	ctrl.UpdateDraft(nil, Draft{Nickname: "鱼鱼", Content: "某条评论"})

	err := ctrl.Submit(context.Background(), "某条评论", nil)

	var submission *SubmissionError
	if !errors.As(err, &submission) {
		t.Fatalf("宿主拒绝应返回 SubmissionError, 得到: %v", err)
	}
	if submission.Message != "内容包含敏感词" {
		t.Fatalf("应透传宿主的错误文案, 得到 %q", submission.Message)
	}
	if ctrl.SubmitState() != SubmitFailed {
		t.Fatalf("期望 SubmitFailed, 得到 %v", ctrl.SubmitState())
	}
	if ctrl.LastError() != "内容包含敏感词" {
		t.Fatalf("LastError 应为宿主文案, 得到 %q", ctrl.LastError())
	}
	// 失败不清草稿，访客修改后可直接重试
	if ctrl.Draft(nil).Content != "某条评论" {
		t.Fatal("提交失败后草稿应保留")
	}
}

func TestController_管理员提交不带昵称邮箱(t *testing.T) {
	fake := &fakeBridge{viewerRec: normalize.Record{"role": "admin", "nickname": "站长"}}
	ctrl := newTestController(t, fake)

	if err := ctrl.Submit(context.Background(), "欢迎光临", nil); err != nil {
		t.Fatalf("管理员无需昵称即可提交: %v", err)
	}

	created := fake.createdInputs()
	if len(created) != 1 {
		t.Fatalf("期望一次创建调用, 得到 %d", len(created))
	}
	if created[0].Nickname != "" || created[0].Email != "" {
		t.Fatalf("管理员提交不应携带昵称/邮箱: %+v", created[0])
	}
}

func TestController_桥接未就绪时提交空转保留草稿(t *testing.T) {
	provider := bridge.NewProvider() // 从不注册
	bus := event.NewEventBus()
	t.Cleanup(bus.Shutdown)
	ctrl := NewController(7, "visitor-a", provider, NewSession(provider, "visitor-a"), bus, i18n.New("zh-CN"))

	ctrl.UpdateDraft(nil, Draft{Nickname: "鱼鱼", Content: "等会儿再发"})
	err := ctrl.Submit(context.Background(), "等会儿再发", nil)

	if !errors.Is(err, bridge.ErrNotReady) {
		t.Fatalf("桥接缺席应返回 ErrNotReady, 得到: %v", err)
	}
	if ctrl.Draft(nil).Content != "等会儿再发" {
		t.Fatal("桥接缺席时草稿应原样保留")
	}
}

func TestController_加载失败保留上次结果(t *testing.T) {
	fake := &fakeBridge{
		viewerErr: errors.New("未登录"),
		comments: []normalize.Record{
			{"id": float64(1), "content": "第一条"},
		},
	}
	ctrl := newTestController(t, fake)

	ctrl.Load(context.Background())
	if len(ctrl.Comments()) != 1 {
		t.Fatalf("首次加载应得到 1 条评论, 得到 %d", len(ctrl.Comments()))
	}

	// 宿主开始报错，再次加载应保留上次的结果
	fake.mu.Lock()
	fake.listErr = errors.New("宿主超时")
	fake.mu.Unlock()

	ctrl.Load(context.Background())
	if len(ctrl.Comments()) != 1 {
		t.Fatal("加载失败应保留上次结果而不是清空")
	}
	if ctrl.LoadState() != LoadLoaded {
		t.Fatalf("失败后也应离开 Loading 状态, 得到 %v", ctrl.LoadState())
	}
}

func TestController_点赞成功后整体重载(t *testing.T) {
	fake := &fakeBridge{
		viewerErr:    errors.New("未登录"),
		toggleResult: &bridge.ToggleResult{Liked: true, LikeCount: 4},
	}
	ctrl := newTestController(t, fake)
	before := fake.listCallCount()

	if err := ctrl.ToggleLike(context.Background(), 42); err != nil {
		t.Fatalf("点赞不应失败: %v", err)
	}
	if got := fake.listCallCount() - before; got != 1 {
		t.Fatalf("点赞成功应整体重载恰好一次, 实际 %d 次", got)
	}
}

func TestController_点赞失败不改动状态(t *testing.T) {
	fake := &fakeBridge{
		viewerErr: errors.New("未登录"),
		toggleErr: errors.New("宿主不可用"),
	}
	ctrl := newTestController(t, fake)
	before := fake.listCallCount()

	if err := ctrl.ToggleLike(context.Background(), 42); err == nil {
		t.Fatal("宿主报错时点赞应返回错误")
	}
	if got := fake.listCallCount() - before; got != 0 {
		t.Fatal("点赞失败不应触发重载")
	}
}

func TestController_回复目标同时至多一个(t *testing.T) {
	fake := &fakeBridge{viewerErr: errors.New("未登录")}
	ctrl := newTestController(t, fake)

	id1, id2 := uint(10), uint(20)

	ctrl.SetReplyTarget(&id1)
	if got := ctrl.ReplyTarget(); got == nil || *got != id1 {
		t.Fatal("设置回复目标失败")
	}

	// 选中新目标隐式关闭旧的
	ctrl.SetReplyTarget(&id2)
	if got := ctrl.ReplyTarget(); got == nil || *got != id2 {
		t.Fatal("切换回复目标应关闭旧目标")
	}

	// 再点当前目标等价于关闭
	ctrl.SetReplyTarget(&id2)
	if ctrl.ReplyTarget() != nil {
		t.Fatal("重复选中当前目标应关闭回复表单")
	}
}

func TestController_各回复目标草稿互相独立(t *testing.T) {
	fake := &fakeBridge{viewerErr: errors.New("未登录")}
	ctrl := newTestController(t, fake)

	id1, id2 := uint(10), uint(20)
	ctrl.UpdateDraft(nil, Draft{Content: "顶级草稿"})
	ctrl.UpdateDraft(&id1, Draft{Content: "回复10"})
	ctrl.UpdateDraft(&id2, Draft{Content: "回复20"})

	if ctrl.Draft(nil).Content != "顶级草稿" {
		t.Fatal("顶级草稿被覆盖")
	}
	if ctrl.Draft(&id1).Content != "回复10" || ctrl.Draft(&id2).Content != "回复20" {
		t.Fatal("各回复目标的草稿应互相独立")
	}
}
