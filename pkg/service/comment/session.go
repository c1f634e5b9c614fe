/*
 * @Description: 访客身份解析
 * @Author: 安知鱼
 * @Date: 2026-02-11 11:03:52
 * @LastEditTime: 2026-03-23 14:42:31
 * @LastEditors: 安知鱼
 */
package comment

import (
	"context"
	"sync"

	"github.com/anzhiyu-c/noteva-pixel-theme/pkg/bridge"
	"github.com/anzhiyu-c/noteva-pixel-theme/pkg/constant"
	"github.com/anzhiyu-c/noteva-pixel-theme/pkg/domain/model"
)

// Session 负责一个访客的身份解析，严格按访客隔离：一个 Session 只
// 绑定一个 visitorID，绝不在访客之间共享解析结果。
// 身份决定评论表单需要哪些字段：管理员不填昵称/邮箱（使用注册显示名），
// 并解锁作者徽标展示。
type Session struct {
	provider  *bridge.Provider
	visitorID string

	mu       sync.Mutex
	resolved bool
	identity model.ViewerIdentity
}

// NewSession 创建指定访客的身份解析器。
func NewSession(provider *bridge.Provider, visitorID string) *Session {
	return &Session{provider: provider, visitorID: visitorID}
}

// ResolveIdentity 解析当前访客身份。
// 任何失败（包括桥接未就绪）都降级为匿名身份而不是抛错：匿名访客的
// 浏览和评论必须可用。桥接给出过权威答案后结果缓存在会话内；桥接
// 未就绪导致的匿名降级不缓存，等桥接出现后可以升级。
func (s *Session) ResolveIdentity(ctx context.Context) model.ViewerIdentity {
	s.mu.Lock()
	if s.resolved {
		identity := s.identity
		s.mu.Unlock()
		return identity
	}
	s.mu.Unlock()

	ref, err := s.provider.WaitUntilReady(ctx, bridge.DefaultReadyCeiling)
	if err != nil {
		return model.AnonymousViewer()
	}

	rec, err := ref.Viewer().Check(ctx, s.visitorID)
	identity := model.AnonymousViewer()
	if err == nil && len(rec) > 0 {
		identity = model.ViewerIdentity{
			IsAuthenticated: true,
			IsAdmin:         rec.Str("role") == constant.RoleAdmin,
			DisplayName:     rec.Str("display_name", "nickname", "username"),
		}
	}

	s.mu.Lock()
	s.resolved = true
	s.identity = identity
	s.mu.Unlock()
	return identity
}
