/*
 * @Description: 按文章+访客维度缓存评论控制器
 * @Author: 安知鱼
 * @Date: 2026-02-11 16:44:20
 * @LastEditTime: 2026-03-24 19:35:12
 * @LastEditors: 安知鱼
 */
package comment

import (
	"fmt"
	"sync"
	"time"

	"github.com/anzhiyu-c/noteva-pixel-theme/internal/pkg/event"
	"github.com/anzhiyu-c/noteva-pixel-theme/pkg/bridge"
	"github.com/anzhiyu-c/noteva-pixel-theme/pkg/i18n"
)

// controllerEntry 记录控制器及其最后访问时间
type controllerEntry struct {
	ctrl         *Controller
	lastAccessed time.Time
}

// sessionEntry 记录访客身份会话及其最后访问时间
type sessionEntry struct {
	session      *Session
	lastAccessed time.Time
}

// Registry 维护 (文章, 访客) 维度的控制器实例和按访客隔离的身份会话。
// 控制器承载草稿和回复目标这类会话状态，身份会话承载访客各自的
// viewer check 结果，两者都必须按访客隔离，绝不能让访客 A 的管理员
// 身份泄漏给访客 B；长时间不活跃的条目由后台定期清理。
type Registry struct {
	mu       sync.Mutex
	entries  map[string]*controllerEntry
	sessions map[string]*sessionEntry

	provider *bridge.Provider
	bus      *event.EventBus
	tr       *i18n.Translator

	// 超过这个时长未访问的控制器与会话会被清理
	ttl time.Duration
}

// NewRegistry 创建控制器注册表并启动后台清理协程。
func NewRegistry(provider *bridge.Provider, bus *event.EventBus, tr *i18n.Translator) *Registry {
	r := &Registry{
		entries:  make(map[string]*controllerEntry),
		sessions: make(map[string]*sessionEntry),
		provider: provider,
		bus:      bus,
		tr:       tr,
		ttl:      30 * time.Minute,
	}
	go r.cleanupStaleEntries()
	return r
}

// GetOrCreate 取某篇文章、某个访客的控制器，没有则新建。
// 同一访客在不同文章下共享同一个身份会话。
func (r *Registry) GetOrCreate(articleID uint, visitorID string) *Controller {
	key := fmt.Sprintf("%d:%s", articleID, visitorID)

	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[key]
	if !ok {
		entry = &controllerEntry{
			ctrl: NewController(articleID, visitorID, r.provider, r.sessionLocked(visitorID), r.bus, r.tr),
		}
		r.entries[key] = entry
	}
	entry.lastAccessed = time.Now()
	return entry.ctrl
}

// sessionLocked 取某个访客的身份会话，调用方必须持有 r.mu。
func (r *Registry) sessionLocked(visitorID string) *Session {
	se, ok := r.sessions[visitorID]
	if !ok {
		se = &sessionEntry{session: NewSession(r.provider, visitorID)}
		r.sessions[visitorID] = se
	}
	se.lastAccessed = time.Now()
	return se.session
}

// cleanupStaleEntries 定期清理长时间未访问的控制器与身份会话
func (r *Registry) cleanupStaleEntries() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		r.mu.Lock()
		for key, entry := range r.entries {
			if time.Since(entry.lastAccessed) > r.ttl {
				delete(r.entries, key)
			}
		}
		for visitorID, se := range r.sessions {
			if time.Since(se.lastAccessed) > r.ttl {
				delete(r.sessions, visitorID)
			}
		}
		r.mu.Unlock()
	}
}
