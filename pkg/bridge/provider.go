/*
 * @Description: 桥接就绪协议：等待宿主在不可预知的时刻注入客户端
 * @Author: 安知鱼
 * @Date: 2026-02-09 14:31:40
 * @LastEditTime: 2026-03-23 11:41:52
 * @LastEditors: 安知鱼
 */
package bridge

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"
)

// DefaultReadyCeiling 是页面就绪门的硬上限。
// 超过这个时间即使宿主还没注入桥接，页面也照常降级渲染，绝不无限阻塞。
const DefaultReadyCeiling = 3000 * time.Millisecond

// ErrNotReady 表示在等待预算内宿主仍未注入桥接客户端。
// 这不是致命错误：调用方进入降级模式，依赖桥接的操作空转直到它出现。
var ErrNotReady = errors.New("桥接客户端尚未就绪")

// Provider 持有进程级的桥接引用。
// 生命周期：进程启动时不存在，宿主在某个不可预知的时刻 Register 一次，
// 之后永不移除、永不重建。所有等待方共享同一个广播通道，注册发生时
// 一次性全部唤醒，而不是各自起定时器轮询。
type Provider struct {
	mu    sync.RWMutex
	ref   Ref
	ready chan struct{}
}

// NewProvider 创建一个尚未就绪的 Provider。
func NewProvider() *Provider {
	return &Provider{
		ready: make(chan struct{}),
	}
}

// Register 注入桥接客户端，只有第一次调用生效。
// 关闭 ready 通道即广播：所有挂起的 WaitUntilReady 在同一点全部返回。
func (p *Provider) Register(ref Ref) bool {
	if ref == nil {
		return false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ref != nil {
		log.Println("[Bridge] WARN: 桥接客户端已注册过，忽略重复注册")
		return false
	}
	p.ref = ref
	close(p.ready)
	return true
}

// Get 非阻塞地取当前桥接引用。
func (p *Provider) Get() (Ref, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.ref, p.ref != nil
}

// WaitUntilReady 阻塞等待桥接注入，maxWait 是本次等待的预算。
// maxWait <= 0 时只受 ctx 约束。预算耗尽返回 ErrNotReady，调用方据此
// 降级为匿名/骨架状态，而不是失败。
func (p *Provider) WaitUntilReady(ctx context.Context, maxWait time.Duration) (Ref, error) {
	if ref, ok := p.Get(); ok {
		return ref, nil
	}

	var ceiling <-chan time.Time
	if maxWait > 0 {
		timer := time.NewTimer(maxWait)
		defer timer.Stop()
		ceiling = timer.C
	}

	select {
	case <-p.ready:
		ref, _ := p.Get()
		return ref, nil
	case <-ceiling:
		return nil, ErrNotReady
	case <-ctx.Done():
		return nil, ErrNotReady
	}
}
