/*
 * @Description: 宿主握手连接器：成功后把客户端注入 Provider
 * @Author: 安知鱼
 * @Date: 2026-02-13 10:40:26
 * @LastEditTime: 2026-03-25 10:30:18
 * @LastEditors: 安知鱼
 */
package noteva

import (
	"context"
	"log"
	"time"

	"github.com/anzhiyu-c/noteva-pixel-theme/internal/pkg/event"
	"github.com/anzhiyu-c/noteva-pixel-theme/pkg/bridge"
)

// handshakeInterval 是两次握手尝试之间的间隔。
// 宿主何时起来没人说得准，所以这里只管不停试，页面侧的等待上限
// 由 Provider 的就绪门控制，和这里互不相干。
const handshakeInterval = 500 * time.Millisecond

// Connector 在后台向宿主反复握手，成功后把桥接客户端注册进
// Provider 并广播 bridge:ready 事件。注册只发生一次。
type Connector struct {
	client   *Client
	provider *bridge.Provider
	bus      *event.EventBus
}

func NewConnector(client *Client, provider *bridge.Provider, bus *event.EventBus) *Connector {
	return &Connector{client: client, provider: provider, bus: bus}
}

// Run 阻塞式地握手直到成功或 ctx 取消，应当在独立协程里调用。
func (c *Connector) Run(ctx context.Context) {
	log.Println("[Bridge] 开始向宿主握手...")

	ticker := time.NewTicker(handshakeInterval)
	defer ticker.Stop()

	attempt := 0
	for {
		attempt++
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		err := c.client.Ping(pingCtx)
		cancel()

		if err == nil {
			c.provider.Register(c.client)
			c.bus.Publish(event.BridgeReady, map[string]any{"attempts": attempt})
			log.Printf("✅ [Bridge] 宿主握手成功 (第 %d 次尝试)，桥接已就绪。", attempt)
			return
		}

		// 前几次失败是常态（宿主可能还没起），降低日志噪音
		if attempt%20 == 1 {
			log.Printf("⚠️ [Bridge] 宿主暂不可达 (第 %d 次尝试): %v", attempt, err)
		}

		select {
		case <-ctx.Done():
			log.Println("[Bridge] 握手被取消，桥接保持未就绪。")
			return
		case <-ticker.C:
		}
	}
}
