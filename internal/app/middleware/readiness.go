/*
 * @Description: 页面就绪门中间件
 * @Author: 安知鱼
 * @Date: 2026-02-14 10:02:11
 * @LastEditTime: 2026-03-25 11:14:05
 * @LastEditors: 安知鱼
 */
package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/anzhiyu-c/noteva-pixel-theme/pkg/bridge"
)

// ReadinessGateKey 标记本次请求桥接是否就绪，页面渲染据此决定
// 正常渲染还是降级骨架。
const ReadinessGateKey = "bridge_ready"

// ReadinessGate 在进入页面处理器前等待桥接就绪，最多等 ceiling。
// 超时不拦截请求，只把未就绪的事实写进上下文让页面降级渲染，
// 保证任何页面都不会因为宿主缺席而永久挂起。
func ReadinessGate(provider *bridge.Provider, ceiling time.Duration) gin.HandlerFunc {
	if ceiling <= 0 {
		ceiling = bridge.DefaultReadyCeiling
	}
	return func(c *gin.Context) {
		_, err := provider.WaitUntilReady(c.Request.Context(), ceiling)
		c.Set(ReadinessGateKey, err == nil)
		c.Next()
	}
}

// BridgeIsReady 读取就绪门的判定结果。
func BridgeIsReady(c *gin.Context) bool {
	ready, ok := c.Get(ReadinessGateKey)
	if !ok {
		return false
	}
	b, _ := ready.(bool)
	return b
}
