/*
 * @Description: 匿名访客标识中间件
 * @Author: 安知鱼
 * @Date: 2026-02-14 09:45:30
 * @LastEditTime: 2026-03-25 11:10:22
 * @LastEditors: 安知鱼
 */
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/anzhiyu-c/noteva-pixel-theme/pkg/constant"
)

// visitorCookieMaxAge 访客 cookie 有效期（一年）
const visitorCookieMaxAge = 365 * 24 * 3600

// VisitorID 为每个访客派发一个匿名 UUID cookie。
// 点赞去重和草稿隔离都靠它区分访客，和登录态无关。
func VisitorID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(constant.VisitorCookieName)
		if err != nil || id == "" {
			id = uuid.NewString()
			c.SetCookie(constant.VisitorCookieName, id, visitorCookieMaxAge, "/", "", false, true)
		}
		c.Set(constant.VisitorCookieName, id)
		c.Next()
	}
}

// GetVisitorID 从请求上下文取访客标识，中间件没跑到时回退空串。
func GetVisitorID(c *gin.Context) string {
	if id, ok := c.Get(constant.VisitorCookieName); ok {
		if s, ok := id.(string); ok {
			return s
		}
	}
	return ""
}
