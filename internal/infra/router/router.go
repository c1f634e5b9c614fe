/*
 * @Description: 主题的全部路由：页面出口 + 评论接口
 * @Author: 安知鱼
 * @Date: 2026-02-15 17:40:12
 * @LastEditTime: 2026-03-25 18:03:55
 * @LastEditors: 安知鱼
 */
package router

import (
	"embed"
	"io/fs"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/anzhiyu-c/noteva-pixel-theme/internal/app/middleware"
	"github.com/anzhiyu-c/noteva-pixel-theme/pkg/bridge"
	article_handler "github.com/anzhiyu-c/noteva-pixel-theme/pkg/handler/article"
	comment_handler "github.com/anzhiyu-c/noteva-pixel-theme/pkg/handler/comment"
	page_handler "github.com/anzhiyu-c/noteva-pixel-theme/pkg/handler/page"
)

//go:embed static
var staticFS embed.FS

// NoCacheMiddleware 全局反缓存中间件，确保所有API响应都不会被CDN缓存
func NoCacheMiddleware() gin.HandlerFunc {
	return gin.HandlerFunc(func(c *gin.Context) {
		c.Header("Cache-Control", "no-cache, no-store, must-revalidate, private, max-age=0")
		c.Header("Pragma", "no-cache")
		c.Header("Expires", "0")
		c.Header("X-Content-Type-Options", "nosniff")

		c.Next()
	})
}

// Router 封装了主题的所有路由和其依赖的处理器。
type Router struct {
	pageHandler    *page_handler.Handler
	articleHandler *article_handler.Handler
	commentHandler *comment_handler.Handler
	provider       *bridge.Provider
	readyCeiling   time.Duration
}

// NewRouter 是 Router 的构造函数，通过依赖注入接收所有处理器。
func NewRouter(
	pageHandler *page_handler.Handler,
	articleHandler *article_handler.Handler,
	commentHandler *comment_handler.Handler,
	provider *bridge.Provider,
	readyCeiling time.Duration,
) *Router {
	return &Router{
		pageHandler:    pageHandler,
		articleHandler: articleHandler,
		commentHandler: commentHandler,
		provider:       provider,
		readyCeiling:   readyCeiling,
	}
}

// Setup 注册全部路由。
func (r *Router) Setup(engine *gin.Engine) {
	engine.Use(middleware.Cors())
	engine.Use(middleware.VisitorID())

	// 主题静态资源
	staticRoot, _ := fs.Sub(staticFS, "static")
	engine.StaticFS("/static", http.FS(staticRoot))

	// 页面路由：就绪门先行，桥接缺席时以降级模式渲染而不是挂起
	pages := engine.Group("/")
	pages.Use(middleware.ReadinessGate(r.provider, r.readyCeiling))
	{
		pages.GET("/", r.pageHandler.Home)
		pages.GET("/archives", r.pageHandler.Archives)
		pages.GET("/categories", r.pageHandler.Categories)
		pages.GET("/tags", r.pageHandler.Tags)
		pages.GET("/posts/:slug", r.pageHandler.Post)
		pages.GET("/p/:slug", r.pageHandler.CustomPage)
	}

	// 评论接口：全部反缓存
	api := engine.Group("/api")
	api.Use(NoCacheMiddleware())
	{
		api.GET("/comments/:articleID", r.commentHandler.List)
		api.POST("/comments", middleware.CommentSubmitRateLimit(), r.commentHandler.Create)
		api.POST("/comments/like", r.commentHandler.ToggleLike)
		api.POST("/comments/reply-target", r.commentHandler.SetReplyTarget)
		api.POST("/comments/draft", r.commentHandler.SaveDraft)
		api.POST("/articles/like", middleware.CustomRateLimit(30, 10), r.articleHandler.ToggleLike)
	}

	engine.NoRoute(func(c *gin.Context) {
		r.pageHandler.NotFound(c)
	})
}
