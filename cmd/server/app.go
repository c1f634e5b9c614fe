/*
 * @Description: 应用装配：配置、缓存、桥接、服务与路由的依赖注入
 * @Author: 安知鱼
 * @Date: 2026-02-16 14:02:55
 * @LastEditTime: 2026-03-26 09:40:18
 * @LastEditors: 安知鱼
 */
package server

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/anzhiyu-c/noteva-pixel-theme/internal/app/task"
	"github.com/anzhiyu-c/noteva-pixel-theme/internal/infra/noteva"
	"github.com/anzhiyu-c/noteva-pixel-theme/internal/infra/router"
	"github.com/anzhiyu-c/noteva-pixel-theme/internal/pkg/event"
	"github.com/anzhiyu-c/noteva-pixel-theme/internal/pkg/version"
	"github.com/anzhiyu-c/noteva-pixel-theme/pkg/bridge"
	"github.com/anzhiyu-c/noteva-pixel-theme/pkg/config"
	article_handler "github.com/anzhiyu-c/noteva-pixel-theme/pkg/handler/article"
	comment_handler "github.com/anzhiyu-c/noteva-pixel-theme/pkg/handler/comment"
	page_handler "github.com/anzhiyu-c/noteva-pixel-theme/pkg/handler/page"
	"github.com/anzhiyu-c/noteva-pixel-theme/pkg/i18n"
	article_service "github.com/anzhiyu-c/noteva-pixel-theme/pkg/service/article"
	comment_service "github.com/anzhiyu-c/noteva-pixel-theme/pkg/service/comment"
	site_service "github.com/anzhiyu-c/noteva-pixel-theme/pkg/service/site"
	"github.com/anzhiyu-c/noteva-pixel-theme/pkg/service/utility"
)

// App 结构体，用于封装应用的所有核心组件
type App struct {
	cfg       *config.Config
	engine    *gin.Engine
	scheduler *task.Scheduler
	eventBus  *event.EventBus
	provider  *bridge.Provider
	cacheSvc  utility.CacheService

	connectorStop context.CancelFunc
}

func (a *App) PrintBanner() {
	banner := `

      ███╗   ██╗ ██████╗ ████████╗███████╗██╗   ██╗ █████╗
      ████╗  ██║██╔═══██╗╚══██╔══╝██╔════╝██║   ██║██╔══██╗
      ██╔██╗ ██║██║   ██║   ██║   █████╗  ██║   ██║███████║
      ██║╚██╗██║██║   ██║   ██║   ██╔══╝  ╚██╗ ██╔╝██╔══██║
      ██║ ╚████║╚██████╔╝   ██║   ███████╗ ╚████╔╝ ██║  ██║
      ╚═╝  ╚═══╝ ╚═════╝    ╚═╝   ╚══════╝  ╚═══╝  ╚═╝  ╚═╝

`
	log.Println(banner)
	log.Println("--------------------------------------------------------")
	log.Printf(" Noteva Pixel Theme - Version: %s", version.GetVersionString())
	log.Println("--------------------------------------------------------")
}

// NewApp 是应用的构造函数，它执行所有的初始化和依赖注入工作
func NewApp() (*App, func(), error) {
	// --- Phase 1: 加载外部配置 ---
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("加载配置失败: %w", err)
	}

	if !cfg.GetBool(config.KeyServerDebug) {
		gin.SetMode(gin.ReleaseMode)
	}

	// --- Phase 2: 初始化基础设施 ---
	var redisClient *redis.Client
	if addr := cfg.GetString(config.KeyRedisAddr); addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: cfg.GetString(config.KeyRedisPassword),
			DB:       cfg.GetInt(config.KeyRedisDB),
		})
	}
	cacheSvc := utility.NewCacheServiceWithFallback(redisClient)

	eventBus := event.NewEventBus()
	provider := bridge.NewProvider()

	// --- Phase 3: 启动宿主桥接连接器 ---
	// 连接器在后台持续握手，成功前所有页面以降级模式渲染
	bridgeClient := noteva.NewClient(
		cfg.GetString(config.KeyHostBaseURL),
		cfg.GetString(config.KeyHostToken),
	)
	connector := noteva.NewConnector(bridgeClient, provider, eventBus)
	connectorCtx, connectorStop := context.WithCancel(context.Background())
	go connector.Run(connectorCtx)

	// --- Phase 4: 初始化服务层 ---
	tr := i18n.New(cfg.GetString(config.KeyThemeLocale))

	articleSvc := article_service.NewService(provider, cacheSvc, cfg.GetInt(config.KeyThemePageSize))
	siteSvc := site_service.NewService(provider, cacheSvc, eventBus, tr)

	// 身份会话由注册表按访客分别创建，主题进程不持有全局身份
	commentRegistry := comment_service.NewRegistry(provider, eventBus, tr)

	// --- Phase 5: 初始化接口层与路由 ---
	pageHandler, err := page_handler.NewHandler(articleSvc, siteSvc, commentRegistry, tr)
	if err != nil {
		connectorStop()
		return nil, nil, fmt.Errorf("初始化页面处理器失败: %w", err)
	}
	articleHandler := article_handler.NewHandler(articleSvc)
	commentHandler := comment_handler.NewHandler(commentRegistry)

	readyCeiling := time.Duration(cfg.GetInt(config.KeyThemeReadyCeilingMs)) * time.Millisecond

	engine := gin.Default()
	r := router.NewRouter(pageHandler, articleHandler, commentHandler, provider, readyCeiling)
	r.Setup(engine)

	// --- Phase 6: 定时任务 ---
	scheduler := task.NewScheduler(siteSvc)

	app := &App{
		cfg:           cfg,
		engine:        engine,
		scheduler:     scheduler,
		eventBus:      eventBus,
		provider:      provider,
		cacheSvc:      cacheSvc,
		connectorStop: connectorStop,
	}

	cleanup := func() {
		app.Stop()
	}
	return app, cleanup, nil
}

// Config 返回配置实例。
func (a *App) Config() *config.Config {
	return a.cfg
}

// Engine 返回 gin 引擎。
func (a *App) Engine() *gin.Engine {
	return a.engine
}

// EventBus 返回事件总线。
func (a *App) EventBus() *event.EventBus {
	return a.eventBus
}

// BridgeProvider 返回桥接提供者。
func (a *App) BridgeProvider() *bridge.Provider {
	return a.provider
}

// CacheService 返回缓存服务。
func (a *App) CacheService() utility.CacheService {
	return a.cacheSvc
}

func (a *App) Run() error {
	a.scheduler.RegisterJobs()
	a.scheduler.Start()

	port := a.cfg.GetString(config.KeyServerPort)
	if port == "" {
		port = "8093"
	}
	if _, err := strconv.Atoi(port); err != nil {
		log.Printf("警告: 端口 %q 无效，回退到 8093", port)
		port = "8093"
	}
	fmt.Printf("主题服务启动成功，正在监听端口: %s\n", port)

	return a.engine.Run(":" + port)
}

func (a *App) Stop() {
	if a.connectorStop != nil {
		a.connectorStop()
	}
	if a.scheduler != nil {
		a.scheduler.Stop()
		log.Println("任务调度器已停止。")
	}
	if a.eventBus != nil {
		a.eventBus.Shutdown()
	}
	_ = os.Stdout.Sync()
}
