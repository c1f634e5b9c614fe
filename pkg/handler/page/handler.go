/*
 * @Description: 页面渲染层：像素主题的所有 HTML 出口
 * @Author: 安知鱼
 * @Date: 2026-02-15 09:12:40
 * @LastEditTime: 2026-03-25 16:22:08
 * @LastEditors: 安知鱼
 */
package page

import (
	"context"
	"embed"
	"html/template"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/anzhiyu-c/noteva-pixel-theme/internal/app/middleware"
	"github.com/anzhiyu-c/noteva-pixel-theme/pkg/domain/model"
	"github.com/anzhiyu-c/noteva-pixel-theme/pkg/i18n"
	"github.com/anzhiyu-c/noteva-pixel-theme/pkg/service/article"
	"github.com/anzhiyu-c/noteva-pixel-theme/pkg/service/comment"
	"github.com/anzhiyu-c/noteva-pixel-theme/pkg/service/site"
)

//go:embed templates/*.html
var templateFS embed.FS

// Handler 渲染主题的全部页面。
// 每个页面都能在桥接缺席时以降级模式渲染：站点信息用默认值，
// 列表为空，评论区展示骨架占位。
type Handler struct {
	articles *article.Service
	sites    *site.Service
	registry *comment.Registry
	tr       *i18n.Translator
	tpl      *template.Template
}

// NewHandler 创建页面处理器并解析内嵌模板。
func NewHandler(articles *article.Service, sites *site.Service, registry *comment.Registry, tr *i18n.Translator) (*Handler, error) {
	h := &Handler{
		articles: articles,
		sites:    sites,
		registry: registry,
		tr:       tr,
	}

	funcs := template.FuncMap{
		"t":           tr.T,
		"formatDate":  func(t time.Time) string { return t.Format("2006-01-02") },
		"formatTime":  func(t time.Time) string { return t.Format("2006-01-02 15:04") },
		"excerpt":     article.Excerpt,
		"firstImage":  article.FirstImage,
		"monthName":   func(m int) string { return time.Month(m).String() },
		"flatReplies": comment.FlattenReplies,
	}

	tpl, err := template.New("theme").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	h.tpl = tpl
	return h, nil
}

// baseData 是所有页面共享的渲染数据。
type baseData struct {
	Site        *model.SiteInfo
	Nav         []model.NavItem
	BridgeReady bool
	Locale      string
}

func (h *Handler) base(c *gin.Context) baseData {
	return baseData{
		Site:        h.sites.Info(c.Request.Context()),
		Nav:         h.sites.Nav(c.Request.Context()),
		BridgeReady: middleware.BridgeIsReady(c),
		Locale:      h.tr.Locale(),
	}
}

// Home 首页文章列表，?page= 翻页，?q= 按关键词过滤。
func (h *Handler) Home(c *gin.Context) {
	// 搜索结果不分页，一次给全
	if query := strings.TrimSpace(c.Query("q")); query != "" {
		h.render(c, "home.html", gin.H{
			"Base":       h.base(c),
			"Articles":   h.articles.Search(c.Request.Context(), query),
			"Query":      query,
			"Page":       1,
			"TotalPages": 1,
			"HasPrev":    false,
			"HasNext":    false,
			"PrevPage":   0,
			"NextPage":   2,
		})
		return
	}

	pageNo, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if pageNo < 1 {
		pageNo = 1
	}

	list := h.articles.List(c.Request.Context(), pageNo)
	totalPages := (list.Total + h.articles.PageSize() - 1) / h.articles.PageSize()

	h.render(c, "home.html", gin.H{
		"Base":       h.base(c),
		"Articles":   list.Articles,
		"Query":      "",
		"Page":       pageNo,
		"TotalPages": totalPages,
		"HasPrev":    pageNo > 1,
		"HasNext":    pageNo < totalPages,
		"PrevPage":   pageNo - 1,
		"NextPage":   pageNo + 1,
	})
}

// Archives 归档页，按年月分组。
func (h *Handler) Archives(c *gin.Context) {
	h.render(c, "archives.html", gin.H{
		"Base":   h.base(c),
		"Groups": h.articles.Archives(c.Request.Context()),
	})
}

// Categories 分类聚合页；?cat= 指定 slug 时展示该分类下的文章。
func (h *Handler) Categories(c *gin.Context) {
	data := gin.H{
		"Base":       h.base(c),
		"Categories": h.articles.Categories(c.Request.Context()),
		"Active":     "",
	}
	if slug := c.Query("cat"); slug != "" {
		data["Active"] = slug
		data["Articles"] = h.articles.ListByCategory(c.Request.Context(), slug).Articles
	}
	h.render(c, "categories.html", data)
}

// Tags 标签聚合页；?tag= 指定 slug 时展示该标签下的文章。
func (h *Handler) Tags(c *gin.Context) {
	data := gin.H{
		"Base":   h.base(c),
		"Tags":   h.articles.Tags(c.Request.Context()),
		"Active": "",
	}
	if slug := c.Query("tag"); slug != "" {
		data["Active"] = slug
		data["Articles"] = h.articles.ListByTag(c.Request.Context(), slug).Articles
	}
	h.render(c, "tags.html", data)
}

// Post 文章详情页，正文 + 评论区。
func (h *Handler) Post(c *gin.Context) {
	slug := c.Param("slug")

	a, err := h.articles.Get(c.Request.Context(), slug)
	if err != nil {
		h.NotFound(c)
		return
	}

	visitorID := middleware.GetVisitorID(c)

	// 浏览上报不占渲染路径，用独立的超时上下文（请求上下文在响应后会被取消）
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		h.articles.RecordView(ctx, a.ID)
	}()

	ctrl := h.registry.GetOrCreate(a.ID, visitorID)
	ctrl.Load(c.Request.Context())
	identity := ctrl.Identity(c.Request.Context())

	h.render(c, "post.html", gin.H{
		"Base":         h.base(c),
		"Article":      a,
		"ContentHTML":  h.articles.RenderHTML(a),
		"ArticleLiked": h.articles.CheckLiked(c.Request.Context(), a.ID, visitorID),
		"Comments":     ctrl.Comments(),
		"CommentCount": comment.CountNodes(ctrl.Comments()),
		"ReplyTarget":  ctrl.ReplyTarget(),
		"Draft":        ctrl.Draft(nil),
		"Identity":     identity,
		"AdminHint":    h.tr.T("comment.postingAsAdmin", map[string]string{"name": identity.DisplayName}),
	})
}

// CustomPage 宿主维护的自定义页面（如 /about）。
func (h *Handler) CustomPage(c *gin.Context) {
	slug := c.Param("slug")

	p, err := h.sites.GetPage(c.Request.Context(), slug)
	if err != nil {
		h.NotFound(c)
		return
	}

	h.render(c, "page.html", gin.H{
		"Base":        h.base(c),
		"Page":        p,
		"ContentHTML": h.articles.RenderPageHTML(p),
	})
}

// NotFound 404 页面。
func (h *Handler) NotFound(c *gin.Context) {
	c.Status(http.StatusNotFound)
	if err := h.tpl.ExecuteTemplate(c.Writer, "404.html", gin.H{"Base": h.base(c)}); err != nil {
		log.Printf("[PageHandler] 警告: 渲染 404 页面失败: %v", err)
	}
}

func (h *Handler) render(c *gin.Context, name string, data gin.H) {
	c.Status(http.StatusOK)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := h.tpl.ExecuteTemplate(c.Writer, name, data); err != nil {
		log.Printf("[PageHandler] 警告: 渲染模板 %s 失败: %v", name, err)
	}
}
