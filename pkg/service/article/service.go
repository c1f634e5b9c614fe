/*
 * @Description: 文章数据服务：经桥接取数、规范化、缓存与渲染
 * @Author: 安知鱼
 * @Date: 2026-02-12 10:11:08
 * @LastEditTime: 2026-03-24 20:02:17
 * @LastEditors: 安知鱼
 */
package article

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"log"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/anzhiyu-c/noteva-pixel-theme/pkg/bridge"
	"github.com/anzhiyu-c/noteva-pixel-theme/pkg/constant"
	"github.com/anzhiyu-c/noteva-pixel-theme/pkg/domain/model"
	"github.com/anzhiyu-c/noteva-pixel-theme/pkg/normalize"
	"github.com/anzhiyu-c/noteva-pixel-theme/pkg/service/utility"
)

const (
	// 列表缓存的有效期，宿主才是权威数据源，缓存只为了挡住页面刷新
	listCacheTTL = 60 * time.Second

	// 归档/分类/标签页一次性拉取的上限
	bulkPageSize = 100
)

// Service 是主题侧的文章数据服务。
// 所有数据都来自宿主桥接；桥接不可用时列表类接口降级为空结果，
// 详情类接口返回 ErrNotFound 由页面渲染 404。
type Service struct {
	provider *bridge.Provider
	cache    utility.CacheService
	md       goldmark.Markdown
	policy   *bluemonday.Policy
	pageSize int
}

// NewService 创建文章服务。pageSize 是首页列表的每页条数。
func NewService(provider *bridge.Provider, cache utility.CacheService, pageSize int) *Service {
	if pageSize < 1 {
		pageSize = constant.DefaultPageSize
	}
	return &Service{
		provider: provider,
		cache:    cache,
		md: goldmark.New(
			goldmark.WithRendererOptions(gmhtml.WithHardWraps()),
		),
		policy:   bluemonday.UGCPolicy(),
		pageSize: pageSize,
	}
}

// PageSize 返回首页列表每页条数。
func (s *Service) PageSize() int {
	return s.pageSize
}

// List 分页获取文章列表。
// 桥接不可用或宿主出错时返回空列表（降级，不报错），命中缓存时不触达宿主。
func (s *Service) List(ctx context.Context, page int) *model.ArticleList {
	if page < 1 {
		page = 1
	}

	cacheKey := fmt.Sprintf("theme:articles:p%d", page)
	if cached := s.fromCache(ctx, cacheKey); cached != nil {
		return cached
	}

	result, err := s.listFromBridge(ctx, bridge.ListArticlesOptions{Page: page, PageSize: s.pageSize})
	if err != nil {
		log.Printf("[ArticleService] 警告: 获取文章列表失败: %v", err)
		return &model.ArticleList{Articles: []*model.Article{}}
	}

	s.toCache(ctx, cacheKey, result)
	return result
}

// ListByCategory 按分类 slug 拉取文章（聚合页用，一次最多 bulkPageSize 条）。
func (s *Service) ListByCategory(ctx context.Context, slug string) *model.ArticleList {
	result, err := s.listFromBridge(ctx, bridge.ListArticlesOptions{PageSize: bulkPageSize, Category: slug})
	if err != nil {
		log.Printf("[ArticleService] 警告: 获取分类 %q 文章失败: %v", slug, err)
		return &model.ArticleList{Articles: []*model.Article{}}
	}
	return result
}

// ListByTag 按标签 slug 拉取文章。
func (s *Service) ListByTag(ctx context.Context, slug string) *model.ArticleList {
	result, err := s.listFromBridge(ctx, bridge.ListArticlesOptions{PageSize: bulkPageSize, Tag: slug})
	if err != nil {
		log.Printf("[ArticleService] 警告: 获取标签 %q 文章失败: %v", slug, err)
		return &model.ArticleList{Articles: []*model.Article{}}
	}
	return result
}

// Search 按关键词过滤文章，标题、正文、分类名、标签名任一命中即算。
// 宿主列表接口不支持全文检索，这里一次性拉全量后在主题侧过滤。
func (s *Service) Search(ctx context.Context, keyword string) []*model.Article {
	result, err := s.listFromBridge(ctx, bridge.ListArticlesOptions{PageSize: bulkPageSize})
	if err != nil {
		log.Printf("[ArticleService] 警告: 搜索 %q 拉取文章失败: %v", keyword, err)
		return nil
	}
	return FilterByKeyword(result.Articles, keyword)
}

// FilterByKeyword 返回命中关键词的文章，匹配不区分大小写。
// 空关键词原样返回。
func FilterByKeyword(articles []*model.Article, keyword string) []*model.Article {
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	if keyword == "" {
		return articles
	}
	out := make([]*model.Article, 0, len(articles))
	for _, a := range articles {
		if matchesKeyword(a, keyword) {
			out = append(out, a)
		}
	}
	return out
}

func matchesKeyword(a *model.Article, keyword string) bool {
	if strings.Contains(strings.ToLower(a.Title), keyword) ||
		strings.Contains(strings.ToLower(a.Content), keyword) {
		return true
	}
	if a.Category != nil && strings.Contains(strings.ToLower(a.Category.Name), keyword) {
		return true
	}
	for _, tag := range a.Tags {
		if strings.Contains(strings.ToLower(tag.Name), keyword) {
			return true
		}
	}
	return false
}

// Get 按 slug 获取文章详情，失败一律折叠为 ErrNotFound 渲染 404。
func (s *Service) Get(ctx context.Context, slug string) (*model.Article, error) {
	ref, err := s.provider.WaitUntilReady(ctx, bridge.DefaultReadyCeiling)
	if err != nil {
		return nil, constant.ErrNotFound
	}
	rec, err := ref.Articles().Get(ctx, slug)
	if err != nil || len(rec) == 0 {
		return nil, constant.ErrNotFound
	}
	a := normalize.ArticleFromRecord(rec)
	if a == nil || a.ID == 0 {
		return nil, constant.ErrNotFound
	}
	return a, nil
}

// Archives 拉取全量文章并按年、月分组，年月均按新到旧排列。
func (s *Service) Archives(ctx context.Context) []model.ArchiveGroup {
	result, err := s.listFromBridge(ctx, bridge.ListArticlesOptions{PageSize: bulkPageSize})
	if err != nil {
		log.Printf("[ArticleService] 警告: 获取归档文章失败: %v", err)
		return nil
	}
	return GroupByYearMonth(result.Articles)
}

// Categories 获取全部分类。
func (s *Service) Categories(ctx context.Context) []model.Taxonomy {
	return s.taxonomies(ctx, "categories", func(ctx context.Context, ref bridge.Ref) ([]normalize.Record, error) {
		return ref.Articles().Categories(ctx)
	})
}

// Tags 获取全部标签。
func (s *Service) Tags(ctx context.Context) []model.Taxonomy {
	return s.taxonomies(ctx, "tags", func(ctx context.Context, ref bridge.Ref) ([]normalize.Record, error) {
		return ref.Articles().Tags(ctx)
	})
}

// RecordView 上报一次文章浏览，失败只记日志。
func (s *Service) RecordView(ctx context.Context, articleID uint) {
	ref, ok := s.provider.Get()
	if !ok {
		return
	}
	if err := ref.Articles().RecordView(ctx, articleID); err != nil {
		log.Printf("[ArticleService] 警告: 上报文章 %d 浏览失败: %v", articleID, err)
	}
}

// CheckLiked 查询当前访客是否赞过这篇文章，失败按未赞处理。
func (s *Service) CheckLiked(ctx context.Context, articleID uint, visitorID string) bool {
	ref, ok := s.provider.Get()
	if !ok {
		return false
	}
	liked, err := ref.Reactions().Check(ctx, constant.TargetTypeArticle, articleID, visitorID)
	if err != nil {
		return false
	}
	return liked
}

// ToggleLike 切换文章点赞，宿主返回的结果是权威的。
func (s *Service) ToggleLike(ctx context.Context, articleID uint, visitorID string) (*bridge.ToggleResult, error) {
	ref, ok := s.provider.Get()
	if !ok {
		return nil, bridge.ErrNotReady
	}
	result, err := ref.Reactions().Toggle(ctx, bridge.ToggleInput{
		TargetType: constant.TargetTypeArticle,
		TargetID:   articleID,
		VisitorID:  visitorID,
	})
	if err != nil {
		return nil, fmt.Errorf("切换文章 %d 点赞失败: %w", articleID, err)
	}
	return result, nil
}

// RenderHTML 返回文章正文的 HTML。
// 宿主渲染好的 HTML 优先；只有 Markdown 原文时用 goldmark 现场渲染。
// 两种来源都过一遍 bluemonday 再进模板。
func (s *Service) RenderHTML(a *model.Article) template.HTML {
	if a.ContentHTML != "" {
		return template.HTML(s.policy.Sanitize(a.ContentHTML))
	}
	var buf bytes.Buffer
	if err := s.md.Convert([]byte(a.Content), &buf); err != nil {
		log.Printf("[ArticleService] 警告: 渲染文章 %d 正文失败: %v", a.ID, err)
		return ""
	}
	return template.HTML(s.policy.SanitizeBytes(buf.Bytes()))
}

// RenderPageHTML 渲染自定义页面正文，逻辑与文章一致。
func (s *Service) RenderPageHTML(p *model.Page) template.HTML {
	if p.ContentHTML != "" {
		return template.HTML(s.policy.Sanitize(p.ContentHTML))
	}
	var buf bytes.Buffer
	if err := s.md.Convert([]byte(p.Content), &buf); err != nil {
		log.Printf("[ArticleService] 警告: 渲染页面 %q 正文失败: %v", p.Slug, err)
		return ""
	}
	return template.HTML(s.policy.SanitizeBytes(buf.Bytes()))
}

func (s *Service) listFromBridge(ctx context.Context, opts bridge.ListArticlesOptions) (*model.ArticleList, error) {
	ref, err := s.provider.WaitUntilReady(ctx, bridge.DefaultReadyCeiling)
	if err != nil {
		return nil, err
	}
	raw, err := ref.Articles().List(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &model.ArticleList{
		Articles: normalize.ArticlesFromRecords(raw.Articles),
		Total:    raw.Total,
	}, nil
}

func (s *Service) taxonomies(ctx context.Context, kind string, fetch func(context.Context, bridge.Ref) ([]normalize.Record, error)) []model.Taxonomy {
	ref, err := s.provider.WaitUntilReady(ctx, bridge.DefaultReadyCeiling)
	if err != nil {
		return nil
	}
	records, err := fetch(ctx, ref)
	if err != nil {
		log.Printf("[ArticleService] 警告: 获取%s失败: %v", kind, err)
		return nil
	}
	out := make([]model.Taxonomy, 0, len(records))
	for _, rec := range records {
		out = append(out, model.Taxonomy{
			ID:    rec.Uint("id"),
			Name:  rec.Str("name"),
			Slug:  rec.Str("slug"),
			Count: rec.Int("article_count", "count"),
		})
	}
	return out
}

// fromCache 反序列化列表缓存，任何问题都当作未命中。
func (s *Service) fromCache(ctx context.Context, key string) *model.ArticleList {
	raw, err := s.cache.Get(ctx, key)
	if err != nil || raw == "" {
		return nil
	}
	var list model.ArticleList
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return nil
	}
	return &list
}

func (s *Service) toCache(ctx context.Context, key string, list *model.ArticleList) {
	raw, err := json.Marshal(list)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, string(raw), listCacheTTL); err != nil {
		log.Printf("[ArticleService] 警告: 写入列表缓存失败: %v", err)
	}
}

// GroupByYearMonth 把文章按发布年份、月份分组，年月均按新到旧排列，
// 组内保持宿主返回的顺序。
func GroupByYearMonth(articles []*model.Article) []model.ArchiveGroup {
	type ym struct{ year, month int }
	order := make([]ym, 0)
	buckets := make(map[ym][]*model.Article)
	for _, a := range articles {
		key := ym{a.PublishedAt.Year(), int(a.PublishedAt.Month())}
		if _, ok := buckets[key]; !ok {
			order = append(order, key)
		}
		buckets[key] = append(buckets[key], a)
	}

	// 插入排序规模很小，年月对通常只有几十个
	for i := 1; i < len(order); i++ {
		for j := i; j > 0; j-- {
			prev, cur := order[j-1], order[j]
			if prev.year > cur.year || (prev.year == cur.year && prev.month >= cur.month) {
				break
			}
			order[j-1], order[j] = cur, prev
		}
	}

	var groups []model.ArchiveGroup
	for _, key := range order {
		if len(groups) == 0 || groups[len(groups)-1].Year != key.year {
			groups = append(groups, model.ArchiveGroup{Year: key.year})
		}
		last := &groups[len(groups)-1]
		last.Months = append(last.Months, model.ArchiveMonth{Month: key.month, Articles: buckets[key]})
	}
	return groups
}
